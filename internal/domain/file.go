package domain

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

func init() {
	// Register the safepath validator to prevent directory traversal attacks.
	_ = validatorInstance.RegisterValidation("safepath", validateSafePath)
}

// validateSafePath ensures the path doesn't contain any directory traversal attempts.
func validateSafePath(fl validator.FieldLevel) bool {
	path := fl.Field().String()

	if strings.Contains(path, "..") ||
		strings.Contains(path, "~") ||
		strings.HasPrefix(path, "/") ||
		strings.Contains(path, "\\") {
		return false
	}

	// Clean the path and check if it still matches the original.
	// This catches more subtle issues like "uploads/./../file".
	return path == filepath.Clean(path)
}

// File represents the metadata for a stored file. The blob itself lives in the
// upload store and is referenced by StoragePath; ContentDataURI additionally
// carries the content inline as a data URI so the record is self-contained for
// clients that render previews without a second request.
type File struct {
	ID             string    `json:"id"`
	Name           string    `json:"name" validate:"required,min=1,max=255"`
	Size           int64     `json:"size" validate:"gte=0"`
	MIMEType       string    `json:"type" validate:"required"`
	ContentDataURI string    `json:"content,omitempty"`
	OwnerID        string    `json:"owner" validate:"required"`
	Shared         bool      `json:"shared"`
	CreatedAt      time.Time `json:"created_at"`
	StoragePath    string    `json:"path" validate:"required,safepath"`
}

// Validate runs validation checks on the File struct using the defined tags.
func (f *File) Validate() error {
	return validatorInstance.Struct(f)
}

// FileRepository defines the contract for file metadata storage.
type FileRepository interface {
	CreateFile(file File) (File, error)
	FindFileByID(id string) (File, error)
	ListByOwner(ownerID string) []File
	ListShared(excludingOwnerID string) []File
	SetShared(id string, shared bool) (File, error)
	DeleteFile(id string) (File, error)
}
