package handlers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/partage-labs/partage/internal/domain"
	"github.com/partage-labs/partage/internal/middleware"
	"github.com/partage-labs/partage/internal/storage"
	"github.com/partage-labs/partage/internal/store"
)

// FileHandler handles file record and blob requests.
type FileHandler struct {
	store *store.Store
	blobs storage.Store
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(st *store.Store, blobs storage.Store) *FileHandler {
	return &FileHandler{store: st, blobs: blobs}
}

// ListMine handles GET /api/files?user_id=.
func (h *FileHandler) ListMine(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required"})
	}
	return c.JSON(http.StatusOK, FileListResponse{Files: h.store.ListByOwner(userID)})
}

// ListShared handles GET /api/files/shared?user_id=: shared files owned by
// other users.
func (h *FileHandler) ListShared(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required"})
	}
	return c.JSON(http.StatusOK, FileListResponse{Files: h.store.ListShared(userID)})
}

// Upload handles POST /api/upload (multipart form). The blob is stored under
// the upload directory and the record additionally embeds the content as a
// data URI, so list responses are self-contained for preview rendering.
func (h *FileHandler) Upload(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	userID := c.FormValue("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file provided"})
	}
	if fileHeader.Filename == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid file name"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to open uploaded file"})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read uploaded file"})
	}

	// Sanitize the filename to prevent path traversal.
	sanitized := filepath.Base(fileHeader.Filename)
	fileID := uuid.NewString()
	storagePath := fmt.Sprintf("%s_%s", fileID, sanitized)

	size, err := h.blobs.Save(ctx, storagePath, bytes.NewReader(content))
	if err != nil {
		logger.Error("Failed to save blob", "path", storagePath, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save file"})
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	record := domain.File{
		ID:             fileID,
		Name:           sanitized,
		Size:           size,
		MIMEType:       mimeType,
		ContentDataURI: fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(content)),
		OwnerID:        userID,
		Shared:         false,
		CreatedAt:      time.Now().UTC(),
		StoragePath:    storagePath,
	}

	stored, err := h.store.CreateFile(record)
	if err != nil {
		logger.Error("Failed to save file record", "error", err)
		// Remove the orphaned blob; the record is the source of truth.
		_ = h.blobs.Delete(ctx, storagePath)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save file metadata"})
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "File uploaded successfully",
		"file":    stored,
	})
}

// Update handles PUT /api/files/:id: toggles the shared flag.
func (h *FileHandler) Update(c echo.Context) error {
	var req UpdateFileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Shared flag is required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Shared flag is required"})
	}

	if _, err := h.store.SetShared(c.Param("id"), *req.Shared); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update file"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "File updated successfully"})
}

// Delete handles DELETE /api/files/:id: removes the record and its blob.
func (h *FileHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	deleted, err := h.store.DeleteFile(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete file"})
	}

	if err := h.blobs.Delete(ctx, deleted.StoragePath); err != nil {
		// The record is gone; a stale blob is only worth a log line.
		logger.Warn("Failed to delete blob", "path", deleted.StoragePath, "error", err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

// Download handles GET /api/download/:id: streams the blob as an attachment.
func (h *FileHandler) Download(c echo.Context) error {
	ctx := c.Request().Context()

	record, err := h.store.FindFileByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
	}

	blob, err := h.blobs.Get(ctx, record.StoragePath)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not available"})
	}
	defer blob.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, record.Name))
	return c.Stream(http.StatusOK, record.MIMEType, blob)
}
