package handlers

import "github.com/go-playground/validator/v10"

// CustomValidator wraps the go-playground/validator library to implement
// Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// RegisterRequest is the DTO for account creation.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginRequest is the DTO for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LogoutRequest is the DTO for logout.
type LogoutRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// SendMessageRequest is the DTO for chat sends. The body is deliberately not
// tagged required: the session layer owns the empty-message rule.
type SendMessageRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	Message string `json:"message"`
}

// UpdateFileRequest is the DTO for toggling a file's shared flag.
type UpdateFileRequest struct {
	Shared *bool `json:"shared" validate:"required"`
}

// FormatSizeRequest is the DTO for the size formatting utility. A pointer so
// an explicit zero passes validation while a missing field does not.
type FormatSizeRequest struct {
	Bytes *int64 `json:"bytes" validate:"required"`
}
