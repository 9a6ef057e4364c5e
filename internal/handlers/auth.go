package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partage-labs/partage/internal/domain"
	"github.com/partage-labs/partage/internal/middleware"
	"github.com/partage-labs/partage/internal/session"
	"github.com/partage-labs/partage/internal/store"
)

// AuthHandler handles registration, login, and logout.
type AuthHandler struct {
	store       *store.Store
	coordinator *session.Coordinator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(st *store.Store, coordinator *session.Coordinator) *AuthHandler {
	return &AuthHandler{store: st, coordinator: coordinator}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All fields are required"})
	}
	if err := c.Validate(&req); err != nil {
		if req.Password != req.ConfirmPassword {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Passwords do not match"})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "All fields are required"})
	}

	user, err := h.store.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "An account with this email already exists"})
		}
		middleware.FromContext(c.Request().Context()).Error("Failed to register user", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not create the account"})
	}

	return c.JSON(http.StatusCreated, UserResponse{
		Message: "Account created successfully",
		User:    user.Public(),
	})
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password are required"})
	}

	user, err := h.coordinator.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Incorrect email or password"})
		}
		middleware.FromContext(c.Request().Context()).Error("Login failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Login failed"})
	}

	return c.JSON(http.StatusOK, UserResponse{
		Message: "Login successful",
		User:    user,
	})
}

// Logout handles POST /api/logout. Logging out a user that is not online is
// still a success.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User ID is required"})
	}

	h.coordinator.Logout(c.Request().Context(), req.UserID)

	return c.JSON(http.StatusOK, map[string]string{"message": "Logout successful"})
}
