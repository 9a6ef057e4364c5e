package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partage-labs/partage/internal/presence"
	"github.com/partage-labs/partage/internal/store"
)

// PresenceHandler serves the current online-user roster.
type PresenceHandler struct {
	registry *presence.Registry
	store    *store.Store
}

// NewPresenceHandler creates a new PresenceHandler.
func NewPresenceHandler(registry *presence.Registry, st *store.Store) *PresenceHandler {
	return &PresenceHandler{registry: registry, store: st}
}

// OnlineUsers handles GET /api/users/online: full records for every user
// currently tracked as online, passwords stripped.
func (h *PresenceHandler) OnlineUsers(c echo.Context) error {
	users := h.store.UsersByID(h.registry.OnlineUserIDs())
	return c.JSON(http.StatusOK, OnlineUsersResponse{Users: publicUsers(users)})
}
