package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/partage-labs/partage/internal/hours"
)

// StatusHandler reports service availability. It is mounted outside the
// service-hours gate so clients can always ask when the service reopens.
type StatusHandler struct {
	gate *hours.Gate
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(gate *hours.Gate) *StatusHandler {
	return &StatusHandler{gate: gate}
}

// Status handles GET /api/status.
func (h *StatusHandler) Status(c echo.Context) error {
	now := time.Now()
	open, close := h.gate.Window()
	return c.JSON(http.StatusOK, StatusResponse{
		ServiceAvailable: h.gate.Available(now),
		CurrentTime:      now.Format(time.RFC3339),
		ServiceHours:     ServiceHours{Start: open, End: close},
	})
}
