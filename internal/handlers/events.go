package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/partage-labs/partage/internal/event"
	"github.com/partage-labs/partage/internal/hub"
	"github.com/partage-labs/partage/internal/middleware"
	"github.com/partage-labs/partage/internal/presence"
	"github.com/partage-labs/partage/internal/store"
)

// EventsHandler serves the live-update feed. Each connection registers a hub
// subscriber and additionally runs its own roster ticker: every interval it
// pushes a fresh user_list snapshot down its own stream, so a quiet or
// newly-opened connection converges on the true online set without waiting
// for a state change.
type EventsHandler struct {
	hub            *hub.Hub
	registry       *presence.Registry
	store          *store.Store
	rosterInterval time.Duration
}

// NewEventsHandler creates a new EventsHandler. interval is the roster
// refresh period (10s in production).
func NewEventsHandler(h *hub.Hub, registry *presence.Registry, st *store.Store, interval time.Duration) *EventsHandler {
	return &EventsHandler{
		hub:            h,
		registry:       registry,
		store:          st,
		rosterInterval: interval,
	}
}

// rosterEvent builds a user_list snapshot at call time.
func (h *EventsHandler) rosterEvent() event.Event {
	return event.NewUserList(h.store.UsersByID(h.registry.OnlineUserIDs()))
}

// Stream handles GET /api/events as a Server-Sent Events stream. The stream
// never terminates on its own; it ends when the client disconnects or the
// hub shuts down. A client that stops reading is detected through a failed
// write or a full hub buffer and silently dropped.
func (h *EventsHandler) Stream(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)

	ticker := time.NewTicker(h.rosterInterval)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			logger.Debug("Event stream closed by client")
			return nil

		case ev, ok := <-sub.Send:
			if !ok {
				// The hub already removed this subscriber.
				logger.Debug("Event stream subscriber evicted")
				return nil
			}
			if err := writeSSE(w, ev); err != nil {
				logger.Debug("Event stream write failed", "error", err)
				return nil
			}

		case <-ticker.C:
			if err := writeSSE(w, h.rosterEvent()); err != nil {
				logger.Debug("Event stream roster write failed", "error", err)
				return nil
			}
		}
	}
}

// writeSSE writes one tagged JSON event record in SSE framing and flushes it.
func writeSSE(w *echo.Response, ev event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	w.Flush()
	return nil
}
