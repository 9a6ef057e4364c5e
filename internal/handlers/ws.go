package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"

	"github.com/partage-labs/partage/internal/event"
	"github.com/partage-labs/partage/internal/middleware"
)

// writeTimeout bounds each frame write so one stuck client cannot pin its
// goroutine.
const writeTimeout = 5 * time.Second

// Socket handles GET /api/ws: the same live-update feed as the SSE stream,
// delivered as one JSON text frame per event.
func (h *EventsHandler) Socket(c echo.Context) error {
	logger := middleware.FromContext(c.Request().Context())

	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)

	// The feed is write-only; CloseRead surfaces client disconnects through
	// context cancellation.
	ctx := conn.CloseRead(c.Request().Context())

	ticker := time.NewTicker(h.rosterInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return nil

		case ev, ok := <-sub.Send:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return nil
			}
			if err := writeFrame(ctx, conn, ev); err != nil {
				logger.Debug("WebSocket write failed", "error", err)
				return nil
			}

		case <-ticker.C:
			if err := writeFrame(ctx, conn, h.rosterEvent()); err != nil {
				logger.Debug("WebSocket roster write failed", "error", err)
				return nil
			}
		}
	}
}

func writeFrame(ctx context.Context, conn *websocket.Conn, ev event.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, payload)
}
