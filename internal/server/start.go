package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Start runs the HTTP server and blocks until an interrupt or terminate
// signal arrives, then shuts everything down in order: background loops
// first (which ends the open live-update streams), then the HTTP server,
// then the bus, with a final state snapshot to disk.
func (s *Server) Start() {
	go func() {
		if err := s.E.Start(s.Cfg.Addr); err != nil && err != http.ErrServerClosed {
			s.E.Logger.Fatalf("shutting down the server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.stopBackground()
	if err := s.E.Shutdown(ctx); err != nil {
		s.E.Logger.Error(err)
	}
	if err := s.bus.Close(); err != nil {
		slog.Error("Failed to close bus", "error", err)
	}
	if err := s.store.Save(s.chatLog.Snapshot()); err != nil {
		slog.Error("Failed to persist final state", "error", err)
	}
}
