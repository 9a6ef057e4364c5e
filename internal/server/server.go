package server

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/afero"

	"github.com/partage-labs/partage/internal/chatlog"
	"github.com/partage-labs/partage/internal/config"
	"github.com/partage-labs/partage/internal/handlers"
	"github.com/partage-labs/partage/internal/hours"
	"github.com/partage-labs/partage/internal/hub"
	"github.com/partage-labs/partage/internal/middleware"
	"github.com/partage-labs/partage/internal/presence"
	"github.com/partage-labs/partage/internal/pubsub"
	"github.com/partage-labs/partage/internal/session"
	"github.com/partage-labs/partage/internal/storage"
	"github.com/partage-labs/partage/internal/store"
)

// maxUploadSize bounds request bodies; uploads above 16 MiB are rejected at
// the HTTP layer.
const maxUploadSize = "16M"

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	Cfg *config.Config

	store       *store.Store
	chatLog     *chatlog.Log
	registry    *presence.Registry
	hub         *hub.Hub
	bus         *pubsub.WatermillBridge
	coordinator *session.Coordinator
	gate        *hours.Gate

	// stopBackground cancels the hub run loop, the bus subscriptions, and
	// the optional data-dir watcher.
	stopBackground context.CancelFunc
}

// New creates a fully wired Server on the given filesystem. Production passes
// afero.NewOsFs(); tests pass a MemMapFs.
func New(cfg *config.Config, fsys afero.Fs) *Server {
	st := store.New(fsys, cfg.DataDir)
	messages, err := st.Load()
	if err != nil {
		slog.Error("Failed to load records", "error", err)
		os.Exit(1)
	}
	chatLog := chatlog.NewFrom(messages)

	registry := presence.NewRegistry()
	bus := pubsub.NewWatermillBridge()
	broadcastHub := hub.New()

	ctx, cancel := context.WithCancel(context.Background())
	go broadcastHub.Run(ctx)

	if err := hub.NewForwarder(bus, broadcastHub).Start(ctx); err != nil {
		slog.Error("Failed to start hub forwarder", "error", err)
		cancel()
		os.Exit(1)
	}
	if err := store.NewAutosave(st, chatLog, bus).Start(ctx); err != nil {
		slog.Error("Failed to start autosave", "error", err)
		cancel()
		os.Exit(1)
	}
	if cfg.WatchDataDir {
		go func() {
			if err := st.Watch(ctx); err != nil {
				slog.Error("Data directory watcher stopped", "error", err)
			}
		}()
	}

	coordinator := session.NewCoordinator(st, registry, chatLog, bus)
	gate := hours.NewGate(cfg.ServiceOpenHour, cfg.ServiceCloseHour)
	blobs := storage.NewAferoStore(afero.NewBasePathFs(fsys, cfg.UploadDir))

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit(maxUploadSize))

	s := &Server{
		E:              e,
		Cfg:            cfg,
		store:          st,
		chatLog:        chatLog,
		registry:       registry,
		hub:            broadcastHub,
		bus:            bus,
		coordinator:    coordinator,
		gate:           gate,
		stopBackground: cancel,
	}
	s.registerRoutes(blobs)
	return s
}

// Store is a getter for the record store, useful for testing.
func (s *Server) Store() *store.Store {
	return s.store
}

// Coordinator is a getter for the session coordinator, useful for testing.
func (s *Server) Coordinator() *session.Coordinator {
	return s.coordinator
}

// Hub is a getter for the broadcast hub, useful for testing.
func (s *Server) Hub() *hub.Hub {
	return s.hub
}
