package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/partage-labs/partage/internal/handlers"
	"github.com/partage-labs/partage/internal/hours"
	"github.com/partage-labs/partage/internal/middleware"
	"github.com/partage-labs/partage/internal/storage"
)

// registerRoutes sets up all the application routes. Everything under /api
// sits behind the service-hours gate except /api/status, which must stay
// reachable so clients can learn when the service reopens.
func (s *Server) registerRoutes(blobs storage.Store) {
	authHandler := handlers.NewAuthHandler(s.store, s.coordinator)
	fileHandler := handlers.NewFileHandler(s.store, blobs)
	chatHandler := handlers.NewChatHandler(s.chatLog, s.coordinator)
	presenceHandler := handlers.NewPresenceHandler(s.registry, s.store)
	eventsHandler := handlers.NewEventsHandler(s.hub, s.registry, s.store, s.Cfg.RosterInterval)
	statusHandler := handlers.NewStatusHandler(s.gate)
	utilsHandler := handlers.NewUtilsHandler()
	rateLimiter := middleware.RateLimiter()

	api := s.E.Group("/api", hours.Middleware(s.gate))

	api.POST("/register", authHandler.Register, rateLimiter)
	api.POST("/login", authHandler.Login, rateLimiter)
	api.POST("/logout", authHandler.Logout)

	api.GET("/files", fileHandler.ListMine)
	api.GET("/files/shared", fileHandler.ListShared)
	api.POST("/upload", fileHandler.Upload)
	api.PUT("/files/:id", fileHandler.Update)
	api.DELETE("/files/:id", fileHandler.Delete)
	api.GET("/download/:id", fileHandler.Download)

	api.GET("/chat/messages", chatHandler.Messages)
	api.POST("/chat/send", chatHandler.Send)

	api.GET("/users/online", presenceHandler.OnlineUsers)
	api.GET("/events", eventsHandler.Stream)
	api.GET("/ws", eventsHandler.Socket)

	api.POST("/utils/format-size", utilsHandler.FormatSize)

	s.E.GET("/api/status", statusHandler.Status)
	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
