package routers

import (
	"video-annotator/internal/delivery/http/handlers"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Videos      *handlers.VideoHandler
	Annotations *handlers.AnnotationHandler
	Sessions    *handlers.SessionHandler
	Maintenance *handlers.MaintenanceHandler
}

func SetupAnnotationRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", h.Maintenance.Health)

	api := app.Group("/api/v1")

	api.Post("/videos", h.Videos.RegisterVideo)
	api.Get("/videos", h.Videos.ListVideos)
	api.Get("/videos/uris", h.Videos.ListVideoURIs)
	api.Delete("/videos", h.Videos.DeleteVideo)
	api.Get("/videos/metadata", h.Videos.GetVideoMetadata)

	api.Get("/annotations", h.Annotations.GetAnnotations)
	api.Delete("/annotations", h.Annotations.ClearAnnotations)
	api.Post("/annotations/comments", h.Annotations.AddComment)
	api.Delete("/annotations/comments/:id", h.Annotations.DeleteComment)
	api.Get("/annotations/comments/:id/drawings", h.Annotations.GetCommentDrawings)
	api.Post("/annotations/drawings", h.Annotations.AddDrawing)
	api.Get("/annotations/drawings", h.Annotations.GetDrawings)
	api.Delete("/annotations/drawings/:id", h.Annotations.DeleteDrawing)
	api.Get("/annotations/visible", h.Annotations.GetVisibleDrawings)
	api.Get("/annotations/palette", h.Annotations.GetPalette)

	api.Get("/stats", h.Videos.GetStats)
	api.Post("/maintenance/cleanup", h.Maintenance.Cleanup)
}

func SetupSessionRoutes(app *fiber.App, sessions *handlers.SessionHandler) {
	app.Get("/ws/videos/session", sessions.Upgrade, websocket.New(sessions.HandleWebSocket, websocket.Config{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}))
}
