package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "video-annotator/docs"

	"video-annotator/internal/delivery/http/handlers"
	"video-annotator/internal/delivery/http/routers"
	"video-annotator/internal/infrastructure/storage"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/config"
	"video-annotator/pkg/errors/i18n"
	"video-annotator/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/swagger"
)

// @title        Video Annotator API
// @version      1.0
// @description  Timestamped comments and freehand drawings on videos.
// @BasePath     /api/v1
func main() {
	cfg := config.LoadConfig("../../.env", ".env")

	zlog, err := logger.New(cfg.Log.Development)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()

	if err := i18n.Load(cfg.Server.Locale); err != nil {
		zlog.Warnw("falling back to built-in error messages", "locale", cfg.Server.Locale, "error", err)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatalw("annotation store unavailable", "driver", cfg.Store.Driver, "error", err)
	}
	defer store.Close()

	annotationService := usecases.NewAnnotationService(store, zlog)
	cleanupService := usecases.NewCleanupService(annotationService, zlog)
	if cfg.Cleanup.OnServer {
		if err := cleanupService.Start(cfg.Cleanup.Schedule); err != nil {
			zlog.Fatalw("invalid cleanup schedule", "schedule", cfg.Cleanup.Schedule, "error", err)
		}
		defer cleanupService.Stop()
	}

	sessionHandler := handlers.NewSessionHandler(annotationService, cfg.Session, zlog)

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimit,
	})

	// Middleware
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Routes
	routers.SetupAnnotationRoutes(app, routers.Handlers{
		Videos:      handlers.NewVideoHandler(annotationService, zlog),
		Annotations: handlers.NewAnnotationHandler(annotationService, zlog),
		Sessions:    sessionHandler,
		Maintenance: handlers.NewMaintenanceHandler(annotationService, cleanupService, zlog),
	})
	routers.SetupSessionRoutes(app, sessionHandler)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zlog.Infow("server starting", "addr", addr, "store", cfg.Store.Driver)

	// Graceful shutdown
	go func() {
		if err := app.Listen(addr); err != nil {
			zlog.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutdown signal received")

	ctxShut, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		zlog.Errorw("server shutdown failed", "error", err)
	}
	sessionHandler.Shutdown(ctxShut)
	zlog.Info("server stopped")
}
