package main //worker

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"video-annotator/internal/infrastructure/storage"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/config"
	"video-annotator/pkg/logger"
)

// The worker removes orphaned annotation keys on the cleanup schedule, or
// once with -once.
func main() {
	once := flag.Bool("once", false, "run a single cleanup and exit")
	flag.Parse()

	cfg := config.LoadConfig("../../.env", ".env")
	zlog, err := logger.New(cfg.Log.Development)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatalw("annotation store unavailable", "driver", cfg.Store.Driver, "error", err)
	}
	defer store.Close()

	cleanup := usecases.NewCleanupService(usecases.NewAnnotationService(store, zlog), zlog)

	if *once {
		report, err := cleanup.RunOnce(ctx)
		if err != nil {
			zlog.Fatalw("cleanup failed", "error", err)
		}
		zlog.Infow("cleanup finished", "removed", report.Removed)
		return
	}

	if err := cleanup.Start(cfg.Cleanup.Schedule); err != nil {
		zlog.Fatalw("invalid cleanup schedule", "schedule", cfg.Cleanup.Schedule, "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cleanup.Stop()
	if report, ok := cleanup.LastReport(); ok {
		zlog.Infow("worker stopped", "lastRun", report.RanAt, "lastRemoved", report.Removed)
	}
}
