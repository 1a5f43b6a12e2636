package handlers

import (
	"video-annotator/internal/domain/dto"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/constants"
	"video-annotator/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MaintenanceHandler struct {
	annotations usecases.AnnotationService
	cleanup     usecases.CleanupService
	log         *zap.SugaredLogger
}

func NewMaintenanceHandler(annotations usecases.AnnotationService, cleanup usecases.CleanupService, log *zap.SugaredLogger) *MaintenanceHandler {
	return &MaintenanceHandler{annotations: annotations, cleanup: cleanup, log: log}
}

// Cleanup
//
// @Summary      Remove orphaned annotations
// @Description  Deletes stored annotations whose video is no longer registered
// @Tags         Maintenance
// @Produce      json
// @Success      200  {object}  dto.CleanupResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /maintenance/cleanup [post]
func (h *MaintenanceHandler) Cleanup(c *fiber.Ctx) error {
	report, err := h.cleanup.RunOnce(c.UserContext())
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(dto.CleanupResponse{Status: constants.StatusOK, Removed: report.Removed})
}

// Health
//
// @Summary      Health check
// @Description  Reports degraded when the annotation store cannot be read
// @Tags         Maintenance
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Failure      503  {object}  dto.StatusResponse
// @Router       /health [get]
func (h *MaintenanceHandler) Health(c *fiber.Ctx) error {
	if _, err := h.annotations.ListVideos(c.UserContext()); err != nil {
		h.log.Warnw("health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.StatusResponse{Status: constants.StatusDegraded})
	}
	return c.JSON(dto.StatusResponse{Status: constants.StatusOK})
}
