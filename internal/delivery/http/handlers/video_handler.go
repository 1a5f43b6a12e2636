package handlers

import (
	"video-annotator/internal/domain/dto"
	"video-annotator/internal/domain/mapper"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type VideoHandler struct {
	annotations usecases.AnnotationService
	log         *zap.SugaredLogger
}

func NewVideoHandler(annotations usecases.AnnotationService, log *zap.SugaredLogger) *VideoHandler {
	return &VideoHandler{annotations: annotations, log: log}
}

// RegisterVideo
//
// @Summary      Register video
// @Description  Adds a video URI to the registry. Registering a known URI is a no-op.
// @Tags         Videos
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterVideoRequest true "Video"
// @Success      201   {object}  dto.VideoListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /videos [post]
func (h *VideoHandler) RegisterVideo(c *fiber.Ctx) error {
	var req dto.RegisterVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleError(c, h.log, errors.ErrValidation("invalid request body"))
	}

	videos, err := h.annotations.RegisterVideo(c.UserContext(), req.URI)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.VideoListResponse{Videos: videos})
}

// ListVideos
//
// @Summary      List videos with metadata
// @Description  Videos with recent activity first, then the rest by annotation count
// @Tags         Videos
// @Produce      json
// @Success      200  {object}  dto.VideosMetadataResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(c *fiber.Ctx) error {
	list, err := h.annotations.AllVideosMetadata(c.UserContext())
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.MetadataListToDTO(list))
}

// ListVideoURIs
//
// @Summary      List registered video URIs
// @Tags         Videos
// @Produce      json
// @Success      200  {object}  dto.VideoListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /videos/uris [get]
func (h *VideoHandler) ListVideoURIs(c *fiber.Ctx) error {
	videos, err := h.annotations.ListVideos(c.UserContext())
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(dto.VideoListResponse{Videos: videos})
}

// DeleteVideo
//
// @Summary      Delete video
// @Description  Removes the video from the registry together with all of its comments and drawings
// @Tags         Videos
// @Produce      json
// @Param        uri  query     string true "Video URI"
// @Success      200  {object}  dto.VideoListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /videos [delete]
func (h *VideoHandler) DeleteVideo(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	videos, err := h.annotations.DeleteVideo(c.UserContext(), uri)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(dto.VideoListResponse{Videos: videos})
}

// GetVideoMetadata
//
// @Summary      Video metadata
// @Tags         Videos
// @Produce      json
// @Param        uri  query     string true "Video URI"
// @Success      200  {object}  dto.VideoMetadataResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /videos/metadata [get]
func (h *VideoHandler) GetVideoMetadata(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.MetadataToDTO(h.annotations.VideoMetadata(c.UserContext(), uri)))
}

// GetStats
//
// @Summary      Storage statistics
// @Tags         Maintenance
// @Produce      json
// @Success      200  {object}  dto.StorageStatsResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /stats [get]
func (h *VideoHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.annotations.StorageStats(c.UserContext())
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.StatsToDTO(stats))
}
