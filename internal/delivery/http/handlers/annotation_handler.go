package handlers

import (
	"video-annotator/internal/domain/dto"
	"video-annotator/internal/domain/mapper"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/constants"
	"video-annotator/pkg/errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnnotationHandler struct {
	annotations usecases.AnnotationService
	log         *zap.SugaredLogger
}

func NewAnnotationHandler(annotations usecases.AnnotationService, log *zap.SugaredLogger) *AnnotationHandler {
	return &AnnotationHandler{annotations: annotations, log: log}
}

// GetAnnotations
//
// @Summary      Load annotations
// @Description  All comments (by timestamp) and drawings of a video
// @Tags         Annotations
// @Produce      json
// @Param        uri  query     string true "Video URI"
// @Success      200  {object}  dto.AnnotationsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /annotations [get]
func (h *AnnotationHandler) GetAnnotations(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	anns, err := h.annotations.LoadAnnotations(c.UserContext(), uri)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.AnnotationsToDTO(uri, anns))
}

// ClearAnnotations
//
// @Summary      Clear annotations
// @Description  Deletes every comment and drawing of a video; the video stays registered
// @Tags         Annotations
// @Produce      json
// @Param        uri  query     string true "Video URI"
// @Success      200  {object}  dto.StatusResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /annotations [delete]
func (h *AnnotationHandler) ClearAnnotations(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	if err := h.annotations.ClearAll(c.UserContext(), uri); err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(dto.StatusResponse{Status: constants.StatusOK})
}

// AddComment
//
// @Summary      Add comment
// @Description  Adds a comment, optionally with a drawing linked to it
// @Tags         Annotations
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddCommentRequest true "Comment"
// @Success      201   {object}  dto.AnnotationsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /annotations/comments [post]
func (h *AnnotationHandler) AddComment(c *fiber.Ctx) error {
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleError(c, h.log, errors.ErrValidation("invalid request body"))
	}

	comment, drawing := mapper.CommentFromDTO(req)
	anns, err := h.annotations.AddCommentWithOptionalDrawing(c.UserContext(), req.URI, comment, drawing)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mapper.AnnotationsToDTO(req.URI, anns))
}

// DeleteComment
//
// @Summary      Delete comment
// @Description  Deletes a comment and the drawings linked to it. Unknown ids are ignored.
// @Tags         Annotations
// @Produce      json
// @Param        id   path      string true "Comment ID"
// @Param        uri  query     string true "Video URI"
// @Success      200  {object}  dto.AnnotationsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /annotations/comments/{id} [delete]
func (h *AnnotationHandler) DeleteComment(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	anns, err := h.annotations.DeleteComment(c.UserContext(), uri, c.Params("id"))
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.AnnotationsToDTO(uri, anns))
}

// GetCommentDrawings
//
// @Summary      Drawings linked to a comment
// @Tags         Annotations
// @Produce      json
// @Param        id   path      string true "Comment ID"
// @Param        uri  query     string true "Video URI"
// @Success      200  {object}  dto.DrawingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /annotations/comments/{id}/drawings [get]
func (h *AnnotationHandler) GetCommentDrawings(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	drawings, err := h.annotations.DrawingsForComment(c.UserContext(), uri, c.Params("id"))
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.DrawingsToDTO(uri, drawings))
}

// AddDrawing
//
// @Summary      Add standalone drawing
// @Tags         Annotations
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AddDrawingRequest true "Drawing"
// @Success      201   {object}  dto.DrawingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /annotations/drawings [post]
func (h *AnnotationHandler) AddDrawing(c *fiber.Ctx) error {
	var req dto.AddDrawingRequest
	if err := c.BodyParser(&req); err != nil {
		return errors.HandleError(c, h.log, errors.ErrValidation("invalid request body"))
	}

	drawings, err := h.annotations.AddDrawing(c.UserContext(), req.URI, mapper.DrawingFromDTO(req.Drawing))
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(mapper.DrawingsToDTO(req.URI, drawings))
}

// DeleteDrawing
//
// @Summary      Delete drawing
// @Tags         Annotations
// @Produce      json
// @Param        id   path      string true "Drawing ID"
// @Param        uri  query     string true "Video URI"
// @Success      200  {object}  dto.DrawingsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /annotations/drawings/{id} [delete]
func (h *AnnotationHandler) DeleteDrawing(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	drawings, err := h.annotations.DeleteDrawing(c.UserContext(), uri, c.Params("id"))
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.DrawingsToDTO(uri, drawings))
}

// GetDrawings
//
// @Summary      List drawings
// @Description  All drawings, or those within tolerance seconds of t when t is given
// @Tags         Annotations
// @Produce      json
// @Param        uri        query     string true  "Video URI"
// @Param        t          query     number false "Position in seconds"
// @Param        tolerance  query     number false "Window in seconds (default 1)"
// @Success      200        {object}  dto.DrawingsResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /annotations/drawings [get]
func (h *AnnotationHandler) GetDrawings(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	t, hasT, err := floatQuery(c, "t")
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	tolerance, hasTolerance, err := floatQuery(c, "tolerance")
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	if !hasTolerance {
		tolerance = constants.VisibilityTolerance
	}

	if !hasT {
		anns, err := h.annotations.LoadAnnotations(c.UserContext(), uri)
		if err != nil {
			return errors.HandleError(c, h.log, err)
		}
		return c.JSON(mapper.DrawingsToDTO(uri, anns.Drawings))
	}

	drawings, err := h.annotations.DrawingsForTimestamp(c.UserContext(), uri, t, tolerance)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.DrawingsToDTO(uri, drawings))
}

// GetVisibleDrawings
//
// @Summary      Drawings visible at a playback position
// @Description  Each drawing carries a render key unique within the response
// @Tags         Annotations
// @Produce      json
// @Param        uri       query     string true "Video URI"
// @Param        position  query     number true "Playback position in seconds"
// @Success      200       {object}  dto.VisibleDrawingsResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Router       /annotations/visible [get]
func (h *AnnotationHandler) GetVisibleDrawings(c *fiber.Ctx) error {
	uri, err := requireURI(c)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	position, ok, err := floatQuery(c, "position")
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	if !ok {
		return errors.HandleError(c, h.log, errors.ErrValidation("query parameter position is required"))
	}

	anns, err := h.annotations.LoadAnnotations(c.UserContext(), uri)
	if err != nil {
		return errors.HandleError(c, h.log, err)
	}
	return c.JSON(mapper.VisibleToDTO(uri, position, usecases.VisibleDrawings(anns.Drawings, position)))
}

// GetPalette
//
// @Summary      Pen palette
// @Description  Colors and stroke width offered to the drawing surface
// @Tags         Annotations
// @Produce      json
// @Success      200  {object}  dto.PaletteResponse
// @Router       /annotations/palette [get]
func (h *AnnotationHandler) GetPalette(c *fiber.Ctx) error {
	return c.JSON(dto.PaletteResponse{
		Colors:             constants.DrawingColors,
		DefaultColor:       constants.DefaultPenColor,
		DefaultStrokeWidth: constants.DefaultStrokeWidth,
	})
}
