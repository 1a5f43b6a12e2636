package dto

import (
	"time"

	"video-annotator/internal/domain/entities"
)

type DrawingInput struct {
	ID          string           `json:"id,omitempty"`
	Path        []entities.Point `json:"path"`
	Color       string           `json:"color,omitempty"`
	StrokeWidth float64          `json:"strokeWidth,omitempty"`
	Timestamp   float64          `json:"timestamp"`
}

type AddCommentRequest struct {
	URI       string        `json:"uri"`
	ID        string        `json:"id,omitempty"`
	Text      string        `json:"text"`
	Timestamp float64       `json:"timestamp"`
	Drawing   *DrawingInput `json:"drawing,omitempty"`
}

type AddDrawingRequest struct {
	URI     string       `json:"uri"`
	Drawing DrawingInput `json:"drawing"`
}

type AnnotationsResponse struct {
	URI      string             `json:"uri"`
	Comments []entities.Comment `json:"comments"`
	Drawings []entities.Drawing `json:"drawings"`
}

type DrawingsResponse struct {
	URI      string             `json:"uri"`
	Drawings []entities.Drawing `json:"drawings"`
}

type VisibleDrawingDTO struct {
	Key             string           `json:"key"`
	ID              string           `json:"id"`
	Path            []entities.Point `json:"path"`
	Color           string           `json:"color"`
	StrokeWidth     float64          `json:"strokeWidth"`
	Timestamp       float64          `json:"timestamp"`
	CreatedAt       time.Time        `json:"createdAt"`
	LinkedCommentID string           `json:"linkedCommentId,omitempty"`
}

type VisibleDrawingsResponse struct {
	URI      string              `json:"uri"`
	Position float64             `json:"position"`
	Drawings []VisibleDrawingDTO `json:"drawings"`
}

type PaletteResponse struct {
	Colors             []string `json:"colors"`
	DefaultColor       string   `json:"defaultColor"`
	DefaultStrokeWidth float64  `json:"defaultStrokeWidth"`
}
