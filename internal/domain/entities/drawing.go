package entities

import "time"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drawing is one continuous freehand stroke anchored to a video position.
type Drawing struct {
	ID              string    `json:"id"`
	Path            []Point   `json:"path"`
	Color           string    `json:"color"`
	StrokeWidth     float64   `json:"strokeWidth"`
	Timestamp       float64   `json:"timestamp"`
	CreatedAt       time.Time `json:"createdAt"`
	LinkedCommentID string    `json:"linkedCommentId,omitempty"`
}

// Stroke is a completed gesture reported by the freehand-input surface.
type Stroke struct {
	Points      []Point `json:"points"`
	Color       string  `json:"color"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Annotations is the full annotation set of one video.
type Annotations struct {
	Comments []Comment `json:"comments"`
	Drawings []Drawing `json:"drawings"`
}
