package entities

import (
	"sort"
	"time"
)

// Comment is a text note anchored to a position in a video's timeline.
type Comment struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Timestamp  float64   `json:"timestamp"` // seconds into the video, not creation time
	CreatedAt  time.Time `json:"createdAt"`
	HasDrawing bool      `json:"hasDrawing"`
}

// SortedComments returns a copy ordered by timeline position.
func SortedComments(comments []Comment) []Comment {
	sorted := make([]Comment, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return sorted
}
