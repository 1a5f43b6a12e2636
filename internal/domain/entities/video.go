package entities

import "time"

// VideoMetadata summarises one registered video for listings.
type VideoMetadata struct {
	URI              string     `json:"uri"`
	Name             string     `json:"name"`
	CommentsCount    int        `json:"commentsCount"`
	DrawingsCount    int        `json:"drawingsCount"`
	TotalAnnotations int        `json:"totalAnnotations"`
	LastActivity     *time.Time `json:"lastActivity"` // nil when the video has no annotations
}

// StorageStats aggregates counts over every registered video.
type StorageStats struct {
	TotalVideos      int `json:"totalVideos"`
	TotalComments    int `json:"totalComments"`
	TotalDrawings    int `json:"totalDrawings"`
	TotalAnnotations int `json:"totalAnnotations"`
}
