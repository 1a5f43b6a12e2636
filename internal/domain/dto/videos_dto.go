package dto

import "time"

type RegisterVideoRequest struct {
	URI string `json:"uri" form:"uri"`
}

type VideoListResponse struct {
	Videos []string `json:"videos"`
}

type VideoMetadataResponse struct {
	URI              string     `json:"uri"`
	Name             string     `json:"name"`
	MimeType         string     `json:"mimeType"`
	CommentsCount    int        `json:"commentsCount"`
	DrawingsCount    int        `json:"drawingsCount"`
	TotalAnnotations int        `json:"totalAnnotations"`
	LastActivity     *time.Time `json:"lastActivity"`
}

type VideosMetadataResponse struct {
	Videos []VideoMetadataResponse `json:"videos"`
}

type StorageStatsResponse struct {
	TotalVideos      int `json:"totalVideos"`
	TotalComments    int `json:"totalComments"`
	TotalDrawings    int `json:"totalDrawings"`
	TotalAnnotations int `json:"totalAnnotations"`
}
