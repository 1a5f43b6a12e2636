package mapper

import (
	"video-annotator/internal/domain/dto"
	"video-annotator/internal/domain/entities"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/helper"
)

func MetadataToDTO(m entities.VideoMetadata) dto.VideoMetadataResponse {
	return dto.VideoMetadataResponse{
		URI:              m.URI,
		Name:             m.Name,
		MimeType:         helper.GetMimeTypeFromExtension(m.Name),
		CommentsCount:    m.CommentsCount,
		DrawingsCount:    m.DrawingsCount,
		TotalAnnotations: m.TotalAnnotations,
		LastActivity:     m.LastActivity,
	}
}

func MetadataListToDTO(list []entities.VideoMetadata) dto.VideosMetadataResponse {
	out := dto.VideosMetadataResponse{Videos: make([]dto.VideoMetadataResponse, 0, len(list))}
	for _, m := range list {
		out.Videos = append(out.Videos, MetadataToDTO(m))
	}
	return out
}

func StatsToDTO(s entities.StorageStats) dto.StorageStatsResponse {
	return dto.StorageStatsResponse{
		TotalVideos:      s.TotalVideos,
		TotalComments:    s.TotalComments,
		TotalDrawings:    s.TotalDrawings,
		TotalAnnotations: s.TotalAnnotations,
	}
}

func AnnotationsToDTO(uri string, anns entities.Annotations) dto.AnnotationsResponse {
	return dto.AnnotationsResponse{
		URI:      uri,
		Comments: entities.SortedComments(anns.Comments),
		Drawings: nonNil(anns.Drawings),
	}
}

func DrawingsToDTO(uri string, drawings []entities.Drawing) dto.DrawingsResponse {
	return dto.DrawingsResponse{URI: uri, Drawings: nonNil(drawings)}
}

func DrawingFromDTO(in dto.DrawingInput) entities.Drawing {
	return entities.Drawing{
		ID:          in.ID,
		Path:        in.Path,
		Color:       in.Color,
		StrokeWidth: in.StrokeWidth,
		Timestamp:   in.Timestamp,
	}
}

func CommentFromDTO(in dto.AddCommentRequest) (entities.Comment, *entities.Drawing) {
	comment := entities.Comment{ID: in.ID, Text: in.Text, Timestamp: in.Timestamp}
	if in.Drawing == nil {
		return comment, nil
	}
	d := DrawingFromDTO(*in.Drawing)
	return comment, &d
}

func StrokeFromDTO(in dto.StrokeEvent) entities.Stroke {
	return entities.Stroke{Points: in.Points, Color: in.Color, StrokeWidth: in.StrokeWidth}
}

func VisibleToDTO(uri string, position float64, visible []usecases.VisibleDrawing) dto.VisibleDrawingsResponse {
	out := dto.VisibleDrawingsResponse{
		URI:      uri,
		Position: position,
		Drawings: make([]dto.VisibleDrawingDTO, 0, len(visible)),
	}
	for _, v := range visible {
		out.Drawings = append(out.Drawings, dto.VisibleDrawingDTO{
			Key:             v.Key,
			ID:              v.ID,
			Path:            v.Path,
			Color:           v.Color,
			StrokeWidth:     v.StrokeWidth,
			Timestamp:       v.Timestamp,
			CreatedAt:       v.CreatedAt,
			LinkedCommentID: v.LinkedCommentID,
		})
	}
	return out
}

func nonNil(drawings []entities.Drawing) []entities.Drawing {
	if drawings == nil {
		return []entities.Drawing{}
	}
	return drawings
}
