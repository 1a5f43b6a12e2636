package usecases

import (
	"context"
	"sort"
	"time"

	"video-annotator/internal/domain/entities"
	"video-annotator/internal/domain/repositories"
	"video-annotator/pkg/helper"
)

// VideoMetadata never fails; a read error yields counts of zero.
func (s *annotationService) VideoMetadata(ctx context.Context, uri string) entities.VideoMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metadataFor(ctx, uri)
}

func (s *annotationService) AllVideosMetadata(ctx context.Context) ([]entities.VideoMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	videos, err := s.readRegistry(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]entities.VideoMetadata, 0, len(videos))
	for _, uri := range videos {
		list = append(list, s.metadataFor(ctx, uri))
	}
	SortVideoMetadata(list)
	return list, nil
}

func (s *annotationService) StorageStats(ctx context.Context) (entities.StorageStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	videos, err := s.readRegistry(ctx)
	if err != nil {
		return entities.StorageStats{}, err
	}
	stats := entities.StorageStats{TotalVideos: len(videos)}
	for _, uri := range videos {
		anns, err := s.load(ctx, uri)
		if err != nil {
			s.log.Warnw("skipping video in stats", "uri", uri, "error", err)
			continue
		}
		stats.TotalComments += len(anns.Comments)
		stats.TotalDrawings += len(anns.Drawings)
	}
	stats.TotalAnnotations = stats.TotalComments + stats.TotalDrawings
	return stats, nil
}

// CleanupOrphans deletes every annotation key whose video is no longer
// registered and reports how many keys were removed.
func (s *annotationService) CleanupOrphans(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.readRegistry(ctx)
	if err != nil {
		return 0, err
	}
	registered := make(map[string]struct{}, len(videos))
	for _, uri := range videos {
		registered[uri] = struct{}{}
	}

	keys, err := s.store.ListAllKeys(ctx)
	if err != nil {
		return 0, err
	}
	var orphans []repositories.Key
	for _, key := range keys {
		if key.Kind == repositories.KindRegistry {
			continue
		}
		if _, ok := registered[key.VideoURI]; !ok {
			orphans = append(orphans, key)
		}
	}
	if len(orphans) == 0 {
		return 0, nil
	}
	if err := s.store.Delete(ctx, orphans...); err != nil {
		return 0, err
	}
	s.log.Infow("orphaned annotation keys removed", "count", len(orphans))
	return len(orphans), nil
}

func (s *annotationService) metadataFor(ctx context.Context, uri string) entities.VideoMetadata {
	meta := entities.VideoMetadata{URI: uri, Name: helper.VideoNameFromURI(uri)}
	anns, err := s.load(ctx, uri)
	if err != nil {
		s.log.Warnw("metadata read failed", "uri", uri, "error", err)
		return meta
	}

	meta.CommentsCount = len(anns.Comments)
	meta.DrawingsCount = len(anns.Drawings)
	meta.TotalAnnotations = meta.CommentsCount + meta.DrawingsCount

	var last time.Time
	for _, c := range anns.Comments {
		if c.CreatedAt.After(last) {
			last = c.CreatedAt
		}
	}
	for _, d := range anns.Drawings {
		if d.CreatedAt.After(last) {
			last = d.CreatedAt
		}
	}
	if !last.IsZero() {
		meta.LastActivity = &last
	}
	return meta
}

// SortVideoMetadata puts videos with activity first, most recent first, then
// the rest by descending annotation count.
func SortVideoMetadata(list []entities.VideoMetadata) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].LastActivity, list[j].LastActivity
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		case b != nil:
			return false
		}
		return list[i].TotalAnnotations > list[j].TotalAnnotations
	})
}
