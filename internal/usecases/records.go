package usecases

import (
	"encoding/json"
	"fmt"

	"video-annotator/internal/domain/repositories"
	"video-annotator/pkg/errors"

	"go.uber.org/zap"
)

// recordHead holds the fields every persisted annotation must carry.
type recordHead struct {
	ID        *string  `json:"id"`
	Timestamp *float64 `json:"timestamp"`
}

// decodeAnnotations decodes each record on its own. Records that are not
// objects, or lack an id or timestamp, are skipped and logged.
func decodeAnnotations[T any](log *zap.SugaredLogger, key repositories.Key, raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for i, rec := range raw {
		var head recordHead
		if err := json.Unmarshal(rec, &head); err != nil || head.ID == nil || *head.ID == "" || head.Timestamp == nil {
			log.Debugw("skipping malformed record", "key", key.String(), "index", i, "error", err)
			continue
		}
		var item T
		if err := json.Unmarshal(rec, &item); err != nil {
			log.Debugw("skipping malformed record", "key", key.String(), "index", i, "error", err)
			continue
		}
		out = append(out, item)
	}
	return out
}

// decodeRegistry keeps the first occurrence of every non-empty uri.
func decodeRegistry(log *zap.SugaredLogger, raw []json.RawMessage) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, rec := range raw {
		var uri string
		if err := json.Unmarshal(rec, &uri); err != nil || uri == "" {
			log.Debugw("skipping malformed registry entry", "index", i, "error", err)
			continue
		}
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}
		out = append(out, uri)
	}
	return out
}

func encodeAll[T any](items []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(items))
	for i, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return nil, errors.ErrInternal(fmt.Errorf("encode record %d: %w", i, err))
		}
		out[i] = data
	}
	return out, nil
}
