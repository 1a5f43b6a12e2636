package usecases

import (
	"math"
	"strconv"
	"time"

	"video-annotator/internal/domain/entities"
	"video-annotator/pkg/constants"
)

// VisibleDrawing is a drawing shown at the playhead plus a render key that
// is unique within one VisibleDrawings result.
type VisibleDrawing struct {
	entities.Drawing
	Key string `json:"key"`
}

// DrawingsNear returns the drawings with |timestamp - t| <= tolerance, in
// input order.
func DrawingsNear(drawings []entities.Drawing, t, tolerance float64) []entities.Drawing {
	out := make([]entities.Drawing, 0)
	for _, d := range drawings {
		if math.Abs(d.Timestamp-t) <= tolerance {
			out = append(out, d)
		}
	}
	return out
}

// VisibleDrawings selects the drawings at position. Keys that would collide
// get a "#n" suffix, so identical drawings are all kept.
func VisibleDrawings(drawings []entities.Drawing, position float64) []VisibleDrawing {
	near := DrawingsNear(drawings, position, constants.VisibilityTolerance)
	out := make([]VisibleDrawing, 0, len(near))
	used := make(map[string]struct{}, len(near))
	for _, d := range near {
		base := RenderKey(d)
		key := base
		for n := 1; ; n++ {
			if _, taken := used[key]; !taken {
				break
			}
			key = base + "#" + strconv.Itoa(n)
		}
		used[key] = struct{}{}
		out = append(out, VisibleDrawing{Drawing: d, Key: key})
	}
	return out
}

// RenderKey is id_timestamp_createdAt.
func RenderKey(d entities.Drawing) string {
	created := ""
	if !d.CreatedAt.IsZero() {
		created = d.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return d.ID + "_" + strconv.FormatFloat(d.Timestamp, 'f', -1, 64) + "_" + created
}
