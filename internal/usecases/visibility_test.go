package usecases

import (
	"testing"
	"time"

	"video-annotator/internal/domain/entities"

	"github.com/stretchr/testify/assert"
)

func TestVisibleDrawings_Window(t *testing.T) {
	drawings := []entities.Drawing{
		{ID: "a", Timestamp: 4.0},
		{ID: "b", Timestamp: 5.0},
		{ID: "c", Timestamp: 6.0},
		{ID: "d", Timestamp: 6.01},
		{ID: "e", Timestamp: 3.99},
	}

	var ids []string
	for _, v := range VisibleDrawings(drawings, 5.0) {
		ids = append(ids, v.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	assert.Empty(t, VisibleDrawings(drawings, 100))
	assert.NotNil(t, VisibleDrawings(nil, 0))
}

func TestVisibleDrawings_CollidingKeysKeepEveryDrawing(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	same := entities.Drawing{ID: "1704067200000", Timestamp: 2, CreatedAt: created}
	drawings := []entities.Drawing{same, same, {ID: "other", Timestamp: 2, CreatedAt: created}, same}

	visible := VisibleDrawings(drawings, 2)
	assert.Len(t, visible, 4)

	base := RenderKey(same)
	keys := make([]string, len(visible))
	for i, v := range visible {
		keys[i] = v.Key
	}
	assert.Equal(t, []string{base, base + "#1", RenderKey(drawings[2]), base + "#2"}, keys)

	again := VisibleDrawings(drawings, 2)
	for i := range visible {
		assert.Equal(t, visible[i].Key, again[i].Key, "keys are stable for the same input")
	}
}

func TestRenderKey(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC)
	assert.Equal(t, "d1_12.5_2024-01-02T03:04:05.006Z", RenderKey(entities.Drawing{ID: "d1", Timestamp: 12.5, CreatedAt: created}))
	assert.Equal(t, "d2_0_", RenderKey(entities.Drawing{ID: "d2"}))
}

func TestDrawingsNear(t *testing.T) {
	drawings := []entities.Drawing{{ID: "a", Timestamp: 1}, {ID: "b", Timestamp: 1.5}, {ID: "c", Timestamp: 3}}
	assert.Len(t, DrawingsNear(drawings, 1, 0.5), 2)
	assert.Len(t, DrawingsNear(drawings, 1, 0), 1)
	assert.Empty(t, DrawingsNear(drawings, 10, 1))
}
