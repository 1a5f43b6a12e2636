package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"video-annotator/internal/delivery/http/handlers"
	"video-annotator/internal/delivery/http/routers"
	"video-annotator/internal/domain/dto"
	"video-annotator/internal/infrastructure/storage"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/config"
	"video-annotator/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	log := logger.Nop()
	annotations := usecases.NewAnnotationService(storage.NewMemoryStorage(), log)
	sessions := handlers.NewSessionHandler(annotations, config.SessionConfig{Workers: 1, QueueSize: 4}, log)
	t.Cleanup(func() { sessions.Shutdown(context.Background()) })

	app := fiber.New()
	routers.SetupAnnotationRoutes(app, routers.Handlers{
		Videos:      handlers.NewVideoHandler(annotations, log),
		Annotations: handlers.NewAnnotationHandler(annotations, log),
		Sessions:    sessions,
		Maintenance: handlers.NewMaintenanceHandler(annotations, usecases.NewCleanupService(annotations, log), log),
	})
	routers.SetupSessionRoutes(app, sessions)
	return app
}

func do(t *testing.T, app *fiber.App, method, target, body string, out any) int {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	var status dto.StatusResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/health", "", &status))
	assert.Equal(t, "ok", status.Status)
}

func TestCommentLifecycle(t *testing.T) {
	app := newTestApp(t)

	var anns dto.AnnotationsResponse
	code := do(t, app, "POST", "/api/v1/annotations/comments",
		`{"uri":"videos/a.mp4","text":"look here","timestamp":12.5,"drawing":{"path":[{"x":1,"y":2}]}}`, &anns)
	require.Equal(t, fiber.StatusCreated, code)
	require.Len(t, anns.Comments, 1)
	require.Len(t, anns.Drawings, 1)
	commentID := anns.Comments[0].ID
	assert.Equal(t, commentID, anns.Drawings[0].LinkedCommentID)
	assert.Equal(t, 12.5, anns.Drawings[0].Timestamp)

	var drawings dto.DrawingsResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/annotations/drawings?uri=videos/a.mp4&t=13", "", &drawings))
	assert.Len(t, drawings.Drawings, 1)
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/annotations/drawings?uri=videos/a.mp4&t=14", "", &drawings))
	assert.Empty(t, drawings.Drawings)

	var visible dto.VisibleDrawingsResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/annotations/visible?uri=videos/a.mp4&position=12", "", &visible))
	require.Len(t, visible.Drawings, 1)
	assert.NotEmpty(t, visible.Drawings[0].Key)

	var meta dto.VideosMetadataResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/videos", "", &meta))
	require.Len(t, meta.Videos, 1)
	assert.Equal(t, "a.mp4", meta.Videos[0].Name)
	assert.Equal(t, "video/mp4", meta.Videos[0].MimeType)
	assert.Equal(t, 2, meta.Videos[0].TotalAnnotations)

	assert.Equal(t, fiber.StatusOK, do(t, app, "DELETE", "/api/v1/annotations/comments/"+commentID+"?uri=videos/a.mp4", "", &anns))
	assert.Empty(t, anns.Comments)
	assert.Empty(t, anns.Drawings)
}

func TestAddComment_Validation(t *testing.T) {
	app := newTestApp(t)

	var errResp dto.ErrorResponse
	code := do(t, app, "POST", "/api/v1/annotations/comments", `{"uri":"a.mp4","text":"   ","timestamp":1}`, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "validation_failed", errResp.Error)

	code = do(t, app, "POST", "/api/v1/annotations/comments", `{"uri":"a.mp4","text":"x","timestamp":-1}`, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code = do(t, app, "GET", "/api/v1/annotations", "", &errResp)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, "query parameter uri is required", errResp.Message)

	code = do(t, app, "GET", "/api/v1/annotations/visible?uri=a.mp4&position=soon", "", &errResp)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestVideoRegistry(t *testing.T) {
	app := newTestApp(t)

	var list dto.VideoListResponse
	assert.Equal(t, fiber.StatusCreated, do(t, app, "POST", "/api/v1/videos", `{"uri":"a.mp4"}`, &list))
	assert.Equal(t, fiber.StatusCreated, do(t, app, "POST", "/api/v1/videos", `{"uri":"a.mp4"}`, &list))
	assert.Equal(t, []string{"a.mp4"}, list.Videos)

	var stats dto.StorageStatsResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/stats", "", &stats))
	assert.Equal(t, 1, stats.TotalVideos)

	assert.Equal(t, fiber.StatusOK, do(t, app, "DELETE", "/api/v1/videos?uri=a.mp4", "", &list))
	assert.Empty(t, list.Videos)
}

func TestCleanup(t *testing.T) {
	app := newTestApp(t)

	var resp dto.CleanupResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "POST", "/api/v1/maintenance/cleanup", "", &resp))
	assert.Equal(t, 0, resp.Removed)
}

func TestSessionRoute_RequiresUpgrade(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, fiber.StatusUpgradeRequired, do(t, app, "GET", "/ws/videos/session?uri=a.mp4", "", nil))
}

func TestPalette(t *testing.T) {
	app := newTestApp(t)

	var palette dto.PaletteResponse
	assert.Equal(t, fiber.StatusOK, do(t, app, "GET", "/api/v1/annotations/palette", "", &palette))
	assert.Contains(t, palette.Colors, "#FF0000")
	assert.Equal(t, "#FF6B6B", palette.DefaultColor)
	assert.Equal(t, 3.0, palette.DefaultStrokeWidth)
}
