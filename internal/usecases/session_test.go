package usecases

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"video-annotator/internal/domain/entities"
	"video-annotator/internal/domain/repositories"
	"video-annotator/internal/infrastructure/storage"
	"video-annotator/pkg/errors"
	"video-annotator/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	mu       sync.Mutex
	commands []string
}

func (f *fakeSurface) record(cmd string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
}

func (f *fakeSurface) Pause()                 { f.record("pause") }
func (f *fakeSurface) Play()                  { f.record("play") }
func (f *fakeSurface) SeekTo(seconds float64) { f.record(fmt.Sprintf("seek:%g", seconds)) }

func (f *fakeSurface) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

func openTestSession(t *testing.T, svc AnnotationService, uri string, settle time.Duration) (*Session, *fakeSurface) {
	t.Helper()
	surface := &fakeSurface{}
	s, err := OpenSession(context.Background(), svc, uri, surface, logger.Nop(), SessionOptions{
		ID:              "s1",
		SeekSettleDelay: settle,
	})
	require.NoError(t, err)
	return s, surface
}

func TestOpenSession_VisibleAtZero(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	_, err := svc.AddDrawing(ctx, "a.mp4", entities.Drawing{ID: "early", Path: stroke(0, 0), Timestamp: 0.5})
	require.NoError(t, err)
	_, err = svc.AddDrawing(ctx, "a.mp4", entities.Drawing{ID: "late", Path: stroke(0, 0), Timestamp: 3})
	require.NoError(t, err)

	s, _ := openTestSession(t, svc, "a.mp4", 0)
	view := s.View()
	assert.Equal(t, SessionReady, view.State)
	assert.Equal(t, "a.mp4", view.Name)
	require.Len(t, view.VisibleDrawings, 1)
	assert.Equal(t, "early", view.VisibleDrawings[0].ID)
}

func TestOpenSession_StorageUnavailable(t *testing.T) {
	store := newFaultyStore()
	store.failReadOf(repositories.DrawingsKey("a.mp4"))
	svc := newTestService(t, store)

	_, err := OpenSession(context.Background(), svc, "a.mp4", &fakeSurface{}, logger.Nop(), SessionOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsStorageUnavailable(err))
}

func TestSession_OnProgressThreshold(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	_, err := svc.AddDrawing(ctx, "a.mp4", entities.Drawing{ID: "d", Path: stroke(0, 0), Timestamp: 2})
	require.NoError(t, err)
	s, _ := openTestSession(t, svc, "a.mp4", 0)

	assert.False(t, s.OnProgress(0.05))
	assert.False(t, s.OnProgress(0.1))
	assert.Empty(t, s.View().VisibleDrawings)

	assert.True(t, s.OnProgress(1.234))
	view := s.View()
	assert.Equal(t, 1.23, view.CurrentTime)
	assert.Len(t, view.VisibleDrawings, 1)

	assert.False(t, s.OnProgress(1.3))
	assert.Equal(t, 1.3, s.View().CurrentTime)
	assert.True(t, s.OnProgress(3.5))
	assert.Empty(t, s.View().VisibleDrawings)
}

func TestSession_OnLoadClamps(t *testing.T) {
	s, _ := openTestSession(t, newTestService(t, storage.NewMemoryStorage()), "a.mp4", 0)

	s.OnLoad(10)
	s.OnProgress(15)
	assert.Equal(t, 10.0, s.View().CurrentTime)
	assert.Equal(t, 10.0, s.View().Duration)

	s.OnProgress(-3)
	assert.Equal(t, 0.0, s.View().CurrentTime)
}

func TestSession_DrawingModePausesAndResumes(t *testing.T) {
	s, surface := openTestSession(t, newTestService(t, storage.NewMemoryStorage()), "a.mp4", 0)

	s.SetDrawingMode(true)
	assert.True(t, s.View().DrawingMode)
	assert.True(t, s.View().Paused)

	s.SetDrawingMode(true)
	s.SetDrawingMode(false)
	assert.False(t, s.View().Paused)
	assert.Equal(t, []string{"pause", "play"}, surface.Commands())
}

func TestSession_FocusCommentPauses(t *testing.T) {
	s, surface := openTestSession(t, newTestService(t, storage.NewMemoryStorage()), "a.mp4", 0)

	s.FocusComment()
	s.FocusComment()
	assert.True(t, s.View().Paused)
	assert.Equal(t, []string{"pause"}, surface.Commands())
}

func TestSession_StrokeThenSubmitLinks(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	s, _ := openTestSession(t, svc, "a.mp4", 0)

	s.OnProgress(4.2)
	s.SetDrawingMode(true)
	require.NoError(t, s.OnStrokeComplete(ctx, entities.Stroke{Points: stroke(1, 1, 2, 2), Color: "#00FF00", StrokeWidth: 5}))

	stored, err := svc.LoadAnnotations(ctx, "a.mp4")
	require.NoError(t, err)
	require.Len(t, stored.Drawings, 1, "a stroke is saved before any comment")
	assert.Empty(t, stored.Drawings[0].LinkedCommentID)
	assert.Equal(t, 4.2, stored.Drawings[0].Timestamp)
	assert.True(t, s.View().HasPendingDrawing)
	assert.Len(t, s.View().VisibleDrawings, 1)

	s.SetCommentText("  circled the ball ")
	require.NoError(t, s.SubmitComment(ctx))

	view := s.View()
	assert.False(t, view.HasPendingDrawing)
	assert.Empty(t, view.CommentText)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "circled the ball", view.Comments[0].Text)
	assert.True(t, view.Comments[0].HasDrawing)

	stored, err = svc.LoadAnnotations(ctx, "a.mp4")
	require.NoError(t, err)
	require.Len(t, stored.Drawings, 1)
	assert.Equal(t, stored.Comments[0].ID, stored.Drawings[0].LinkedCommentID)
	assert.Equal(t, stored.Comments[0].Timestamp, stored.Drawings[0].Timestamp)
	assert.Equal(t, "#00FF00", stored.Drawings[0].Color)
}

func TestSession_SubmitRequiresTextOrDrawing(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	s, _ := openTestSession(t, svc, "a.mp4", 0)

	s.SetCommentText("   ")
	err := s.SubmitComment(ctx)
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, "   ", s.View().CommentText)

	videos, err := svc.ListVideos(ctx)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestSession_SubmitFailureKeepsInput(t *testing.T) {
	ctx := context.Background()
	store := newFaultyStore()
	svc := newTestService(t, store)
	s, _ := openTestSession(t, svc, "a.mp4", 0)

	require.NoError(t, s.OnStrokeComplete(ctx, entities.Stroke{Points: stroke(0, 0)}))
	s.SetCommentText("keep me")

	store.setFailWrites(true)
	err := s.SubmitComment(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsStorageUnavailable(err))
	view := s.View()
	assert.Equal(t, "keep me", view.CommentText)
	assert.True(t, view.HasPendingDrawing)

	store.setFailWrites(false)
	require.NoError(t, s.SubmitComment(ctx))
	assert.Len(t, s.View().Comments, 1)
}

func TestSession_SelectCommentSeeksThenPlays(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	_, err := svc.AddCommentWithOptionalDrawing(ctx, "a.mp4", entities.Comment{ID: "c1", Text: "x", Timestamp: 12.5}, nil)
	require.NoError(t, err)

	s, surface := openTestSession(t, svc, "a.mp4", 0)
	assert.True(t, s.SelectComment("c1"))
	assert.Equal(t, []string{"seek:12.5", "play"}, surface.Commands())
	assert.Equal(t, 12.5, s.View().CurrentTime)

	assert.False(t, s.SelectComment("missing"))
	assert.Len(t, surface.Commands(), 2)
}

func TestSession_SelectCommentWaitsForSettle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	_, err := svc.AddCommentWithOptionalDrawing(ctx, "a.mp4", entities.Comment{ID: "c1", Text: "x", Timestamp: 3}, nil)
	require.NoError(t, err)

	s, surface := openTestSession(t, svc, "a.mp4", 20*time.Millisecond)
	s.SelectComment("c1")
	assert.Equal(t, []string{"seek:3"}, surface.Commands())

	assert.Eventually(t, func() bool {
		return len(surface.Commands()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "play", surface.Commands()[1])
}

func TestSession_CloseCommitsPendingWithText(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	s, _ := openTestSession(t, svc, "a.mp4", 0)

	require.NoError(t, s.OnStrokeComplete(ctx, entities.Stroke{Points: stroke(0, 0)}))
	s.SetCommentText("unsaved")
	require.NoError(t, s.Close(ctx))
	assert.Equal(t, SessionClosed, s.View().State)

	stored, err := svc.LoadAnnotations(ctx, "a.mp4")
	require.NoError(t, err)
	require.Len(t, stored.Comments, 1)
	assert.Equal(t, "unsaved", stored.Comments[0].Text)
	assert.Equal(t, stored.Comments[0].ID, stored.Drawings[0].LinkedCommentID)

	require.NoError(t, s.Close(ctx))
}

func TestSession_CloseWithoutTextDoesNotCommit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	s, _ := openTestSession(t, svc, "a.mp4", 0)

	require.NoError(t, s.OnStrokeComplete(ctx, entities.Stroke{Points: stroke(0, 0)}))
	require.NoError(t, s.Close(ctx))

	stored, err := svc.LoadAnnotations(ctx, "a.mp4")
	require.NoError(t, err)
	assert.Empty(t, stored.Comments)
	assert.Len(t, stored.Drawings, 1)
}

func TestSession_CloseFailureIsReported(t *testing.T) {
	ctx := context.Background()
	store := newFaultyStore()
	svc := newTestService(t, store)
	s, _ := openTestSession(t, svc, "a.mp4", 0)

	require.NoError(t, s.OnStrokeComplete(ctx, entities.Stroke{Points: stroke(0, 0)}))
	s.SetCommentText("lost")
	store.setFailWrites(true)

	err := s.Close(ctx)
	assert.True(t, errors.IsStorageUnavailable(err))
	assert.Equal(t, SessionClosed, s.View().State)
}

func TestSession_DeleteCommentAndClear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	_, err := svc.AddCommentWithOptionalDrawing(ctx, "a.mp4", entities.Comment{ID: "c1", Text: "x", Timestamp: 0},
		&entities.Drawing{Path: stroke(0, 0)})
	require.NoError(t, err)
	_, err = svc.AddCommentWithOptionalDrawing(ctx, "a.mp4", entities.Comment{ID: "c2", Text: "y", Timestamp: 0}, nil)
	require.NoError(t, err)

	s, _ := openTestSession(t, svc, "a.mp4", 0)
	assert.Len(t, s.View().VisibleDrawings, 1)

	require.NoError(t, s.DeleteComment(ctx, "c1"))
	view := s.View()
	assert.Equal(t, []string{"c2"}, commentIDs(view.Comments))
	assert.Empty(t, view.VisibleDrawings)

	require.NoError(t, s.OnStrokeComplete(ctx, entities.Stroke{Points: stroke(0, 0)}))
	require.NoError(t, s.ClearAll(ctx))
	view = s.View()
	assert.Empty(t, view.Comments)
	assert.Empty(t, view.VisibleDrawings)
	assert.False(t, view.HasPendingDrawing)

	videos, err := svc.ListVideos(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp4"}, videos)
}

func TestSession_ViewSortsComments(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	for _, ts := range []float64{9, 1, 5} {
		_, err := svc.AddCommentWithOptionalDrawing(ctx, "a.mp4", entities.Comment{Text: "x", Timestamp: ts}, nil)
		require.NoError(t, err)
	}

	s, _ := openTestSession(t, svc, "a.mp4", 0)
	var stamps []float64
	for _, c := range s.View().Comments {
		stamps = append(stamps, c.Timestamp)
	}
	assert.Equal(t, []float64{1, 5, 9}, stamps)
	assert.Equal(t, "00:00", s.View().CurrentTimeLabel)
}

func TestSession_MutationsAfterCloseRejected(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, storage.NewMemoryStorage())
	_, err := svc.AddCommentWithOptionalDrawing(ctx, "a.mp4", entities.Comment{ID: "c1", Text: "x", Timestamp: 1}, nil)
	require.NoError(t, err)

	s, _ := openTestSession(t, svc, "a.mp4", 0)
	require.NoError(t, s.Close(ctx))

	assert.True(t, errors.IsValidation(s.DeleteComment(ctx, "c1")))
	assert.True(t, errors.IsValidation(s.ClearAll(ctx)))

	stored, err := svc.LoadAnnotations(ctx, "a.mp4")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, commentIDs(stored.Comments))
}
