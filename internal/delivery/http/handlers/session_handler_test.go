package handlers

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"video-annotator/internal/infrastructure/queue"
	"video-annotator/internal/infrastructure/storage"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/config"
	"video-annotator/pkg/errors"
	"video-annotator/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	commands []string
	states   []usecases.SessionView
	errs     []string
}

func (f *fakeClient) Pause() { f.command("pause") }
func (f *fakeClient) Play()  { f.command("play") }
func (f *fakeClient) SeekTo(seconds float64) {
	f.command(fmt.Sprintf("seek:%g", seconds))
}

func (f *fakeClient) command(cmd string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
}

func (f *fakeClient) sendState(view usecases.SessionView) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, view)
}

func (f *fakeClient) sendError(err error) {
	code, _ := errors.Describe(err)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, code)
}

func (f *fakeClient) snapshot() (commands []string, states int, errs []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...), len(f.states), append([]string(nil), f.errs...)
}

func (f *fakeClient) lastState() usecases.SessionView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.states[len(f.states)-1]
}

func newLiveSession(t *testing.T, uri string) (*SessionHandler, usecases.AnnotationService, *fakeClient) {
	t.Helper()
	log := logger.Nop()
	svc := usecases.NewAnnotationService(storage.NewMemoryStorage(), log)
	h := NewSessionHandler(svc, config.SessionConfig{Workers: 1, QueueSize: 8}, log)
	t.Cleanup(func() { h.Shutdown(context.Background()) })

	client := &fakeClient{}
	session, err := usecases.OpenSession(context.Background(), svc, uri, client, log, usecases.SessionOptions{ID: "s1"})
	require.NoError(t, err)
	h.attach("s1", session, client)
	return h, svc, client
}

func send(t *testing.T, h *SessionHandler, msg string) {
	t.Helper()
	job, err := queue.DeserializeJob("s1", []byte(msg))
	require.NoError(t, err)
	h.handleJob(context.Background(), job)
}

func TestSessionEvents_StrokeTextAndDisconnect(t *testing.T) {
	ctx := context.Background()
	h, svc, client := newLiveSession(t, "a.mp4")
	_, states, _ := client.snapshot()
	require.Equal(t, 1, states)

	send(t, h, `{"type":"load","duration":30}`)
	send(t, h, `{"type":"progress","seconds":4.204}`)
	send(t, h, `{"type":"drawing_mode","on":true}`)
	send(t, h, `{"type":"stroke","points":[{"x":1,"y":2},{"x":3,"y":4}],"color":"#00FF00","strokeWidth":5}`)

	view := client.lastState()
	assert.Equal(t, 4.2, view.CurrentTime)
	assert.True(t, view.HasPendingDrawing)
	assert.Len(t, view.VisibleDrawings, 1)

	_, before, _ := client.snapshot()
	send(t, h, `{"type":"comment_text","text":"offside here"}`)
	_, after, _ := client.snapshot()
	assert.Equal(t, before, after, "typing does not push state")

	h.handleJob(ctx, queue.Job{SessionID: "s1", Type: queue.JobClose})
	_, ok := h.lookup("s1")
	assert.False(t, ok)

	anns, err := svc.LoadAnnotations(ctx, "a.mp4")
	require.NoError(t, err)
	require.Len(t, anns.Comments, 1)
	require.Len(t, anns.Drawings, 1)
	assert.Equal(t, "offside here", anns.Comments[0].Text)
	assert.Equal(t, 4.2, anns.Comments[0].Timestamp)
	assert.Equal(t, anns.Comments[0].ID, anns.Drawings[0].LinkedCommentID)
	assert.Equal(t, "#00FF00", anns.Drawings[0].Color)

	commands, _, errs := client.snapshot()
	assert.Equal(t, []string{"pause"}, commands)
	assert.Empty(t, errs)
}

func TestSessionEvents_SubmitAndSelect(t *testing.T) {
	h, _, client := newLiveSession(t, "a.mp4")

	send(t, h, `{"type":"progress","seconds":7.5}`)
	send(t, h, `{"type":"comment_text","text":"nice pass"}`)
	send(t, h, `{"type":"submit"}`)

	view := client.lastState()
	require.Len(t, view.Comments, 1)
	assert.Empty(t, view.CommentText)

	send(t, h, `{"type":"progress","seconds":20}`)
	send(t, h, fmt.Sprintf(`{"type":"select_comment","commentId":%q}`, view.Comments[0].ID))
	commands, _, _ := client.snapshot()
	assert.Equal(t, []string{"seek:7.5", "play"}, commands)
	assert.Equal(t, 7.5, client.lastState().CurrentTime)

	send(t, h, fmt.Sprintf(`{"type":"delete_comment","commentId":%q}`, view.Comments[0].ID))
	assert.Empty(t, client.lastState().Comments)
}

func TestSessionEvents_RejectsBadInput(t *testing.T) {
	h, _, client := newLiveSession(t, "a.mp4")

	send(t, h, `{"type":"progress","seconds":"soon"}`)
	send(t, h, `{"type":"dance"}`)
	send(t, h, `{"type":"submit"}`)

	_, states, errs := client.snapshot()
	assert.Equal(t, []string{errors.CodeValidation, errors.CodeValidation, errors.CodeValidation}, errs)
	assert.Equal(t, 1, states)
}

func TestSessionEvents_UnknownSessionIgnored(t *testing.T) {
	h, _, client := newLiveSession(t, "a.mp4")

	job, err := queue.DeserializeJob("other", []byte(`{"type":"clear"}`))
	require.NoError(t, err)
	h.handleJob(context.Background(), job)

	commands, states, errs := client.snapshot()
	assert.Empty(t, commands)
	assert.Equal(t, 1, states)
	assert.Empty(t, errs)
}

func TestWSSurface_DetachedDropsMessages(t *testing.T) {
	surface := &wsSurface{log: logger.Nop()}
	surface.detach()

	assert.NotPanics(t, func() {
		surface.Pause()
		surface.Play()
		surface.SeekTo(3)
		surface.sendError(errors.ErrValidation("late"))
	})
}
