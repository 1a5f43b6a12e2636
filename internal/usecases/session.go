package usecases

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"video-annotator/internal/domain/entities"
	"video-annotator/pkg/constants"
	"video-annotator/pkg/errors"
	"video-annotator/pkg/helper"

	"go.uber.org/zap"
)

// PlaybackSurface is the external player a session drives.
type PlaybackSurface interface {
	Pause()
	Play()
	SeekTo(seconds float64)
}

type SessionState string

const (
	SessionLoading SessionState = "loading"
	SessionReady   SessionState = "ready"
	SessionClosed  SessionState = "closed"
)

type SessionOptions struct {
	ID string
	// SeekSettleDelay is the wait between seeking to a comment and resuming
	// playback. Zero resumes immediately.
	SeekSettleDelay time.Duration
}

// SessionView is a point-in-time copy of a session.
type SessionView struct {
	ID                string             `json:"id"`
	VideoURI          string             `json:"videoUri"`
	Name              string             `json:"name"`
	State             SessionState       `json:"state"`
	CurrentTime       float64            `json:"currentTime"`
	CurrentTimeLabel  string             `json:"currentTimeLabel"`
	Duration          float64            `json:"duration"`
	DrawingMode       bool               `json:"drawingMode"`
	Paused            bool               `json:"paused"`
	Comments          []entities.Comment `json:"comments"`
	VisibleDrawings   []VisibleDrawing   `json:"visibleDrawings"`
	HasPendingDrawing bool               `json:"hasPendingDrawing"`
	CommentText       string             `json:"commentText"`
}

// Session coordinates one opened video: playhead, drawing mode, the pending
// drawing and the comment being typed.
type Session struct {
	id      string
	uri     string
	svc     AnnotationService
	surface PlaybackSurface
	log     *zap.SugaredLogger
	settle  time.Duration

	mu            sync.Mutex
	state         SessionState
	currentTime   float64
	lastProcessed float64
	duration      float64
	drawingMode   bool
	paused        bool
	comments      []entities.Comment
	drawings      []entities.Drawing
	visible       []VisibleDrawing
	pending       *entities.Drawing
	text          string
	resumeTimer   *time.Timer
}

// OpenSession loads the video's annotations and returns a Ready session
// showing the drawings at position 0.
func OpenSession(ctx context.Context, svc AnnotationService, uri string, surface PlaybackSurface, log *zap.SugaredLogger, opts SessionOptions) (*Session, error) {
	s := &Session{
		id:      opts.ID,
		uri:     uri,
		svc:     svc,
		surface: surface,
		log:     log.With("session", opts.ID, "uri", uri),
		settle:  opts.SeekSettleDelay,
		state:   SessionLoading,
	}

	anns, err := svc.LoadAnnotations(ctx, uri)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.comments = anns.Comments
	s.drawings = anns.Drawings
	s.visible = VisibleDrawings(s.drawings, 0)
	s.state = SessionReady
	s.mu.Unlock()

	s.log.Debugw("session opened", "comments", len(anns.Comments), "drawings", len(anns.Drawings))
	return s, nil
}

func (s *Session) ID() string { return s.id }

func (s *Session) VideoURI() string { return s.uri }

// OnProgress records the playhead, rounded to hundredths. Visible drawings
// are recomputed only when the playhead moved more than ProgressThreshold
// since the last recompute; the return value reports whether they were.
func (s *Session) OnProgress(seconds float64) bool {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionReady {
		return false
	}

	t := s.clamp(math.Round(seconds*100) / 100)
	s.currentTime = t
	if math.Abs(t-s.lastProcessed) <= constants.ProgressThreshold {
		return false
	}
	s.lastProcessed = t
	s.visible = VisibleDrawings(s.drawings, t)
	return true
}

// OnLoad records the media duration. New stamps are clamped into it.
func (s *Session) OnLoad(duration float64) {
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = duration
}

// SetDrawingMode pauses playback when drawing starts and resumes it when
// drawing ends.
func (s *Session) SetDrawingMode(on bool) {
	s.mu.Lock()
	if s.drawingMode == on || s.state != SessionReady {
		s.mu.Unlock()
		return
	}
	s.drawingMode = on
	s.paused = on
	s.stopResume()
	s.mu.Unlock()

	if on {
		s.surface.Pause()
	} else {
		s.surface.Play()
	}
}

// FocusComment pauses playback while the user types.
func (s *Session) FocusComment() {
	s.mu.Lock()
	if s.paused || s.state != SessionReady {
		s.mu.Unlock()
		return
	}
	s.paused = true
	s.stopResume()
	s.mu.Unlock()

	s.surface.Pause()
}

// OnStrokeComplete saves the stroke as a standalone drawing at the playhead
// and keeps it pending until a comment is submitted. A later stroke replaces
// the pending one; the earlier stays saved unlinked.
func (s *Session) OnStrokeComplete(ctx context.Context, stroke entities.Stroke) error {
	if len(stroke.Points) == 0 {
		return errors.ErrValidation("stroke has no points")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionReady {
		return errors.ErrValidation("session is not ready")
	}

	drawing := entities.Drawing{
		Path:        stroke.Points,
		Color:       stroke.Color,
		StrokeWidth: stroke.StrokeWidth,
		Timestamp:   s.currentTime,
	}
	drawings, err := s.svc.AddDrawing(ctx, s.uri, drawing)
	if err != nil {
		s.log.Warnw("saving stroke failed", "error", err)
		return err
	}

	saved := drawings[len(drawings)-1]
	s.pending = &saved
	s.drawings = drawings
	s.visible = VisibleDrawings(s.drawings, s.currentTime)
	return nil
}

func (s *Session) SetCommentText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// SubmitComment saves the typed text, linking the pending drawing if any.
// Input is cleared only on success.
func (s *Session) SubmitComment(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionReady {
		return errors.ErrValidation("session is not ready")
	}
	return s.commit(ctx)
}

func (s *Session) commit(ctx context.Context) error {
	text := strings.TrimSpace(s.text)
	if text == "" && s.pending == nil {
		return errors.ErrValidation("comment text or a drawing is required")
	}

	comment := entities.Comment{Text: text, Timestamp: s.currentTime}
	if s.pending != nil {
		comment.Timestamp = s.pending.Timestamp
	}
	anns, err := s.svc.AddCommentWithOptionalDrawing(ctx, s.uri, comment, s.pending)
	if err != nil {
		s.log.Warnw("saving comment failed", "error", err)
		return err
	}

	s.comments = anns.Comments
	s.drawings = anns.Drawings
	s.visible = VisibleDrawings(s.drawings, s.currentTime)
	s.text = ""
	s.pending = nil
	return nil
}

// SelectComment seeks to the comment and resumes playback once the seek has
// settled. An unknown id is ignored.
func (s *Session) SelectComment(commentID string) bool {
	s.mu.Lock()
	i := indexOfComment(s.comments, commentID)
	if i < 0 || s.state != SessionReady {
		s.mu.Unlock()
		return false
	}
	target := s.comments[i].Timestamp
	s.currentTime = target
	s.lastProcessed = target
	s.visible = VisibleDrawings(s.drawings, target)
	resume := !s.drawingMode
	s.stopResume()
	if resume {
		s.paused = false
		if s.settle > 0 {
			s.resumeTimer = time.AfterFunc(s.settle, s.surface.Play)
		}
	}
	s.mu.Unlock()

	s.surface.SeekTo(target)
	if resume && s.settle <= 0 {
		s.surface.Play()
	}
	return true
}

func (s *Session) DeleteComment(ctx context.Context, commentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionReady {
		return errors.ErrValidation("session is not ready")
	}

	anns, err := s.svc.DeleteComment(ctx, s.uri, commentID)
	if err != nil {
		return err
	}
	s.comments = anns.Comments
	s.drawings = anns.Drawings
	if s.pending != nil && indexOfDrawing(s.drawings, s.pending.ID) < 0 {
		s.pending = nil
	}
	s.visible = VisibleDrawings(s.drawings, s.currentTime)
	return nil
}

func (s *Session) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionReady {
		return errors.ErrValidation("session is not ready")
	}

	if err := s.svc.ClearAll(ctx, s.uri); err != nil {
		return err
	}
	s.comments = []entities.Comment{}
	s.drawings = []entities.Drawing{}
	s.visible = []VisibleDrawing{}
	s.pending = nil
	return nil
}

// Close commits a pending drawing together with typed text. A failed commit
// is logged and returned; the session is closed either way.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SessionClosed {
		return nil
	}
	s.stopResume()

	var err error
	if s.state == SessionReady && s.pending != nil && strings.TrimSpace(s.text) != "" {
		if err = s.commit(ctx); err != nil {
			s.log.Warnw("committing comment on close failed", "error", err)
		}
	}
	s.state = SessionClosed
	s.log.Debug("session closed")
	return err
}

func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionView{
		ID:                s.id,
		VideoURI:          s.uri,
		Name:              helper.VideoNameFromURI(s.uri),
		State:             s.state,
		CurrentTime:       s.currentTime,
		CurrentTimeLabel:  helper.FormatTimestamp(s.currentTime),
		Duration:          s.duration,
		DrawingMode:       s.drawingMode,
		Paused:            s.paused,
		Comments:          entities.SortedComments(s.comments),
		VisibleDrawings:   append([]VisibleDrawing{}, s.visible...),
		HasPendingDrawing: s.pending != nil,
		CommentText:       s.text,
	}
}

func (s *Session) clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if s.duration > 0 && t > s.duration {
		return s.duration
	}
	return t
}

func (s *Session) stopResume() {
	if s.resumeTimer != nil {
		s.resumeTimer.Stop()
		s.resumeTimer = nil
	}
}
