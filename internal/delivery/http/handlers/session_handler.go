package handlers

import (
	"context"
	"sync"
	"time"

	"video-annotator/internal/domain/dto"
	"video-annotator/internal/domain/mapper"
	"video-annotator/internal/infrastructure/queue"
	"video-annotator/internal/usecases"
	"video-annotator/pkg/config"
	"video-annotator/pkg/errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionHandler serves one annotation session per websocket connection.
// Client events run on a WorkerPool keyed by session id.
type SessionHandler struct {
	annotations usecases.AnnotationService
	settle      time.Duration
	log         *zap.SugaredLogger
	pool        *queue.WorkerPool

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

type liveSession struct {
	session *usecases.Session
	conn    sessionClient
}

// sessionClient is the connection end of a live session: it executes
// playback commands and receives state and error messages.
type sessionClient interface {
	usecases.PlaybackSurface
	sendState(view usecases.SessionView)
	sendError(err error)
}

func NewSessionHandler(annotations usecases.AnnotationService, cfg config.SessionConfig, log *zap.SugaredLogger) *SessionHandler {
	h := &SessionHandler{
		annotations: annotations,
		settle:      cfg.SeekSettleDelay,
		log:         log,
		sessions:    make(map[string]*liveSession),
	}
	h.pool = queue.NewWorkerPool(cfg.Workers, cfg.QueueSize, h.handleJob, log)
	return h
}

// Upgrade rejects non-websocket requests and requests without a uri.
func (h *SessionHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	uri := c.Query("uri")
	if uri == "" {
		return errors.HandleError(c, h.log, errors.ErrValidation("query parameter uri is required"))
	}
	c.Locals("uri", uri)
	return c.Next()
}

// HandleWebSocket
//
// @Summary      Annotation session
// @Description  Websocket. Client sends {type: progress|load|stroke|comment_text|focus|submit|drawing_mode|select_comment|delete_comment|clear}; server sends state, command and error messages.
// @Tags         Sessions
// @Param        uri  query  string true "Video URI"
// @Router       /ws/videos/session [get]
func (h *SessionHandler) HandleWebSocket(c *websocket.Conn) {
	uri, _ := c.Locals("uri").(string)
	id := uuid.NewString()
	surface := &wsSurface{conn: c, log: h.log.With("session", id)}

	openCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	session, err := usecases.OpenSession(openCtx, h.annotations, uri, surface, h.log, usecases.SessionOptions{
		ID:              id,
		SeekSettleDelay: h.settle,
	})
	cancel()
	if err != nil {
		surface.sendError(err)
		c.Close()
		return
	}

	h.attach(id, session, surface)

	// The connection is recycled once this returns; queued jobs and resume
	// timers must not write to it.
	defer func() {
		surface.detach()
		if !h.pool.AddJob(queue.Job{SessionID: id, Type: queue.JobClose}) {
			h.closeSession(context.Background(), id)
		}
	}()

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			return
		}
		job, err := queue.DeserializeJob(id, msg)
		if err != nil || job.Type == queue.JobClose {
			surface.sendError(errors.ErrValidation("unknown event"))
			continue
		}
		h.pool.AddJob(job)
	}
}

// Shutdown drains queued events and closes the remaining sessions.
func (h *SessionHandler) Shutdown(ctx context.Context) {
	h.pool.Shutdown()

	h.mu.RLock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.closeSession(ctx, id)
	}
}

func (h *SessionHandler) attach(id string, session *usecases.Session, client sessionClient) {
	h.mu.Lock()
	h.sessions[id] = &liveSession{session: session, conn: client}
	h.mu.Unlock()
	client.sendState(session.View())
}

func (h *SessionHandler) lookup(id string) (*liveSession, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	live, ok := h.sessions[id]
	return live, ok
}

func (h *SessionHandler) closeSession(ctx context.Context, id string) {
	h.mu.Lock()
	live, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return
	}
	_ = live.session.Close(ctx)
}

func (h *SessionHandler) handleJob(ctx context.Context, job queue.Job) {
	if job.Type == queue.JobClose {
		h.closeSession(ctx, job.SessionID)
		return
	}
	live, ok := h.lookup(job.SessionID)
	if !ok {
		return
	}

	changed, err := h.dispatch(ctx, live.session, job)
	if err != nil {
		live.conn.sendError(err)
	}
	if changed {
		live.conn.sendState(live.session.View())
	}
}

// dispatch applies job to session and reports whether the view changed.
func (h *SessionHandler) dispatch(ctx context.Context, session *usecases.Session, job queue.Job) (bool, error) {
	switch job.Type {
	case queue.JobProgress:
		var ev dto.ProgressEvent
		if err := job.DecodePayload(&ev); err != nil {
			return false, errors.ErrValidation(err.Error())
		}
		return session.OnProgress(ev.Seconds), nil

	case queue.JobLoad:
		var ev dto.LoadEvent
		if err := job.DecodePayload(&ev); err != nil {
			return false, errors.ErrValidation(err.Error())
		}
		session.OnLoad(ev.Duration)
		return true, nil

	case queue.JobStroke:
		var ev dto.StrokeEvent
		if err := job.DecodePayload(&ev); err != nil {
			return false, errors.ErrValidation(err.Error())
		}
		return true, session.OnStrokeComplete(ctx, mapper.StrokeFromDTO(ev))

	case queue.JobCommentText:
		var ev dto.CommentTextEvent
		if err := job.DecodePayload(&ev); err != nil {
			return false, errors.ErrValidation(err.Error())
		}
		session.SetCommentText(ev.Text)
		return false, nil

	case queue.JobFocus:
		session.FocusComment()
		return true, nil

	case queue.JobSubmit:
		if err := session.SubmitComment(ctx); err != nil {
			return false, err
		}
		return true, nil

	case queue.JobDrawingMode:
		var ev dto.DrawingModeEvent
		if err := job.DecodePayload(&ev); err != nil {
			return false, errors.ErrValidation(err.Error())
		}
		session.SetDrawingMode(ev.On)
		return true, nil

	case queue.JobSelectComment:
		var ev dto.CommentRefEvent
		if err := job.DecodePayload(&ev); err != nil {
			return false, errors.ErrValidation(err.Error())
		}
		return session.SelectComment(ev.CommentID), nil

	case queue.JobDeleteComment:
		var ev dto.CommentRefEvent
		if err := job.DecodePayload(&ev); err != nil {
			return false, errors.ErrValidation(err.Error())
		}
		if err := session.DeleteComment(ctx, ev.CommentID); err != nil {
			return false, err
		}
		return true, nil

	case queue.JobClear:
		if err := session.ClearAll(ctx); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, errors.ErrValidation("unknown event " + string(job.Type))
}

// wsSurface is the PlaybackSurface of a websocket client: commands are sent
// as messages for the client's player to execute. After detach every send
// is dropped.
type wsSurface struct {
	conn *websocket.Conn
	log  *zap.SugaredLogger
	mu   sync.Mutex
}

func (s *wsSurface) Pause() { s.send(dto.ServerMessage{Type: dto.MessageCommand, Command: dto.CommandPause}) }

func (s *wsSurface) Play() { s.send(dto.ServerMessage{Type: dto.MessageCommand, Command: dto.CommandPlay}) }

func (s *wsSurface) SeekTo(seconds float64) {
	s.send(dto.ServerMessage{Type: dto.MessageCommand, Command: dto.CommandSeek, Seconds: &seconds})
}

func (s *wsSurface) sendState(view usecases.SessionView) {
	s.send(dto.ServerMessage{Type: dto.MessageState, State: view})
}

func (s *wsSurface) sendError(err error) {
	code, message := errors.Describe(err)
	s.send(dto.ServerMessage{Type: dto.MessageError, Error: code, Message: message})
}

func (s *wsSurface) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = nil
}

func (s *wsSurface) send(msg dto.ServerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		s.log.Debugw("dropping message for closed connection", "type", msg.Type)
		return
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Debugw("websocket write failed", "type", msg.Type, "error", err)
	}
}
