package usecases

import (
	"context"
	"math"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"video-annotator/internal/domain/entities"
	"video-annotator/internal/domain/repositories"
	"video-annotator/pkg/constants"
	"video-annotator/pkg/errors"
	"video-annotator/pkg/helper"

	"go.uber.org/zap"
)

type AnnotationService interface {
	RegisterVideo(ctx context.Context, uri string) ([]string, error)
	ListVideos(ctx context.Context) ([]string, error)
	DeleteVideo(ctx context.Context, uri string) ([]string, error)

	LoadAnnotations(ctx context.Context, uri string) (entities.Annotations, error)
	AddCommentWithOptionalDrawing(ctx context.Context, uri string, comment entities.Comment, drawing *entities.Drawing) (entities.Annotations, error)
	AddDrawing(ctx context.Context, uri string, drawing entities.Drawing) ([]entities.Drawing, error)
	DeleteComment(ctx context.Context, uri, commentID string) (entities.Annotations, error)
	DeleteDrawing(ctx context.Context, uri, drawingID string) ([]entities.Drawing, error)
	ClearAll(ctx context.Context, uri string) error

	DrawingsForComment(ctx context.Context, uri, commentID string) ([]entities.Drawing, error)
	DrawingsForTimestamp(ctx context.Context, uri string, t, tolerance float64) ([]entities.Drawing, error)

	VideoMetadata(ctx context.Context, uri string) entities.VideoMetadata
	AllVideosMetadata(ctx context.Context) ([]entities.VideoMetadata, error)
	StorageStats(ctx context.Context) (entities.StorageStats, error)
	CleanupOrphans(ctx context.Context) (int, error)
}

type AnnotationOption func(*annotationService)

func WithIDGenerator(ids IDGenerator) AnnotationOption {
	return func(s *annotationService) { s.ids = ids }
}

func WithClock(clock Clock) AnnotationOption {
	return func(s *annotationService) { s.now = clock }
}

// annotationService read-modify-writes whole collections. mu admits one
// mutation at a time; reads share it.
type annotationService struct {
	store repositories.Store
	ids   IDGenerator
	now   Clock
	log   *zap.SugaredLogger
	mu    sync.RWMutex
}

func NewAnnotationService(store repositories.Store, log *zap.SugaredLogger, opts ...AnnotationOption) AnnotationService {
	s := &annotationService{
		store: store,
		ids:   UUIDGenerator{},
		now:   systemClock,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry

func (s *annotationService) RegisterVideo(ctx context.Context, uri string) ([]string, error) {
	if err := validateURI(uri); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.readRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(videos, uri) {
		return videos, nil
	}
	videos = append(videos, uri)
	if err := s.writeRegistry(ctx, videos); err != nil {
		return nil, err
	}
	s.log.Infow("video registered", "uri", uri)
	return videos, nil
}

func (s *annotationService) ListVideos(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readRegistry(ctx)
}

func (s *annotationService) DeleteVideo(ctx context.Context, uri string) ([]string, error) {
	if err := validateURI(uri); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.readRegistry(ctx)
	if err != nil {
		return nil, err
	}
	remaining := make([]string, 0, len(videos))
	for _, v := range videos {
		if v != uri {
			remaining = append(remaining, v)
		}
	}
	registry, err := encodeAll(remaining)
	if err != nil {
		return nil, err
	}

	// Collections go first so that on ordered backends the registry never
	// loses the uri while annotations remain.
	err = s.store.Apply(ctx,
		repositories.DeleteOp(repositories.DrawingsKey(uri)),
		repositories.DeleteOp(repositories.CommentsKey(uri)),
		repositories.WriteOp(repositories.RegistryKey(), registry),
	)
	if err != nil {
		return nil, err
	}
	s.log.Infow("video deleted", "uri", uri)
	return remaining, nil
}

// Annotations

func (s *annotationService) LoadAnnotations(ctx context.Context, uri string) (entities.Annotations, error) {
	if err := validateURI(uri); err != nil {
		return entities.Annotations{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(ctx, uri)
}

func (s *annotationService) AddCommentWithOptionalDrawing(ctx context.Context, uri string, comment entities.Comment, drawing *entities.Drawing) (entities.Annotations, error) {
	if err := validateURI(uri); err != nil {
		return entities.Annotations{}, err
	}
	text := strings.TrimSpace(comment.Text)
	if text == "" {
		if drawing == nil {
			return entities.Annotations{}, errors.ErrValidation("comment text is required")
		}
		text = constants.DrawingAnnotationText
	}
	if utf8.RuneCountInString(text) > constants.MaxCommentLength {
		return entities.Annotations{}, errors.ErrValidation("comment text exceeds 500 characters")
	}
	if !helper.ValidTimestamp(comment.Timestamp) {
		return entities.Annotations{}, errors.ErrValidation("timestamp must be a non-negative number of seconds")
	}

	comment.Text = text
	comment.HasDrawing = drawing != nil
	s.stamp(&comment.ID, &comment.CreatedAt)

	s.mu.Lock()
	defer s.mu.Unlock()

	anns, err := s.load(ctx, uri)
	if err != nil {
		return entities.Annotations{}, err
	}
	if indexOfComment(anns.Comments, comment.ID) >= 0 {
		return entities.Annotations{}, errors.ErrValidation("duplicate comment id")
	}
	anns.Comments = append(anns.Comments, comment)

	var ops []repositories.Op
	if drawing != nil {
		d := *drawing
		d.Timestamp = comment.Timestamp
		if err := s.prepareDrawing(&d); err != nil {
			return entities.Annotations{}, err
		}
		d.LinkedCommentID = comment.ID

		// A pending drawing was already saved standalone; link it in place.
		// Drawings owned by another comment keep their link.
		if i := indexOfDrawing(anns.Drawings, d.ID); i >= 0 {
			if anns.Drawings[i].LinkedCommentID != "" {
				return entities.Annotations{}, errors.ErrValidation("duplicate drawing id")
			}
			anns.Drawings[i] = d
		} else {
			anns.Drawings = append(anns.Drawings, d)
		}
		drawings, err := encodeAll(anns.Drawings)
		if err != nil {
			return entities.Annotations{}, err
		}
		ops = append(ops, repositories.WriteOp(repositories.DrawingsKey(uri), drawings))
	}

	comments, err := encodeAll(anns.Comments)
	if err != nil {
		return entities.Annotations{}, err
	}
	ops = append(ops, repositories.WriteOp(repositories.CommentsKey(uri), comments))

	registerOp, err := s.registerOp(ctx, uri)
	if err != nil {
		return entities.Annotations{}, err
	}
	if registerOp != nil {
		ops = append(ops, *registerOp)
	}

	if err := s.store.Apply(ctx, ops...); err != nil {
		return entities.Annotations{}, err
	}
	s.log.Debugw("comment added", "uri", uri, "commentId", comment.ID, "hasDrawing", comment.HasDrawing)
	return anns, nil
}

func (s *annotationService) AddDrawing(ctx context.Context, uri string, drawing entities.Drawing) ([]entities.Drawing, error) {
	if err := validateURI(uri); err != nil {
		return nil, err
	}
	if err := s.prepareDrawing(&drawing); err != nil {
		return nil, err
	}
	drawing.LinkedCommentID = ""

	s.mu.Lock()
	defer s.mu.Unlock()

	drawings, err := s.loadDrawings(ctx, uri)
	if err != nil {
		return nil, err
	}
	if indexOfDrawing(drawings, drawing.ID) >= 0 {
		return nil, errors.ErrValidation("duplicate drawing id")
	}
	drawings = append(drawings, drawing)

	records, err := encodeAll(drawings)
	if err != nil {
		return nil, err
	}
	ops := []repositories.Op{repositories.WriteOp(repositories.DrawingsKey(uri), records)}

	registerOp, err := s.registerOp(ctx, uri)
	if err != nil {
		return nil, err
	}
	if registerOp != nil {
		ops = append(ops, *registerOp)
	}

	if err := s.store.Apply(ctx, ops...); err != nil {
		return nil, err
	}
	s.log.Debugw("drawing added", "uri", uri, "drawingId", drawing.ID)
	return drawings, nil
}

// DeleteComment removes the comment and every drawing linked to it. An
// unknown id leaves the store untouched.
func (s *annotationService) DeleteComment(ctx context.Context, uri, commentID string) (entities.Annotations, error) {
	if err := validateURI(uri); err != nil {
		return entities.Annotations{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	anns, err := s.load(ctx, uri)
	if err != nil {
		return entities.Annotations{}, err
	}

	comments := make([]entities.Comment, 0, len(anns.Comments))
	for _, c := range anns.Comments {
		if c.ID != commentID {
			comments = append(comments, c)
		}
	}
	drawings := make([]entities.Drawing, 0, len(anns.Drawings))
	for _, d := range anns.Drawings {
		if d.LinkedCommentID != commentID || commentID == "" {
			drawings = append(drawings, d)
		}
	}
	if len(comments) == len(anns.Comments) && len(drawings) == len(anns.Drawings) {
		s.log.Debugw("comment already gone", "uri", uri, "commentId", commentID)
		return anns, nil
	}

	drawingRecords, err := encodeAll(drawings)
	if err != nil {
		return entities.Annotations{}, err
	}
	commentRecords, err := encodeAll(comments)
	if err != nil {
		return entities.Annotations{}, err
	}
	err = s.store.Apply(ctx,
		repositories.WriteOp(repositories.DrawingsKey(uri), drawingRecords),
		repositories.WriteOp(repositories.CommentsKey(uri), commentRecords),
	)
	if err != nil {
		return entities.Annotations{}, err
	}
	s.log.Debugw("comment deleted", "uri", uri, "commentId", commentID,
		"cascadedDrawings", len(anns.Drawings)-len(drawings))
	return entities.Annotations{Comments: comments, Drawings: drawings}, nil
}

func (s *annotationService) DeleteDrawing(ctx context.Context, uri, drawingID string) ([]entities.Drawing, error) {
	if err := validateURI(uri); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	drawings, err := s.loadDrawings(ctx, uri)
	if err != nil {
		return nil, err
	}
	i := indexOfDrawing(drawings, drawingID)
	if i < 0 {
		return drawings, nil
	}
	drawings = append(drawings[:i], drawings[i+1:]...)

	records, err := encodeAll(drawings)
	if err != nil {
		return nil, err
	}
	if err := s.store.Write(ctx, repositories.DrawingsKey(uri), records); err != nil {
		return nil, err
	}
	return drawings, nil
}

func (s *annotationService) ClearAll(ctx context.Context, uri string) error {
	if err := validateURI(uri); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, repositories.VideoKeys(uri)...); err != nil {
		return err
	}
	s.log.Infow("annotations cleared", "uri", uri)
	return nil
}

// Queries

func (s *annotationService) DrawingsForComment(ctx context.Context, uri, commentID string) ([]entities.Drawing, error) {
	if err := validateURI(uri); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	drawings, err := s.loadDrawings(ctx, uri)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Drawing, 0)
	for _, d := range drawings {
		if commentID != "" && d.LinkedCommentID == commentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *annotationService) DrawingsForTimestamp(ctx context.Context, uri string, t, tolerance float64) ([]entities.Drawing, error) {
	if err := validateURI(uri); err != nil {
		return nil, err
	}
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, errors.ErrValidation("timestamp must be a finite number of seconds")
	}
	if math.IsNaN(tolerance) || tolerance < 0 {
		return nil, errors.ErrValidation("tolerance must not be negative")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	drawings, err := s.loadDrawings(ctx, uri)
	if err != nil {
		return nil, err
	}
	return DrawingsNear(drawings, t, tolerance), nil
}

// Helpers

func (s *annotationService) load(ctx context.Context, uri string) (entities.Annotations, error) {
	drawings, err := s.loadDrawings(ctx, uri)
	if err != nil {
		return entities.Annotations{}, err
	}
	key := repositories.CommentsKey(uri)
	raw, err := s.store.Read(ctx, key)
	if err != nil {
		return entities.Annotations{}, err
	}
	return entities.Annotations{
		Comments: decodeAnnotations[entities.Comment](s.log, key, raw),
		Drawings: drawings,
	}, nil
}

func (s *annotationService) loadDrawings(ctx context.Context, uri string) ([]entities.Drawing, error) {
	key := repositories.DrawingsKey(uri)
	raw, err := s.store.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	return decodeAnnotations[entities.Drawing](s.log, key, raw), nil
}

func (s *annotationService) readRegistry(ctx context.Context) ([]string, error) {
	raw, err := s.store.Read(ctx, repositories.RegistryKey())
	if err != nil {
		return nil, err
	}
	return decodeRegistry(s.log, raw), nil
}

func (s *annotationService) writeRegistry(ctx context.Context, videos []string) error {
	records, err := encodeAll(videos)
	if err != nil {
		return err
	}
	return s.store.Write(ctx, repositories.RegistryKey(), records)
}

// registerOp returns the registry write needed to add uri, or nil when the
// uri is already registered.
func (s *annotationService) registerOp(ctx context.Context, uri string) (*repositories.Op, error) {
	videos, err := s.readRegistry(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(videos, uri) {
		return nil, nil
	}
	records, err := encodeAll(append(videos, uri))
	if err != nil {
		return nil, err
	}
	op := repositories.WriteOp(repositories.RegistryKey(), records)
	return &op, nil
}

func (s *annotationService) prepareDrawing(d *entities.Drawing) error {
	if len(d.Path) == 0 {
		return errors.ErrValidation("drawing path is empty")
	}
	if !helper.ValidTimestamp(d.Timestamp) {
		return errors.ErrValidation("timestamp must be a non-negative number of seconds")
	}
	if d.StrokeWidth <= 0 {
		d.StrokeWidth = constants.DefaultStrokeWidth
	}
	if d.Color == "" {
		d.Color = constants.DefaultPenColor
	}
	s.stamp(&d.ID, &d.CreatedAt)
	return nil
}

// stamp fills an empty id and a zero creation instant.
func (s *annotationService) stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = s.ids.NewID()
	}
	if createdAt.IsZero() {
		*createdAt = s.now()
	}
}

func validateURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return errors.ErrValidation("video uri is required")
	}
	return nil
}

func indexOfComment(comments []entities.Comment, id string) int {
	return slices.IndexFunc(comments, func(c entities.Comment) bool { return c.ID == id })
}

func indexOfDrawing(drawings []entities.Drawing, id string) int {
	return slices.IndexFunc(drawings, func(d entities.Drawing) bool { return d.ID == id })
}
