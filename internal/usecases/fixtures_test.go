package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"video-annotator/internal/domain/entities"
	"video-annotator/internal/domain/repositories"
	"video-annotator/internal/infrastructure/storage"
	"video-annotator/pkg/errors"
	"video-annotator/pkg/logger"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// tickClock advances one second per call.
type tickClock struct {
	mu sync.Mutex
	n  int
}

func (c *tickClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return baseTime.Add(time.Duration(c.n) * time.Second)
}

// faultyStore wraps a Store and fails selected calls.
type faultyStore struct {
	repositories.Store

	mu         sync.Mutex
	failWrites bool
	failReads  map[repositories.Key]bool
}

func newFaultyStore() *faultyStore {
	return &faultyStore{Store: storage.NewMemoryStorage(), failReads: map[repositories.Key]bool{}}
}

func (f *faultyStore) setFailWrites(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWrites = v
}

func (f *faultyStore) failReadOf(key repositories.Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failReads[key] = true
}

func (f *faultyStore) writesFail() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failWrites
}

func (f *faultyStore) Read(ctx context.Context, key repositories.Key) ([]json.RawMessage, error) {
	f.mu.Lock()
	fail := f.failReads[key]
	f.mu.Unlock()
	if fail {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("read %s refused", key))
	}
	return f.Store.Read(ctx, key)
}

func (f *faultyStore) Write(ctx context.Context, key repositories.Key, records []json.RawMessage) error {
	if f.writesFail() {
		return errors.ErrStorageUnavailable(fmt.Errorf("write %s refused", key))
	}
	return f.Store.Write(ctx, key, records)
}

func (f *faultyStore) Apply(ctx context.Context, ops ...repositories.Op) error {
	if f.writesFail() {
		return errors.ErrStorageUnavailable(fmt.Errorf("apply refused"))
	}
	return f.Store.Apply(ctx, ops...)
}

func (f *faultyStore) Delete(ctx context.Context, keys ...repositories.Key) error {
	if f.writesFail() {
		return errors.ErrStorageUnavailable(fmt.Errorf("delete refused"))
	}
	return f.Store.Delete(ctx, keys...)
}

func newTestService(t *testing.T, store repositories.Store) AnnotationService {
	t.Helper()
	clock := &tickClock{}
	return NewAnnotationService(store, logger.Nop(),
		WithIDGenerator(NewSequenceIDs("id-")),
		WithClock(clock.now),
	)
}

func stroke(points ...float64) []entities.Point {
	out := make([]entities.Point, 0, len(points)/2)
	for i := 0; i+1 < len(points); i += 2 {
		out = append(out, entities.Point{X: points[i], Y: points[i+1]})
	}
	return out
}

func writeRaw(t *testing.T, store repositories.Store, key repositories.Key, docs ...string) {
	t.Helper()
	records := make([]json.RawMessage, len(docs))
	for i, d := range docs {
		records[i] = json.RawMessage(d)
	}
	require.NoError(t, store.Write(context.Background(), key, records))
}
