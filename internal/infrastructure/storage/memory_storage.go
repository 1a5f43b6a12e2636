package storage

import (
	"context"
	"encoding/json"
	"sync"

	"video-annotator/internal/domain/repositories"
)

// MemoryStorage keeps every collection in process memory. Apply is atomic.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[repositories.Key][]json.RawMessage
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		data: make(map[repositories.Key][]json.RawMessage),
	}
}

func (m *MemoryStorage) Read(_ context.Context, key repositories.Key) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRecords(m.data[key]), nil
}

func (m *MemoryStorage) Write(_ context.Context, key repositories.Key, records []json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = cloneRecords(records)
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, keys ...repositories.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *MemoryStorage) Apply(_ context.Context, ops ...repositories.Op) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, op := range ops {
		if op.Delete {
			delete(m.data, op.Key)
			continue
		}
		m.data[op.Key] = cloneRecords(op.Records)
	}
	return nil
}

func (m *MemoryStorage) ListAllKeys(_ context.Context) ([]repositories.Key, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]repositories.Key, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	return keys, nil
}

func (m *MemoryStorage) Close() error { return nil }

func cloneRecords(records []json.RawMessage) []json.RawMessage {
	out := make([]json.RawMessage, len(records))
	for i, r := range records {
		out[i] = append(json.RawMessage(nil), r...)
	}
	return out
}
