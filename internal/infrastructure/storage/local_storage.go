package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"video-annotator/internal/domain/repositories"
	"video-annotator/internal/pkg/fileutils"
	"video-annotator/pkg/errors"
)

// LocalStorage keeps one JSON file per key under BasePath, named by a digest
// of the key. Each key is replaced atomically; Apply is ordered but not
// atomic across keys.
type LocalStorage struct {
	BasePath string
	mu       sync.RWMutex
}

func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("create store dir: %w", err))
	}
	return &LocalStorage{BasePath: basePath}, nil
}

func (l *LocalStorage) path(key repositories.Key) string {
	return filepath.Join(l.BasePath, fileutils.KeyFileName(key.String()))
}

func (l *LocalStorage) Read(_ context.Context, key repositories.Key) ([]json.RawMessage, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	data, err := os.ReadFile(l.path(key))
	if os.IsNotExist(err) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("read %s: %w", key, err))
	}
	return decodeKeyed(key, data)
}

func (l *LocalStorage) Write(_ context.Context, key repositories.Key, records []json.RawMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.write(key, records)
}

func (l *LocalStorage) write(key repositories.Key, records []json.RawMessage) error {
	data, err := encodeKeyed(key, records)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFileAtomic(l.path(key), data); err != nil {
		return errors.ErrStorageUnavailable(fmt.Errorf("write %s: %w", key, err))
	}
	return nil
}

func (l *LocalStorage) Delete(_ context.Context, keys ...repositories.Key) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		if err := l.remove(key); err != nil {
			return err
		}
	}
	return nil
}

func (l *LocalStorage) remove(key repositories.Key) error {
	if err := os.Remove(l.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.ErrStorageUnavailable(fmt.Errorf("delete %s: %w", key, err))
	}
	return nil
}

func (l *LocalStorage) Apply(_ context.Context, ops ...repositories.Op) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, op := range ops {
		var err error
		if op.Delete {
			err = l.remove(op.Key)
		} else {
			err = l.write(op.Key, op.Records)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *LocalStorage) ListAllKeys(_ context.Context) ([]repositories.Key, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("list store dir: %w", err))
	}

	keys := make([]repositories.Key, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !fileutils.IsKeyFileName(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(l.BasePath, entry.Name()))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.ErrStorageUnavailable(fmt.Errorf("read %s: %w", entry.Name(), err))
		}
		if key, ok := keyOf(data); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (l *LocalStorage) Close() error { return nil }
