package storage

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"video-annotator/internal/domain/entities"
	"video-annotator/internal/domain/repositories"
	"video-annotator/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStorage keeps one annotation_records row per key. Apply runs in a
// single transaction.
type PostgresStorage struct {
	db *gorm.DB
}

func NewPostgresStorage(db *gorm.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (p *PostgresStorage) Read(ctx context.Context, key repositories.Key) ([]json.RawMessage, error) {
	var rec entities.AnnotationRecord
	err := p.db.WithContext(ctx).First(&rec, "record_key = ?", key.String()).Error
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("select %s: %w", key, err))
	}
	return decodeRecords(key, rec.Payload)
}

func (p *PostgresStorage) Write(ctx context.Context, key repositories.Key, records []json.RawMessage) error {
	return p.Apply(ctx, repositories.WriteOp(key, records))
}

func (p *PostgresStorage) Delete(ctx context.Context, keys ...repositories.Key) error {
	if len(keys) == 0 {
		return nil
	}
	if err := deleteRows(p.db.WithContext(ctx), keys); err != nil {
		return errors.ErrStorageUnavailable(err)
	}
	return nil
}

func (p *PostgresStorage) Apply(ctx context.Context, ops ...repositories.Op) error {
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, op := range ops {
			if op.Delete {
				if err := deleteRows(tx, []repositories.Key{op.Key}); err != nil {
					return err
				}
				continue
			}

			payload, err := encodeRecords(op.Records)
			if err != nil {
				return err
			}
			rec := entities.AnnotationRecord{
				Key:       op.Key.String(),
				Payload:   payload,
				UpdatedAt: time.Now().UTC(),
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "record_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
			}).Create(&rec).Error
			if err != nil {
				return fmt.Errorf("upsert %s: %w", op.Key, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.CodeOf(err) != "" {
			return err
		}
		return errors.ErrStorageUnavailable(err)
	}
	return nil
}

func (p *PostgresStorage) ListAllKeys(ctx context.Context) ([]repositories.Key, error) {
	var names []string
	err := p.db.WithContext(ctx).
		Model(&entities.AnnotationRecord{}).
		Pluck("record_key", &names).Error
	if err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("list keys: %w", err))
	}

	keys := make([]repositories.Key, 0, len(names))
	for _, name := range names {
		if key, ok := repositories.ParseKey(name); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (p *PostgresStorage) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func deleteRows(db *gorm.DB, keys []repositories.Key) error {
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.String()
	}
	if err := db.Where("record_key IN ?", names).Delete(&entities.AnnotationRecord{}).Error; err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}
