package storage

import (
	"context"
	"fmt"

	"video-annotator/internal/domain/repositories"
	"video-annotator/internal/infrastructure/db"
	"video-annotator/pkg/config"
	"video-annotator/pkg/errors"

	"go.uber.org/zap"
)

const (
	DriverMemory   = "memory"
	DriverLocal    = "local"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Open builds the Store selected by cfg.Store.Driver. The caller owns Close.
func Open(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (repositories.Store, error) {
	switch cfg.Store.Driver {
	case DriverMemory:
		log.Warn("using in-memory annotation store, data is lost on exit")
		return NewMemoryStorage(), nil

	case DriverLocal, "":
		log.Infow("using local annotation store", "dir", cfg.Store.Dir)
		local, err := NewLocalStorage(cfg.Store.Dir)
		if err != nil {
			return nil, err
		}
		return local, nil

	case DriverRedis:
		rs, err := NewRedisStorage(ctx, RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}, log)
		if err != nil {
			return nil, err
		}
		return rs, nil

	case DriverPostgres:
		database, err := db.NewPostgresDB(cfg.Database)
		if err != nil {
			return nil, errors.ErrStorageUnavailable(err)
		}
		if cfg.Database.RunAutoMigration {
			if err := db.Migrate(database); err != nil {
				return nil, errors.ErrStorageUnavailable(err)
			}
			log.Info("postgres migrations applied")
		}
		return NewPostgresStorage(database), nil

	case DriverS3:
		log.Infow("using s3 annotation store", "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)
		s3s, err := NewS3Storage(ctx, S3Options{
			Bucket:   cfg.S3.Bucket,
			Region:   cfg.S3.Region,
			Prefix:   cfg.S3.Prefix,
			Endpoint: cfg.S3.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return s3s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
