package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"video-annotator/internal/domain/repositories"
	"video-annotator/pkg/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStorage stores each collection as a JSON string value. Apply runs
// inside MULTI/EXEC.
type RedisStorage struct {
	rdb    *redis.Client
	prefix string
	log    *zap.SugaredLogger
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

func NewRedisStorage(ctx context.Context, opts RedisOptions, log *zap.SugaredLogger) (*RedisStorage, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("redis ping %s: %w", opts.Addr, err))
	}

	log.Infow("redis store connected", "addr", opts.Addr, "db", opts.DB)
	return NewRedisStorageFromClient(rdb, opts.Prefix, log), nil
}

func NewRedisStorageFromClient(rdb *redis.Client, prefix string, log *zap.SugaredLogger) *RedisStorage {
	return &RedisStorage{rdb: rdb, prefix: prefix, log: log}
}

func (r *RedisStorage) redisKey(key repositories.Key) string {
	return r.prefix + key.String()
}

func (r *RedisStorage) Read(ctx context.Context, key repositories.Key) ([]json.RawMessage, error) {
	val, err := r.rdb.Get(ctx, r.redisKey(key)).Bytes()
	if err == redis.Nil {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("redis get %s: %w", key, err))
	}
	return decodeRecords(key, val)
}

func (r *RedisStorage) Write(ctx context.Context, key repositories.Key, records []json.RawMessage) error {
	return r.Apply(ctx, repositories.WriteOp(key, records))
}

func (r *RedisStorage) Delete(ctx context.Context, keys ...repositories.Key) error {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = r.redisKey(key)
	}
	if err := r.rdb.Del(ctx, names...).Err(); err != nil {
		return errors.ErrStorageUnavailable(fmt.Errorf("redis del: %w", err))
	}
	return nil
}

func (r *RedisStorage) Apply(ctx context.Context, ops ...repositories.Op) error {
	payloads := make([][]byte, len(ops))
	for i, op := range ops {
		if op.Delete {
			continue
		}
		data, err := encodeRecords(op.Records)
		if err != nil {
			return err
		}
		payloads[i] = data
	}

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, op := range ops {
			if op.Delete {
				pipe.Del(ctx, r.redisKey(op.Key))
				continue
			}
			pipe.Set(ctx, r.redisKey(op.Key), payloads[i], 0)
		}
		return nil
	})
	if err != nil {
		return errors.ErrStorageUnavailable(fmt.Errorf("redis tx: %w", err))
	}
	return nil
}

func (r *RedisStorage) ListAllKeys(ctx context.Context) ([]repositories.Key, error) {
	var (
		keys   []repositories.Key
		cursor uint64
	)
	for {
		names, next, err := r.rdb.Scan(ctx, cursor, r.prefix+"*", 200).Result()
		if err != nil {
			return nil, errors.ErrStorageUnavailable(fmt.Errorf("redis scan: %w", err))
		}
		for _, name := range names {
			if key, ok := repositories.ParseKey(strings.TrimPrefix(name, r.prefix)); ok {
				keys = append(keys, key)
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return keys, nil
}

func (r *RedisStorage) Close() error {
	return r.rdb.Close()
}
