package storage

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"video-annotator/internal/domain/repositories"
	"video-annotator/internal/pkg/fileutils"
	"video-annotator/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Storage keeps one object per key under prefix, named by a digest of the
// key. Apply writes in order; S3 has no multi-object transaction.
type S3Storage struct {
	client     *s3.Client
	bucketName string
	prefix     string
}

type S3Options struct {
	Bucket   string
	Region   string
	Prefix   string
	Endpoint string // optional, for S3-compatible servers
}

func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("load AWS config: %w", err))
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(opts.Bucket)}); err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("head bucket %s: %w", opts.Bucket, err))
	}

	return &S3Storage{
		client:     client,
		bucketName: opts.Bucket,
		prefix:     opts.Prefix,
	}, nil
}

func (s *S3Storage) objectKey(key repositories.Key) string {
	return s.prefix + fileutils.KeyFileName(key.String())
}

func (s *S3Storage) Read(ctx context.Context, key repositories.Key) ([]json.RawMessage, error) {
	data, found, err := s.getObject(ctx, s.objectKey(key))
	if err != nil {
		return nil, errors.ErrStorageUnavailable(fmt.Errorf("s3 get %s: %w", key, err))
	}
	if !found {
		return []json.RawMessage{}, nil
	}
	return decodeKeyed(key, data)
}

func (s *S3Storage) getObject(ctx context.Context, objectKey string) ([]byte, bool, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if stderrors.As(err, &nsk) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (s *S3Storage) Write(ctx context.Context, key repositories.Key, records []json.RawMessage) error {
	data, err := encodeKeyed(key, records)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.objectKey(key)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.ErrStorageUnavailable(fmt.Errorf("s3 put %s: %w", key, err))
	}
	return nil
}

func (s *S3Storage) Delete(ctx context.Context, keys ...repositories.Key) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]types.ObjectIdentifier, len(keys))
	for i, key := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(s.objectKey(key))}
	}

	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.bucketName),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return errors.ErrStorageUnavailable(fmt.Errorf("s3 delete: %w", err))
	}
	return nil
}

func (s *S3Storage) Apply(ctx context.Context, ops ...repositories.Op) error {
	for _, op := range ops {
		var err error
		if op.Delete {
			err = s.Delete(ctx, op.Key)
		} else {
			err = s.Write(ctx, op.Key, op.Records)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *S3Storage) ListAllKeys(ctx context.Context) ([]repositories.Key, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(s.prefix),
	})

	var keys []repositories.Key
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.ErrStorageUnavailable(fmt.Errorf("s3 list: %w", err))
		}
		for _, obj := range page.Contents {
			objectKey := aws.ToString(obj.Key)
			if !fileutils.IsKeyFileName(strings.TrimPrefix(objectKey, s.prefix)) {
				continue
			}
			data, found, err := s.getObject(ctx, objectKey)
			if err != nil {
				return nil, errors.ErrStorageUnavailable(fmt.Errorf("s3 get %s: %w", objectKey, err))
			}
			if !found {
				continue
			}
			if key, ok := keyOf(data); ok {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

func (s *S3Storage) Close() error { return nil }
