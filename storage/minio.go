package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Viniciustertuliano/photovault/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioBackend struct {
	client *minio.Client
	bucket string
}

func NewMinioBackend(cfg config.MinIOConfig) (*MinioBackend, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("minio bucket name cannot be empty")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}
	return &MinioBackend{client: client, bucket: cfg.Bucket}, nil
}

func (b *MinioBackend) Name() string { return "minio" }

func (b *MinioBackend) EnsureRoot(ctx context.Context) error {
	err := b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{})
	if err == nil {
		return nil
	}
	exists, existsErr := b.client.BucketExists(ctx, b.bucket)
	if existsErr == nil && exists {
		return nil
	}
	return fmt.Errorf("failed to create bucket %q: %w", b.bucket, err)
}

func (b *MinioBackend) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if key == "" {
		return ErrInvalidKey
	}
	_, err := b.client.PutObject(ctx, b.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("upload %s to minio: %w", key, err)
	}
	return nil
}

func (b *MinioBackend) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, b.translate(key, err)
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller streams.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, b.translate(key, err)
	}
	return obj, nil
}

func (b *MinioBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.client.StatObject(ctx, b.bucket, key, minio.StatObjectOptions{}); err != nil {
		return b.translate(key, err)
	}
	if err := b.client.RemoveObject(ctx, b.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return b.translate(key, err)
	}
	return nil
}

func (b *MinioBackend) translate(key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" {
		return ErrObjectNotFound
	}
	return fmt.Errorf("minio %s: %w", key, err)
}
