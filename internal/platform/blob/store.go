// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

/*
Package blob provides opaque object storage for manuscript files and cover images.

Manuscript content and cover art are never interpreted by the API — they are
stored and served as-is. This package is the single adapter boundary to the
S3-compatible object store (MinIO in development, any S3 API in production).
*/
package blob

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store is the contract for opaque blob persistence.
//
// # Why an interface?
//
// Domain services depend on this interface so tests can use an in-memory
// fake instead of a running MinIO instance.
type Store interface {
	// Put uploads an object under the given key.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// PresignGet returns a time-limited download URL for the key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// MinioStore implements [Store] for MinIO / S3-compatible storage.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// Options configures the connection to the object store.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewMinioStore connects to the object store and ensures the bucket exists.
func NewMinioStore(ctx context.Context, opts Options, logger *slog.Logger) (*MinioStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("blob: init client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("blob: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(checkCtx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("blob: create bucket: %w", err)
		}
	}

	logger.Info("blob store connected",
		slog.String("endpoint", opts.Endpoint),
		slog.String("bucket", opts.Bucket),
	)

	return &MinioStore{client: client, bucket: opts.Bucket}, nil
}

// Put uploads an object.
func (store *MinioStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := store.client.PutObject(ctx, store.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("blob: put object %s: %w", key, err)
	}
	return nil
}

// PresignGet generates a pre-signed GET URL.
func (store *MinioStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := store.client.PresignedGetObject(ctx, store.bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("blob: presign %s: %w", key, err)
	}
	return url.String(), nil
}

// Ping verifies the bucket is reachable. Used by the readiness probe.
func (store *MinioStore) Ping(ctx context.Context) error {
	if _, err := store.client.BucketExists(ctx, store.bucket); err != nil {
		return fmt.Errorf("blob: ping: %w", err)
	}
	return nil
}

// Delete removes an object.
func (store *MinioStore) Delete(ctx context.Context, key string) error {
	if err := store.client.RemoveObject(ctx, store.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("blob: delete object %s: %w", key, err)
	}
	return nil
}
