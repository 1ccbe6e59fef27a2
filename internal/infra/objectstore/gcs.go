package objectstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
)

var ErrBucketRequired = errors.New("storage bucket is required")

// GCSStore answers existence questions about objects stored in a single
// Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	if bucket == "" {
		return nil, ErrBucketRequired
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return NewGCSStoreWithClient(client, bucket), nil
}

func NewGCSStoreWithClient(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{
		client: client,
		bucket: bucket,
	}
}

// Exists reports whether the object named by ref is present in the bucket.
func (s *GCSStore) Exists(ctx context.Context, ref string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(ref).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		slog.Error("reading object attributes",
			slog.String("bucket", s.bucket),
			slog.String("object", ref),
			slog.String("error", err.Error()))
		return false, fmt.Errorf("reading object attributes: %w", err)
	}

	return true, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

// NoopStore is used when no bucket is configured. Every reference is reported
// as present because there is nothing to check it against.
type NoopStore struct{}

func (NoopStore) Exists(context.Context, string) (bool, error) {
	return true, nil
}
