// Package gcs adapts a Google Cloud Storage bucket to the ObjectStore port.
// The whole order collection lives in a single JSON object.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"

	"orderdesk/internal/ports/outbound"
)

type Store struct {
	bucket *storage.BucketHandle
}

func New(ctx context.Context, bucketName string) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Store{bucket: client.Bucket(bucketName)}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.bucket.Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%q: %w", key, outbound.ErrObjectNotFound)
		}
		return nil, fmt.Errorf("open %q: %w", key, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("flush %q: %w", key, err)
	}
	return nil
}

var _ outbound.ObjectStore = (*Store)(nil)
