package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/LavaJover/printshop-order-service/internal/domain"
	"google.golang.org/api/option"
)

var (
	errInvalidBucket = errors.New("storage: bucket name is required")
	errInvalidObject = errors.New("storage: object name is required")
)

// GCSBlobStore keeps order file payloads in one Cloud Storage bucket.
type GCSBlobStore struct {
	client *gcs.Client
	bucket string
}

func NewGCSBlobStore(ctx context.Context, bucket string, opts ...option.ClientOption) (*GCSBlobStore, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errInvalidBucket
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}
	return &GCSBlobStore{client: client, bucket: bucket}, nil
}

func (s *GCSBlobStore) Put(ctx context.Context, path string, body io.Reader, contentType string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errInvalidObject
	}

	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, body); err != nil {
		_ = w.Close()
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: finalize %s: %v", domain.ErrStorage, path, err)
	}
	return nil
}

func (s *GCSBlobStore) Remove(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errInvalidObject
	}

	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gcs.ErrObjectNotExist):
		return domain.ErrBlobNotFound
	default:
		return fmt.Errorf("%w: delete %s: %v", domain.ErrStorage, path, err)
	}
}

func (s *GCSBlobStore) Close() error {
	return s.client.Close()
}
