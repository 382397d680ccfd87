package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/LavaJover/printshop-order-service/internal/domain"
)

// MemoryBlobStore is an in-process blob store for tests and local runs.
type MemoryBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: map[string][]byte{}}
}

func (s *MemoryBlobStore) Put(ctx context.Context, path string, body io.Reader, contentType string) error {
	if path == "" {
		return errInvalidObject
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", domain.ErrStorage, path, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return nil
}

func (s *MemoryBlobStore) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return domain.ErrBlobNotFound
	}
	delete(s.objects, path)
	return nil
}

func (s *MemoryBlobStore) Has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}

func (s *MemoryBlobStore) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for p := range s.objects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
