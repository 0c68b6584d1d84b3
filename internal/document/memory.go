package document

import (
	"context"
	"sync"

	"licibit/pkg/platform/sentinel"
)

type stored struct {
	file    File
	content []byte
}

// MemoryBlobStore keeps blobs in process memory. Suitable for development
// and tests; a deployment would back this interface with object storage.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]stored
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string]stored)}
}

func (s *MemoryBlobStore) Put(_ context.Context, file *File, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.blobs[file.Path]; exists {
		return sentinel.ErrConflict
	}
	c := make([]byte, len(content))
	copy(c, content)
	s.blobs[file.Path] = stored{file: *file, content: c}
	return nil
}

func (s *MemoryBlobStore) Get(_ context.Context, path string) (*File, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.blobs[path]
	if !ok {
		return nil, nil, sentinel.ErrNotFound
	}
	file := entry.file
	content := make([]byte, len(entry.content))
	copy(content, entry.content)
	return &file, content, nil
}
