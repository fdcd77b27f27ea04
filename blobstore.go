package sealmail

import (
	"sort"
	"strings"
	"sync"
)

// BlobStore is the object store that sealed blobs and their metadata are
// persisted to. The SDK treats it strictly as a key-value store with a
// string-to-string metadata map per entry and assumes nothing about
// ordering. Production implementations wrap the service's object storage;
// [MemoryBlobStore] is the in-memory implementation for tests.
type BlobStore interface {
	// Put stores data and metadata under the given path, overwriting any
	// previous entry.
	Put(path string, data []byte, metadata map[string]string) error
	// Get returns the data and metadata stored under path, or
	// ErrBlobNotFound.
	Get(path string) ([]byte, map[string]string, error)
	// List returns all paths with the given prefix.
	List(prefix string) ([]string, error)
	// Delete removes the entry under path. Deleting a missing entry is
	// not an error.
	Delete(path string) error
}

type blobEntry struct {
	data     []byte
	metadata map[string]string
}

// MemoryBlobStore is an in-memory BlobStore. Safe for concurrent use.
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]blobEntry
}

// NewMemoryBlobStore creates an empty in-memory blob store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string]blobEntry)}
}

// Put implements BlobStore.
func (s *MemoryBlobStore) Put(path string, data []byte, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := blobEntry{
		data:     append([]byte(nil), data...),
		metadata: make(map[string]string, len(metadata)),
	}
	for k, v := range metadata {
		entry.metadata[k] = v
	}
	s.blobs[path] = entry
	return nil
}

// Get implements BlobStore.
func (s *MemoryBlobStore) Get(path string) ([]byte, map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.blobs[path]
	if !ok {
		return nil, nil, ErrBlobNotFound
	}

	data := append([]byte(nil), entry.data...)
	metadata := make(map[string]string, len(entry.metadata))
	for k, v := range entry.metadata {
		metadata[k] = v
	}
	return data, metadata, nil
}

// List implements BlobStore.
func (s *MemoryBlobStore) List(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var paths []string
	for path := range s.blobs {
		if strings.HasPrefix(path, prefix) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Delete implements BlobStore.
func (s *MemoryBlobStore) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, path)
	return nil
}
