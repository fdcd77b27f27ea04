package sealmail

import "sync"

// KeyStore is the secure key store backing a keyring. Production
// implementations wrap a platform keystore (possibly hardware-backed);
// [MemoryKeyStore] is the in-memory implementation for tests and
// ephemeral keyrings.
//
// Implementations must provide atomic reads and writes of individual
// entries; the KeyManager layers its own locking for multi-entry
// operations on top.
type KeyStore interface {
	// Store persists an entry under the given name, overwriting any
	// previous value.
	Store(name string, data []byte) error
	// Load returns the entry stored under name, or ErrKeyNotFound.
	Load(name string) ([]byte, error)
	// Delete removes a single entry. Deleting a missing entry is not an
	// error.
	Delete(name string) error
	// List returns the names of all stored entries, in no particular
	// order.
	List() ([]string, error)
	// DeleteAll removes every entry. Idempotent.
	DeleteAll() error
}

// MemoryKeyStore is an in-memory KeyStore. Safe for concurrent use.
type MemoryKeyStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryKeyStore creates an empty in-memory key store.
func NewMemoryKeyStore() *MemoryKeyStore {
	return &MemoryKeyStore{entries: make(map[string][]byte)}
}

// Store implements KeyStore.
func (s *MemoryKeyStore) Store(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.entries[name] = buf
	return nil
}

// Load implements KeyStore.
func (s *MemoryKeyStore) Load(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[name]
	if !ok {
		return nil, ErrKeyNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Delete implements KeyStore.
func (s *MemoryKeyStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, name)
	return nil
}

// List implements KeyStore.
func (s *MemoryKeyStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	return names, nil
}

// DeleteAll implements KeyStore.
func (s *MemoryKeyStore) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string][]byte)
	return nil
}
