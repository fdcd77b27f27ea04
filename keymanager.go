package sealmail

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bluele/gcache"
	"github.com/google/uuid"

	"github.com/sealmail/client-go/internal/crypto"
)

// Key store entry names. The current-key pointer and the identity key live
// in the same secure store as the symmetric keys, so a new KeyManager over
// an existing store recovers the full keyring state.
const (
	symmetricKeyPrefix = "symmetric/"
	currentKeyEntry    = "symmetric-current"
	identityKeyEntry   = "identity-signing"
)

// KeyManager owns one keyring: the symmetric content-encryption keys, the
// identity signing key pair, and the current-key designation. It is the
// only component with access to raw key material; everything else holds
// key ids and requests operations through this type.
//
// A KeyManager is an instance, not a process singleton, so multiple
// independent keyrings can coexist, e.g. for tests or multi-account use.
// All methods are safe for concurrent use: key generation and reset are
// mutually exclusive with each other and with reads.
type KeyManager struct {
	store KeyStore
	cache gcache.Cache
	mu    sync.RWMutex
}

// NewKeyManager creates a key manager over the configured secure store.
// With no options it uses an in-memory store, which is appropriate for
// tests and ephemeral keyrings only.
func NewKeyManager(opts ...KeyManagerOption) *KeyManager {
	cfg := &keyManagerConfig{
		store:     NewMemoryKeyStore(),
		cacheSize: defaultKeyCacheSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &KeyManager{
		store: cfg.store,
		cache: gcache.New(cfg.cacheSize).LRU().Build(),
	}
}

// GenerateSymmetricKey creates and persists a new symmetric key and makes
// it the current key for subsequent seals. Prior keys remain available
// for unsealing previously stored data.
func (m *KeyManager) GenerateSymmetricKey() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key, err := crypto.RandomKey()
	if err != nil {
		return "", fmt.Errorf("generate symmetric key: %w", err)
	}

	keyID := uuid.NewString()
	if err := m.store.Store(symmetricKeyPrefix+keyID, key); err != nil {
		return "", fmt.Errorf("store symmetric key: %w", err)
	}
	if err := m.store.Store(currentKeyEntry, []byte(keyID)); err != nil {
		return "", fmt.Errorf("store current key id: %w", err)
	}

	_ = m.cache.Set(keyID, key)
	return keyID, nil
}

// CurrentSymmetricKeyID returns the id of the current symmetric key.
// Returns ErrKeyringNotReady if no key has ever been generated for this
// keyring (or the keyring was reset).
func (m *KeyManager) CurrentSymmetricKeyID() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := m.store.Load(currentKeyEntry)
	if errors.Is(err, ErrKeyNotFound) {
		return "", ErrKeyringNotReady
	}
	if err != nil {
		return "", fmt.Errorf("load current key id: %w", err)
	}
	return string(data), nil
}

// Ready reports whether the keyring has at least one symmetric key.
func (m *KeyManager) Ready() bool {
	_, err := m.CurrentSymmetricKeyID()
	return err == nil
}

// symmetricKey returns raw key material. Unexported on purpose: raw bytes
// never cross the package boundary; the Sealer is the only consumer.
func (m *KeyManager) symmetricKey(keyID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if cached, err := m.cache.Get(keyID); err == nil {
		return cached.([]byte), nil
	}

	key, err := m.store.Load(symmetricKeyPrefix + keyID)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: symmetric key %s", ErrKeyNotFound, keyID)
	}
	if err != nil {
		return nil, fmt.Errorf("load symmetric key: %w", err)
	}
	if len(key) != crypto.KeySize {
		return nil, fmt.Errorf("symmetric key %s has invalid size %d", keyID, len(key))
	}

	_ = m.cache.Set(keyID, key)
	return key, nil
}

// Reset deletes all key material for this keyring, returning it to the
// uninitialized state. Idempotent; used for account wipe and tests.
func (m *KeyManager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.DeleteAll(); err != nil {
		return fmt.Errorf("reset keyring: %w", err)
	}
	m.cache.Purge()
	return nil
}

// IdentityPublicKey returns the public half of the keyring's identity
// signing key pair, generating the pair on first use. The private half
// never leaves the key manager.
func (m *KeyManager) IdentityPublicKey() ([]byte, error) {
	key, err := m.identityKey()
	if err != nil {
		return nil, err
	}
	return key.PublicKey, nil
}

// Sign produces a detached identity signature over the message,
// generating the identity key pair on first use.
func (m *KeyManager) Sign(message []byte) ([]byte, error) {
	key, err := m.identityKey()
	if err != nil {
		return nil, err
	}
	return key.Sign(message)
}

// VerifySignature verifies a detached identity signature against a public
// key previously obtained from [KeyManager.IdentityPublicKey]. Returns
// ErrSignatureInvalid on verification failure.
func VerifySignature(publicKey, message, signature []byte) error {
	if err := crypto.Verify(publicKey, message, signature); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return nil
}

func (m *KeyManager) identityKey() (*crypto.SigningKey, error) {
	m.mu.RLock()
	data, err := m.store.Load(identityKeyEntry)
	m.mu.RUnlock()

	if err == nil {
		return crypto.SigningKeyFromBytes(data)
	}
	if !errors.Is(err, ErrKeyNotFound) {
		return nil, fmt.Errorf("load identity key: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Re-check under the write lock: another goroutine may have just
	// generated the pair.
	if data, err := m.store.Load(identityKeyEntry); err == nil {
		return crypto.SigningKeyFromBytes(data)
	}

	key, err := crypto.GenerateSigningKey()
	if err != nil {
		return nil, fmt.Errorf("generate identity key: %w", err)
	}
	if err := m.store.Store(identityKeyEntry, key.PrivateKey); err != nil {
		return nil, fmt.Errorf("store identity key: %w", err)
	}
	return key, nil
}
