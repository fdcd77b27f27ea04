package sealmail

import (
	"fmt"

	"github.com/sealmail/client-go/internal/crypto"
)

// Registered algorithm suite identifiers. The identifier is recorded in
// every envelope and metadata record, so suites can be added without
// breaking stored data.
const (
	// AlgorithmAESGCM is AES-256-GCM, the default suite.
	AlgorithmAESGCM = "AES-256-GCM"
	// AlgorithmChaCha20Poly1305 is ChaCha20-Poly1305, for platforms
	// without AES hardware acceleration.
	AlgorithmChaCha20Poly1305 = "ChaCha20-Poly1305"
)

// suite is one registered AEAD algorithm.
type suite struct {
	nonceSize int
	encrypt   func(key, nonce, aad, plaintext []byte) ([]byte, error)
	decrypt   func(key, nonce, aad, ciphertext []byte) ([]byte, error)
}

var suites = map[string]suite{
	AlgorithmAESGCM: {
		nonceSize: crypto.NonceSize,
		encrypt:   crypto.EncryptAESGCM,
		decrypt:   crypto.DecryptAESGCM,
	},
	AlgorithmChaCha20Poly1305: {
		nonceSize: crypto.NonceSize,
		encrypt:   crypto.EncryptChaCha20Poly1305,
		decrypt:   crypto.DecryptChaCha20Poly1305,
	},
}

// Sealer encrypts and decrypts opaque payloads under keyring keys. It
// holds key ids only; raw key material stays inside the KeyManager.
//
// Seal is non-deterministic (fresh IV per call); Unseal is deterministic
// given a valid envelope and key. Both are safe for concurrent use.
type Sealer struct {
	keys      *KeyManager
	algorithm string
}

// NewSealer creates a sealer over the given keyring. The default suite is
// AES-256-GCM; use [WithAlgorithm] to select another registered suite.
func NewSealer(keys *KeyManager, opts ...SealerOption) (*Sealer, error) {
	cfg := &sealerConfig{algorithm: AlgorithmAESGCM}
	for _, opt := range opts {
		opt(cfg)
	}

	if _, ok := suites[cfg.algorithm]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.algorithm)
	}

	return &Sealer{keys: keys, algorithm: cfg.algorithm}, nil
}

// Algorithm returns the suite used for new seals.
func (s *Sealer) Algorithm() string {
	return s.algorithm
}

// Seal encrypts plaintext under the symmetric key identified by keyID,
// producing a self-describing envelope with a fresh IV. Returns
// ErrKeyNotFound if the key id does not resolve in the keyring and a
// SealError on cryptographic failure.
func (s *Sealer) Seal(plaintext []byte, keyID string) (*Envelope, error) {
	key, err := s.keys.symmetricKey(keyID)
	if err != nil {
		return nil, err
	}

	alg := suites[s.algorithm]

	iv, err := crypto.RandomNonce(alg.nonceSize)
	if err != nil {
		return nil, &SealError{Stage: "nonce", Err: err}
	}

	env := &Envelope{
		Version:   EnvelopeVersion,
		Algorithm: s.algorithm,
		KeyID:     keyID,
		IV:        iv,
	}

	ciphertext, err := alg.encrypt(key, iv, env.additionalData(), plaintext)
	if err != nil {
		return nil, &SealError{Stage: "encrypt", Err: err}
	}
	env.Ciphertext = ciphertext

	return env, nil
}

// Unseal decrypts an envelope. Returns ErrUnknownAlgorithm for an
// unregistered suite, ErrKeyNotFound if the envelope's key id is absent
// from the keyring, and an UnsealError when authentication fails —
// corrupted or tampered data never yields partial plaintext.
func (s *Sealer) Unseal(env *Envelope) ([]byte, error) {
	alg, ok := suites[env.Algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, env.Algorithm)
	}

	key, err := s.keys.symmetricKey(env.KeyID)
	if err != nil {
		return nil, err
	}

	plaintext, err := alg.decrypt(key, env.IV, env.additionalData(), env.Ciphertext)
	if err != nil {
		return nil, &UnsealError{Stage: "decrypt", Err: err}
	}
	return plaintext, nil
}
