package crypto

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// Argon2id parameters for passphrase-based key derivation, per the
// RFC 9106 recommended settings for memory-constrained environments.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// DeriveKey derives a key using HKDF-SHA-512.
//
// Parameters:
//   - secret: the input key material
//   - salt: optional salt value; if empty, a zero-filled salt is used
//   - info: context/application-specific info for domain separation
//   - length: desired output key length in bytes
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret, salt, info)
	key := make([]byte, length)

	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	return key, nil
}

// DerivePassphraseKey derives an AEAD wrapping key from a passphrase using
// Argon2id followed by HKDF-SHA-512 expansion with the given context info.
func DerivePassphraseKey(passphrase, salt, info []byte) ([]byte, error) {
	ikm := argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, KeySize)
	return DeriveKey(ikm, salt, info, KeySize)
}
