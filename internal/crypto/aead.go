package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// randReader is the random source used for key, nonce, and identity key
// generation. It defaults to crypto/rand but can be overridden for testing.
var randReader io.Reader = rand.Reader

// RandomKey generates a fresh 256-bit symmetric key.
func RandomKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(randReader, key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// RandomNonce generates a fresh AEAD nonce of the given size.
func RandomNonce(size int) ([]byte, error) {
	nonce := make([]byte, size)
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return nonce, nil
}

// EncryptAESGCM encrypts plaintext using AES-256-GCM with a detached nonce.
// The returned ciphertext includes the 16-byte authentication tag but not
// the nonce; the caller stores the nonce alongside it.
func EncryptAESGCM(key, nonce, aad, plaintext []byte) ([]byte, error) {
	aead, err := newAESGCM(key, len(nonce))
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// DecryptAESGCM decrypts AES-256-GCM ciphertext produced by [EncryptAESGCM].
// Authentication failure returns ErrDecryptionFailed, never partial
// plaintext.
func DecryptAESGCM(key, nonce, aad, ciphertext []byte) ([]byte, error) {
	aead, err := newAESGCM(key, len(nonce))
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newAESGCM(key []byte, nonceSize int) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	if nonceSize != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, nonceSize, NonceSize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return aead, nil
}

// EncryptChaCha20Poly1305 encrypts plaintext using ChaCha20-Poly1305 with a
// detached nonce, mirroring [EncryptAESGCM].
func EncryptChaCha20Poly1305(key, nonce, aad, plaintext []byte) ([]byte, error) {
	aead, err := newChaCha20Poly1305(key, len(nonce))
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// DecryptChaCha20Poly1305 decrypts ChaCha20-Poly1305 ciphertext produced by
// [EncryptChaCha20Poly1305].
func DecryptChaCha20Poly1305(key, nonce, aad, ciphertext []byte) ([]byte, error) {
	aead, err := newChaCha20Poly1305(key, len(nonce))
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newChaCha20Poly1305(key []byte, nonceSize int) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}
	if nonceSize != NonceSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidNonceSize, nonceSize, NonceSize)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return aead, nil
}
