package crypto

import "errors"

var (
	// ErrInvalidKeySize is returned when a symmetric key has the wrong size.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrInvalidNonceSize is returned when an AEAD nonce has the wrong size.
	ErrInvalidNonceSize = errors.New("invalid nonce size")

	// ErrDecryptionFailed is returned when AEAD decryption fails
	// authentication. This covers tampering, truncation, and wrong keys.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidPrivateKeySize is returned when a signing private key has
	// the wrong size.
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")

	// ErrInvalidPublicKeySize is returned when a signing public key has
	// the wrong size.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")

	// ErrSignatureVerificationFailed is returned when signature
	// verification fails.
	ErrSignatureVerificationFailed = errors.New("signature verification failed")
)
