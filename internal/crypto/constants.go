package crypto

const (
	// HKDFContext is the context string used in HKDF key derivation
	// for domain separation.
	HKDFContext = "sealmail:keyring:v1"

	// KeySize is the size of a symmetric content-encryption key in bytes.
	// Both AEAD suites (AES-256-GCM and ChaCha20-Poly1305) use 256-bit keys.
	KeySize = 32

	// NonceSize is the size of an AEAD nonce in bytes. Both suites use
	// 96-bit nonces.
	NonceSize = 12

	// TagSize is the size of an AEAD authentication tag in bytes.
	TagSize = 16

	// MLDSAPublicKeySize is the size of an ML-DSA-65 public key in bytes.
	MLDSAPublicKeySize = 1952
	// MLDSAPrivateKeySize is the size of an ML-DSA-65 private key in bytes.
	MLDSAPrivateKeySize = 4032
	// MLDSASignatureSize is the size of an ML-DSA-65 signature in bytes.
	MLDSASignatureSize = 3309
)
