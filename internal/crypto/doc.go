// Package crypto provides the cryptographic primitives for the sealmail SDK.
// It implements authenticated symmetric encryption, identity signatures, and
// key derivation using modern, standardized algorithms.
//
// # Algorithm Suite
//
// The package uses the following cryptographic algorithms:
//
//   - AES-256-GCM: Authenticated encryption with associated data (AEAD),
//     the default suite for sealing message payloads. Provides
//     confidentiality and integrity.
//
//   - ChaCha20-Poly1305 (RFC 8439): Alternative AEAD suite for platforms
//     without AES hardware acceleration. Equivalent 256-bit security.
//
//   - ML-DSA-65 (NIST FIPS 204): Post-quantum digital signature algorithm
//     for the per-keyring identity key pair. Provides 192-bit security.
//
//   - HKDF-SHA-512 (RFC 5869) and Argon2id (RFC 9106): Key derivation for
//     wrapping exported keyrings under a passphrase.
//
// # Security Model
//
// Both AEAD suites authenticate the ciphertext and any associated data, so
// tampering, truncation, and wrong-key decryption all surface as errors.
// There is no unauthenticated mode: a decryption that fails authentication
// never yields partial plaintext.
//
// Nonces MUST be unique for each encryption with the same key. Nonce reuse
// completely breaks the security of both suites, allowing attackers to
// recover the authentication key and forge messages. [RandomNonce] draws
// from crypto/rand; callers must never construct nonces by other means
// outside of tests.
//
// # Key Management
//
// This package deals in raw key bytes only. Key lifecycle, storage, and the
// rule that key material never crosses the SDK boundary are enforced one
// level up, in the root sealmail package.
package crypto
