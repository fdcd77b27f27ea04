// Package sealmail provides the client-side sealing core for an
// end-to-end-encrypted email service: a per-user keyring, symmetric
// sealing of message payloads, and a lossless RFC 822 codec, so that
// plaintext never leaves the device.
//
// The package is organized around four components:
//
//   - [EncodeMessage] and [ParseMessage] convert between structured
//     message fields and wire-format RFC 822 documents.
//   - [KeyManager] owns the keyring: symmetric content-encryption keys,
//     the identity signing key pair, and the backing secure [KeyStore].
//   - [Sealer] encrypts and decrypts opaque payloads under keyring keys,
//     producing self-describing [Envelope] values.
//   - [Transformer] bridges plaintext documents and the blob-store
//     representation (ciphertext blob plus string metadata), including
//     migration of the legacy keyId metadata name.
//
// Basic usage:
//
//	keys := sealmail.NewKeyManager()
//	keyID, err := keys.GenerateSymmetricKey()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	sealer, err := sealmail.NewSealer(keys)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw, err := sealmail.EncodeMessage(&sealmail.Message{
//	    From:    sealmail.Address{Addr: "alice@example.com"},
//	    To:      []sealmail.Address{{Addr: "bob@example.com"}},
//	    Subject: "Hello",
//	    Body:    "Sealed with care.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tx := sealmail.NewTransformer(sealer)
//	blob, metadata, err := tx.ToEncryptedAndEncodedData(raw, keyID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// blob and metadata go to the blob store; plaintext never does.
//
// All operations are synchronous and safe for concurrent use; the keyring
// is the only mutable shared state and is guarded internally. None of the
// components performs network I/O.
package sealmail
