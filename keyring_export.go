package sealmail

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sealmail/client-go/internal/crypto"
)

// KeyringExportVersion is the current keyring export format version.
const KeyringExportVersion = 1

const (
	exportKDF        = "Argon2id+HKDF-SHA-512"
	exportAlgorithm  = AlgorithmAESGCM
	exportKDFContext = "sealmail:export:v1"
	exportSaltSize   = 16
)

// ExportedKeyring is a portable, passphrase-protected backup of a
// keyring. The key material is sealed under a key derived from the
// passphrase; the document itself is safe to store or transfer.
//
// WARNING: the passphrase is the only protection. Anyone holding the
// document and the passphrase can decrypt every message sealed by this
// keyring.
type ExportedKeyring struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// KDF names the passphrase key-derivation scheme.
	KDF string `json:"kdf"`
	// Algorithm names the AEAD suite wrapping the key material.
	Algorithm string `json:"algorithm"`
	// Salt is the KDF salt (base64url, 16 bytes decoded).
	Salt string `json:"salt"`
	// Nonce is the wrapping AEAD nonce (base64url, 12 bytes decoded).
	Nonce string `json:"nonce"`
	// Keyring is the sealed key material (base64url).
	Keyring string `json:"keyring"`
	// ExportedAt is the export timestamp. Informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// exportPayload is the plaintext inside an export: every secure-store
// entry of the keyring, keyed by entry name.
type exportPayload struct {
	Entries map[string]string `json:"entries"` // name -> base64url key bytes
}

// Validate checks that the exported document is structurally valid.
// Validation does not require the passphrase.
func (e *ExportedKeyring) Validate() error {
	if e.Version != KeyringExportVersion {
		return fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, e.Version, KeyringExportVersion)
	}
	if e.KDF != exportKDF {
		return fmt.Errorf("%w: unsupported kdf %q", ErrInvalidImportData, e.KDF)
	}
	if _, ok := suites[e.Algorithm]; !ok {
		return fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidImportData, e.Algorithm)
	}

	salt, err := crypto.FromBase64URL(e.Salt)
	if err != nil {
		return fmt.Errorf("%w: invalid salt encoding", ErrInvalidImportData)
	}
	if len(salt) != exportSaltSize {
		return fmt.Errorf("%w: salt size %d, expected %d", ErrInvalidImportData, len(salt), exportSaltSize)
	}

	nonce, err := crypto.FromBase64URL(e.Nonce)
	if err != nil {
		return fmt.Errorf("%w: invalid nonce encoding", ErrInvalidImportData)
	}
	if len(nonce) != crypto.NonceSize {
		return fmt.Errorf("%w: nonce size %d, expected %d", ErrInvalidImportData, len(nonce), crypto.NonceSize)
	}

	if e.Keyring == "" {
		return fmt.Errorf("%w: keyring is required", ErrInvalidImportData)
	}
	if _, err := crypto.FromBase64URL(e.Keyring); err != nil {
		return fmt.Errorf("%w: invalid keyring encoding", ErrInvalidImportData)
	}
	return nil
}

// Export returns a passphrase-protected backup of all key material in
// this keyring, including the identity key and the current-key
// designation.
func (m *KeyManager) Export(passphrase []byte) (*ExportedKeyring, error) {
	if len(passphrase) == 0 {
		return nil, errors.New("export passphrase is required")
	}

	payload, err := m.snapshot()
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal keyring: %w", err)
	}

	salt, err := crypto.RandomNonce(exportSaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	key, err := crypto.DerivePassphraseKey(passphrase, salt, []byte(exportKDFContext))
	if err != nil {
		return nil, fmt.Errorf("derive export key: %w", err)
	}
	nonce, err := crypto.RandomNonce(crypto.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	sealed, err := crypto.EncryptAESGCM(key, nonce, []byte(exportKDFContext), plaintext)
	if err != nil {
		return nil, fmt.Errorf("seal keyring: %w", err)
	}

	return &ExportedKeyring{
		Version:    KeyringExportVersion,
		KDF:        exportKDF,
		Algorithm:  exportAlgorithm,
		Salt:       crypto.ToBase64URL(salt),
		Nonce:      crypto.ToBase64URL(nonce),
		Keyring:    crypto.ToBase64URL(sealed),
		ExportedAt: time.Now().UTC(),
	}, nil
}

// Import restores key material from an exported keyring into this
// manager's secure store. Entries are merged over any existing ones.
// Returns ErrInvalidImportData for a malformed document or a wrong
// passphrase.
func (m *KeyManager) Import(data *ExportedKeyring, passphrase []byte) error {
	if err := data.Validate(); err != nil {
		return err
	}

	// Validate() verified the encodings already.
	salt, _ := crypto.FromBase64URL(data.Salt)
	nonce, _ := crypto.FromBase64URL(data.Nonce)
	sealed, _ := crypto.FromBase64URL(data.Keyring)

	key, err := crypto.DerivePassphraseKey(passphrase, salt, []byte(exportKDFContext))
	if err != nil {
		return fmt.Errorf("derive import key: %w", err)
	}

	plaintext, err := crypto.DecryptAESGCM(key, nonce, []byte(exportKDFContext), sealed)
	if err != nil {
		return fmt.Errorf("%w: wrong passphrase or corrupt keyring", ErrInvalidImportData)
	}

	var payload exportPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return fmt.Errorf("%w: malformed keyring payload", ErrInvalidImportData)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for name, encoded := range payload.Entries {
		entry, err := crypto.FromBase64URL(encoded)
		if err != nil {
			return fmt.Errorf("%w: malformed entry %q", ErrInvalidImportData, name)
		}
		if err := m.store.Store(name, entry); err != nil {
			return fmt.Errorf("store entry %q: %w", name, err)
		}
	}
	m.cache.Purge()
	return nil
}

func (m *KeyManager) snapshot() (*exportPayload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names, err := m.store.List()
	if err != nil {
		return nil, fmt.Errorf("list keyring entries: %w", err)
	}

	payload := &exportPayload{Entries: make(map[string]string, len(names))}
	for _, name := range names {
		entry, err := m.store.Load(name)
		if err != nil {
			return nil, fmt.Errorf("load entry %q: %w", name, err)
		}
		payload.Entries[name] = crypto.ToBase64URL(entry)
	}
	return payload, nil
}
