package sealmail

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestKeyManager_ExportImport_RoundTrip(t *testing.T) {
	source := NewKeyManager()
	keyID, err := source.GenerateSymmetricKey()
	if err != nil {
		t.Fatal(err)
	}
	sourcePub, err := source.IdentityPublicKey()
	if err != nil {
		t.Fatal(err)
	}
	sourceKey, err := source.symmetricKey(keyID)
	if err != nil {
		t.Fatal(err)
	}

	passphrase := []byte("correct horse battery staple")
	export, err := source.Export(passphrase)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	// The export is a self-describing document that survives JSON
	// serialization.
	data, err := json.Marshal(export)
	if err != nil {
		t.Fatal(err)
	}
	var restored ExportedKeyring
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatal(err)
	}

	target := NewKeyManager()
	if err := target.Import(&restored, passphrase); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	current, err := target.CurrentSymmetricKeyID()
	if err != nil {
		t.Fatalf("CurrentSymmetricKeyID() after import error = %v", err)
	}
	if current != keyID {
		t.Errorf("current key id = %s, want %s", current, keyID)
	}

	targetKey, err := target.symmetricKey(keyID)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(targetKey, sourceKey) {
		t.Error("imported key material differs")
	}

	targetPub, err := target.IdentityPublicKey()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(targetPub, sourcePub) {
		t.Error("imported identity key differs")
	}
}

func TestKeyManager_ImportUnsealsOldDrafts(t *testing.T) {
	source := NewKeyManager()
	keyID, err := source.GenerateSymmetricKey()
	if err != nil {
		t.Fatal(err)
	}
	sealer, err := NewSealer(source)
	if err != nil {
		t.Fatal(err)
	}
	env, err := sealer.Seal([]byte("hello world"), keyID)
	if err != nil {
		t.Fatal(err)
	}

	export, err := source.Export([]byte("passphrase"))
	if err != nil {
		t.Fatal(err)
	}

	target := NewKeyManager()
	if err := target.Import(export, []byte("passphrase")); err != nil {
		t.Fatal(err)
	}

	restored, err := NewSealer(target)
	if err != nil {
		t.Fatal(err)
	}
	plaintext, err := restored.Unseal(env)
	if err != nil {
		t.Fatalf("Unseal() with imported keyring error = %v", err)
	}
	if string(plaintext) != "hello world" {
		t.Errorf("plaintext = %q", plaintext)
	}
}

func TestKeyManager_ImportWrongPassphrase(t *testing.T) {
	source := NewKeyManager()
	if _, err := source.GenerateSymmetricKey(); err != nil {
		t.Fatal(err)
	}

	export, err := source.Export([]byte("right"))
	if err != nil {
		t.Fatal(err)
	}

	target := NewKeyManager()
	err = target.Import(export, []byte("wrong"))
	if !errors.Is(err, ErrInvalidImportData) {
		t.Errorf("expected ErrInvalidImportData, got %v", err)
	}
	if target.Ready() {
		t.Error("failed import left the keyring ready")
	}
}

func TestKeyManager_ExportRequiresPassphrase(t *testing.T) {
	keys := NewKeyManager()
	if _, err := keys.GenerateSymmetricKey(); err != nil {
		t.Fatal(err)
	}

	if _, err := keys.Export(nil); err == nil {
		t.Error("expected error for empty passphrase")
	}
}

func TestExportedKeyring_Validate(t *testing.T) {
	keys := NewKeyManager()
	if _, err := keys.GenerateSymmetricKey(); err != nil {
		t.Fatal(err)
	}
	valid, err := keys.Export([]byte("pass"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func(*ExportedKeyring)
	}{
		{"wrong version", func(e *ExportedKeyring) { e.Version = 2 }},
		{"unknown kdf", func(e *ExportedKeyring) { e.KDF = "PBKDF2" }},
		{"unknown algorithm", func(e *ExportedKeyring) { e.Algorithm = "DES" }},
		{"bad salt encoding", func(e *ExportedKeyring) { e.Salt = "!!!" }},
		{"short salt", func(e *ExportedKeyring) { e.Salt = "AAAA" }},
		{"bad nonce encoding", func(e *ExportedKeyring) { e.Nonce = "!!!" }},
		{"short nonce", func(e *ExportedKeyring) { e.Nonce = "AAAA" }},
		{"missing keyring", func(e *ExportedKeyring) { e.Keyring = "" }},
		{"bad keyring encoding", func(e *ExportedKeyring) { e.Keyring = "!!!" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := *valid
			tt.mutate(&broken)
			if err := broken.Validate(); !errors.Is(err, ErrInvalidImportData) {
				t.Errorf("expected ErrInvalidImportData, got %v", err)
			}
		})
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on untouched export error = %v", err)
	}
}

func TestKeyManager_ImportMergesOverExisting(t *testing.T) {
	source := NewKeyManager()
	sourceKeyID, err := source.GenerateSymmetricKey()
	if err != nil {
		t.Fatal(err)
	}
	export, err := source.Export([]byte("pass"))
	if err != nil {
		t.Fatal(err)
	}

	target := NewKeyManager()
	targetKeyID, err := target.GenerateSymmetricKey()
	if err != nil {
		t.Fatal(err)
	}

	if err := target.Import(export, []byte("pass")); err != nil {
		t.Fatal(err)
	}

	// The imported current-key designation wins, but the target's own
	// key remains resolvable.
	current, err := target.CurrentSymmetricKeyID()
	if err != nil {
		t.Fatal(err)
	}
	if current != sourceKeyID {
		t.Errorf("current = %s, want imported %s", current, sourceKeyID)
	}
	if _, err := target.symmetricKey(targetKeyID); err != nil {
		t.Errorf("pre-import key unresolvable after merge: %v", err)
	}
}
