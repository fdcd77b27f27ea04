package crypto

import (
	"bytes"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	secret := []byte("shared secret material")
	salt := []byte("salt value")
	info := []byte(HKDFContext)

	k1, err := DeriveKey(secret, salt, info, KeySize)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	k2, err := DeriveKey(secret, salt, info, KeySize)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(k1, k2) {
		t.Error("same inputs produced different keys")
	}
	if len(k1) != KeySize {
		t.Errorf("key length = %d, want %d", len(k1), KeySize)
	}
}

func TestDeriveKey_EmptySalt(t *testing.T) {
	key, err := DeriveKey([]byte("secret"), nil, []byte("info"), KeySize)
	if err != nil {
		t.Fatalf("DeriveKey() with empty salt error = %v", err)
	}
	if len(key) != KeySize {
		t.Errorf("key length = %d, want %d", len(key), KeySize)
	}
}

func TestDeriveKey_DistinctInfo(t *testing.T) {
	secret := []byte("secret")
	salt := []byte("salt")

	k1, err := DeriveKey(secret, salt, []byte("context-a"), KeySize)
	if err != nil {
		t.Fatal(err)
	}
	k2, err := DeriveKey(secret, salt, []byte("context-b"), KeySize)
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(k1, k2) {
		t.Error("different info strings produced the same key")
	}
}

func TestDerivePassphraseKey(t *testing.T) {
	passphrase := []byte("correct horse battery staple")
	salt := []byte("0123456789abcdef")
	info := []byte("sealmail:export:v1")

	k1, err := DerivePassphraseKey(passphrase, salt, info)
	if err != nil {
		t.Fatalf("DerivePassphraseKey() error = %v", err)
	}
	k2, err := DerivePassphraseKey(passphrase, salt, info)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(k1, k2) {
		t.Error("same passphrase produced different keys")
	}

	k3, err := DerivePassphraseKey([]byte("wrong passphrase"), salt, info)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(k1, k3) {
		t.Error("different passphrases produced the same key")
	}
}
