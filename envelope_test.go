package sealmail

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func sampleEnvelope() *Envelope {
	return &Envelope{
		Version:    EnvelopeVersion,
		Algorithm:  AlgorithmAESGCM,
		KeyID:      "8d7f58e2-4b43-4f0a-9c93-0f0f6d9b2c11",
		IV:         []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Ciphertext: []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0xff},
	}
}

func TestEnvelope_BinaryRoundTrip(t *testing.T) {
	env := sampleEnvelope()

	data, err := env.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	var decoded Envelope
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}

	assertEnvelopeEqual(t, &decoded, env)
}

func TestEnvelope_JSONRoundTrip(t *testing.T) {
	env := sampleEnvelope()

	data, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var decoded Envelope
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}

	assertEnvelopeEqual(t, &decoded, env)
}

func TestEnvelope_JSONFieldsAreBase64URL(t *testing.T) {
	data, err := json.Marshal(sampleEnvelope())
	if err != nil {
		t.Fatal(err)
	}

	var wire map[string]any
	if err := json.Unmarshal(data, &wire); err != nil {
		t.Fatal(err)
	}

	iv, ok := wire["iv"].(string)
	if !ok || iv == "" {
		t.Errorf("iv is not a string: %v", wire["iv"])
	}
	if _, ok := wire["ct"].(string); !ok {
		t.Errorf("ct is not a string: %v", wire["ct"])
	}
}

func TestEnvelope_UnmarshalBinary_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not cbor at all, definitely text")},
		{"truncated", []byte{0xa5, 0x61}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope
			err := env.UnmarshalBinary(tt.data)
			if !errors.Is(err, ErrUnsealingFailed) {
				t.Errorf("expected ErrUnsealingFailed, got %v", err)
			}
		})
	}
}

func TestEnvelope_UnmarshalJSON_BadEncoding(t *testing.T) {
	raw := `{"v":1,"alg":"AES-256-GCM","kid":"k","iv":"!!!","ct":"also !!!"}`

	var env Envelope
	err := json.Unmarshal([]byte(raw), &env)
	if !errors.Is(err, ErrUnsealingFailed) {
		t.Errorf("expected ErrUnsealingFailed, got %v", err)
	}
}

func TestEnvelope_AdditionalDataBindsRoutingFields(t *testing.T) {
	a := sampleEnvelope()
	b := sampleEnvelope()
	b.KeyID = "different-key"

	if bytes.Equal(a.additionalData(), b.additionalData()) {
		t.Error("additional data does not depend on key id")
	}

	c := sampleEnvelope()
	c.Algorithm = AlgorithmChaCha20Poly1305
	if bytes.Equal(a.additionalData(), c.additionalData()) {
		t.Error("additional data does not depend on algorithm")
	}
}

func assertEnvelopeEqual(t *testing.T, got, want *Envelope) {
	t.Helper()
	if got.Version != want.Version {
		t.Errorf("Version = %d, want %d", got.Version, want.Version)
	}
	if got.Algorithm != want.Algorithm {
		t.Errorf("Algorithm = %s, want %s", got.Algorithm, want.Algorithm)
	}
	if got.KeyID != want.KeyID {
		t.Errorf("KeyID = %s, want %s", got.KeyID, want.KeyID)
	}
	if !bytes.Equal(got.IV, want.IV) {
		t.Errorf("IV = %v, want %v", got.IV, want.IV)
	}
	if !bytes.Equal(got.Ciphertext, want.Ciphertext) {
		t.Errorf("Ciphertext = %v, want %v", got.Ciphertext, want.Ciphertext)
	}
}
