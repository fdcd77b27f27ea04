package sealmail

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/sealmail/client-go/internal/crypto"
)

// EnvelopeVersion is the current sealed-envelope format version.
const EnvelopeVersion = 1

// Envelope is the self-describing representation of a sealed payload:
// algorithm suite, key reference, IV, and ciphertext. It is the unit
// exchanged with storage. The key id must resolve to a symmetric key in
// the keyring that sealed it, or unsealing fails.
type Envelope struct {
	// Version is the envelope format version.
	Version int
	// Algorithm names the AEAD suite, e.g. "AES-256-GCM". It is an open
	// tag: envelopes sealed with future suites remain decodable, and
	// unsealing rejects suites it does not know.
	Algorithm string
	// KeyID references the symmetric key in the keyring.
	KeyID string
	// IV is the fresh per-seal initialization vector.
	IV []byte
	// Ciphertext is the encrypted payload including the authentication
	// tag.
	Ciphertext []byte
}

// envelopeWire is the CBOR framing of an envelope. Short keys keep the
// framing overhead small next to the ciphertext.
type envelopeWire struct {
	Version    int    `cbor:"v"`
	Algorithm  string `cbor:"alg"`
	KeyID      string `cbor:"kid"`
	IV         []byte `cbor:"iv"`
	Ciphertext []byte `cbor:"ct"`
}

// envelopeJSON is the JSON form with base64url-encoded binary fields,
// for logs, debugging, and interop with SDKs that exchange envelopes as
// text.
type envelopeJSON struct {
	Version    int    `json:"v"`
	Algorithm  string `json:"alg"`
	KeyID      string `json:"kid"`
	IV         string `json:"iv"`
	Ciphertext string `json:"ct"`
}

// MarshalBinary encodes the envelope into its CBOR storage framing.
func (e *Envelope) MarshalBinary() ([]byte, error) {
	data, err := cbor.Marshal(envelopeWire{
		Version:    e.Version,
		Algorithm:  e.Algorithm,
		KeyID:      e.KeyID,
		IV:         e.IV,
		Ciphertext: e.Ciphertext,
	})
	if err != nil {
		return nil, &SealError{Stage: "encode", Err: err}
	}
	return data, nil
}

// UnmarshalBinary decodes an envelope from its CBOR storage framing.
// Malformed framing is reported as an UnsealError: a blob that cannot be
// decoded is corrupt data, not a missing key.
func (e *Envelope) UnmarshalBinary(data []byte) error {
	var wire envelopeWire
	if err := cbor.Unmarshal(data, &wire); err != nil {
		return &UnsealError{Stage: "decode", Err: err}
	}
	*e = Envelope{
		Version:    wire.Version,
		Algorithm:  wire.Algorithm,
		KeyID:      wire.KeyID,
		IV:         wire.IV,
		Ciphertext: wire.Ciphertext,
	}
	return nil
}

// MarshalJSON implements json.Marshaler with base64url binary fields.
func (e *Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(envelopeJSON{
		Version:    e.Version,
		Algorithm:  e.Algorithm,
		KeyID:      e.KeyID,
		IV:         crypto.ToBase64URL(e.IV),
		Ciphertext: crypto.ToBase64URL(e.Ciphertext),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Binary fields accept any
// common base64 variant, since other SDKs differ on padding.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	var wire envelopeJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return &UnsealError{Stage: "decode", Err: err}
	}

	iv, err := crypto.DecodeBase64(wire.IV)
	if err != nil {
		return &UnsealError{Stage: "decode", Err: fmt.Errorf("decode iv: %w", err)}
	}
	ciphertext, err := crypto.DecodeBase64(wire.Ciphertext)
	if err != nil {
		return &UnsealError{Stage: "decode", Err: fmt.Errorf("decode ciphertext: %w", err)}
	}

	*e = Envelope{
		Version:    wire.Version,
		Algorithm:  wire.Algorithm,
		KeyID:      wire.KeyID,
		IV:         iv,
		Ciphertext: ciphertext,
	}
	return nil
}

// additionalData is the associated data authenticated alongside the
// ciphertext. Binding the algorithm and key id prevents an envelope's
// routing fields from being swapped without detection.
func (e *Envelope) additionalData() []byte {
	return []byte(fmt.Sprintf("sealmail:envelope:v%d:%s:%s", e.Version, e.Algorithm, e.KeyID))
}
