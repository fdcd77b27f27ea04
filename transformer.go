package sealmail

// Metadata field names persisted alongside sealed blobs. These are part of
// the storage contract: new writes always use the canonical names, and
// the legacy name must stay readable for data written by older clients.
const (
	// MetadataKeyID is the canonical metadata name for the key id.
	MetadataKeyID = "key-id"
	// MetadataAlgorithm is the metadata name for the algorithm suite.
	MetadataAlgorithm = "algorithm"

	// legacyMetadataKeyID is the key-id name written by older clients.
	// Readable forever, never written.
	legacyMetadataKeyID = "keyId"
)

// Transformer bridges plaintext RFC 822 documents and the blob-store
// representation: an encrypted blob plus a string metadata map. It also
// handles migration of the legacy keyId metadata name on reads.
type Transformer struct {
	sealer *Sealer
}

// NewTransformer creates a transformer over the given sealer.
func NewTransformer(sealer *Sealer) *Transformer {
	return &Transformer{sealer: sealer}
}

// ToEncryptedAndEncodedData seals a plaintext document under the given
// key and returns the storable blob together with its metadata map. The
// metadata always carries the canonical key-id and algorithm names.
func (t *Transformer) ToEncryptedAndEncodedData(plaintext []byte, keyID string) ([]byte, map[string]string, error) {
	env, err := t.sealer.Seal(plaintext, keyID)
	if err != nil {
		return nil, nil, err
	}

	blob, err := env.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}

	metadata := map[string]string{
		MetadataKeyID:     env.KeyID,
		MetadataAlgorithm: env.Algorithm,
	}
	return blob, metadata, nil
}

// FromEncryptedAndEncodedData reverses [Transformer.ToEncryptedAndEncodedData].
//
// The key id is resolved from the metadata: the canonical key-id entry
// wins; if absent, the legacy keyId entry is accepted (migration-on-read).
// Returns ErrMissingKeyID when neither is present. This function never
// rewrites the stored metadata — persisting the canonical name is the
// caller's job on its next successful write (see [CanonicalizeMetadata]
// and [DraftStore]).
func (t *Transformer) FromEncryptedAndEncodedData(blob []byte, metadata map[string]string) ([]byte, error) {
	keyID, err := ResolveKeyID(metadata)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if err := env.UnmarshalBinary(blob); err != nil {
		return nil, err
	}

	// The metadata is authoritative for key resolution; the envelope's
	// own fields only describe how it was sealed.
	env.KeyID = keyID
	if alg, ok := metadata[MetadataAlgorithm]; ok {
		env.Algorithm = alg
	}

	return t.sealer.Unseal(&env)
}

// ResolveKeyID extracts the key id from a metadata map, preferring the
// canonical key-id name and falling back to the legacy keyId name.
// Returns ErrMissingKeyID if neither is present.
func ResolveKeyID(metadata map[string]string) (string, error) {
	if keyID, ok := metadata[MetadataKeyID]; ok && keyID != "" {
		return keyID, nil
	}
	if keyID, ok := metadata[legacyMetadataKeyID]; ok && keyID != "" {
		return keyID, nil
	}
	return "", ErrMissingKeyID
}

// CanonicalizeMetadata returns a copy of the metadata with the key id
// under its canonical name and the legacy name removed. Other entries are
// preserved. Callers persist the result on their next successful write,
// completing the lazy migration.
func CanonicalizeMetadata(metadata map[string]string) (map[string]string, error) {
	keyID, err := ResolveKeyID(metadata)
	if err != nil {
		return nil, err
	}

	canonical := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if k == legacyMetadataKeyID {
			continue
		}
		canonical[k] = v
	}
	canonical[MetadataKeyID] = keyID
	return canonical, nil
}
