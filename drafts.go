package sealmail

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DraftStore is the orchestration layer over the sealing core: it encodes
// messages to wire format, seals them under the keyring's current key,
// and persists blob plus metadata in the blob store.
//
// Every write goes through canonical metadata, so loading a draft written
// by an older client (legacy keyId metadata) and saving it again
// completes the lazy key-name migration.
type DraftStore struct {
	keys        *KeyManager
	transformer *Transformer
	blobs       BlobStore
	prefix      string
}

// NewDraftStore creates a draft store over the given keyring and blob
// store, sealing with the sealer's configured algorithm suite.
func NewDraftStore(keys *KeyManager, sealer *Sealer, blobs BlobStore, opts ...DraftStoreOption) *DraftStore {
	cfg := &draftStoreConfig{prefix: defaultDraftPrefix}
	for _, opt := range opts {
		opt(cfg)
	}

	return &DraftStore{
		keys:        keys,
		transformer: NewTransformer(sealer),
		blobs:       blobs,
		prefix:      cfg.prefix,
	}
}

// Save encodes, seals, and stores a new draft, returning its id. If the
// keyring has no symmetric key yet, one is generated on first use.
func (d *DraftStore) Save(msg *Message) (string, error) {
	id := uuid.NewString()
	if err := d.write(id, msg); err != nil {
		return "", err
	}
	return id, nil
}

// Update re-encodes, re-seals, and overwrites an existing draft. The
// rewrite always persists canonical metadata, which is the write-back
// half of the legacy metadata migration.
func (d *DraftStore) Update(id string, msg *Message) error {
	if _, _, err := d.blobs.Get(d.prefix + id); err != nil {
		return err
	}
	return d.write(id, msg)
}

// Get loads, unseals, and parses a draft.
func (d *DraftStore) Get(id string) (*Message, error) {
	raw, err := d.GetRaw(id)
	if err != nil {
		return nil, err
	}
	return ParseMessage(raw)
}

// GetRaw loads and unseals a draft, returning the wire-format document
// without parsing it.
func (d *DraftStore) GetRaw(id string) ([]byte, error) {
	blob, metadata, err := d.blobs.Get(d.prefix + id)
	if err != nil {
		return nil, err
	}
	return d.transformer.FromEncryptedAndEncodedData(blob, metadata)
}

// List returns the ids of all stored drafts.
func (d *DraftStore) List() ([]string, error) {
	paths, err := d.blobs.List(d.prefix)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(paths))
	for i, path := range paths {
		ids[i] = path[len(d.prefix):]
	}
	return ids, nil
}

// Delete removes a draft. Deleting a missing draft is not an error.
func (d *DraftStore) Delete(id string) error {
	return d.blobs.Delete(d.prefix + id)
}

func (d *DraftStore) write(id string, msg *Message) error {
	raw, err := EncodeMessage(msg)
	if err != nil {
		return err
	}

	keyID, err := d.keys.CurrentSymmetricKeyID()
	if errors.Is(err, ErrKeyNotFound) {
		keyID, err = d.keys.GenerateSymmetricKey()
	}
	if err != nil {
		return fmt.Errorf("resolve sealing key: %w", err)
	}

	blob, metadata, err := d.transformer.ToEncryptedAndEncodedData(raw, keyID)
	if err != nil {
		return err
	}
	return d.blobs.Put(d.prefix+id, blob, metadata)
}
