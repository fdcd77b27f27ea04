package sealmail

// defaultKeyCacheSize bounds the KeyManager's in-memory cache of keys
// loaded from the secure store. Production stores may be slow or
// hardware-backed, so reads are cached; the cache is purged on Reset.
const defaultKeyCacheSize = 128

// defaultDraftPrefix is the blob-store path prefix for draft blobs.
const defaultDraftPrefix = "drafts/"

// keyManagerConfig holds configuration for a KeyManager.
type keyManagerConfig struct {
	store     KeyStore
	cacheSize int
}

// sealerConfig holds configuration for a Sealer.
type sealerConfig struct {
	algorithm string
}

// draftStoreConfig holds configuration for a DraftStore.
type draftStoreConfig struct {
	prefix string
}

// KeyManagerOption configures a KeyManager.
type KeyManagerOption func(*keyManagerConfig)

// SealerOption configures a Sealer.
type SealerOption func(*sealerConfig)

// DraftStoreOption configures a DraftStore.
type DraftStoreOption func(*draftStoreConfig)

// WithKeyStore sets the secure key store backing the keyring. Use this to
// plug in a platform-backed store; the default is an in-memory store.
func WithKeyStore(store KeyStore) KeyManagerOption {
	return func(c *keyManagerConfig) {
		c.store = store
	}
}

// WithKeyCacheSize sets the size of the loaded-key cache.
func WithKeyCacheSize(size int) KeyManagerOption {
	return func(c *keyManagerConfig) {
		if size > 0 {
			c.cacheSize = size
		}
	}
}

// WithAlgorithm sets the algorithm suite used for new seals. Existing
// envelopes always unseal with the suite recorded in their algorithm
// field, regardless of this setting.
func WithAlgorithm(algorithm string) SealerOption {
	return func(c *sealerConfig) {
		c.algorithm = algorithm
	}
}

// WithDraftPrefix sets the blob-store path prefix for drafts.
func WithDraftPrefix(prefix string) DraftStoreOption {
	return func(c *draftStoreConfig) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}
