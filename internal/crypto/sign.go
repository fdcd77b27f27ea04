package crypto

import (
	"fmt"

	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// SigningKey represents an ML-DSA-65 identity key pair.
type SigningKey struct {
	// PublicKey is the raw ML-DSA-65 public key bytes.
	PublicKey []byte
	// PrivateKey is the raw ML-DSA-65 private key bytes. It must never
	// leave the key manager boundary.
	PrivateKey []byte
}

// GenerateSigningKey creates a new ML-DSA-65 identity key pair.
func GenerateSigningKey() (*SigningKey, error) {
	pub, priv, err := mldsa65.GenerateKey(randReader)
	if err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}

	// MarshalBinary never fails for keys from GenerateKey
	pubBytes, _ := pub.MarshalBinary()
	privBytes, _ := priv.MarshalBinary()

	return &SigningKey{
		PublicKey:  pubBytes,
		PrivateKey: privBytes,
	}, nil
}

// SigningKeyFromBytes reconstructs a signing key pair from the raw private
// key. The public key is derived from the private key.
func SigningKeyFromBytes(privateKey []byte) (*SigningKey, error) {
	if len(privateKey) != MLDSAPrivateKeySize {
		return nil, ErrInvalidPrivateKeySize
	}

	var priv mldsa65.PrivateKey
	if err := priv.UnmarshalBinary(privateKey); err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w", err)
	}

	pubBytes, _ := priv.Public().(*mldsa65.PublicKey).MarshalBinary()

	return &SigningKey{
		PublicKey:  pubBytes,
		PrivateKey: privateKey,
	}, nil
}

// Sign produces a detached ML-DSA-65 signature over the message.
func (k *SigningKey) Sign(message []byte) ([]byte, error) {
	var priv mldsa65.PrivateKey
	if err := priv.UnmarshalBinary(k.PrivateKey); err != nil {
		return nil, fmt.Errorf("unmarshal private key: %w", err)
	}

	sig := make([]byte, MLDSASignatureSize)
	if err := mldsa65.SignTo(&priv, message, nil, false, sig); err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return sig, nil
}

// Verify verifies a detached ML-DSA-65 signature.
func Verify(publicKey, message, signature []byte) error {
	if len(publicKey) != MLDSAPublicKeySize {
		return ErrInvalidPublicKeySize
	}

	var pub mldsa65.PublicKey
	if err := pub.UnmarshalBinary(publicKey); err != nil {
		return fmt.Errorf("unmarshal public key: %w", err)
	}

	if !mldsa65.Verify(&pub, message, nil, signature) {
		return ErrSignatureVerificationFailed
	}
	return nil
}
