package sealmail

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMalformedAddress is returned when an email address fails RFC
	// validation during encoding.
	ErrMalformedAddress = errors.New("malformed email address")

	// ErrMessageEncode is returned when serializing a message to wire
	// format fails.
	ErrMessageEncode = errors.New("message encoding failed")

	// ErrMessageParse is returned when a wire-format document is
	// structurally invalid.
	ErrMessageParse = errors.New("message parsing failed")

	// ErrKeyNotFound is returned when a key id does not resolve to a key
	// in the keyring.
	ErrKeyNotFound = errors.New("key not found")

	// ErrMissingKeyID is returned when stored metadata carries neither the
	// canonical key-id entry nor the legacy keyId entry.
	ErrMissingKeyID = errors.New("metadata missing key id")

	// ErrSealingFailed is returned when encrypting a payload fails.
	ErrSealingFailed = errors.New("sealing failed")

	// ErrUnsealingFailed is returned when decrypting a payload fails.
	// This indicates data corruption, tampering, or a mismatched key,
	// and is distinct from ErrKeyNotFound.
	ErrUnsealingFailed = errors.New("unsealing failed")

	// ErrUnknownAlgorithm is returned when an envelope or sealer names an
	// algorithm suite that is not registered.
	ErrUnknownAlgorithm = errors.New("unknown sealing algorithm")

	// ErrSignatureInvalid is returned when identity signature verification
	// fails.
	ErrSignatureInvalid = errors.New("signature verification failed")

	// ErrInvalidImportData is returned when imported keyring data is
	// invalid or the import passphrase is wrong.
	ErrInvalidImportData = errors.New("invalid keyring import data")

	// ErrBlobNotFound is returned when a blob store path does not exist.
	ErrBlobNotFound = errors.New("blob not found")
)

// ErrKeyringNotReady is returned when an operation requires a provisioned
// keyring but no symmetric key has ever been generated (or the keyring was
// reset). It matches ErrKeyNotFound under errors.Is, since an empty keyring
// cannot resolve any key id.
var ErrKeyringNotReady = fmt.Errorf("keyring not ready: %w", ErrKeyNotFound)

// SealmailError is implemented by all SDK errors.
type SealmailError interface {
	error
	SealmailError() // marker method
}

// MalformedAddressError reports an address that failed RFC validation.
type MalformedAddressError struct {
	Address string
	Err     error
}

func (e *MalformedAddressError) Error() string {
	if e.Address != "" {
		return fmt.Sprintf("malformed email address %q", e.Address)
	}
	return fmt.Sprintf("malformed email address: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedAddressError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *MalformedAddressError) Is(target error) bool {
	return target == ErrMalformedAddress
}

// SealmailError implements the SealmailError interface.
func (e *MalformedAddressError) SealmailError() {}

// EncodeError reports a failure to serialize a message.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("message encoding failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *EncodeError) Is(target error) bool {
	return target == ErrMessageEncode
}

// SealmailError implements the SealmailError interface.
func (e *EncodeError) SealmailError() {}

// ParseError reports a structurally invalid wire-format document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("message parsing failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *ParseError) Is(target error) bool {
	return target == ErrMessageParse
}

// SealmailError implements the SealmailError interface.
func (e *ParseError) SealmailError() {}

// SealError reports a failure while encrypting a payload.
type SealError struct {
	Stage string // "key", "nonce", "encrypt", "encode"
	Err   error
}

func (e *SealError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sealing failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("sealing failed at %s", e.Stage)
}

// Unwrap returns the underlying error.
func (e *SealError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *SealError) Is(target error) bool {
	return target == ErrSealingFailed
}

// SealmailError implements the SealmailError interface.
func (e *SealError) SealmailError() {}

// UnsealError reports a failure while decrypting a payload. It always
// means corrupt data, tampering, or a wrong key; partial plaintext is
// never produced.
type UnsealError struct {
	Stage string // "decode", "decrypt"
	Err   error
}

func (e *UnsealError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unsealing failed at %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("unsealing failed at %s", e.Stage)
}

// Unwrap returns the underlying error.
func (e *UnsealError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *UnsealError) Is(target error) bool {
	return target == ErrUnsealingFailed
}

// SealmailError implements the SealmailError interface.
func (e *UnsealError) SealmailError() {}
