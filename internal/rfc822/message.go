package rfc822

import "errors"

var (
	// ErrMalformedAddress is returned when an address fails RFC 5322
	// validation.
	ErrMalformedAddress = errors.New("malformed email address")

	// ErrEncode is returned when serializing a message fails.
	ErrEncode = errors.New("message encoding failed")

	// ErrParse is returned when a document is structurally invalid.
	ErrParse = errors.New("message parsing failed")
)

// Placeholders written when the caller omits subject or body. A document
// with empty Subject or an empty text part is still well formed, but
// downstream mail tooling behaves better with non-empty values.
const (
	DefaultSubject = "(no subject)"
	DefaultBody    = "(no body)"
)

// Address is a single mailbox with an optional display name.
type Address struct {
	// Name is the optional display name. It may contain characters that
	// are reserved in address headers; the codec quotes or encodes them.
	Name string
	// Addr is the mailbox address, e.g. "user@example.com".
	Addr string
}

// Attachment is a single message attachment.
type Attachment struct {
	// Filename is the attachment's filename.
	Filename string
	// ContentType is the MIME type. Defaults to application/octet-stream.
	ContentType string
	// ContentID is the Content-ID for inline attachments, without angle
	// brackets.
	ContentID string
	// Inline marks the attachment as inline (e.g. an embedded image)
	// rather than a regular attachment.
	Inline bool
	// Content is the raw attachment data.
	Content []byte
}

// Message is the structured view of an RFC 822 document.
type Message struct {
	From        Address
	To          []Address
	Cc          []Address
	Bcc         []Address
	Subject     string
	Body        string
	Attachments []Attachment
}
