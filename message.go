package sealmail

import (
	"errors"

	"github.com/sealmail/client-go/internal/rfc822"
)

// Address is a single mailbox with an optional display name.
type Address struct {
	// Name is the optional display name. Reserved characters (";", ",",
	// quotes) are encoded on the wire and survive a round trip.
	Name string
	// Addr is the mailbox address, e.g. "user@example.com".
	Addr string
}

// Attachment represents a message attachment.
type Attachment struct {
	Filename    string
	ContentType string
	// ContentID is the Content-ID for inline attachments (e.g. embedded
	// images), without angle brackets.
	ContentID string
	// Inline indicates inline rather than regular attachment disposition.
	Inline  bool
	Content []byte
}

// Message is the structured view of an email document. It is constructed
// transiently around encode/parse calls and is never persisted directly;
// persistence always goes through sealing first.
type Message struct {
	From        Address
	To          []Address
	Cc          []Address
	Bcc         []Address
	Subject     string
	Body        string
	Attachments []Attachment
}

// EncodeMessage serializes a message into a wire-format RFC 822 document.
//
// From and at least one To address are required and must be valid; empty
// subject and body are replaced with non-empty placeholders. Returns a
// MalformedAddressError for invalid addresses and an EncodeError for
// serialization failures.
func EncodeMessage(msg *Message) ([]byte, error) {
	raw, err := rfc822.Encode(toWireMessage(msg))
	if err != nil {
		if errors.Is(err, rfc822.ErrMalformedAddress) {
			return nil, &MalformedAddressError{Err: err}
		}
		return nil, &EncodeError{Err: err}
	}
	return raw, nil
}

// ParseMessage parses a wire-format RFC 822 document back into structured
// fields. It recovers address lists, subject, body, and attachments
// without loss relative to what EncodeMessage produced. Returns a
// ParseError for structurally invalid input.
func ParseMessage(raw []byte) (*Message, error) {
	parsed, err := rfc822.Parse(raw)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return fromWireMessage(parsed), nil
}

func toWireMessage(msg *Message) *rfc822.Message {
	wire := &rfc822.Message{
		From:    rfc822.Address(msg.From),
		To:      toWireAddresses(msg.To),
		Cc:      toWireAddresses(msg.Cc),
		Bcc:     toWireAddresses(msg.Bcc),
		Subject: msg.Subject,
		Body:    msg.Body,
	}
	for _, att := range msg.Attachments {
		wire.Attachments = append(wire.Attachments, rfc822.Attachment{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			ContentID:   att.ContentID,
			Inline:      att.Inline,
			Content:     att.Content,
		})
	}
	return wire
}

func fromWireMessage(wire *rfc822.Message) *Message {
	msg := &Message{
		From:    Address(wire.From),
		To:      fromWireAddresses(wire.To),
		Cc:      fromWireAddresses(wire.Cc),
		Bcc:     fromWireAddresses(wire.Bcc),
		Subject: wire.Subject,
		Body:    wire.Body,
	}
	for _, att := range wire.Attachments {
		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			ContentID:   att.ContentID,
			Inline:      att.Inline,
			Content:     att.Content,
		})
	}
	return msg
}

func toWireAddresses(addrs []Address) []rfc822.Address {
	if addrs == nil {
		return nil
	}
	wire := make([]rfc822.Address, len(addrs))
	for i, a := range addrs {
		wire[i] = rfc822.Address(a)
	}
	return wire
}

func fromWireAddresses(addrs []rfc822.Address) []Address {
	if addrs == nil {
		return nil
	}
	out := make([]Address, len(addrs))
	for i, a := range addrs {
		out[i] = Address(a)
	}
	return out
}
