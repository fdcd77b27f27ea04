package rfc822

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"
)

// base64LineLength is the line length used when wrapping base64 attachment
// bodies, per RFC 2045 section 6.8.
const base64LineLength = 76

// Encode serializes a structured message into a wire-format document.
//
// From and at least one To address are required and must be syntactically
// valid; Cc and Bcc are optional. Empty subject and body are replaced with
// [DefaultSubject] and [DefaultBody]. The Bcc header is written out, since
// the encoded document is sealed client-side and never handed to an MTA
// as-is.
func Encode(msg *Message) ([]byte, error) {
	if err := validateAddresses(msg); err != nil {
		return nil, err
	}

	subject := msg.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	body := msg.Body
	if body == "" {
		body = DefaultBody
	}

	var buf bytes.Buffer

	writeHeader(&buf, "Date", time.Now().UTC().Format(time.RFC1123Z))
	writeHeader(&buf, "From", formatAddress(msg.From))
	writeHeader(&buf, "To", formatAddressList(msg.To))
	if len(msg.Cc) > 0 {
		writeHeader(&buf, "Cc", formatAddressList(msg.Cc))
	}
	if len(msg.Bcc) > 0 {
		writeHeader(&buf, "Bcc", formatAddressList(msg.Bcc))
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("UTF-8", subject))
	writeHeader(&buf, "MIME-Version", "1.0")

	if len(msg.Attachments) == 0 {
		writeHeader(&buf, "Content-Type", `text/plain; charset="UTF-8"`)
		writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
		buf.WriteString("\r\n")
		if err := writeQuotedPrintable(&buf, body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEncode, err)
		}
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	writeHeader(&buf, "Content-Type", fmt.Sprintf(`multipart/mixed; boundary="%s"`, mw.Boundary()))
	buf.WriteString("\r\n")

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", `text/plain; charset="UTF-8"`)
	textHeader.Set("Content-Transfer-Encoding", "quoted-printable")
	part, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	qp := quotedprintable.NewWriter(part)
	if _, err := qp.Write([]byte(body)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	for _, att := range msg.Attachments {
		if err := writeAttachment(mw, att); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}

func validateAddresses(msg *Message) error {
	if msg.From.Addr == "" {
		return fmt.Errorf("%w: missing from address", ErrMalformedAddress)
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: at least one to address is required", ErrMalformedAddress)
	}

	all := make([]Address, 0, 1+len(msg.To)+len(msg.Cc)+len(msg.Bcc))
	all = append(all, msg.From)
	all = append(all, msg.To...)
	all = append(all, msg.Cc...)
	all = append(all, msg.Bcc...)

	for _, a := range all {
		if _, err := mail.ParseAddress(a.Addr); err != nil {
			return fmt.Errorf("%w: %q", ErrMalformedAddress, a.Addr)
		}
	}
	return nil
}

// formatAddress renders an address with its display name quoted or
// RFC 2047 encoded as needed, so names containing ";", "," or quotes
// survive a round trip.
func formatAddress(a Address) string {
	return (&mail.Address{Name: a.Name, Address: a.Addr}).String()
}

func formatAddressList(addrs []Address) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = formatAddress(a)
	}
	return strings.Join(parts, ", ")
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func writeQuotedPrintable(buf *bytes.Buffer, body string) error {
	qp := quotedprintable.NewWriter(buf)
	if _, err := qp.Write([]byte(body)); err != nil {
		return err
	}
	return qp.Close()
}

func writeAttachment(mw *multipart.Writer, att Attachment) error {
	contentType := att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	disposition := "attachment"
	if att.Inline {
		disposition = "inline"
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	header.Set("Content-Transfer-Encoding", "base64")
	header.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": att.Filename}))
	if att.ContentID != "" {
		header.Set("Content-ID", "<"+att.ContentID+">")
	}

	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	encoded := base64.StdEncoding.EncodeToString(att.Content)
	for len(encoded) > 0 {
		n := base64LineLength
		if n > len(encoded) {
			n = len(encoded)
		}
		if _, err := part.Write([]byte(encoded[:n])); err != nil {
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}
		if _, err := part.Write([]byte("\r\n")); err != nil {
			return fmt.Errorf("%w: %v", ErrEncode, err)
		}
		encoded = encoded[n:]
	}
	return nil
}
