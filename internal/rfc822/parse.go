package rfc822

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
)

// Parse reads a wire-format document back into structured fields. It
// recovers all address lists, the subject, the body (undoing any transfer
// encoding applied at encode time), and attachments including their
// inline-vs-regular disposition.
func Parse(raw []byte) (*Message, error) {
	m, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	msg := &Message{}

	from, err := addressList(m.Header, "From")
	if err != nil {
		return nil, err
	}
	if len(from) > 0 {
		msg.From = from[0]
	}

	if msg.To, err = addressList(m.Header, "To"); err != nil {
		return nil, err
	}
	if msg.Cc, err = addressList(m.Header, "Cc"); err != nil {
		return nil, err
	}
	if msg.Bcc, err = addressList(m.Header, "Bcc"); err != nil {
		return nil, err
	}

	dec := new(mime.WordDecoder)
	if subject, err := dec.DecodeHeader(m.Header.Get("Subject")); err == nil {
		msg.Subject = subject
	} else {
		msg.Subject = m.Header.Get("Subject")
	}

	mediaType, params, err := mime.ParseMediaType(m.Header.Get("Content-Type"))
	if err != nil {
		// No or malformed Content-Type: treat the body as plain text.
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, fmt.Errorf("%w: multipart message without boundary", ErrParse)
		}
		if err := parseParts(msg, multipart.NewReader(m.Body, boundary)); err != nil {
			return nil, err
		}
		return msg, nil
	}

	body, err := decodeBody(m.Body, m.Header.Get("Content-Transfer-Encoding"))
	if err != nil {
		return nil, err
	}
	msg.Body = string(body)
	return msg, nil
}

func addressList(h mail.Header, key string) ([]Address, error) {
	if h.Get(key) == "" {
		return nil, nil
	}
	parsed, err := h.AddressList(key)
	if err != nil {
		return nil, fmt.Errorf("%w: header %s: %v", ErrParse, key, err)
	}
	addrs := make([]Address, len(parsed))
	for i, a := range parsed {
		addrs[i] = Address{Name: a.Name, Addr: a.Address}
	}
	return addrs, nil
}

func parseParts(msg *Message, mr *multipart.Reader) error {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrParse, err)
		}

		mediaType, _, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if err != nil {
			mediaType = "text/plain"
		}

		content, err := decodeBody(part, part.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return err
		}

		disposition, dispParams := partDisposition(part.Header)

		// The first non-attachment text part is the message body;
		// everything else is an attachment.
		if strings.HasPrefix(mediaType, "text/") && disposition != "attachment" && disposition != "inline" && msg.Body == "" {
			msg.Body = string(content)
			continue
		}

		msg.Attachments = append(msg.Attachments, Attachment{
			Filename:    dispParams["filename"],
			ContentType: mediaType,
			ContentID:   strings.Trim(part.Header.Get("Content-ID"), "<>"),
			Inline:      disposition == "inline",
			Content:     content,
		})
	}
}

func partDisposition(h textproto.MIMEHeader) (string, map[string]string) {
	raw := h.Get("Content-Disposition")
	if raw == "" {
		return "", nil
	}
	disposition, params, err := mime.ParseMediaType(raw)
	if err != nil {
		return "", nil
	}
	return disposition, params
}

func decodeBody(r io.Reader, transferEncoding string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(transferEncoding)) {
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return content, nil
}
