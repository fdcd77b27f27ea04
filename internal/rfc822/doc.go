// Package rfc822 converts between structured email fields and wire-format
// internet messages (RFC 5322, historically RFC 822).
//
// The codec is lossless for everything it writes: a message produced by
// [Encode] parses back with [Parse] to the same addresses, subject, body,
// and attachments, modulo representation-only normalization such as header
// folding and transfer encoding. Display names containing reserved
// characters (";", ",", quotes) are quoted or encoded per RFC 2047 so the
// document round-trips.
//
// Bodies are written quoted-printable and attachments base64, inside a
// multipart/mixed container when attachments are present. Inline
// attachments keep their Content-ID and inline disposition.
package rfc822
