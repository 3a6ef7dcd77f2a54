// Package lcm is the runtime used by generated Go message types.
//
// Every generated struct implements Message. Its Encode, Decode and Size
// methods use the primitive codecs of this package and Fingerprint returns the
// rotated schema hash shared by every language binding of the same type.
package lcm

import (
	"bytes"
	"io"
)

// Message is implemented by every generated type
type Message interface {
	// Fingerprint is the rotated schema hash that prefixes a published message.
	Fingerprint() uint64
	// Encode writes the message body without the fingerprint.
	Encode(w io.Writer) error
	// Decode reads a message body. On error the receiver is left unchanged.
	Decode(r io.Reader) error
	// Size is the exact number of bytes Encode writes.
	Size() int
}

// EncodeMessage writes the fingerprint of m followed by its body
func EncodeMessage(w io.Writer, m Message) error {
	if err := WriteUint64(w, m.Fingerprint()); err != nil {
		return err
	}

	return m.Encode(w)
}

// DecodeMessage checks the leading fingerprint against m and decodes the body into m.
func DecodeMessage(r io.Reader, m Message) error {
	got, err := ReadUint64(r)
	if err != nil {
		return err
	}

	if want := m.Fingerprint(); got != want {
		return &FingerprintError{Want: want, Got: got}
	}

	return m.Decode(r)
}

// Marshal returns the fingerprint-prefixed encoding of m
func Marshal(m Message) ([]byte, error) {
	var buf bytes.Buffer

	buf.Grow(8 + m.Size())

	if err := EncodeMessage(&buf, m); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes data produced by Marshal into m
func Unmarshal(data []byte, m Message) error {
	return DecodeMessage(bytes.NewReader(data), m)
}
