// Package serial implements canonical binary encoding/decoding for
// every core type (PublicKey, MasterSecret, ClientKey, MediatorKey,
// Ciphertext, policy.Tree) plus a JSON text container for the CLI and
// HTTP facades. Group and scalar elements are encoded with the curve
// library's own canonical Marshal/Unmarshal; everything else is a
// small length-prefixed binary format, since no serialization library
// appears anywhere in the retrieved example corpus.
package serial

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// SerializationError wraps any failure to decode a persisted
// representation: truncated input, a bad length prefix, or a
// malformed curve element.
type SerializationError struct{ cause error }

func (e *SerializationError) Error() string {
	return "serial: malformed representation: " + e.cause.Error()
}

func (e *SerializationError) Unwrap() error { return e.cause }

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return &SerializationError{cause: err}
}

type writer struct {
	buf bytes.Buffer
}

func newWriter() *writer { return &writer{} }

func (w *writer) bytes(b []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	w.buf.Write(lenBuf[:])
	w.buf.Write(b)
}

func (w *writer) string(s string) {
	w.bytes([]byte(s))
}

func (w *writer) uint64(n uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	w.buf.Write(b[:])
}

func (w *writer) byte(b byte) {
	w.buf.WriteByte(b)
}

func (w *writer) out() []byte { return w.buf.Bytes() }

type reader struct {
	r *bytes.Reader
}

func newReader(data []byte) *reader { return &reader{r: bytes.NewReader(data)} }

func (r *reader) bytes() ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r.r, lenBuf[:]); err != nil {
		return nil, errors.Wrap(err, "read length prefix")
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, errors.Wrap(err, "read length-prefixed bytes")
	}
	return buf, nil
}

func (r *reader) string() (string, error) {
	b, err := r.bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *reader) uint64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r.r, b[:]); err != nil {
		return 0, errors.Wrap(err, "read uint64")
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

func (r *reader) byte() (byte, error) {
	return r.r.ReadByte()
}

func (r *reader) done() bool {
	return r.r.Len() == 0
}
