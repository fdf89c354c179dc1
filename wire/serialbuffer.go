// Package wire implements the big-endian binary framing shared by every
// persisted or transmitted record in this module.
package wire

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/icryptix/core/errors"
)

// MaxVarLenStringBytes is the maximum byte length of a VarLenString payload;
// its 1-byte length prefix cannot represent more.
const MaxVarLenStringBytes = 255

// SerialBuffer is a cursor over a byte slice with independent read and
// write positions, and typed big-endian accessors. A zero-value
// SerialBuffer is a write buffer; use NewReader to read an existing slice.
type SerialBuffer struct {
	buf      []byte
	readPos  int
	writePos int
}

// NewWriter returns a SerialBuffer that appends to an internal buffer,
// preallocated to size bytes to avoid reallocation when size is known
// (callers should pass SerializedSize()).
func NewWriter(size int) *SerialBuffer {
	return &SerialBuffer{buf: make([]byte, 0, size)}
}

// NewReader returns a SerialBuffer positioned at the start of data.
func NewReader(data []byte) *SerialBuffer {
	return &SerialBuffer{buf: data}
}

// Bytes returns the buffer written so far.
func (s *SerialBuffer) Bytes() []byte {
	return s.buf
}

// Remaining reports how many unread bytes remain.
func (s *SerialBuffer) Remaining() int {
	return len(s.buf) - s.readPos
}

func (s *SerialBuffer) requireRemaining(n int) error {
	if s.Remaining() < n {
		return errors.NewTruncatedError("need %d bytes, have %d", n, s.Remaining())
	}

	return nil
}

// WriteUint8 writes a single byte.
func (s *SerialBuffer) WriteUint8(v uint8) {
	s.buf = append(s.buf, v)
}

// ReadUint8 reads a single byte.
func (s *SerialBuffer) ReadUint8() (uint8, error) {
	if err := s.requireRemaining(1); err != nil {
		return 0, err
	}

	v := s.buf[s.readPos]
	s.readPos++

	return v, nil
}

// WriteUint16 writes v big-endian.
func (s *SerialBuffer) WriteUint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// ReadUint16 reads a big-endian uint16.
func (s *SerialBuffer) ReadUint16() (uint16, error) {
	if err := s.requireRemaining(2); err != nil {
		return 0, err
	}

	v := binary.BigEndian.Uint16(s.buf[s.readPos:])
	s.readPos += 2

	return v, nil
}

// WriteUint32 writes v big-endian.
func (s *SerialBuffer) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// ReadUint32 reads a big-endian uint32.
func (s *SerialBuffer) ReadUint32() (uint32, error) {
	if err := s.requireRemaining(4); err != nil {
		return 0, err
	}

	v := binary.BigEndian.Uint32(s.buf[s.readPos:])
	s.readPos += 4

	return v, nil
}

// WriteUint64 writes v big-endian.
func (s *SerialBuffer) WriteUint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	s.buf = append(s.buf, b[:]...)
}

// ReadUint64 reads a big-endian uint64.
func (s *SerialBuffer) ReadUint64() (uint64, error) {
	if err := s.requireRemaining(8); err != nil {
		return 0, err
	}

	v := binary.BigEndian.Uint64(s.buf[s.readPos:])
	s.readPos += 8

	return v, nil
}

// WriteBytes writes a raw, fixed-length block with no length prefix.
func (s *SerialBuffer) WriteBytes(v []byte) {
	s.buf = append(s.buf, v...)
}

// ReadBytes reads exactly n raw bytes.
func (s *SerialBuffer) ReadBytes(n int) ([]byte, error) {
	if err := s.requireRemaining(n); err != nil {
		return nil, err
	}

	v := make([]byte, n)
	copy(v, s.buf[s.readPos:s.readPos+n])
	s.readPos += n

	return v, nil
}

// WriteVarLenString writes a 1-byte length prefix followed by the UTF-8
// bytes of v. v must be at most MaxVarLenStringBytes bytes long.
func (s *SerialBuffer) WriteVarLenString(v string) error {
	if len(v) > MaxVarLenStringBytes {
		return errors.NewInvalidArgumentError("string of %d bytes exceeds VarLenString capacity %d", len(v), MaxVarLenStringBytes)
	}

	s.WriteUint8(uint8(len(v)))
	s.buf = append(s.buf, v...)

	return nil
}

// ReadVarLenString reads a 1-byte length prefix N followed by N UTF-8
// bytes, failing with ErrInvalidUTF8 if the bytes are not valid UTF-8.
func (s *SerialBuffer) ReadVarLenString() (string, error) {
	n, err := s.ReadUint8()
	if err != nil {
		return "", err
	}

	raw, err := s.ReadBytes(int(n))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(raw) {
		return "", errors.NewInvalidUTF8Error("VarLenString payload is not valid UTF-8")
	}

	return string(raw), nil
}
