// Package wireio implements the fixed-width, big-endian primitive codecs
// and the length-prefixed modified-UTF-8 string codec that make up xdata's
// wire primitives.
//
// All multi-byte integers are big-endian, unlike many embedded storage
// engines' on-disk formats (which tend to be little-endian, matching
// native integer layout) — xdata's wire format pins big-endian explicitly
// instead.
package wireio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf16"
)

var (
	// ErrStringTooLong is returned when a string's modified-UTF-8 encoding
	// would exceed the 65535-byte length prefix.
	ErrStringTooLong = errors.New("wireio: encoded string exceeds 65535 bytes")
	// ErrTruncated wraps an EOF encountered mid-value.
	ErrTruncated = errors.New("wireio: truncated stream")
	// ErrMalformedString is returned when decoding encounters a byte
	// sequence that isn't valid modified UTF-8.
	ErrMalformedString = errors.New("wireio: malformed modified utf-8")
)

func wrapEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return err
}

// WriteBool writes a single byte: 1 for true, 0 for false.
func WriteBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

// ReadBool reads a single boolean byte.
func ReadBool(r io.Reader) (bool, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return false, wrapEOF(err)
	}
	return buf[0] != 0, nil
}

// WriteInt8 writes one byte, two's complement.
func WriteInt8(w io.Writer, v int8) error {
	_, err := w.Write([]byte{byte(v)})
	return err
}

// ReadInt8 reads one two's-complement byte.
func ReadInt8(r io.Reader) (int8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return int8(buf[0]), nil
}

// WriteUint16 writes a big-endian uint16; used directly for the char
// primitive and the two string length fields.
func WriteUint16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// ReadUint16 reads a big-endian uint16.
func ReadUint16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

// WriteInt16 writes a big-endian int16.
func WriteInt16(w io.Writer, v int16) error { return WriteUint16(w, uint16(v)) }

// ReadInt16 reads a big-endian int16.
func ReadInt16(r io.Reader) (int16, error) {
	v, err := ReadUint16(r)
	return int16(v), err
}

// WriteInt32 writes a big-endian int32. Also used for the list-length and
// record-entry-count fields, which are signed 32-bit.
func WriteInt32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadInt32 reads a big-endian int32.
func ReadInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

// WriteInt64 writes a big-endian int64. Also used for the reference
// offset field, which is signed 64-bit.
func WriteInt64(w io.Writer, v int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	_, err := w.Write(buf[:])
	return err
}

// ReadInt64 reads a big-endian int64.
func ReadInt64(r io.Reader) (int64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wrapEOF(err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// WriteFloat32 writes an IEEE-754 single, big-endian.
func WriteFloat32(w io.Writer, v float32) error {
	return WriteInt32(w, int32(math.Float32bits(v)))
}

// ReadFloat32 reads an IEEE-754 single, big-endian.
func ReadFloat32(r io.Reader) (float32, error) {
	v, err := ReadInt32(r)
	return math.Float32frombits(uint32(v)), err
}

// WriteFloat64 writes an IEEE-754 double, big-endian.
func WriteFloat64(w io.Writer, v float64) error {
	return WriteInt64(w, int64(math.Float64bits(v)))
}

// ReadFloat64 reads an IEEE-754 double, big-endian.
func ReadFloat64(r io.Reader) (float64, error) {
	v, err := ReadInt64(r)
	return math.Float64frombits(uint64(v)), err
}

// EncodeModifiedUTF8 encodes s the way java.io.DataOutput.writeUTF does:
// each UTF-16 code unit of s (not each Unicode code point — a
// supplementary character becomes a surrogate pair and each half is
// encoded independently) is mapped to 1, 2, or 3 bytes:
//
//	0x0001-0x007F  -> 1 byte,  0xxxxxxx
//	0x0000, 0x0080-0x07FF -> 2 bytes, 110xxxxx 10xxxxxx
//	0x0800-0xFFFF  -> 3 bytes, 1110xxxx 10xxxxxx 10xxxxxx
//
// The encoder matches java.io.DataOutput.writeUTF bit-for-bit, including
// rejecting strings whose encoded length exceeds 65535 bytes.
func EncodeModifiedUTF8(s string) ([]byte, error) {
	units := utf16.Encode([]rune(s))

	n := 0
	for _, c := range units {
		n += modifiedUTF8Width(c)
	}
	if n > 65535 {
		return nil, ErrStringTooLong
	}

	out := make([]byte, 0, n)
	for _, c := range units {
		switch {
		case c >= 0x0001 && c <= 0x007F:
			out = append(out, byte(c))
		case c == 0 || (c >= 0x0080 && c <= 0x07FF):
			out = append(out, byte(0xC0|((c>>6)&0x1F)), byte(0x80|(c&0x3F)))
		default:
			out = append(out, byte(0xE0|((c>>12)&0x0F)), byte(0x80|((c>>6)&0x3F)), byte(0x80|(c&0x3F)))
		}
	}
	return out, nil
}

func modifiedUTF8Width(c uint16) int {
	switch {
	case c >= 0x0001 && c <= 0x007F:
		return 1
	case c == 0 || (c >= 0x0080 && c <= 0x07FF):
		return 2
	default:
		return 3
	}
}

// DecodeModifiedUTF8 decodes bytes produced by EncodeModifiedUTF8.
func DecodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))
	i := 0
	for i < len(b) {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) {
				return "", fmt.Errorf("%w: truncated 2-byte sequence", ErrMalformedString)
			}
			b2 := b[i+1]
			if b2&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: bad continuation byte at %d", ErrMalformedString, i+1)
			}
			units = append(units, (uint16(c&0x1F)<<6)|uint16(b2&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) {
				return "", fmt.Errorf("%w: truncated 3-byte sequence", ErrMalformedString)
			}
			b2, b3 := b[i+1], b[i+2]
			if b2&0xC0 != 0x80 || b3&0xC0 != 0x80 {
				return "", fmt.Errorf("%w: bad continuation byte near %d", ErrMalformedString, i+1)
			}
			units = append(units, (uint16(c&0x0F)<<12)|(uint16(b2&0x3F)<<6)|uint16(b3&0x3F))
			i += 3
		default:
			return "", fmt.Errorf("%w: bad leading byte 0x%02x at %d", ErrMalformedString, c, i)
		}
	}
	return string(utf16.Decode(units)), nil
}

// WriteString writes a two-byte big-endian byte-length prefix followed by
// the modified-UTF-8 encoding of s (string primitive, tag 0x08).
func WriteString(w io.Writer, s string) error {
	enc, err := EncodeModifiedUTF8(s)
	if err != nil {
		return err
	}
	if err := WriteUint16(w, uint16(len(enc))); err != nil {
		return err
	}
	_, err = w.Write(enc)
	return err
}

// ReadString reads a string written by WriteString.
func ReadString(r io.Reader) (string, error) {
	n, err := ReadUint16(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", wrapEOF(err)
	}
	return DecodeModifiedUTF8(buf)
}
