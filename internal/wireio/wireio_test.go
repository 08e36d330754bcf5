package wireio

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestFixedWidthRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBool(&buf, true); err != nil {
		t.Fatal(err)
	}
	if err := WriteInt8(&buf, -5); err != nil {
		t.Fatal(err)
	}
	if err := WriteUint16(&buf, 0x00F6); err != nil { // 'ö'
		t.Fatal(err)
	}
	if err := WriteInt16(&buf, 13); err != nil {
		t.Fatal(err)
	}
	if err := WriteInt32(&buf, 67567); err != nil {
		t.Fatal(err)
	}
	if err := WriteInt64(&buf, 786783647846876879); err != nil {
		t.Fatal(err)
	}
	if err := WriteFloat32(&buf, 42.24); err != nil {
		t.Fatal(err)
	}
	if err := WriteFloat64(&buf, math.Pi); err != nil {
		t.Fatal(err)
	}

	b, err := ReadBool(&buf)
	if err != nil || b != true {
		t.Fatalf("ReadBool = %v, %v", b, err)
	}
	i8, err := ReadInt8(&buf)
	if err != nil || i8 != -5 {
		t.Fatalf("ReadInt8 = %v, %v", i8, err)
	}
	ch, err := ReadUint16(&buf)
	if err != nil || ch != 0x00F6 {
		t.Fatalf("ReadUint16 = %v, %v", ch, err)
	}
	i16, err := ReadInt16(&buf)
	if err != nil || i16 != 13 {
		t.Fatalf("ReadInt16 = %v, %v", i16, err)
	}
	i32, err := ReadInt32(&buf)
	if err != nil || i32 != 67567 {
		t.Fatalf("ReadInt32 = %v, %v", i32, err)
	}
	i64, err := ReadInt64(&buf)
	if err != nil || i64 != 786783647846876879 {
		t.Fatalf("ReadInt64 = %v, %v", i64, err)
	}
	f32, err := ReadFloat32(&buf)
	if err != nil || f32 != float32(42.24) {
		t.Fatalf("ReadFloat32 = %v, %v", f32, err)
	}
	f64, err := ReadFloat64(&buf)
	if err != nil || f64 != math.Pi {
		t.Fatalf("ReadFloat64 = %v, %v", f64, err)
	}
}

// TestFixedWidthBigEndian pins the byte order explicitly.
func TestFixedWidthBigEndian(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInt32(&buf, 1); err != nil {
		t.Fatal(err)
	}
	want := []byte{0x00, 0x00, 0x00, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("WriteInt32(1) = %x, want %x", buf.Bytes(), want)
	}
}

func TestModifiedUTF8_ASCII(t *testing.T) {
	enc, err := EncodeModifiedUTF8("blafasel")
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != len("blafasel") {
		t.Errorf("ASCII should encode 1 byte per char, got %d bytes for %q", len(enc), "blafasel")
	}
	dec, err := DecodeModifiedUTF8(enc)
	if err != nil {
		t.Fatal(err)
	}
	if dec != "blafasel" {
		t.Errorf("DecodeModifiedUTF8 = %q, want %q", dec, "blafasel")
	}
}

func TestModifiedUTF8_TwoByteRange(t *testing.T) {
	// 'ö' = U+00F6, encodes as 2 bytes: 110xxxxx 10xxxxxx
	enc, err := EncodeModifiedUTF8("ö")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0xC3, 0xB6}
	if !bytes.Equal(enc, want) {
		t.Errorf("EncodeModifiedUTF8(ö) = %x, want %x", enc, want)
	}
	dec, err := DecodeModifiedUTF8(enc)
	if err != nil || dec != "ö" {
		t.Errorf("round trip ö: got %q, %v", dec, err)
	}
}

func TestModifiedUTF8_NUL(t *testing.T) {
	// NUL is encoded as the 2-byte form 0xC0 0x80, never a literal 0x00 byte
	// (this is the defining quirk of modified UTF-8 vs standard UTF-8).
	enc, err := EncodeModifiedUTF8("a\x00b")
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'a', 0xC0, 0x80, 'b'}
	if !bytes.Equal(enc, want) {
		t.Errorf("EncodeModifiedUTF8(NUL) = %x, want %x", enc, want)
	}
	dec, err := DecodeModifiedUTF8(enc)
	if err != nil || dec != "a\x00b" {
		t.Errorf("round trip NUL: got %q, %v", dec, err)
	}
}

func TestModifiedUTF8_SupplementaryAsSurrogatePair(t *testing.T) {
	// U+1F600 (grinning face) is a supplementary character: it becomes a
	// UTF-16 surrogate pair, and each half is separately encoded as a
	// 3-byte sequence (6 bytes total), not a single 4-byte UTF-8 sequence.
	s := "\U0001F600"
	enc, err := EncodeModifiedUTF8(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 6 {
		t.Errorf("supplementary char should encode to 6 bytes (two 3-byte sequences), got %d", len(enc))
	}
	dec, err := DecodeModifiedUTF8(enc)
	if err != nil || dec != s {
		t.Errorf("round trip supplementary char: got %q, %v", dec, err)
	}
}

func TestModifiedUTF8_TooLongRejected(t *testing.T) {
	s := strings.Repeat("a", 70000)
	if _, err := EncodeModifiedUTF8(s); !errors.Is(err, ErrStringTooLong) {
		t.Errorf("EncodeModifiedUTF8 of 70000-byte string = %v, want ErrStringTooLong", err)
	}
}

func TestWriteReadString(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteString(&buf, "blafasel"); err != nil {
		t.Fatal(err)
	}
	// length prefix: 2 bytes big-endian = 8
	if buf.Bytes()[0] != 0x00 || buf.Bytes()[1] != 0x08 {
		t.Errorf("length prefix = %x, want 0x0008", buf.Bytes()[:2])
	}
	s, err := ReadString(&buf)
	if err != nil || s != "blafasel" {
		t.Errorf("ReadString = %q, %v", s, err)
	}
}

func TestReadTruncated(t *testing.T) {
	buf := bytes.NewReader([]byte{0x00})
	if _, err := ReadInt32(buf); !errors.Is(err, ErrTruncated) {
		t.Errorf("ReadInt32 on truncated input = %v, want ErrTruncated", err)
	}
}

func TestDecodeModifiedUTF8_Malformed(t *testing.T) {
	if _, err := DecodeModifiedUTF8([]byte{0xC3}); !errors.Is(err, ErrMalformedString) {
		t.Errorf("truncated 2-byte sequence = %v, want ErrMalformedString", err)
	}
	if _, err := DecodeModifiedUTF8([]byte{0xFF}); !errors.Is(err, ErrMalformedString) {
		t.Errorf("bad leading byte = %v, want ErrMalformedString", err)
	}
}
