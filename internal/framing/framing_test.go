package framing

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/aalhour/xdata/internal/streampos"
)

func roundtrip(t *testing.T, codec Codec, addChecksum bool, policy Policy, root []byte) (*bytes.Buffer, error) {
	t.Helper()
	var buf bytes.Buffer
	err := Store(&buf, codec, addChecksum, func(w *streampos.Writer) error {
		_, err := w.Write(root)
		return err
	})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	var got []byte
	_, _, loadErr := Load(bytes.NewReader(buf.Bytes()), codec, policy, func(r *streampos.Reader) error {
		got = make([]byte, len(root))
		_, err := r.Read(got)
		return err
	})
	if loadErr == nil && !bytes.Equal(got, root) {
		t.Errorf("root value = %x, want %x", got, root)
	}
	return &buf, loadErr
}

// flipLastTrailerByte unwraps a gzip container, flips the last byte of the
// decompressed stream (the final byte of the checksum trailer), and
// re-wraps it. Flipping the last byte of the compressed bytes instead would
// only damage the gzip footer, which the digest does not cover.
func flipLastTrailerByte(t *testing.T, container []byte) []byte {
	t.Helper()
	r, err := WrapReader(bytes.NewReader(container), CodecGzip)
	if err != nil {
		t.Fatalf("WrapReader: %v", err)
	}
	plain, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	plain[len(plain)-1] ^= 0xFF

	var out bytes.Buffer
	w, _ := WrapWriter(&out, CodecGzip)
	w.Write(plain)
	w.Close()
	return out.Bytes()
}

func TestStoreLoad_Gzip_NoChecksum(t *testing.T) {
	if _, err := roundtrip(t, CodecGzip, false, PolicyIfAvailable, []byte{0x01, 0x02, 0x03}); err != nil {
		t.Fatalf("roundtrip: %v", err)
	}
}

func TestStoreLoad_Gzip_WithChecksum(t *testing.T) {
	if _, err := roundtrip(t, CodecGzip, true, PolicyRequired, []byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("roundtrip: %v", err)
	}
}

func TestStoreLoad_AllCodecs(t *testing.T) {
	for _, c := range []Codec{CodecGzip, CodecZstd, CodecLZ4, CodecSnappy} {
		t.Run(c.String(), func(t *testing.T) {
			if _, err := roundtrip(t, c, true, PolicyRequired, []byte("hello xdata")); err != nil {
				t.Fatalf("roundtrip with %s: %v", c, err)
			}
		})
	}
}

func TestLoad_PolicyRequired_MissingChecksumFails(t *testing.T) {
	var buf bytes.Buffer
	Store(&buf, CodecGzip, false, func(w *streampos.Writer) error {
		_, err := w.Write([]byte{0x01})
		return err
	})

	_, _, err := Load(bytes.NewReader(buf.Bytes()), CodecGzip, PolicyRequired, func(r *streampos.Reader) error {
		b := make([]byte, 1)
		_, err := r.Read(b)
		return err
	})
	if !errors.Is(err, ErrChecksumMissing) {
		t.Errorf("err = %v, want ErrChecksumMissing", err)
	}
}

func TestLoad_PolicyIfAvailable_MissingChecksumTolerated(t *testing.T) {
	var buf bytes.Buffer
	Store(&buf, CodecGzip, false, func(w *streampos.Writer) error {
		_, err := w.Write([]byte{0x01})
		return err
	})

	hadChecksum, ok, err := Load(bytes.NewReader(buf.Bytes()), CodecGzip, PolicyIfAvailable, func(r *streampos.Reader) error {
		b := make([]byte, 1)
		_, err := r.Read(b)
		return err
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if hadChecksum || ok {
		t.Errorf("hadChecksum=%v ok=%v, want false,false", hadChecksum, ok)
	}
}

func TestLoad_TamperedChecksum_Mismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := Store(&buf, CodecGzip, true, func(w *streampos.Writer) error {
		_, err := w.Write([]byte("tamper me"))
		return err
	}); err != nil {
		t.Fatalf("Store: %v", err)
	}

	tampered := flipLastTrailerByte(t, buf.Bytes())

	_, _, err := Load(bytes.NewReader(tampered), CodecGzip, PolicyRequired, func(r *streampos.Reader) error {
		b := make([]byte, len("tamper me"))
		_, err := r.Read(b)
		return err
	})
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("err = %v, want ErrChecksumMismatch", err)
	}
}

func TestLoad_PolicyNone_MismatchTolerated(t *testing.T) {
	var buf bytes.Buffer
	Store(&buf, CodecGzip, true, func(w *streampos.Writer) error {
		_, err := w.Write([]byte("data"))
		return err
	})
	raw := flipLastTrailerByte(t, buf.Bytes())

	hadChecksum, ok, err := Load(bytes.NewReader(raw), CodecGzip, PolicyNone, func(r *streampos.Reader) error {
		b := make([]byte, len("data"))
		_, err := r.Read(b)
		return err
	})
	if err != nil {
		t.Fatalf("Load under PolicyNone should never error on mismatch: %v", err)
	}
	if !hadChecksum || ok {
		t.Errorf("hadChecksum=%v ok=%v, want true,false", hadChecksum, ok)
	}
}

func TestLoad_BadMagic(t *testing.T) {
	var buf bytes.Buffer
	w, _ := WrapWriter(&buf, CodecGzip)
	w.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x00})
	w.Close()

	_, _, err := Load(bytes.NewReader(buf.Bytes()), CodecGzip, PolicyIfAvailable, func(r *streampos.Reader) error {
		return nil
	})
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}

func TestWrapWriter_UnknownCodec(t *testing.T) {
	_, err := WrapWriter(&bytes.Buffer{}, Codec(99))
	if !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("err = %v, want ErrUnknownCodec", err)
	}
}

func TestPolicyString(t *testing.T) {
	cases := map[Policy]string{PolicyIfAvailable: "IfAvailable", PolicyNone: "None", PolicyRequired: "Required"}
	for p, want := range cases {
		if got := p.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", p, got, want)
		}
	}
}
