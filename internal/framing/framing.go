// Package framing implements xdata's container byte layout: the outer
// compression wrapper, the five-byte magic header, and the optional
// trailing checksum with its presence flag and validation policy.
//
// Gzip is the format's sole mandatory container wrapper and stays the
// unconditional default, with zstd, lz4, and snappy exposed as opt-in,
// additive container codecs for callers who want a different
// compression/speed tradeoff.
package framing

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/aalhour/xdata/internal/digest"
	"github.com/aalhour/xdata/internal/streampos"
)

// Magic is the fixed five-byte header every xdata payload begins with:
// ASCII "xdata", 0x78 0x64 0x61 0x74 0x61.
var Magic = [5]byte{'x', 'd', 'a', 't', 'a'}

// TrailerLen is the length of the checksum trailer in bytes (SHA-256).
const TrailerLen = 32

var (
	// ErrBadMagic is returned when the stream does not begin with Magic.
	ErrBadMagic = errors.New("framing: bad magic header")
	// ErrChecksumMissing is returned under PolicyRequired when the trailer
	// is absent or truncated.
	ErrChecksumMissing = errors.New("framing: checksum trailer required but missing or truncated")
	// ErrChecksumMismatch is returned when a present trailer doesn't match
	// the computed digest, under any policy that validates it.
	ErrChecksumMismatch = errors.New("framing: checksum trailer does not match computed digest")
	// ErrUnknownCodec is returned for a Codec value with no registered wrapper.
	ErrUnknownCodec = errors.New("framing: unknown container codec")
)

// Policy controls how a missing or mismatched checksum trailer is treated
// on read.
type Policy int

const (
	// PolicyIfAvailable validates the trailer if present and tolerates its
	// absence. This is Load's default.
	PolicyIfAvailable Policy = iota
	// PolicyNone ignores the trailer entirely.
	PolicyNone
	// PolicyRequired fails if the trailer is absent, truncated, or mismatched.
	PolicyRequired
)

func (p Policy) String() string {
	switch p {
	case PolicyIfAvailable:
		return "IfAvailable"
	case PolicyNone:
		return "None"
	case PolicyRequired:
		return "Required"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Codec identifies the outer, whole-stream compression wrapper.
type Codec int

const (
	// CodecGzip is the mandatory default container wrapper.
	CodecGzip Codec = iota
	// CodecZstd, CodecLZ4, CodecSnappy are additive alternate wrappers.
	CodecZstd
	CodecLZ4
	CodecSnappy
)

func (c Codec) String() string {
	switch c {
	case CodecGzip:
		return "Gzip"
	case CodecZstd:
		return "Zstd"
	case CodecLZ4:
		return "LZ4"
	case CodecSnappy:
		return "Snappy"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// WrapWriter returns a write-closer that compresses everything written to
// it using codec before forwarding to dst. Close must be called to flush
// the compressed trailer.
func WrapWriter(dst io.Writer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case CodecGzip:
		return gzip.NewWriter(dst), nil
	case CodecZstd:
		return zstd.NewWriter(dst)
	case CodecLZ4:
		return lz4.NewWriter(dst), nil
	case CodecSnappy:
		return snappy.NewBufferedWriter(dst), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
}

type zstdReadCloser struct{ dec *zstd.Decoder }

func (z zstdReadCloser) Read(p []byte) (int, error) { return z.dec.Read(p) }
func (z zstdReadCloser) Close() error                { z.dec.Close(); return nil }

// WrapReader returns a read-closer that decompresses src using codec.
func WrapReader(src io.Reader, codec Codec) (io.ReadCloser, error) {
	switch codec {
	case CodecGzip:
		return gzip.NewReader(src)
	case CodecZstd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, err
		}
		return zstdReadCloser{dec}, nil
	case CodecLZ4:
		return io.NopCloser(lz4.NewReader(src)), nil
	case CodecSnappy:
		return io.NopCloser(snappy.NewReader(src)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, codec)
	}
}

// WriteRootFunc writes the tagged root value through w, which tracks the
// post-magic, post-digest byte offset the encoder needs for back-references.
type WriteRootFunc func(w *streampos.Writer) error

// Store assembles a complete xdata container: codec-wraps dst, writes the
// magic header, invokes writeRoot to emit the tagged root value, and
// optionally appends the checksum trailer, all under a single SHA-256
// digest covering magic..presence-byte inclusive.
func Store(dst io.Writer, codec Codec, addChecksum bool, writeRoot WriteRootFunc) error {
	containerW, err := WrapWriter(dst, codec)
	if err != nil {
		return err
	}

	digestW := digest.NewWriter(containerW, digest.SHA256)
	if _, err := digestW.Write(Magic[:]); err != nil {
		return closeAndReturn(containerW, err)
	}

	posW := streampos.NewWriter(digestW)
	if err := writeRoot(posW); err != nil {
		return closeAndReturn(containerW, err)
	}

	if addChecksum {
		if _, err := digestW.Write([]byte{0x01}); err != nil {
			return closeAndReturn(containerW, err)
		}
		sum := digestW.Sum()
		// The trailer bytes themselves are never covered by the digest
		//, so they're written directly to the container
		// writer, bypassing digestW.
		if _, err := containerW.Write(sum); err != nil {
			return closeAndReturn(containerW, err)
		}
	}

	return containerW.Close()
}

func closeAndReturn(c io.Closer, err error) error {
	_ = c.Close()
	return err
}

// ReadRootFunc reads the tagged root value from r, which tracks the
// post-magic, post-digest byte offset the decoder needs to resolve
// back-references. It must consume exactly the root value's
// bytes and no further.
type ReadRootFunc func(r *streampos.Reader) error

// Load parses a complete xdata container: codec-unwraps src, validates the
// magic header, invokes readRoot to consume the tagged root value, then
// reads and — per policy — validates the checksum trailer.
//
// hadChecksum reports whether a trailer was present; checksumOK reports
// whether it matched (meaningful only if hadChecksum). Under PolicyNone,
// mismatches and absences never produce an error; under PolicyIfAvailable
// and PolicyRequired, Load itself returns the appropriate sentinel error.
func Load(src io.Reader, codec Codec, policy Policy, readRoot ReadRootFunc) (hadChecksum, checksumOK bool, err error) {
	containerR, err := WrapReader(src, codec)
	if err != nil {
		return false, false, err
	}
	defer containerR.Close()

	digestR := digest.NewReader(containerR, digest.SHA256)

	var magicBuf [5]byte
	if _, err := io.ReadFull(digestR, magicBuf[:]); err != nil {
		return false, false, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if magicBuf != Magic {
		return false, false, ErrBadMagic
	}

	posR := streampos.NewReader(digestR)
	if err := readRoot(posR); err != nil {
		return false, false, err
	}

	var presence [1]byte
	n, err := io.ReadFull(digestR, presence[:])
	if err != nil || n == 0 {
		// No trailer at all.
		if policy == PolicyRequired {
			return false, false, ErrChecksumMissing
		}
		return false, false, nil
	}
	hadChecksum = presence[0] == 0x01
	if !hadChecksum {
		if policy == PolicyRequired {
			return false, false, ErrChecksumMissing
		}
		return false, false, nil
	}

	computed := digestR.Sum()
	trailer := make([]byte, TrailerLen)
	// The trailer bytes are read directly from containerR, bypassing
	// digestR, matching the write side's exclusion window.
	if _, err := io.ReadFull(containerR, trailer); err != nil {
		if policy == PolicyRequired {
			return true, false, ErrChecksumMissing
		}
		return true, false, nil
	}

	checksumOK = bytes.Equal(computed, trailer)
	if !checksumOK && policy != PolicyNone {
		return true, false, ErrChecksumMismatch
	}
	return true, checksumOK, nil
}
