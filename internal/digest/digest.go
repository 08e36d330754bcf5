// Package digest provides the streaming hash wrappers xdata threads its
// container bytes through.
//
// The coverage window is load-bearing and the same on write and read: the
// magic through the checksum-present byte inclusive, and never the 32
// trailer bytes themselves — the trailer is written or read only after the
// digest is finalized. Writer and Reader do not enforce this window
// themselves; their caller (internal/framing) stops writing through the
// Writer (or reading through the Reader) at the right moment, calls Sum,
// and moves the trailer bytes past the wrapper.
package digest

import (
	"crypto/sha256"
	"hash"
	"io"

	"github.com/zeebo/xxh3"
)

// Algorithm names the hash construction backing a Writer/Reader.
type Algorithm int

const (
	// SHA256 is the mandatory digest for the container's checksum trailer.
	// This is the only algorithm Store/Load use for the canonical trailer;
	// it is not configurable.
	SHA256 Algorithm = iota
	// XXH3 is an opt-in, non-default fast digest offered alongside SHA-256
	// for development-time use. It is never selected implicitly.
	XXH3
)

func newHash(a Algorithm) hash.Hash {
	switch a {
	case XXH3:
		return xxh3.New()
	default:
		return sha256.New()
	}
}

// Writer wraps an io.Writer, updating a hash over every byte written
// through it before forwarding to the wrapped sink.
type Writer struct {
	w io.Writer
	h hash.Hash
}

// NewWriter wraps w with a digest using the given algorithm.
func NewWriter(w io.Writer, a Algorithm) *Writer {
	return &Writer{w: w, h: newHash(a)}
}

func (d *Writer) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	if n > 0 {
		d.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the digest of every byte written so far.
func (d *Writer) Sum() []byte { return d.h.Sum(nil) }

// Reader wraps an io.Reader, updating a hash over every byte read through
// it. Bytes read via a sibling io.Reader that bypasses this wrapper (e.g.
// the trailer, read directly from the underlying source after Sum is
// taken) are never included — this is how the read-side coverage window
// excludes the 32 trailer bytes.
type Reader struct {
	r io.Reader
	h hash.Hash
}

// NewReader wraps r with a digest using the given algorithm.
func NewReader(r io.Reader, a Algorithm) *Reader {
	return &Reader{r: r, h: newHash(a)}
}

func (d *Reader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if n > 0 {
		d.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the digest of every byte read so far.
func (d *Reader) Sum() []byte { return d.h.Sum(nil) }

// Size returns the digest's output size in bytes (32 for SHA-256).
func (d *Writer) Size() int { return d.h.Size() }

// Size returns the digest's output size in bytes.
func (d *Reader) Size() int { return d.h.Size() }
