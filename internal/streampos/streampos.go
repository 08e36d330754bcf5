// Package streampos implements the stream position tracker: a running
// count of payload bytes produced or consumed, measured in the same
// coordinate space on both the encode and decode sides so that
// back-reference offsets round-trip.
//
// "Position" is defined as the count of bytes after the magic header
// onward, consumed or produced through the post-digest, post-gzip layer —
// the encoder assigns a record's offset at the moment it writes that
// record's 0x03 tag byte, and the decoder must read that same coordinate.
package streampos

import "io"

// Writer wraps an io.Writer and exposes the running count of bytes written
// through it. The encoder asks for Offset() immediately before writing a
// record's 0x03 tag, which is exactly the offset a later reference to that
// record must carry.
type Writer struct {
	w      io.Writer
	offset int64
}

// NewWriter wraps w, starting the counter at zero.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (c *Writer) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.offset += int64(n)
	return n, err
}

// Offset returns the number of bytes written so far.
func (c *Writer) Offset() int64 { return c.offset }

// Reader wraps an io.Reader and exposes the running count of bytes read
// through it, in the same coordinate space as Writer.Offset.
type Reader struct {
	r      io.Reader
	offset int64
}

// NewReader wraps r, starting the counter at zero.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

func (c *Reader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.offset += int64(n)
	return n, err
}

// Offset returns the number of bytes read so far.
func (c *Reader) Offset() int64 { return c.offset }
