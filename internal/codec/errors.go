package codec

import "errors"

var (
	// ErrBadRoot is returned when the stream's first tagged value isn't a
	// Record.
	ErrBadRoot = errors.New("codec: root value is not a record")
	// ErrUnknownValueTag is returned for a value tag byte outside 0x00-0x04,
	// including the byte a class-registry-style tag would have used.
	ErrUnknownValueTag = errors.New("codec: unknown value tag")
	// ErrUnknownPrimitiveTag is returned for a primitive tag byte outside
	// 0x00-0x08.
	ErrUnknownPrimitiveTag = errors.New("codec: unknown primitive tag")
	// ErrDanglingReference is returned when a reference offset isn't in the
	// offset map at the point it's resolved — including a self-reference,
	// since the map is only populated once a record finishes decoding.
	ErrDanglingReference = errors.New("codec: reference points to an offset with no materialized record")
)
