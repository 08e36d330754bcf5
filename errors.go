package xdata

import (
	"github.com/aalhour/xdata/internal/codec"
	"github.com/aalhour/xdata/internal/convert"
	"github.com/aalhour/xdata/internal/framing"
	"github.com/aalhour/xdata/internal/recordmodel"
	"github.com/aalhour/xdata/internal/wireio"
)

// Record model errors.
var (
	// ErrTypeMismatch is returned when a stored value does not assert to
	// a key's element type.
	ErrTypeMismatch = recordmodel.ErrTypeMismatch
	// ErrNullNotAllowed is returned when a slot is null but its key does
	// not allow null.
	ErrNullNotAllowed = recordmodel.ErrNullNotAllowed
	// ErrMissingKey is returned by the mandatory accessors when the key's
	// slot is absent, even if the key carries a default value.
	ErrMissingKey = recordmodel.ErrMissingKey
	// ErrEmptyKeyName is returned when constructing a key with an empty name.
	ErrEmptyKeyName = recordmodel.ErrEmptyKeyName
)

// Converter registry errors.
var (
	// ErrNoConverter is returned when a value's type (on Store) or a
	// record's _meta_classname (on Load) has no matching registered
	// converter, and WithIgnoreMissing(true) was not set.
	ErrNoConverter = convert.ErrNoConverter
)

// Container and wire-format errors.
var (
	// ErrBadMagic is returned when the stream does not begin with
	// xdata's 5-byte magic header.
	ErrBadMagic = framing.ErrBadMagic
	// ErrChecksumMissing is returned under WithChecksumPolicy(ChecksumRequired)
	// when the stream carries no checksum trailer.
	ErrChecksumMissing = framing.ErrChecksumMissing
	// ErrChecksumMismatch is returned when a present checksum trailer
	// doesn't match the computed digest, unless the policy is
	// ChecksumNone.
	ErrChecksumMismatch = framing.ErrChecksumMismatch
	// ErrUnknownCodec is returned for a ContainerCodec value with no
	// registered wrapper.
	ErrUnknownCodec = framing.ErrUnknownCodec
	// ErrBadRoot is returned when the stream's first tagged value is not
	// a record.
	ErrBadRoot = codec.ErrBadRoot
	// ErrUnknownValueTag is returned for a malformed or unrecognized
	// value tag byte.
	ErrUnknownValueTag = codec.ErrUnknownValueTag
	// ErrUnknownPrimitiveTag is returned for a malformed or unrecognized
	// primitive tag byte.
	ErrUnknownPrimitiveTag = codec.ErrUnknownPrimitiveTag
	// ErrDanglingReference is returned when a reference points at an
	// offset with no materialized record.
	ErrDanglingReference = codec.ErrDanglingReference
	// ErrTruncated is returned when the stream ends mid-value.
	ErrTruncated = wireio.ErrTruncated
)
