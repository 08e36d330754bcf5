package xdata

// options.go implements Store/Load's functional options, aliasing and
// re-exporting a constrained enum of named things over an internal package.

import (
	"github.com/aalhour/xdata/internal/convert"
	"github.com/aalhour/xdata/internal/framing"
	"github.com/aalhour/xdata/internal/logging"
)

// Logger is an alias for the logging.Logger interface, letting callers
// pass their own logger implementation.
type Logger = logging.Logger

// ChecksumPolicy is an alias for the read-side checksum validation policy.
type ChecksumPolicy = framing.Policy

// Checksum policy constants.
const (
	ChecksumIfAvailable = framing.PolicyIfAvailable
	ChecksumNone        = framing.PolicyNone
	ChecksumRequired    = framing.PolicyRequired
)

// ContainerCodec is an alias for the outer, whole-stream compression
// wrapper. Gzip is the default; the others are additive, opt-in alternates.
type ContainerCodec = framing.Codec

// Container codec constants.
const (
	CodecGzip   = framing.CodecGzip
	CodecZstd   = framing.CodecZstd
	CodecLZ4    = framing.CodecLZ4
	CodecSnappy = framing.CodecSnappy
)

type storeConfig struct {
	addChecksum   bool
	ignoreMissing bool
	converters    []Converter
	codec         ContainerCodec
	logger        Logger
}

type loadConfig struct {
	checksumPolicy ChecksumPolicy
	ignoreMissing  bool
	converters     []Converter
	codec          ContainerCodec
	pool           *Pool
	logger         Logger
}

func defaultStoreConfig() storeConfig {
	return storeConfig{addChecksum: true, codec: CodecGzip}
}

func defaultLoadConfig() loadConfig {
	return loadConfig{checksumPolicy: ChecksumIfAvailable, codec: CodecGzip}
}

// StoreOption configures a Store call.
type StoreOption interface{ applyStore(*storeConfig) }

// LoadOption configures a Load or Validate call.
type LoadOption interface{ applyLoad(*loadConfig) }

type checksumOption bool

func (o checksumOption) applyStore(c *storeConfig) { c.addChecksum = bool(o) }

// WithChecksum controls whether Store appends the SHA-256 trailer.
// Default true.
func WithChecksum(add bool) StoreOption { return checksumOption(add) }

type ignoreMissingOption bool

func (o ignoreMissingOption) applyStore(c *storeConfig) { c.ignoreMissing = bool(o) }
func (o ignoreMissingOption) applyLoad(c *loadConfig)   { c.ignoreMissing = bool(o) }

// WithIgnoreMissing controls tolerance for an unmatched converter: on
// Store, a Null is written in place of the value; on Load, the raw Record
// is returned instead of failing ErrNoConverter.
func WithIgnoreMissing(ignore bool) interface {
	StoreOption
	LoadOption
} {
	return ignoreMissingOption(ignore)
}

type convertersOption []Converter

func (o convertersOption) applyStore(c *storeConfig) { c.converters = append(c.converters, o...) }
func (o convertersOption) applyLoad(c *loadConfig)   { c.converters = append(c.converters, o...) }

// WithConverters registers additional converters for this call, ahead of
// the built-in Date/URL defaults (user-before-builtin rule).
func WithConverters(cs ...Converter) interface {
	StoreOption
	LoadOption
} {
	return convertersOption(cs)
}

type checksumPolicyOption ChecksumPolicy

func (o checksumPolicyOption) applyLoad(c *loadConfig) { c.checksumPolicy = ChecksumPolicy(o) }

// WithChecksumPolicy sets the read-side checksum validation policy.
// Default ChecksumIfAvailable.
func WithChecksumPolicy(p ChecksumPolicy) LoadOption { return checksumPolicyOption(p) }

type loggerOption struct{ l Logger }

func (o loggerOption) applyStore(c *storeConfig) { c.logger = o.l }
func (o loggerOption) applyLoad(c *loadConfig)   { c.logger = o.l }

// WithLogger installs a logger for diagnostic output during Store/Load.
func WithLogger(l Logger) interface {
	StoreOption
	LoadOption
} {
	return loggerOption{l}
}

type recordPoolOption struct{ p *Pool }

func (o recordPoolOption) applyLoad(c *loadConfig) { c.pool = o.p }

// WithRecordPool installs a record pool Load acquires its result records
// from. Purely an allocation optimization; never observable
// in semantics.
func WithRecordPool(p *Pool) LoadOption { return recordPoolOption{p} }

type codecOption ContainerCodec

func (o codecOption) applyStore(c *storeConfig) { c.codec = ContainerCodec(o) }
func (o codecOption) applyLoad(c *loadConfig)   { c.codec = ContainerCodec(o) }

// WithContainerCodec selects the outer compression wrapper. Default
// CodecGzip; the others are opt-in alternates that must be used
// symmetrically on Store and Load.
func WithContainerCodec(codec ContainerCodec) interface {
	StoreOption
	LoadOption
} {
	return codecOption(codec)
}

func newConvertRegistry(user []Converter) *convert.Registry {
	return convert.NewRegistry(user, builtinConverters())
}

func defaultLogger() Logger { return logging.Discard }
