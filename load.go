package xdata

import (
	"errors"
	"fmt"
	"io"

	"github.com/aalhour/xdata/internal/codec"
	"github.com/aalhour/xdata/internal/framing"
	"github.com/aalhour/xdata/internal/streampos"
)

// ErrRootNotRecord is returned by Load when the stream's root value
// converts, via a registered Converter, to something other than a
// *Record. Load's contract is to hand back the root Record; a domain root
// type belongs to a caller working directly with internal/codec, not this
// facade.
var ErrRootNotRecord = errors.New("xdata: root value did not decode to a record")

// Load deserializes a complete xdata container from r and returns its root
// record. WithChecksumPolicy controls how a missing or mismatched
// checksum trailer is treated (default ChecksumIfAvailable: validate if
// present, tolerate absence). WithContainerCodec must match the codec
// Store used.
func Load(r io.Reader, opts ...LoadOption) (*Record, error) {
	cfg := defaultLoadConfig()
	for _, o := range opts {
		o.applyLoad(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}

	registry := newConvertRegistry(cfg.converters)
	decOpts := codec.DecodeOptions{Registry: registry, IgnoreMissing: cfg.ignoreMissing}

	var result any
	readRoot := func(posR *streampos.Reader) error {
		v, err := codec.Decode(posR, decOpts)
		if err != nil {
			return err
		}
		result = v
		return nil
	}

	hadChecksum, checksumOK, err := framing.Load(r, cfg.codec, cfg.checksumPolicy, readRoot)
	if err != nil {
		cfg.logger.Errorf("[framing] load failed: %v", err)
		return nil, err
	}
	cfg.logger.Debugf("[framing] load: checksum present=%v ok=%v", hadChecksum, checksumOK)

	rec, ok := result.(*Record)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrRootNotRecord, result)
	}

	if cfg.pool != nil {
		pooled := cfg.pool.Acquire()
		for _, k := range rec.Keys() {
			v, _ := rec.Value(k)
			pooled.SetValue(k, v)
		}
		rec = pooled
	}
	return rec, nil
}

// Validate reports whether r carries a checksum trailer and it matches the
// computed digest. It does not apply WithChecksumPolicy — an absent or
// mismatched trailer is never an error here, only a false result: true
// only if a trailer is present and matches; false if there is no trailer
// to check, or if it doesn't match.
//
// The same decode options (converters, ignore-missing, codec) apply as in
// Load, since a corrupted container may also fail to decode structurally;
// a decode error is still returned as an error.
func Validate(r io.Reader, opts ...LoadOption) (bool, error) {
	cfg := defaultLoadConfig()
	for _, o := range opts {
		o.applyLoad(&cfg)
	}

	registry := newConvertRegistry(cfg.converters)
	decOpts := codec.DecodeOptions{Registry: registry, IgnoreMissing: cfg.ignoreMissing}

	readRoot := func(posR *streampos.Reader) error {
		_, err := codec.Decode(posR, decOpts)
		return err
	}

	hadChecksum, checksumOK, err := framing.Load(r, cfg.codec, ChecksumNone, readRoot)
	if err != nil {
		return false, err
	}
	if !hadChecksum {
		return false, nil
	}
	return checksumOK, nil
}
