package xdata

import (
	"io"

	"github.com/aalhour/xdata/internal/codec"
	"github.com/aalhour/xdata/internal/framing"
	"github.com/aalhour/xdata/internal/streampos"
)

// Store serializes root to w as a complete xdata container: gzip-wrapped
// (by default) bytes beginning with the magic header, the encoded record
// tree, and — unless WithChecksum(false) is given — a trailing SHA-256
// checksum.
//
// Values inside root that are neither Records, Lists ([]any), nor one of
// the nine primitive types are marshaled through a registered Converter;
// WithConverters supplies call-specific converters ahead of the built-in
// Date and URL converters. An unconvertible value fails ErrNoConverter
// unless WithIgnoreMissing(true) is given, in which case a null is
// written in its place.
func Store(root *Record, w io.Writer, opts ...StoreOption) error {
	cfg := defaultStoreConfig()
	for _, o := range opts {
		o.applyStore(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = defaultLogger()
	}

	registry := newConvertRegistry(cfg.converters)
	encOpts := codec.EncodeOptions{Registry: registry, IgnoreMissing: cfg.ignoreMissing}

	cfg.logger.Debugf("[framing] store: codec=%s checksum=%v", cfg.codec, cfg.addChecksum)

	writeRoot := func(posW *streampos.Writer) error {
		return codec.Encode(root, posW, encOpts)
	}
	if err := framing.Store(w, cfg.codec, cfg.addChecksum, writeRoot); err != nil {
		cfg.logger.Errorf("[framing] store failed: %v", err)
		return err
	}
	return nil
}
