// Package xdata implements a self-describing, typed, compressed binary
// container format. See doc.go for the package overview.
package xdata

import (
	"github.com/aalhour/xdata/internal/builtin"
	"github.com/aalhour/xdata/internal/codec"
	"github.com/aalhour/xdata/internal/convert"
	"github.com/aalhour/xdata/internal/recordmodel"
	"github.com/aalhour/xdata/internal/recordpool"
)

// Record is an ordered, keyed mapping from strings to values — the tree
// Store serializes and Load reconstructs. See recordmodel.Record for the
// full contract.
type Record = recordmodel.Record

// Key is the contract shared by ScalarKey[T] and ListKey[T].
type Key = recordmodel.Key

// ScalarKey identifies a single T-typed slot inside a Record.
type ScalarKey[T any] = recordmodel.ScalarKey[T]

// ListKey identifies a []T-typed slot inside a Record.
type ListKey[T any] = recordmodel.ListKey[T]

// Char is the wire-level 16-bit unsigned character type, distinct from
// Go's int32 rune so that it round-trips through its own one-byte
// primitive tag instead of colliding with INT.
type Char = codec.Char

// Converter marshals a domain value of a single runtime type to and from
// its Record form, keyed by a stable type-name stamped into the record's
// _meta_classname slot. See convert.Converter for the full contract.
type Converter = convert.Converter

// Pool is a free list of Records, recyclable across Load calls within one
// goroutine. The zero value is ready to use.
type Pool = recordpool.Pool

// MetaClassName is the reserved record key carrying a converted value's
// type-name string.
const MetaClassName = recordmodel.MetaClassName

// NewRecord returns an empty Record.
func NewRecord() *Record { return recordmodel.New() }

// SetNull stores an explicit null at k's slot, failing ErrNullNotAllowed
// if k does not allow it.
func SetNull(r *Record, k Key) error { return recordmodel.SetNull(r, k) }

// SetScalar stores value at k's slot.
func SetScalar[T any](r *Record, k ScalarKey[T], value T) { recordmodel.SetScalar(r, k, value) }

// SetList stores a deep copy of value at k's slot.
func SetList[T any](r *Record, k ListKey[T], value []T) { recordmodel.SetList(r, k, value) }

// GetScalar returns the value at k's slot, or k's default if absent.
func GetScalar[T any](r *Record, k ScalarKey[T]) (T, error) { return recordmodel.GetScalar(r, k) }

// GetMandatoryScalar mirrors GetScalar but fails ErrMissingKey if the slot
// is absent, even when k carries a default.
func GetMandatoryScalar[T any](r *Record, k ScalarKey[T]) (T, error) {
	return recordmodel.GetMandatoryScalar(r, k)
}

// GetList returns the list at k's slot.
func GetList[T any](r *Record, k ListKey[T]) ([]T, error) { return recordmodel.GetList(r, k) }

// GetMandatoryList mirrors GetList but fails ErrMissingKey if the slot is
// absent.
func GetMandatoryList[T any](r *Record, k ListKey[T]) ([]T, error) {
	return recordmodel.GetMandatoryList(r, k)
}

// NewScalarKey constructs a scalar key with no default value.
func NewScalarKey[T any](name string, allowNull bool) ScalarKey[T] {
	return recordmodel.NewScalarKey[T](name, allowNull)
}

// NewScalarKeyWithDefault constructs a scalar key carrying a default.
func NewScalarKeyWithDefault[T any](name string, allowNull bool, def T) ScalarKey[T] {
	return recordmodel.NewScalarKeyWithDefault(name, allowNull, def)
}

// NewListKey constructs a list key.
func NewListKey[T any](name string, allowNull bool) ListKey[T] {
	return recordmodel.NewListKey[T](name, allowNull)
}

// DateConverter marshals time.Time values (built-in Date
// converter).
var DateConverter Converter = builtin.Date

// URLConverter marshals *url.URL values (built-in URL
// converter).
var URLConverter Converter = builtin.URL

func builtinConverters() []convert.Converter {
	return builtin.Defaults()
}
