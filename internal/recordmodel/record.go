// Package recordmodel implements the Record tree and its typed key
// descriptors — the schema-free keyed mapping the rest of xdata serializes,
// deserializes, and marshals domain values through.
//
// Records preserve key insertion order via a slice of entries backed by a
// name→index lookup, rather than a plain Go map, whose iteration order is
// randomized.
package recordmodel

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when a stored value does not assert to
	// a key's element type.
	ErrTypeMismatch = errors.New("recordmodel: stored value does not match key's element type")
	// ErrNullNotAllowed is returned when a slot is null but its key does
	// not allow null, on both the read and write paths.
	ErrNullNotAllowed = errors.New("recordmodel: value is null but key does not allow null")
	// ErrMissingKey is returned by the mandatory accessors when the key's
	// slot is absent, even if the key carries a default value.
	ErrMissingKey = errors.New("recordmodel: mandatory key is absent")
	// ErrEmptyKeyName is returned when constructing a key with an empty name.
	ErrEmptyKeyName = errors.New("recordmodel: key name must not be empty")
	// ErrDuplicateKey reports a key name that is already present in a
	// record. No function in this package returns it: SetValue, SetScalar
	// and SetList overwrite an existing slot in place.
	ErrDuplicateKey = errors.New("recordmodel: key already present in record")
)

// MetaClassName is the reserved record key carrying the converter
// type-name string for records produced by marshalling a domain value.
const MetaClassName = "_meta_classname"

// Key is the common contract shared by ScalarKey[T] and ListKey[T], used
// where the element type doesn't matter — e.g. the shared null-handling
// entry points.
type Key interface {
	Name() string
	AllowNull() bool
}

type entry struct {
	key   string
	value any
}

// Record is an ordered, keyed mapping from strings to values. Keys are
// unique within a record; ordering is preserved across round trips.
//
// A value may be nil (an explicit null), a primitive Go type matching one
// of nine tags, a []any holding more values (a List, which
// may nest), a *Record, or an arbitrary domain value the caller intends a
// converter to marshal at Store time.
//
// Record is not safe for concurrent mutation.
type Record struct {
	entries []entry
	index   map[string]int
}

// New returns an empty Record.
func New() *Record {
	return &Record{index: make(map[string]int)}
}

// Reset clears all entries, leaving the record empty but its backing
// storage allocated for reuse (used by internal/recordpool to recycle
// records between load calls without extra allocation).
func (r *Record) Reset() {
	r.entries = r.entries[:0]
	for k := range r.index {
		delete(r.index, k)
	}
}

// Keys returns the record's keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of entries in the record.
func (r *Record) Len() int { return len(r.entries) }

// Has reports whether name has a slot in the record, null or not.
func (r *Record) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Value returns the raw stored value for name and whether it was present.
// Used by the serializer, which walks raw values rather than typed keys.
func (r *Record) Value(name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.entries[i].value, true
}

// SetValue sets the raw value for name, overwriting any existing slot, and
// appending a new entry at the end of iteration order otherwise. Used by
// the deserializer and by converters; typed callers should prefer SetScalar
// / SetList.
func (r *Record) SetValue(name string, value any) {
	if i, ok := r.index[name]; ok {
		r.entries[i].value = value
		return
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, entry{key: name, value: value})
}

// deepCopyList recursively copies a []any so that list writes don't alias
// the caller's backing array. Records and leaf scalars nested inside are
// shared by reference, not copied.
func deepCopyList(list []any) []any {
	out := make([]any, len(list))
	for i, v := range list {
		if nested, ok := v.([]any); ok {
			out[i] = deepCopyList(nested)
		} else {
			out[i] = v
		}
	}
	return out
}

// Copy produces a shallow clone: a new Record and new list instances for
// any List-valued slots, with all domain values and nested Records shared
// by reference.
func (r *Record) Copy() *Record {
	out := New()
	for _, e := range r.entries {
		v := e.value
		if list, ok := v.([]any); ok {
			v = deepCopyList(list)
		}
		out.SetValue(e.key, v)
	}
	return out
}

// Equal compares two records by content: same keys in the same order, with
// deeply equal values.
func (r *Record) Equal(other *Record) bool {
	if other == nil {
		return r == nil
	}
	if r == nil {
		return false
	}
	if len(r.entries) != len(other.entries) {
		return false
	}
	for i, e := range r.entries {
		oe := other.entries[i]
		if e.key != oe.key {
			return false
		}
		if !valuesEqual(e.value, oe.value) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b any) bool {
	ar, aIsRecord := a.(*Record)
	br, bIsRecord := b.(*Record)
	if aIsRecord || bIsRecord {
		if !aIsRecord || !bIsRecord {
			return false
		}
		return ar.Equal(br)
	}
	al, aIsList := a.([]any)
	bl, bIsList := b.([]any)
	if aIsList || bIsList {
		if !aIsList || !bIsList || len(al) != len(bl) {
			return false
		}
		for i := range al {
			if !valuesEqual(al[i], bl[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

// ScalarKey identifies a single T-typed slot inside a Record.
//
// Key descriptors are constructed once at module initialization and are
// immutable. Go generics carry T directly, so no runtime type-recovery
// trick is needed to get it back out at access time.
type ScalarKey[T any] struct {
	name      string
	allowNull bool
	def       T
	hasDef    bool
}

// NewScalarKey constructs a scalar key with no default value.
func NewScalarKey[T any](name string, allowNull bool) ScalarKey[T] {
	if name == "" {
		panic(ErrEmptyKeyName)
	}
	return ScalarKey[T]{name: name, allowNull: allowNull}
}

// NewScalarKeyWithDefault constructs a scalar key carrying a default value
// returned by GetScalar (but never by GetMandatoryScalar) when the slot is
// absent.
func NewScalarKeyWithDefault[T any](name string, allowNull bool, def T) ScalarKey[T] {
	if name == "" {
		panic(ErrEmptyKeyName)
	}
	return ScalarKey[T]{name: name, allowNull: allowNull, def: def, hasDef: true}
}

func (k ScalarKey[T]) Name() string      { return k.name }
func (k ScalarKey[T]) AllowNull() bool   { return k.allowNull }
func (k ScalarKey[T]) Default() (T, bool) { return k.def, k.hasDef }

// ListKey identifies a []T-typed slot inside a Record. AllowNull applies
// to the whole list, not to individual elements.
type ListKey[T any] struct {
	name      string
	allowNull bool
}

// NewListKey constructs a list key.
func NewListKey[T any](name string, allowNull bool) ListKey[T] {
	if name == "" {
		panic(ErrEmptyKeyName)
	}
	return ListKey[T]{name: name, allowNull: allowNull}
}

func (k ListKey[T]) Name() string    { return k.name }
func (k ListKey[T]) AllowNull() bool { return k.allowNull }

// SetNull stores an explicit null at k's slot, failing ErrNullNotAllowed
// if k does not allow it.
func SetNull(r *Record, k Key) error {
	if !k.AllowNull() {
		return fmt.Errorf("%s: %w", k.Name(), ErrNullNotAllowed)
	}
	r.SetValue(k.Name(), nil)
	return nil
}

// SetScalar stores value at k's slot.
func SetScalar[T any](r *Record, k ScalarKey[T], value T) {
	r.SetValue(k.Name(), value)
}

// SetList stores a deep copy of value at k's slot.
func SetList[T any](r *Record, k ListKey[T], value []T) {
	raw := make([]any, len(value))
	for i, v := range value {
		raw[i] = v
	}
	r.SetValue(k.Name(), deepCopyList(raw))
}

// GetScalar returns the value stored at k's slot, the key's default if the
// slot is absent, ErrNullNotAllowed if the slot is null and k forbids
// null, or ErrTypeMismatch if the stored value isn't a T.
func GetScalar[T any](r *Record, k ScalarKey[T]) (T, error) {
	raw, present := r.Value(k.Name())
	if !present {
		def, _ := k.Default()
		return def, nil
	}
	if raw == nil {
		var zero T
		if !k.AllowNull() {
			return zero, fmt.Errorf("%s: %w", k.Name(), ErrNullNotAllowed)
		}
		return zero, nil
	}
	v, ok := raw.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", k.Name(), ErrTypeMismatch)
	}
	return v, nil
}

// GetMandatoryScalar mirrors GetScalar but fails ErrMissingKey if the slot
// is absent, even when the key carries a default.
func GetMandatoryScalar[T any](r *Record, k ScalarKey[T]) (T, error) {
	if !r.Has(k.Name()) {
		var zero T
		return zero, fmt.Errorf("%s: %w", k.Name(), ErrMissingKey)
	}
	return GetScalar(r, k)
}

// GetList returns the list stored at k's slot, an empty list if absent and
// k is non-nullable, nil if absent and k is nullable, or ErrTypeMismatch if
// an element doesn't assert to T.
func GetList[T any](r *Record, k ListKey[T]) ([]T, error) {
	raw, present := r.Value(k.Name())
	if !present {
		if k.AllowNull() {
			return nil, nil
		}
		return []T{}, nil
	}
	if raw == nil {
		if !k.AllowNull() {
			return []T{}, fmt.Errorf("%s: %w", k.Name(), ErrNullNotAllowed)
		}
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w", k.Name(), ErrTypeMismatch)
	}
	out := make([]T, len(list))
	for i, v := range list {
		tv, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: %w", k.Name(), i, ErrTypeMismatch)
		}
		out[i] = tv
	}
	return out, nil
}

// GetMandatoryList mirrors GetList but fails ErrMissingKey if the slot is
// absent.
func GetMandatoryList[T any](r *Record, k ListKey[T]) ([]T, error) {
	if !r.Has(k.Name()) {
		return nil, fmt.Errorf("%s: %w", k.Name(), ErrMissingKey)
	}
	return GetList(r, k)
}
