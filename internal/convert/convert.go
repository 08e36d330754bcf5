// Package convert implements a converter registry: a pluggable mapping
// between domain values and the Record form the codec actually serializes.
package convert

import (
	"errors"
	"reflect"

	"github.com/aalhour/xdata/internal/recordmodel"
)

// ErrNoConverter is returned when a converter lookup fails and the caller
// has not opted into ignore-missing tolerance.
var ErrNoConverter = errors.New("convert: no converter registered")

// Converter marshals a domain value of a single runtime type to and from
// its Record form. TypeName is the stable string stamped into
// recordmodel.MetaClassName on write and used to find the converter again
// on read. RequiredConverters lists transitive dependencies the registry
// should auto-include.
type Converter interface {
	TypeName() string
	TargetType() reflect.Type
	RequiredConverters() []Converter
	Marshal(value any) (*recordmodel.Record, error)
	Unmarshal(rec *recordmodel.Record) (any, error)
}

// Registry holds two maps over the same set of converters: byType, keyed
// by the runtime class token of values emitted on write, and byName,
// keyed by the type-name string read back from _meta_classname.
type Registry struct {
	byType map[reflect.Type]Converter
	byName map[string]Converter
}

// NewRegistry builds a Registry from user-supplied converters followed by
// built-in defaults, so that a user converter declaring the same target
// type as a built-in always wins. Each converter's
// RequiredConverters are expanded transitively; cycles are tolerated
// because re-adding an identical converter is a no-op.
func NewRegistry(userConverters, builtins []Converter) *Registry {
	r := &Registry{
		byType: make(map[reflect.Type]Converter),
		byName: make(map[string]Converter),
	}
	for _, c := range userConverters {
		r.add(c)
	}
	for _, c := range builtins {
		if _, exists := r.byType[c.TargetType()]; !exists {
			r.add(c)
		}
	}
	return r
}

func (r *Registry) add(c Converter) {
	if existing, ok := r.byType[c.TargetType()]; ok && sameConverter(existing, c) {
		return
	}
	r.byType[c.TargetType()] = c
	r.byName[c.TypeName()] = c
	for _, dep := range c.RequiredConverters() {
		r.add(dep)
	}
}

func sameConverter(a, b Converter) bool {
	return a.TypeName() == b.TypeName() && a.TargetType() == b.TargetType()
}

// ByType looks up the write-side converter for a value's runtime type.
func (r *Registry) ByType(t reflect.Type) (Converter, bool) {
	c, ok := r.byType[t]
	return c, ok
}

// ByName looks up the read-side converter by its _meta_classname string.
func (r *Registry) ByName(name string) (Converter, bool) {
	c, ok := r.byName[name]
	return c, ok
}

// Len reports the number of distinct converters registered (by target type).
func (r *Registry) Len() int { return len(r.byType) }
