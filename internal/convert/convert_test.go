package convert

import (
	"reflect"
	"testing"

	"github.com/aalhour/xdata/internal/recordmodel"
)

type stubConverter struct {
	typeName string
	target   reflect.Type
	required []Converter
}

func (s stubConverter) TypeName() string                { return s.typeName }
func (s stubConverter) TargetType() reflect.Type         { return s.target }
func (s stubConverter) RequiredConverters() []Converter  { return s.required }
func (s stubConverter) Marshal(v any) (*recordmodel.Record, error) {
	return recordmodel.New(), nil
}
func (s stubConverter) Unmarshal(r *recordmodel.Record) (any, error) { return nil, nil }

type typeA struct{}
type typeB struct{}

func TestRegistry_ByTypeAndByName(t *testing.T) {
	c := stubConverter{typeName: "xdata.test.a", target: reflect.TypeOf(typeA{})}
	r := NewRegistry([]Converter{c}, nil)

	got, ok := r.ByType(reflect.TypeOf(typeA{}))
	if !ok || got.TypeName() != "xdata.test.a" {
		t.Fatalf("ByType: got %v, %v", got, ok)
	}
	got2, ok := r.ByName("xdata.test.a")
	if !ok || got2.TargetType() != reflect.TypeOf(typeA{}) {
		t.Fatalf("ByName: got %v, %v", got2, ok)
	}
}

func TestRegistry_UserOverridesBuiltin(t *testing.T) {
	builtin := stubConverter{typeName: "xdata.builtin.a", target: reflect.TypeOf(typeA{})}
	user := stubConverter{typeName: "xdata.user.a", target: reflect.TypeOf(typeA{})}

	r := NewRegistry([]Converter{user}, []Converter{builtin})

	got, ok := r.ByType(reflect.TypeOf(typeA{}))
	if !ok || got.TypeName() != "xdata.user.a" {
		t.Fatalf("expected user converter to win, got %v", got)
	}
	if _, ok := r.ByName("xdata.builtin.a"); ok {
		t.Error("builtin converter name should not be registered when user overrides its type")
	}
}

func TestRegistry_BuiltinAddedWhenNoOverride(t *testing.T) {
	builtin := stubConverter{typeName: "xdata.builtin.b", target: reflect.TypeOf(typeB{})}
	r := NewRegistry(nil, []Converter{builtin})

	if _, ok := r.ByType(reflect.TypeOf(typeB{})); !ok {
		t.Error("expected builtin converter to be registered")
	}
}

func TestRegistry_RequiredConvertersExpandedTransitively(t *testing.T) {
	leaf := stubConverter{typeName: "xdata.test.leaf", target: reflect.TypeOf(typeB{})}
	root := stubConverter{typeName: "xdata.test.root", target: reflect.TypeOf(typeA{}), required: []Converter{leaf}}

	r := NewRegistry([]Converter{root}, nil)

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if _, ok := r.ByName("xdata.test.leaf"); !ok {
		t.Error("expected transitively required converter to be registered")
	}
}

func TestRegistry_CyclicRequiredConvertersTolerated(t *testing.T) {
	var a, b stubConverter
	a = stubConverter{typeName: "xdata.test.cyclea", target: reflect.TypeOf(typeA{})}
	b = stubConverter{typeName: "xdata.test.cycleb", target: reflect.TypeOf(typeB{}), required: []Converter{a}}
	a.required = []Converter{b}

	// A registry that mishandles the cycle would recurse forever; simply
	// returning here (rather than hanging past the test timeout) is the
	// pass condition.
	r := NewRegistry([]Converter{a}, nil)
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_ByType_Miss(t *testing.T) {
	r := NewRegistry(nil, nil)
	if _, ok := r.ByType(reflect.TypeOf(typeA{})); ok {
		t.Error("expected miss on empty registry")
	}
}
