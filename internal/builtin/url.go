package builtin

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/aalhour/xdata/internal/convert"
	"github.com/aalhour/xdata/internal/recordmodel"
)

// urlTypeName is the stable type-name string stamped into a converted
// URL's _meta_classname slot. Go has no runtime class-name string to
// reuse, so it's given a stable xdata-namespaced identifier instead.
const urlTypeName = "xdata.url"

var urlStringKey = recordmodel.NewScalarKey[string]("url_string", false)

// urlConverter maps *url.URL to/from a Record carrying its external
// (string) form.
type urlConverter struct{}

// URL is the always-registered URL converter.
var URL convert.Converter = urlConverter{}

func (urlConverter) TypeName() string                      { return urlTypeName }
func (urlConverter) TargetType() reflect.Type               { return reflect.TypeOf(&url.URL{}) }
func (urlConverter) RequiredConverters() []convert.Converter { return nil }

func (urlConverter) Marshal(value any) (*recordmodel.Record, error) {
	u, ok := value.(*url.URL)
	if !ok {
		return nil, fmt.Errorf("builtin: URL converter given %T, want *url.URL", value)
	}
	rec := recordmodel.New()
	rec.SetValue(recordmodel.MetaClassName, urlTypeName)
	recordmodel.SetScalar(rec, urlStringKey, u.String())
	return rec, nil
}

func (urlConverter) Unmarshal(rec *recordmodel.Record) (any, error) {
	s, err := recordmodel.GetMandatoryScalar(rec, urlStringKey)
	if err != nil {
		return nil, err
	}
	return url.Parse(s)
}

// Defaults returns the built-in converter set in the order Date, URL —
// always registered, the set internal/convert.NewRegistry's builtins
// argument should receive.
func Defaults() []convert.Converter {
	return []convert.Converter{Date, URL}
}
