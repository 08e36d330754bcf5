// Package builtin carries the two converters xdata always registers: Date
// and URL. Both are always-on collaborators, never overridable except by
// a user converter declaring the same target type (enforced by
// internal/convert.NewRegistry's user-first assembly order).
package builtin

import (
	"fmt"
	"reflect"
	"time"

	"github.com/aalhour/xdata/internal/convert"
	"github.com/aalhour/xdata/internal/recordmodel"
)

// dateTypeName is the stable _meta_classname stamped for time.Time values.
const dateTypeName = "xdata.date"

var timestampKey = recordmodel.NewScalarKey[int64]("timestamp", false)

// dateConverter maps time.Time to/from a Record carrying a single
// millisecond Unix timestamp.
type dateConverter struct{}

// Date is the always-registered Date converter.
var Date convert.Converter = dateConverter{}

func (dateConverter) TypeName() string                     { return dateTypeName }
func (dateConverter) TargetType() reflect.Type              { return reflect.TypeOf(time.Time{}) }
func (dateConverter) RequiredConverters() []convert.Converter { return nil }

func (dateConverter) Marshal(value any) (*recordmodel.Record, error) {
	t, ok := value.(time.Time)
	if !ok {
		return nil, fmt.Errorf("builtin: Date converter given %T, want time.Time", value)
	}
	rec := recordmodel.New()
	rec.SetValue(recordmodel.MetaClassName, dateTypeName)
	recordmodel.SetScalar(rec, timestampKey, t.UnixMilli())
	return rec, nil
}

func (dateConverter) Unmarshal(rec *recordmodel.Record) (any, error) {
	ms, err := recordmodel.GetMandatoryScalar(rec, timestampKey)
	if err != nil {
		return nil, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
