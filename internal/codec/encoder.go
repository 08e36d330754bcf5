// Package codec implements xdata's serializer and deserializer cores: the
// iterative, explicit-stack tree walkers that write and read the tagged
// wire form over a stream-position-tracking reader/writer.
package codec

import (
	"fmt"
	"reflect"

	"github.com/aalhour/xdata/internal/convert"
	"github.com/aalhour/xdata/internal/recordmodel"
	"github.com/aalhour/xdata/internal/streampos"
	"github.com/aalhour/xdata/internal/tag"
	"github.com/aalhour/xdata/internal/wireio"
)

// EncodeOptions configures a single Encode call.
type EncodeOptions struct {
	Registry      *convert.Registry
	IgnoreMissing bool
}

type encFrame interface{ isEncFrame() }

// encListFrame mirrors ListFrame(list, remaining_entries).
type encListFrame struct {
	list          []any
	idx           int
	headerWritten bool
}

func (*encListFrame) isEncFrame() {}

// encRecordFrame tracks a record being written: its logical owner, the
// record itself, the keys still to emit, and the stream offset its tag
// byte was written at. owner is nil when rec was supplied directly by the
// caller; identity tracking then keys on rec itself.
type encRecordFrame struct {
	owner         any
	rec           *recordmodel.Record
	keys          []string
	idx           int
	offset        int64
	headerWritten bool
}

func (*encRecordFrame) isEncFrame() {}

func identityKeyOf(f *encRecordFrame) any {
	if f.owner != nil {
		return f.owner
	}
	return f.rec
}

// hasIdentity reports whether v's equality under Go's map-key comparison
// coincides with reference identity. Only pointer-kind values (including
// *recordmodel.Record) qualify; a non-pointer comparable type such as
// time.Time compares by field value, so two independently constructed but
// equal instances would wrongly collide in the identity map and be
// deduplicated as if they were the same shared value.
func hasIdentity(v any) bool {
	if v == nil {
		return false
	}
	return reflect.ValueOf(v).Kind() == reflect.Ptr
}

// Encode walks root iteratively and writes its tagged wire form to w,
// tracking already-written records by identity so repeated values become
// 0x04 REFERENCE entries instead of being re-emitted.
func Encode(root *recordmodel.Record, w *streampos.Writer, opts EncodeOptions) error {
	identity := make(map[any]int64)
	stack := []encFrame{&encRecordFrame{rec: root, keys: root.Keys()}}

	for len(stack) > 0 {
		switch f := stack[len(stack)-1].(type) {
		case *encRecordFrame:
			if !f.headerWritten {
				f.offset = w.Offset()
				if err := writeValueTag(w, tag.Record); err != nil {
					return err
				}
				if err := wireio.WriteInt32(w, int32(len(f.keys))); err != nil {
					return err
				}
				f.headerWritten = true
			}
			if f.idx >= len(f.keys) {
				stack = stack[:len(stack)-1]
				if key := identityKeyOf(f); hasIdentity(key) {
					identity[key] = f.offset
				}
				continue
			}
			key := f.keys[f.idx]
			f.idx++
			if err := wireio.WriteString(w, key); err != nil {
				return err
			}
			val, _ := f.rec.Value(key)
			if err := encodeElement(w, val, opts, identity, &stack); err != nil {
				return err
			}

		case *encListFrame:
			if !f.headerWritten {
				if err := writeValueTag(w, tag.List); err != nil {
					return err
				}
				if err := wireio.WriteInt32(w, int32(len(f.list))); err != nil {
					return err
				}
				f.headerWritten = true
			}
			if f.idx >= len(f.list) {
				stack = stack[:len(stack)-1]
				continue
			}
			val := f.list[f.idx]
			f.idx++
			if err := encodeElement(w, val, opts, identity, &stack); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeElement dispatches a single value ("Element
// dispatch"): null/primitives are written inline, lists push an
// encListFrame, and records/domain values are either emitted as a
// back-reference (on an identity-map hit) or marshalled (if needed) and
// pushed as an encRecordFrame.
func encodeElement(w *streampos.Writer, v any, opts EncodeOptions, identity map[any]int64, stack *[]encFrame) error {
	if v == nil {
		return writeValueTag(w, tag.Null)
	}
	if list, ok := v.([]any); ok {
		*stack = append(*stack, &encListFrame{list: list})
		return nil
	}
	if p, ok := primitiveTagOf(v); ok {
		if err := writeValueTag(w, tag.PrimVal); err != nil {
			return err
		}
		if err := writePrimitiveTagByte(w, p); err != nil {
			return err
		}
		return writePrimitiveValue(w, p, v)
	}

	if hasIdentity(v) {
		if offset, hit := identity[v]; hit {
			if err := writeValueTag(w, tag.Reference); err != nil {
				return err
			}
			return wireio.WriteInt64(w, offset)
		}
	}

	record, isRecord := v.(*recordmodel.Record)
	var owner any
	if !isRecord {
		owner = v
		conv, found := opts.Registry.ByType(reflect.TypeOf(v))
		if !found {
			if !opts.IgnoreMissing {
				return fmt.Errorf("%w: %T", convert.ErrNoConverter, v)
			}
			return writeValueTag(w, tag.Null)
		}
		marshalled, err := conv.Marshal(v)
		if err != nil {
			return err
		}
		marshalled.SetValue(recordmodel.MetaClassName, conv.TypeName())
		record = marshalled
	}

	*stack = append(*stack, &encRecordFrame{owner: owner, rec: record, keys: record.Keys()})
	return nil
}
