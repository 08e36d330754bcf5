package codec

import (
	"fmt"

	"github.com/aalhour/xdata/internal/convert"
	"github.com/aalhour/xdata/internal/recordmodel"
	"github.com/aalhour/xdata/internal/streampos"
	"github.com/aalhour/xdata/internal/tag"
	"github.com/aalhour/xdata/internal/wireio"
)

// DecodeOptions configures a single Decode call.
type DecodeOptions struct {
	Registry      *convert.Registry
	IgnoreMissing bool
}

type decFrame interface{ isDecFrame() }

// decRecordFrame tracks a record being read: its declared entry count, the
// stream offset its header started at, the partial record, and the key
// awaiting a value.
type decRecordFrame struct {
	size           int32
	offsetAtHeader int64
	rec            *recordmodel.Record
	currentKey     string
	read           int32
}

func (*decRecordFrame) isDecFrame() {}

// decListFrame mirrors ListFrame.
type decListFrame struct {
	size int32
	list []any
	read int32
}

func (*decListFrame) isDecFrame() {}

// Decode reads one complete tagged value from r — which MUST be a Record —
// resolving back-references against an offset-to-value map populated only
// as each record frame finalizes, so a reference to a record still being
// materialized fails ErrDanglingReference (self-reference edge case).
func Decode(r *streampos.Reader, opts DecodeOptions) (any, error) {
	offsets := make(map[int64]any)
	var stack []decFrame

	value, pushed, err := decodeElement(r, offsets, &stack)
	if err != nil {
		return nil, err
	}
	if !pushed {
		_ = value
		return nil, ErrBadRoot
	}
	if _, ok := stack[len(stack)-1].(*decRecordFrame); !ok {
		return nil, ErrBadRoot
	}

	for len(stack) > 0 {
		switch f := stack[len(stack)-1].(type) {
		case *decRecordFrame:
			if f.read >= f.size {
				stack = stack[:len(stack)-1]
				materialized, ferr := finalizeRecord(f, opts)
				if ferr != nil {
					return nil, ferr
				}
				offsets[f.offsetAtHeader] = materialized
				if len(stack) == 0 {
					return materialized, nil
				}
				deliverToParent(stack, materialized)
				continue
			}
			key, kerr := wireio.ReadString(r)
			if kerr != nil {
				return nil, kerr
			}
			f.currentKey = key
			if derr := readAndDeliver(r, offsets, &stack); derr != nil {
				return nil, derr
			}

		case *decListFrame:
			if f.read >= f.size {
				stack = stack[:len(stack)-1]
				materialized := f.list
				if len(stack) == 0 {
					return materialized, nil
				}
				deliverToParent(stack, materialized)
				continue
			}
			if derr := readAndDeliver(r, offsets, &stack); derr != nil {
				return nil, derr
			}
		}
	}
	return nil, fmt.Errorf("codec: decode loop exited without a result")
}

// decodeElement reads one tag byte and, depending on its shape, either
// returns an inline value (Null, Primitive, Reference) with pushed=false,
// or pushes a new frame and returns pushed=true.
func decodeElement(r *streampos.Reader, offsets map[int64]any, stack *[]decFrame) (value any, pushed bool, err error) {
	v, err := readValueTag(r)
	if err != nil {
		return nil, false, err
	}
	switch v {
	case tag.Null:
		return nil, false, nil
	case tag.PrimVal:
		p, perr := readPrimitiveTagByte(r)
		if perr != nil {
			return nil, false, perr
		}
		val, verr := readPrimitiveValue(r, p)
		return val, false, verr
	case tag.List:
		n, nerr := wireio.ReadInt32(r)
		if nerr != nil {
			return nil, false, nerr
		}
		if n < 0 {
			return nil, false, fmt.Errorf("%w: negative list length %d", ErrUnknownValueTag, n)
		}
		*stack = append(*stack, &decListFrame{size: n, list: make([]any, 0, n)})
		return nil, true, nil
	case tag.Record:
		pos := r.Offset() - 1 // the 0x03 tag byte itself, already consumed
		n, nerr := wireio.ReadInt32(r)
		if nerr != nil {
			return nil, false, nerr
		}
		if n < 0 {
			return nil, false, fmt.Errorf("%w: negative entry count %d", ErrUnknownValueTag, n)
		}
		*stack = append(*stack, &decRecordFrame{size: n, offsetAtHeader: pos, rec: recordmodel.New()})
		return nil, true, nil
	case tag.Reference:
		off, oerr := wireio.ReadInt64(r)
		if oerr != nil {
			return nil, false, oerr
		}
		if off < 0 {
			return nil, false, fmt.Errorf("%w: negative reference offset %d", ErrUnknownValueTag, off)
		}
		val, ok := offsets[off]
		if !ok {
			return nil, false, ErrDanglingReference
		}
		return val, false, nil
	}
	// readValueTag already rejected anything v.IsValid() excludes.
	return nil, false, fmt.Errorf("codec: unhandled value tag %s", v)
}

// readAndDeliver reads one element at the stream's current position. If
// it's a container, the new frame is left on top of the stack for the main
// loop to drive. If it's inline, it's delivered immediately to whatever
// frame is on top of the stack (the frame that asked for it).
func readAndDeliver(r *streampos.Reader, offsets map[int64]any, stack *[]decFrame) error {
	value, pushed, err := decodeElement(r, offsets, stack)
	if err != nil {
		return err
	}
	if pushed {
		return nil
	}
	deliverToParent(*stack, value)
	return nil
}

func deliverToParent(stack []decFrame, value any) {
	if len(stack) == 0 {
		return
	}
	switch p := stack[len(stack)-1].(type) {
	case *decRecordFrame:
		p.rec.SetValue(p.currentKey, value)
		p.read++
	case *decListFrame:
		p.list = append(p.list, value)
		p.read++
	}
}

// finalizeRecord applies RecordFrame.finalize: if the
// partial record carries _meta_classname, its converter unmarshals it into
// a domain value; otherwise the raw record is kept as-is.
func finalizeRecord(f *decRecordFrame, opts DecodeOptions) (any, error) {
	raw, ok := f.rec.Value(recordmodel.MetaClassName)
	if !ok {
		return f.rec, nil
	}
	typeName, _ := raw.(string)
	conv, found := opts.Registry.ByName(typeName)
	if !found {
		if !opts.IgnoreMissing {
			return nil, fmt.Errorf("%w: %q", convert.ErrNoConverter, typeName)
		}
		return f.rec, nil
	}
	return conv.Unmarshal(f.rec)
}
