package codec

import (
	"fmt"
	"io"

	"github.com/aalhour/xdata/internal/tag"
	"github.com/aalhour/xdata/internal/wireio"
)

// Char represents a 16-bit unsigned character value (U16-Char tag),
// distinct from a signed 16-bit I16. Re-exported at the package root as
// xdata.Char.
type Char uint16

func writeValueTag(w io.Writer, v tag.Value) error {
	_, err := w.Write([]byte{byte(v)})
	return err
}

func readValueTag(r io.Reader) (tag.Value, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wireio.ErrTruncated
	}
	v := tag.Value(buf[0])
	if !v.IsValid() {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownValueTag, buf[0])
	}
	return v, nil
}

func writePrimitiveTagByte(w io.Writer, p tag.Primitive) error {
	_, err := w.Write([]byte{byte(p)})
	return err
}

func readPrimitiveTagByte(r io.Reader) (tag.Primitive, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, wireio.ErrTruncated
	}
	p := tag.Primitive(buf[0])
	if !p.IsValid() {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownPrimitiveTag, buf[0])
	}
	return p, nil
}

// primitiveTagOf reports which of the nine primitive tags v's dynamic type
// corresponds to, if any.
func primitiveTagOf(v any) (tag.Primitive, bool) {
	switch v.(type) {
	case bool:
		return tag.Bool, true
	case int8:
		return tag.I8, true
	case Char:
		return tag.Char, true
	case int16:
		return tag.I16, true
	case int32:
		return tag.I32, true
	case int64:
		return tag.I64, true
	case float32:
		return tag.F32, true
	case float64:
		return tag.F64, true
	case string:
		return tag.String, true
	default:
		return 0, false
	}
}

func writePrimitiveValue(w io.Writer, p tag.Primitive, v any) error {
	switch p {
	case tag.Bool:
		return wireio.WriteBool(w, v.(bool))
	case tag.I8:
		return wireio.WriteInt8(w, v.(int8))
	case tag.Char:
		return wireio.WriteUint16(w, uint16(v.(Char)))
	case tag.I16:
		return wireio.WriteInt16(w, v.(int16))
	case tag.I32:
		return wireio.WriteInt32(w, v.(int32))
	case tag.I64:
		return wireio.WriteInt64(w, v.(int64))
	case tag.F32:
		return wireio.WriteFloat32(w, v.(float32))
	case tag.F64:
		return wireio.WriteFloat64(w, v.(float64))
	case tag.String:
		return wireio.WriteString(w, v.(string))
	default:
		return fmt.Errorf("%w: 0x%02x", ErrUnknownPrimitiveTag, byte(p))
	}
}

func readPrimitiveValue(r io.Reader, p tag.Primitive) (any, error) {
	switch p {
	case tag.Bool:
		return wireio.ReadBool(r)
	case tag.I8:
		return wireio.ReadInt8(r)
	case tag.Char:
		u, err := wireio.ReadUint16(r)
		return Char(u), err
	case tag.I16:
		return wireio.ReadInt16(r)
	case tag.I32:
		return wireio.ReadInt32(r)
	case tag.I64:
		return wireio.ReadInt64(r)
	case tag.F32:
		return wireio.ReadFloat32(r)
	case tag.F64:
		return wireio.ReadFloat64(r)
	case tag.String:
		return wireio.ReadString(r)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownPrimitiveTag, byte(p))
	}
}
