// Package tag defines the single-byte tags that make up xdata's wire
// format: the primitive tag table and the value tag table. Keeping these
// as a standalone package, rather than folding them into the
// encoder/decoder, keeps the tag enum and its String() reusable
// independent of which side of the codec uses them.
package tag

import "fmt"

// Primitive identifies one of the nine primitive wire encodings.
type Primitive byte

const (
	Bool   Primitive = 0x00
	I8     Primitive = 0x01
	Char   Primitive = 0x02
	I16    Primitive = 0x03
	I32    Primitive = 0x04
	I64    Primitive = 0x05
	F32    Primitive = 0x06
	F64    Primitive = 0x07
	String Primitive = 0x08
)

func (p Primitive) String() string {
	switch p {
	case Bool:
		return "Bool"
	case I8:
		return "I8"
	case Char:
		return "Char"
	case I16:
		return "I16"
	case I32:
		return "I32"
	case I64:
		return "I64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	case String:
		return "String"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", byte(p))
	}
}

// IsValid reports whether p is one of the nine defined primitive tags.
func (p Primitive) IsValid() bool {
	return p <= String
}

// Value identifies the shape of the next tagged value on the wire: a null,
// a primitive, a list, a record, or a back-reference to an
// already-written record.
type Value byte

const (
	Null      Value = 0x00
	PrimVal   Value = 0x01
	List      Value = 0x02
	Record    Value = 0x03
	Reference Value = 0x04
)

func (v Value) String() string {
	switch v {
	case Null:
		return "Null"
	case PrimVal:
		return "Primitive"
	case List:
		return "List"
	case Record:
		return "Record"
	case Reference:
		return "Reference"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", byte(v))
	}
}

// IsValid reports whether v is one of the five defined value tags. Any
// other byte — including a numeric class-id tag from a class-registry
// style scheme — falls outside this range and is therefore always invalid.
func (v Value) IsValid() bool {
	return v <= Reference
}
