package cdf

import "fmt"

// Type is an element type, numbered by its on-disk tag.
type Type uint32

const (
	TypeChar Type = 1
	TypeI8   Type = 2
	TypeI16  Type = 3
	TypeI32  Type = 4
	TypeF32  Type = 5
	TypeF64  Type = 6
	TypeU8   Type = 7
	TypeU16  Type = 8
	TypeU32  Type = 9
	TypeI64  Type = 10
	TypeU64  Type = 11
)

func parseType(tag uint32) (Type, bool) {
	t := Type(tag)
	return t, t >= TypeChar && t <= TypeU64
}

// Size returns the byte size of one element, or 0 for an unknown type.
func (t Type) Size() int {
	switch t {
	case TypeChar, TypeI8, TypeU8:
		return 1
	case TypeI16, TypeU16:
		return 2
	case TypeI32, TypeU32, TypeF32:
		return 4
	case TypeI64, TypeU64, TypeF64:
		return 8
	default:
		return 0
	}
}

// String returns the CDL spelling of the type.
func (t Type) String() string {
	switch t {
	case TypeChar:
		return "char"
	case TypeI8:
		return "byte"
	case TypeU8:
		return "ubyte"
	case TypeI16:
		return "short"
	case TypeU16:
		return "ushort"
	case TypeI32:
		return "int"
	case TypeU32:
		return "uint"
	case TypeI64:
		return "int64"
	case TypeU64:
		return "uint64"
	case TypeF32:
		return "float"
	case TypeF64:
		return "double"
	default:
		return fmt.Sprintf("type(%d)", uint32(t))
	}
}
