package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindBit
	KindAngle
	KindQubit
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindBit:
		return "bit"
	case KindAngle:
		return "angle"
	case KindQubit:
		return "qubit"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// WidthAny marks a scalar written without a designator (`int`, `float`)
// and a single bit or qubit (`bit b;`, `qubit q;`).
const WidthAny uint32 = 0

// Type is a compact descriptor for any supported type.
//
// For bit and qubit kinds Width is the register size. Arrays nest one level
// per dimension: array[int, 3, 2] is an array of 3 arrays of 2 ints.
type Type struct {
	Kind  Kind
	Width uint32
	Elem  TypeID // for arrays
	Count uint32 // for arrays
}

// MakeInt describes a signed integer of the given width (WidthAny for "int").
func MakeInt(width uint32) Type {
	return Type{Kind: KindInt, Width: width}
}

// MakeUint describes an unsigned integer type.
func MakeUint(width uint32) Type {
	return Type{Kind: KindUint, Width: width}
}

// MakeFloat describes a floating-point type.
func MakeFloat(width uint32) Type {
	return Type{Kind: KindFloat, Width: width}
}

// MakeBits describes `bit` (size WidthAny) or `bit[n]`.
func MakeBits(size uint32) Type {
	return Type{Kind: KindBit, Width: size}
}

// MakeQubits describes `qubit` (size WidthAny) or `qubit[n]`.
func MakeQubits(size uint32) Type {
	return Type{Kind: KindQubit, Width: size}
}

// MakeArray describes a single array dimension over elem.
func MakeArray(elem TypeID, count uint32) Type {
	return Type{Kind: KindArray, Elem: elem, Count: count}
}

// IsInteger reports whether the kind holds whole numbers (int or uint).
func (k Kind) IsInteger() bool {
	return k == KindInt || k == KindUint
}

// IsNumeric reports whether values of the kind take part in arithmetic.
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt, KindUint, KindFloat, KindAngle, KindBit, KindBool:
		return true
	default:
		return false
	}
}

// IsRegister reports whether a bit or qubit type names more than one slot.
func (t Type) IsRegister() bool {
	return (t.Kind == KindBit || t.Kind == KindQubit) && t.Width != WidthAny
}
