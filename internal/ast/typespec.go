package ast

import (
	"qasmc/internal/source"
)

// TypeSpecKind is the syntactic type keyword of a declaration or parameter.
type TypeSpecKind uint8

const (
	TypeSpecNone TypeSpecKind = iota
	TypeSpecInt
	TypeSpecUint
	TypeSpecFloat
	TypeSpecBool
	TypeSpecBit
	TypeSpecAngle
	TypeSpecQubit
	TypeSpecArray
)

func (k TypeSpecKind) String() string {
	switch k {
	case TypeSpecInt:
		return "int"
	case TypeSpecUint:
		return "uint"
	case TypeSpecFloat:
		return "float"
	case TypeSpecBool:
		return "bool"
	case TypeSpecBit:
		return "bit"
	case TypeSpecAngle:
		return "angle"
	case TypeSpecQubit:
		return "qubit"
	case TypeSpecArray:
		return "array"
	default:
		return "<none>"
	}
}

// TypeSpec is a type as written in source. Width holds the designator of a
// scalar (`int[32]`, `bit[4]`, `qubit[2]`); arrays keep the element kind in
// Elem/ElemWidth and one expression per dimension in Dims.
type TypeSpec struct {
	Kind      TypeSpecKind
	Width     ExprID
	Elem      TypeSpecKind
	ElemWidth ExprID
	Dims      []ExprID
	Span      source.Span
}
