package types

import (
	"math"
	"strconv"
)

// ValueKind tags the payload carried by a Value.
type ValueKind uint8

const (
	ValueUnknown ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueArray
)

// Value is a compile-time value tracked for a classical symbol. The zero
// Value is Unknown: declared but never given a statically known value.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Elems []Value
}

func Unknown() Value { return Value{} }
func IntValue(v int64) Value { return Value{Kind: ValueInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: ValueFloat, Float: v} }
func ArrayValue(e []Value) Value { return Value{Kind: ValueArray, Elems: e} }
func BoolValue(b bool) Value {
	if b {
		return Value{Kind: ValueBool, Int: 1}
	}
	return Value{Kind: ValueBool}
}

// Known reports whether the value is statically known. Arrays are known
// only when every element is.
func (v Value) Known() bool {
	switch v.Kind {
	case ValueUnknown:
		return false
	case ValueArray:
		for _, e := range v.Elems {
			if !e.Known() {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// AsInt returns the integer view of a scalar. Floats convert only when
// they hold a whole number.
func (v Value) AsInt() (int64, bool) {
	switch v.Kind {
	case ValueInt, ValueBool:
		return v.Int, true
	case ValueFloat:
		if v.Float != math.Trunc(v.Float) || math.IsInf(v.Float, 0) || math.IsNaN(v.Float) {
			return 0, false
		}
		return int64(v.Float), true
	default:
		return 0, false
	}
}

// AsFloat returns the floating view of a scalar.
func (v Value) AsFloat() (float64, bool) {
	switch v.Kind {
	case ValueInt, ValueBool:
		return float64(v.Int), true
	case ValueFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Truthy reports the boolean view of a scalar.
func (v Value) Truthy() (bool, bool) {
	switch v.Kind {
	case ValueInt, ValueBool:
		return v.Int != 0, true
	case ValueFloat:
		return v.Float != 0, true
	default:
		return false, false
	}
}

// Convert coerces v to the scalar kind k, the way an assignment to a
// variable of that kind would. Unknown stays unknown.
func (v Value) Convert(k Kind) Value {
	if !v.Known() || v.Kind == ValueArray {
		return v
	}
	switch k {
	case KindInt, KindUint:
		if f, ok := v.AsFloat(); ok && v.Kind == ValueFloat {
			return IntValue(int64(f))
		}
		return IntValue(v.Int)
	case KindFloat, KindAngle:
		f, _ := v.AsFloat()
		return FloatValue(f)
	case KindBool:
		b, _ := v.Truthy()
		return BoolValue(b)
	case KindBit:
		b, _ := v.Truthy()
		if b {
			return IntValue(1)
		}
		return IntValue(0)
	default:
		return v
	}
}

// Index returns element i of an array value.
func (v Value) Index(i int64) (Value, bool) {
	if v.Kind != ValueArray || i < 0 || i >= int64(len(v.Elems)) {
		return Value{}, false
	}
	return v.Elems[i], true
}

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBool:
		if v.Int != 0 {
			return "true"
		}
		return "false"
	case ValueArray:
		s := "{"
		for i, e := range v.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + "}"
	default:
		return "<unknown>"
	}
}
