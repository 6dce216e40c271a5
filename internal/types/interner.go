package types

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for common primitive types.
type Builtins struct {
	Invalid TypeID
	Int     TypeID
	Uint    TypeID
	Float   TypeID
	Bool    TypeID
	Bit     TypeID
	Angle   TypeID
	Qubit   TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 32),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Int = in.Intern(MakeInt(WidthAny))
	in.builtins.Uint = in.Intern(MakeUint(WidthAny))
	in.builtins.Float = in.Intern(MakeFloat(WidthAny))
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Bit = in.Intern(MakeBits(WidthAny))
	in.builtins.Angle = in.Intern(Type{Kind: KindAngle})
	in.builtins.Qubit = in.Intern(MakeQubits(WidthAny))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind is a shortcut for Lookup(id).Kind; unknown IDs are KindInvalid.
func (in *Interner) Kind(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// ArrayOf builds the nested array type for the given shape, outermost first.
func (in *Interner) ArrayOf(elem TypeID, dims []uint32) TypeID {
	id := elem
	for i := len(dims) - 1; i >= 0; i-- {
		id = in.Intern(MakeArray(id, dims[i]))
	}
	return id
}

// Shape unwraps nested arrays into the scalar element type and dimensions.
// Non-array types return themselves with no dimensions.
func (in *Interner) Shape(id TypeID) (TypeID, []uint32) {
	var dims []uint32
	for {
		tt, ok := in.Lookup(id)
		if !ok || tt.Kind != KindArray {
			return id, dims
		}
		dims = append(dims, tt.Count)
		id = tt.Elem
	}
}

// Format renders a type the way it is written in OpenQASM source.
func (in *Interner) Format(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	if tt.Kind == KindArray {
		elem, dims := in.Shape(id)
		var b strings.Builder
		b.WriteString("array[")
		b.WriteString(in.Format(elem))
		for _, d := range dims {
			b.WriteString(", ")
			b.WriteString(strconv.FormatUint(uint64(d), 10))
		}
		b.WriteString("]")
		return b.String()
	}
	if tt.Width == WidthAny {
		return tt.Kind.String()
	}
	return tt.Kind.String() + "[" + strconv.FormatUint(uint64(tt.Width), 10) + "]"
}
