package types

import "testing"

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Int == NoTypeID || b.Qubit == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	if got := in.Kind(b.Float); got != KindFloat {
		t.Fatalf("expected float kind, got %v", got)
	}
	if in.Kind(NoTypeID) != KindInvalid {
		t.Fatalf("NoTypeID must report invalid kind")
	}
}

func TestInternerDeduplicatesDescriptors(t *testing.T) {
	in := NewInterner()
	a := in.Intern(MakeInt(32))
	b := in.Intern(MakeInt(32))
	if a != b {
		t.Fatalf("int[32] should be deduplicated")
	}
	if a == in.Builtins().Int {
		t.Fatalf("int[32] must differ from int")
	}
}

func TestArrayShapeRoundTrip(t *testing.T) {
	in := NewInterner()
	elem := in.Intern(MakeFloat(WidthAny))
	arr := in.ArrayOf(elem, []uint32{3, 2})
	gotElem, dims := in.Shape(arr)
	if gotElem != elem {
		t.Fatalf("element type lost: %v", gotElem)
	}
	if len(dims) != 2 || dims[0] != 3 || dims[1] != 2 {
		t.Fatalf("unexpected dims %v", dims)
	}
}

func TestFormat(t *testing.T) {
	in := NewInterner()
	cases := []struct {
		id   TypeID
		want string
	}{
		{in.Builtins().Int, "int"},
		{in.Intern(MakeFloat(64)), "float[64]"},
		{in.Intern(MakeBits(4)), "bit[4]"},
		{in.Builtins().Qubit, "qubit"},
		{in.ArrayOf(in.Intern(MakeInt(32)), []uint32{3, 2}), "array[int[32], 3, 2]"},
	}
	for _, tc := range cases {
		if got := in.Format(tc.id); got != tc.want {
			t.Fatalf("Format = %q, want %q", got, tc.want)
		}
	}
}

func TestRegisterDetection(t *testing.T) {
	if MakeQubits(WidthAny).IsRegister() {
		t.Fatalf("single qubit is not a register")
	}
	if !MakeBits(2).IsRegister() {
		t.Fatalf("bit[2] is a register")
	}
}

func TestValueConversions(t *testing.T) {
	if Unknown().Known() {
		t.Fatalf("zero value must be unknown")
	}
	if v, ok := FloatValue(4).AsInt(); !ok || v != 4 {
		t.Fatalf("4.0 should convert to int 4, got %d %v", v, ok)
	}
	if _, ok := FloatValue(4.3).AsInt(); ok {
		t.Fatalf("4.3 is not an integer")
	}
	if got := FloatValue(3.9).Convert(KindInt); got.Kind != ValueInt || got.Int != 3 {
		t.Fatalf("float to int must truncate, got %v", got)
	}
	if got := IntValue(2).Convert(KindBool); got.String() != "true" {
		t.Fatalf("int to bool: %v", got)
	}
	arr := ArrayValue([]Value{IntValue(1), Unknown()})
	if arr.Known() {
		t.Fatalf("array with unknown element must be unknown")
	}
	if e, ok := arr.Index(0); !ok || e.Int != 1 {
		t.Fatalf("index 0: %v %v", e, ok)
	}
	if _, ok := arr.Index(2); ok {
		t.Fatalf("index 2 is out of range")
	}
}
