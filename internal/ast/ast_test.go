package ast

import (
	"testing"

	"qasmc/internal/source"
)

func TestArenaIsOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatalf("index 0 must be the nil sentinel")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("unexpected allocation %d", id)
	}
	if a.Get(2) != nil {
		t.Fatalf("out of range index must be nil")
	}
}

func TestExprPayloadAccessors(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	name := b.Strings.Intern("i")
	ident := b.Exprs.NewIdent(source.Span{Start: 0, End: 1}, name)
	zero := b.Exprs.NewLiteral(source.Span{Start: 2, End: 3}, ExprLitInt, b.Strings.Intern("0"))
	one := b.Exprs.NewLiteral(source.Span{Start: 5, End: 6}, ExprLitInt, b.Strings.Intern("1"))
	inner := b.Exprs.NewIndex(source.Span{Start: 0, End: 4}, ident, zero)
	outer := b.Exprs.NewIndex(source.Span{Start: 0, End: 7}, inner, one)

	if _, ok := b.Exprs.Literal(ident); ok {
		t.Fatalf("ident must not decode as literal")
	}
	data, ok := b.Exprs.Ident(ident)
	if !ok || b.Name(data.Name) != "i" {
		t.Fatalf("ident payload mismatch")
	}
	root, indices := b.Exprs.IndexRoot(outer)
	if root != ident || len(indices) != 2 || indices[0] != zero || indices[1] != one {
		t.Fatalf("IndexRoot = %v %v", root, indices)
	}

	group := b.Exprs.NewGroup(source.Span{}, b.Exprs.NewGroup(source.Span{}, ident))
	if b.Exprs.Unparen(group) != ident {
		t.Fatalf("Unparen must strip nested groups")
	}
}

func TestSwitchStmtRoundTrip(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	target := b.Exprs.NewIdent(source.Span{}, b.Strings.Intern("i"))
	id := b.Stmts.NewSwitch(source.Span{Start: 10, End: 40}, SwitchStmt{
		Target:     target,
		Cases:      []SwitchCase{{Labels: []ExprID{target}}},
		HasDefault: true,
	})
	if b.Stmts.Get(id).Kind != StmtSwitch {
		t.Fatalf("kind = %v", b.Stmts.Get(id).Kind)
	}
	sw, ok := b.Stmts.Switch(id)
	if !ok || sw.Target != target || len(sw.Cases) != 1 || !sw.HasDefault {
		t.Fatalf("switch payload mismatch")
	}
	if _, ok := b.Stmts.Def(id); ok {
		t.Fatalf("switch must not decode as def")
	}
}

func TestAssignOpBinary(t *testing.T) {
	if op, ok := AssignAdd.Binary(); !ok || op != ExprBinaryAdd {
		t.Fatalf("+= must map to +")
	}
	if _, ok := AssignSet.Binary(); ok {
		t.Fatalf("= has no binary operator")
	}
}
