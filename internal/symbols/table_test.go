package symbols

import (
	"errors"
	"testing"

	"qasmc/internal/types"
)

func TestGlobalScopeIsNeverPopped(t *testing.T) {
	table := NewTable(Hints{}, nil)
	if !table.Global().IsValid() || table.Current() != table.Global() {
		t.Fatalf("expected global scope to be current")
	}
	table.Pop()
	if table.Depth() != 1 {
		t.Fatalf("global scope popped, depth %d", table.Depth())
	}
}

func TestDeclareAndLookup(t *testing.T) {
	table := NewTable(Hints{}, nil)
	name := table.Strings.Intern("i")
	if _, err := table.Declare(Symbol{Name: name, Kind: SymbolVar, Value: types.IntValue(1)}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if _, err := table.Declare(Symbol{Name: name, Kind: SymbolVar}); !errors.Is(err, ErrRedeclared) {
		t.Fatalf("expected redeclaration error, got %v", err)
	}
	_, sym, err := table.Lookup(name)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if sym.Value.Int != 1 || sym.Scope != table.Global() {
		t.Fatalf("unexpected symbol %+v", sym)
	}
	if _, _, err := table.Lookup(table.Strings.Intern("missing")); !errors.Is(err, ErrUndeclared) {
		t.Fatalf("expected undeclared error, got %v", err)
	}
}

func TestShadowingAndPop(t *testing.T) {
	table := NewTable(Hints{}, nil)
	name := table.Strings.Intern("j")
	if _, err := table.Declare(Symbol{Name: name, Kind: SymbolVar, Value: types.IntValue(1)}); err != nil {
		t.Fatalf("declare outer: %v", err)
	}
	table.Push(ScopeCase, table.Scopes.Get(table.Global()).Span)
	if _, err := table.Declare(Symbol{Name: name, Kind: SymbolVar, Value: types.IntValue(2)}); err != nil {
		t.Fatalf("shadowing must be allowed: %v", err)
	}
	if _, sym, _ := table.Lookup(name); sym.Value.Int != 2 {
		t.Fatalf("expected inner symbol, got %v", sym.Value)
	}
	table.Pop()
	if _, sym, _ := table.Lookup(name); sym.Value.Int != 1 {
		t.Fatalf("expected outer symbol after pop, got %v", sym.Value)
	}
}

func TestAssignMutatesOwner(t *testing.T) {
	table := NewTable(Hints{}, nil)
	name := table.Strings.Intern("k")
	if _, err := table.Declare(Symbol{Name: name, Kind: SymbolVar, Value: types.IntValue(1)}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	table.Push(ScopeCase, table.Scopes.Get(table.Global()).Span)
	if err := table.Assign(name, types.IntValue(5)); err != nil {
		t.Fatalf("assign: %v", err)
	}
	table.Pop()
	if _, sym, _ := table.Lookup(name); sym.Value.Int != 5 {
		t.Fatalf("assignment in case scope must persist, got %v", sym.Value)
	}
}

func TestAssignConstFails(t *testing.T) {
	table := NewTable(Hints{}, nil)
	name := table.Strings.Intern("c")
	if _, err := table.Declare(Symbol{Name: name, Kind: SymbolVar, Const: true, Value: types.IntValue(1)}); err != nil {
		t.Fatalf("declare: %v", err)
	}
	if err := table.Assign(name, types.IntValue(2)); !errors.Is(err, ErrImmutable) {
		t.Fatalf("expected immutable error, got %v", err)
	}
}

func TestDetachedScopeSeesOnlyConstants(t *testing.T) {
	table := NewTable(Hints{}, nil)
	c := table.Strings.Intern("n")
	v := table.Strings.Intern("m")
	g := table.Strings.Intern("bell")
	if _, err := table.Declare(Symbol{Name: c, Kind: SymbolVar, Const: true}); err != nil {
		t.Fatalf("declare const: %v", err)
	}
	if _, err := table.Declare(Symbol{Name: v, Kind: SymbolVar}); err != nil {
		t.Fatalf("declare var: %v", err)
	}
	if _, err := table.Declare(Symbol{Name: g, Kind: SymbolGate}); err != nil {
		t.Fatalf("declare gate: %v", err)
	}

	table.Push(ScopeCase, table.Scopes.Get(table.Global()).Span)
	table.PushDetached(ScopeSubroutine, table.Global(), table.Scopes.Get(table.Global()).Span)
	defer table.Pop()

	if _, _, err := table.Lookup(c); err != nil {
		t.Fatalf("const must be visible: %v", err)
	}
	if _, _, err := table.Lookup(g); err != nil {
		t.Fatalf("gate must be visible: %v", err)
	}
	if _, _, err := table.Lookup(v); !errors.Is(err, ErrUndeclared) {
		t.Fatalf("mutable global must be hidden, got %v", err)
	}
}
