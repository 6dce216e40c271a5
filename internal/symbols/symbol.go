package symbols

import (
	"qasmc/internal/ast"
	"qasmc/internal/source"
	"qasmc/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVar
	SymbolQubit
	SymbolGate
	SymbolSubroutine
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVar:
		return "variable"
	case SymbolQubit:
		return "qubit"
	case SymbolGate:
		return "gate"
	case SymbolSubroutine:
		return "subroutine"
	default:
		return "invalid"
	}
}

// QubitRef addresses one physical slot of a declared register.
type QubitRef struct {
	Register source.StringID
	Index    uint32
}

// Symbol is a named entity visible from some scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Type  types.TypeID
	Const bool
	Value types.Value
	Scope ScopeID
	Span  source.Span

	// Qubits is set for qubit parameters bound inside an inlined body;
	// they alias the caller's slots. Global registers leave it nil.
	Qubits []QubitRef
	// Decl points at the defining statement of a gate or subroutine.
	Decl ast.StmtID
}

// Visible reports whether the symbol may be seen from inside a detached
// scope looking outward.
func (s *Symbol) Visible() bool {
	return s.Const || s.Kind == SymbolGate || s.Kind == SymbolSubroutine
}
