package symbols

import (
	"qasmc/internal/source"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid    ScopeKind = iota
	ScopeGlobal               // program top level
	ScopeCase                 // selected switch branch
	ScopeSubroutine           // inlined def body
	ScopeGate                 // inlined gate body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeCase:
		return "case"
	case ScopeSubroutine:
		return "subroutine"
	case ScopeGate:
		return "gate"
	default:
		return "invalid"
	}
}

// Scope is one level of the lexical stack. Parent is a lookup-only link;
// a Detached scope exposes only constants (and callables) of its ancestors.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID
	Detached  bool
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID
}
