package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"qasmc/internal/source"
	"qasmc/internal/types"
)

var (
	ErrRedeclared = errors.New("symbol already declared in this scope")
	ErrUndeclared = errors.New("undeclared identifier")
	ErrImmutable  = errors.New("assignment to constant")
)

// Hints provide optional capacity suggestions for the symbol table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas plus the active scope stack.
// The global scope is created eagerly and can never be popped.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	global  ScopeID
	stack   []ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	t := &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
	t.global = t.Scopes.New(ScopeGlobal, NoScopeID, false, source.Span{})
	t.stack = append(t.stack, t.global)
	return t
}

func (t *Table) Global() ScopeID { return t.global }

// Current returns the innermost active scope.
func (t *Table) Current() ScopeID { return t.stack[len(t.stack)-1] }

// Depth is the number of active scopes, the global one included.
func (t *Table) Depth() int { return len(t.stack) }

// Push opens a child of the current scope.
func (t *Table) Push(kind ScopeKind, span source.Span) ScopeID {
	id := t.Scopes.New(kind, t.Current(), false, span)
	t.stack = append(t.stack, id)
	return id
}

// PushDetached opens a scope whose lookups continue at parent rather than
// at the current scope, and only see constants there.
func (t *Table) PushDetached(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	id := t.Scopes.New(kind, parent, true, span)
	t.stack = append(t.stack, id)
	return id
}

// Pop closes the innermost scope. Its symbols stay in the arena but are no
// longer reachable by name.
func (t *Table) Pop() {
	if len(t.stack) <= 1 {
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// Declare adds sym to the current scope.
func (t *Table) Declare(sym Symbol) (SymbolID, error) {
	scopeID := t.Current()
	scope := t.Scopes.Get(scopeID)
	if prev, ok := scope.NameIndex[sym.Name]; ok {
		return prev, fmt.Errorf("%w: %s", ErrRedeclared, t.name(sym.Name))
	}
	sym.Scope = scopeID
	id := t.Symbols.New(&sym)
	scope.NameIndex[sym.Name] = id
	scope.Symbols = append(scope.Symbols, id)
	return id, nil
}

// Lookup resolves name innermost to outermost.
func (t *Table) Lookup(name source.StringID) (SymbolID, *Symbol, error) {
	crossed := false
	for id := t.Current(); id.IsValid(); {
		scope := t.Scopes.Get(id)
		if scope == nil {
			break
		}
		if symID, ok := scope.NameIndex[name]; ok {
			sym := t.Symbols.Get(symID)
			if !crossed || sym.Visible() {
				return symID, sym, nil
			}
		}
		if scope.Detached {
			crossed = true
		}
		id = scope.Parent
	}
	return NoSymbolID, nil, fmt.Errorf("%w: %s", ErrUndeclared, t.name(name))
}

// Assign stores v into the symbol that owns name, wherever it lives.
func (t *Table) Assign(name source.StringID, v types.Value) error {
	_, sym, err := t.Lookup(name)
	if err != nil {
		return err
	}
	if sym.Const {
		return fmt.Errorf("%w: %s", ErrImmutable, t.name(name))
	}
	sym.Value = v
	return nil
}

func (t *Table) name(id source.StringID) string {
	s, _ := t.Strings.Lookup(id)
	return s
}
