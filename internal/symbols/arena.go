package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"qasmc/internal/source"
)

// ScopeID and SymbolID index the table arenas; zero means none.
type (
	ScopeID  uint32
	SymbolID uint32
)

const (
	NoScopeID  ScopeID  = 0
	NoSymbolID SymbolID = 0
)

func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// store is a 1-based slice arena keyed by a typed ID. Pointers returned by
// get stay valid only until the next add.
type store[ID ~uint32, T any] struct {
	data []T
}

func (s *store[ID, T]) add(v T) ID {
	s.data = append(s.data, v)
	n, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols: arena overflow: %w", err))
	}
	return ID(n)
}

func (s *store[ID, T]) get(id ID) *T {
	if id == 0 || int(id) > len(s.data) {
		return nil
	}
	return &s.data[id-1]
}

// Scopes holds every scope opened while walking a program.
type Scopes struct {
	store[ScopeID, Scope]
}

func NewScopes(capHint uint32) *Scopes {
	return &Scopes{store[ScopeID, Scope]{data: make([]Scope, 0, max(capHint, 16))}}
}

func (s *Scopes) New(kind ScopeKind, parent ScopeID, detached bool, span source.Span) ScopeID {
	return s.add(Scope{
		Kind:      kind,
		Parent:    parent,
		Detached:  detached,
		Span:      span,
		NameIndex: make(map[source.StringID]SymbolID),
	})
}

func (s *Scopes) Get(id ScopeID) *Scope { return s.get(id) }
func (s *Scopes) Len() int              { return len(s.data) }

// Symbols holds declared names; a symbol is never removed, closed scopes
// just stop indexing it.
type Symbols struct {
	store[SymbolID, Symbol]
}

func NewSymbols(capHint uint32) *Symbols {
	return &Symbols{store[SymbolID, Symbol]{data: make([]Symbol, 0, max(capHint, 64))}}
}

func (s *Symbols) New(sym *Symbol) SymbolID {
	if sym == nil {
		panic("symbols.New: nil symbol")
	}
	return s.add(*sym)
}

func (s *Symbols) Get(id SymbolID) *Symbol { return s.get(id) }
func (s *Symbols) Len() int                { return len(s.data) }
