package sema

import (
	"qasmc/internal/ast"
	"qasmc/internal/source"
	"qasmc/internal/symbols"
	"qasmc/internal/trace"
	"qasmc/internal/types"
)

// enter opens a detached body scope and accounts for inline depth.
// The returned func undoes both.
func (u *unroller) enter(kind symbols.ScopeKind, sp source.Span, name string, at source.Span, snippet string) (func(), error) {
	if u.depth >= u.maxDepth {
		return nil, u.env.fail(KindInlineDepth, at, snippet, "Maximum inline depth %d exceeded in call of '%s'", u.maxDepth, name)
	}
	table := u.env.Symbols
	table.PushDetached(kind, table.Global(), sp)
	u.depth++
	return func() {
		u.depth--
		table.Pop()
	}, nil
}

// callSubroutine inlines a user subroutine at an expression or statement
// call site and yields its return value.
func (u *unroller) callSubroutine(id ast.ExprID, call *ast.ExprCallData) (Value, error) {
	_, sym, err := u.env.Symbols.Lookup(call.Name)
	if err != nil {
		return Value{}, u.ev.failExpr(KindUnknownGate, id, "Undefined subroutine '%s'", u.env.name(call.Name))
	}
	declID := sym.Decl
	def, _ := u.env.AST.Stmts.Def(declID)
	name := u.env.name(call.Name)
	if len(call.Args) != len(def.Params) {
		return Value{}, u.ev.failExpr(KindArity, id, "Subroutine '%s' expects %d arguments, got %d", name, len(def.Params), len(call.Args))
	}

	// аргументы вычисляются в области вызывающего
	bound := make([]symbols.Symbol, 0, len(def.Params))
	for i, p := range def.Params {
		arg := call.Args[i]
		t, err := u.ev.ResolveType(p.Type)
		if err != nil {
			return Value{}, err
		}
		tt := u.env.Types.MustLookup(t)
		if tt.Kind == types.KindQubit {
			refs, err := u.resolveQubits(arg)
			if err != nil {
				return Value{}, err
			}
			if want := int(max(tt.Width, 1)); len(refs) != want {
				return Value{}, u.ev.failExpr(KindTypeMismatch, arg, "Argument %d of '%s' expects %d qubits, got %d", i+1, name, want, len(refs))
			}
			bound = append(bound, symbols.Symbol{Name: p.Name, Kind: symbols.SymbolQubit, Type: t, Span: p.Span, Qubits: refs})
			continue
		}
		v, err := u.ev.Eval(arg)
		if err != nil {
			return Value{}, err
		}
		if v, err = u.coerce(t, arg, v); err != nil {
			return Value{}, err
		}
		bound = append(bound, symbols.Symbol{Name: p.Name, Kind: symbols.SymbolVar, Type: t, Value: v, Span: p.Span})
	}
	ret := types.NoTypeID
	if def.Return.Kind != ast.TypeSpecNone {
		if ret, err = u.ev.ResolveType(def.Return); err != nil {
			return Value{}, err
		}
	}

	leave, err := u.enter(symbols.ScopeSubroutine, u.env.stmtSpan(declID), name, u.env.exprSpan(id), u.ev.text(id))
	if err != nil {
		return Value{}, err
	}
	defer leave()
	u.inDef++
	defer func() { u.inDef-- }()
	trace.Point(u.ctx, trace.ScopeNode, "call", name, nil)

	for _, b := range bound {
		kind := "variable"
		if b.Kind == symbols.SymbolQubit {
			kind = "qubit"
		}
		if err := u.declare(declID, b, kind); err != nil {
			return Value{}, err
		}
	}
	f, err := u.walk(def.Body)
	if err != nil {
		return Value{}, err
	}
	if ret == types.NoTypeID || !f.returned {
		return Value{}, nil
	}
	return u.coerce(ret, id, f.value)
}

// expandGate splices a user gate body for one set of physical qubits.
// Angles are bound as constants, qubit names alias the given slots.
func (u *unroller) expandGate(declID ast.StmtID, at source.Span, def *ast.GateDefStmt, params []Value, refs []symbols.QubitRef) error {
	name := u.env.name(def.Name)
	leave, err := u.enter(symbols.ScopeGate, u.env.stmtSpan(declID), name, at, u.snippet(declID))
	if err != nil {
		return err
	}
	defer leave()
	trace.Point(u.ctx, trace.ScopeNode, "gate", name, nil)

	b := u.env.Types.Builtins()
	for i, p := range def.Params {
		sym := symbols.Symbol{Name: p, Kind: symbols.SymbolVar, Type: b.Float, Const: true, Value: params[i], Span: def.NameSpan}
		if err := u.declare(declID, sym, "variable"); err != nil {
			return err
		}
	}
	for i, q := range def.Qubits {
		sym := symbols.Symbol{Name: q, Kind: symbols.SymbolQubit, Type: b.Qubit, Span: def.NameSpan, Qubits: refs[i : i+1]}
		if err := u.declare(declID, sym, "qubit"); err != nil {
			return err
		}
	}
	_, err = u.walk(def.Body)
	return err
}
