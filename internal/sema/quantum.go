package sema

import (
	"qasmc/internal/ast"
	"qasmc/internal/source"
	"qasmc/internal/symbols"
	"qasmc/internal/types"
)

// slots lists the physical qubits behind a qubit symbol. Inlined
// parameters alias the caller's slots.
func (u *unroller) slots(sym *symbols.Symbol) []symbols.QubitRef {
	if sym.Qubits != nil {
		return sym.Qubits
	}
	n := max(u.env.Types.MustLookup(sym.Type).Width, 1)
	refs := make([]symbols.QubitRef, n)
	for i := range refs {
		refs[i] = symbols.QubitRef{Register: sym.Name, Index: uint32(i)}
	}
	return refs
}

// resolveQubits turns an operand (`q`, `q[i]`) into physical slots. A bare
// register yields all of its slots in order.
func (u *unroller) resolveQubits(id ast.ExprID) ([]symbols.QubitRef, error) {
	exprs := u.env.AST.Exprs
	root, indices := exprs.IndexRoot(exprs.Unparen(id))
	ident, ok := exprs.Ident(root)
	if !ok || len(indices) > 1 {
		return nil, u.ev.failExpr(KindTypeMismatch, id, "Invalid qubit operand '%s'", u.ev.text(id))
	}
	name := u.env.name(ident.Name)
	_, sym, err := u.env.Symbols.Lookup(ident.Name)
	if err != nil {
		return nil, u.ev.failExpr(KindUndeclaredIdentifier, root, "Undefined identifier '%s' in expression", name)
	}
	if sym.Kind != symbols.SymbolQubit {
		return nil, u.ev.failExpr(KindTypeMismatch, root, "Expected qubit operand, got %s '%s'", sym.Kind, name)
	}
	refs := u.slots(sym)
	if len(indices) == 0 {
		return refs, nil
	}

	v, err := u.ev.requireKnown(indices[0])
	if err != nil {
		return nil, err
	}
	n, ok := v.AsInt()
	if !ok {
		return nil, u.ev.failExpr(KindTypeMismatch, indices[0], "Index '%s' must be an integer", u.ev.text(indices[0]))
	}
	at := n
	if at < 0 {
		at += int64(len(refs))
	}
	if at < 0 || at >= int64(len(refs)) {
		return nil, u.ev.failExpr(KindIndexOutOfRange, indices[0], "Index %d out of range for register '%s' of size %d", n, name, len(refs))
	}
	return refs[at : at+1], nil
}

// bitTarget is the classical side of a measurement, one entry per bit.
// An index of -1 stands for a scalar bit.
type bitTarget struct {
	name    source.StringID
	span    source.Span
	indices []int64
	blank   Value
}

func (u *unroller) bitsOf(sym *symbols.Symbol, sp source.Span) bitTarget {
	dst := bitTarget{name: sym.Name, span: sp, blank: u.blank(sym.Type)}
	width := u.env.Types.MustLookup(sym.Type).Width
	if width == types.WidthAny {
		dst.indices = []int64{-1}
		return dst
	}
	for i := range int64(width) {
		dst.indices = append(dst.indices, i)
	}
	return dst
}

// resolveBits resolves `c` or `c[i]` as a measurement destination.
func (u *unroller) resolveBits(id ast.ExprID) (bitTarget, error) {
	exprs := u.env.AST.Exprs
	root, indices := exprs.IndexRoot(exprs.Unparen(id))
	ident, ok := exprs.Ident(root)
	if !ok || len(indices) > 1 {
		return bitTarget{}, u.ev.failExpr(KindTypeMismatch, id, "Invalid measurement target '%s'", u.ev.text(id))
	}
	name := u.env.name(ident.Name)
	sym, err := u.ev.lookup(ident.Name, root)
	if err != nil {
		return bitTarget{}, err
	}
	if sym == nil || sym.Kind != symbols.SymbolVar || u.env.Types.Kind(sym.Type) != types.KindBit {
		return bitTarget{}, u.ev.failExpr(KindTypeMismatch, id, "Measurement target '%s' must be a bit or bit register", name)
	}
	if sym.Const {
		return bitTarget{}, u.ev.failExpr(KindImmutableAssignment, id, "Assignment to constant variable '%s' not allowed", name)
	}
	if len(indices) == 0 {
		return u.bitsOf(sym, u.env.exprSpan(id)), nil
	}

	v, err := u.ev.requireKnown(indices[0])
	if err != nil {
		return bitTarget{}, err
	}
	n, ok := v.AsInt()
	if !ok {
		return bitTarget{}, u.ev.failExpr(KindTypeMismatch, indices[0], "Index '%s' must be an integer", u.ev.text(indices[0]))
	}
	if _, _, err := u.ev.selectElement(name, sym.Type, Value{}, []int64{n}, indices); err != nil {
		return bitTarget{}, err
	}
	if n < 0 {
		n += int64(u.env.Types.MustLookup(sym.Type).Width)
	}
	return bitTarget{name: sym.Name, span: u.env.exprSpan(id), indices: []int64{n}, blank: u.blank(sym.Type)}, nil
}

func (u *unroller) bitExpr(dst bitTarget, i int) ast.ExprID {
	base := u.out.Exprs.NewIdent(dst.span, dst.name)
	if dst.indices[i] < 0 {
		return base
	}
	return u.out.Exprs.NewIndex(dst.span, base, u.intLiteral(dst.span, dst.indices[i]))
}

func (u *unroller) measure(id ast.StmtID, span source.Span, src, target ast.ExprID) error {
	if !target.IsValid() {
		refs, err := u.resolveQubits(src)
		if err != nil {
			return err
		}
		for _, r := range refs {
			u.emit(u.out.Stmts.NewMeasure(span, u.qubitExpr(span, r), ast.NoExprID))
		}
		return nil
	}
	dst, err := u.resolveBits(target)
	if err != nil {
		return err
	}
	return u.emitMeasure(id, span, src, dst)
}

// emitMeasure pairs qubits with bits one to one. The destination value is
// unknown from here on.
func (u *unroller) emitMeasure(id ast.StmtID, span source.Span, src ast.ExprID, dst bitTarget) error {
	refs, err := u.resolveQubits(src)
	if err != nil {
		return err
	}
	if len(refs) != len(dst.indices) {
		return u.env.fail(KindTypeMismatch, span, u.snippet(id),
			"Register sizes do not match for measurement: %d qubits into %d bits", len(refs), len(dst.indices))
	}
	for i, r := range refs {
		u.emit(u.out.Stmts.NewMeasure(span, u.qubitExpr(span, r), u.bitExpr(dst, i)))
	}
	if err := u.env.Symbols.Assign(dst.name, dst.blank); err != nil {
		return u.env.fail(KindImmutableAssignment, span, u.snippet(id), "Assignment to constant variable '%s' not allowed", u.env.name(dst.name))
	}
	return nil
}

func (u *unroller) reset(id ast.StmtID, stmt *ast.Stmt) error {
	r, _ := u.env.AST.Stmts.Reset(id)
	refs, err := u.resolveQubits(r.Operand)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		u.emit(u.out.Stmts.NewReset(stmt.Span, u.qubitExpr(stmt.Span, ref)))
	}
	return nil
}

// barrier keeps a single statement over every resolved slot. A bare
// `barrier;` is copied as is.
func (u *unroller) barrier(id ast.StmtID, stmt *ast.Stmt) error {
	b, _ := u.env.AST.Stmts.Barrier(id)
	var operands []ast.ExprID
	for _, op := range b.Operands {
		refs, err := u.resolveQubits(op)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			operands = append(operands, u.qubitExpr(stmt.Span, ref))
		}
	}
	u.emit(u.out.Stmts.NewBarrier(stmt.Span, operands))
	return nil
}

func (u *unroller) gateCall(id ast.StmtID, stmt *ast.Stmt) error {
	g, _ := u.env.AST.Stmts.GateCall(id)
	name := u.env.name(g.Name)

	var (
		def            *ast.GateDefStmt
		defID          ast.StmtID
		params, qubits int
	)
	if _, sym, err := u.env.Symbols.Lookup(g.Name); err == nil && sym.Kind == symbols.SymbolGate {
		defID = sym.Decl
		def, _ = u.env.AST.Stmts.GateDef(defID)
		params, qubits = len(def.Params), len(def.Qubits)
	} else if p, q, ok := BuiltinGate(name); ok {
		params, qubits = p, q
	} else {
		return u.env.fail(KindUnknownGate, g.NameSpan, u.snippet(id), "Unsupported / undeclared QASM operation: %s", name)
	}
	if len(g.Params) != params {
		return u.env.fail(KindArity, stmt.Span, u.snippet(id), "Gate '%s' expects %d parameters, got %d", name, params, len(g.Params))
	}
	if len(g.Operands) != qubits {
		return u.env.fail(KindArity, stmt.Span, u.snippet(id), "Gate '%s' expects %d qubits, got %d", name, qubits, len(g.Operands))
	}

	values := make([]Value, 0, len(g.Params))
	for _, p := range g.Params {
		v, err := u.ev.requireKnown(p)
		if err != nil {
			return err
		}
		f, ok := v.AsFloat()
		if !ok {
			return u.ev.failExpr(KindTypeMismatch, p, "Gate parameter '%s' must be numeric", u.ev.text(p))
		}
		values = append(values, types.FloatValue(f))
	}

	operands := make([][]symbols.QubitRef, 0, len(g.Operands))
	width := 1
	for _, op := range g.Operands {
		refs, err := u.resolveQubits(op)
		if err != nil {
			return err
		}
		if len(refs) > 1 {
			if width > 1 && len(refs) != width {
				return u.env.fail(KindTypeMismatch, stmt.Span, u.snippet(id), "Register sizes do not match in call of gate '%s'", name)
			}
			width = len(refs)
		}
		operands = append(operands, refs)
	}

	// broadcast: регистры идут по индексу, одиночные кубиты повторяются
	for k := range width {
		refs := make([]symbols.QubitRef, len(operands))
		for i, op := range operands {
			if len(op) == 1 {
				refs[i] = op[0]
			} else {
				refs[i] = op[k]
			}
		}
		for i := range refs {
			for j := range i {
				if refs[i] == refs[j] {
					return u.env.fail(KindTypeMismatch, stmt.Span, u.snippet(id), "Qubit %s[%d] used twice in call of gate '%s'",
						u.env.name(refs[i].Register), refs[i].Index, name)
				}
			}
		}
		if def != nil {
			if err := u.expandGate(defID, stmt.Span, def, values, refs); err != nil {
				return err
			}
			continue
		}
		args := make([]ast.ExprID, 0, len(values))
		for _, v := range values {
			args = append(args, u.literal(stmt.Span, v))
		}
		qs := make([]ast.ExprID, 0, len(refs))
		for _, r := range refs {
			qs = append(qs, u.qubitExpr(stmt.Span, r))
		}
		u.emit(u.out.Stmts.NewGateCall(stmt.Span, g.Name, g.NameSpan, args, qs))
	}
	return nil
}
