package sema

import (
	"strings"

	"qasmc/internal/ast"
	"qasmc/internal/symbols"
	"qasmc/internal/types"
)

func (u *unroller) classicalDecl(id ast.StmtID, stmt *ast.Stmt) error {
	decl, _ := u.env.AST.Stmts.ClassicalDecl(id)
	exprs := u.env.AST.Exprs
	t, err := u.ev.ResolveType(decl.Type)
	if err != nil {
		return err
	}

	value := u.blank(t)
	measured := ast.NoExprID
	if decl.Init.IsValid() {
		if m, ok := exprs.Measure(exprs.Unparen(decl.Init)); ok {
			measured = m.Operand
		} else {
			v, err := u.initValue(t, decl.Init)
			if err != nil {
				return err
			}
			value = v
		}
	}
	if decl.Const && !value.Known() {
		at, name, ok := u.ev.firstUnknown(decl.Init)
		if !ok {
			at, name = decl.Init, u.ev.text(decl.Init)
		}
		return u.ev.failExpr(KindNotConstant, at, "Expected variable '%s' to be constant in given expression", name)
	}

	sym := symbols.Symbol{
		Name:  decl.Name,
		Kind:  symbols.SymbolVar,
		Type:  t,
		Const: decl.Const,
		Value: value,
		Span:  decl.NameSpan,
	}
	if err := u.declare(id, sym, "variable"); err != nil {
		return err
	}
	if tt := u.env.Types.MustLookup(t); tt.Kind == types.KindBit {
		u.res.NumClbits += int(max(tt.Width, 1))
	}

	init := ast.NoExprID
	if decl.Init.IsValid() && !measured.IsValid() {
		init = u.valueOrClone(decl.Init, value)
	}
	u.emit(u.out.Stmts.NewClassicalDecl(stmt.Span, ast.ClassicalDeclStmt{
		Type:     u.typeSpec(t, decl.Type.Span),
		Name:     decl.Name,
		NameSpan: decl.NameSpan,
		Init:     init,
		Const:    decl.Const,
	}))
	if measured.IsValid() {
		_, declared, _ := u.env.Symbols.Lookup(decl.Name)
		return u.emitMeasure(id, stmt.Span, measured, u.bitsOf(declared, decl.NameSpan))
	}
	return nil
}

// blank is the value of a declaration without initializer: unknown
// scalars, arrays of unknown elements.
func (u *unroller) blank(t types.TypeID) Value {
	tt, ok := u.env.Types.Lookup(t)
	if !ok || tt.Kind != types.KindArray {
		return Value{}
	}
	elems := make([]Value, tt.Count)
	for i := range elems {
		elems[i] = u.blank(tt.Elem)
	}
	return types.ArrayValue(elems)
}

func (u *unroller) initValue(t types.TypeID, init ast.ExprID) (Value, error) {
	if lit, ok := u.env.AST.Exprs.Literal(init); ok && lit.Kind == ast.ExprLitString {
		return u.bitString(t, init, u.env.name(lit.Value))
	}
	v, err := u.ev.Eval(init)
	if err != nil {
		return Value{}, err
	}
	return u.coerce(t, init, v)
}

// bitString reads `"0101"` as a bit register, most significant bit first.
func (u *unroller) bitString(t types.TypeID, at ast.ExprID, s string) (Value, error) {
	tt := u.env.Types.MustLookup(t)
	if tt.Kind != types.KindBit || int(max(tt.Width, 1)) != len(s) || strings.Trim(s, "01") != "" {
		return Value{}, u.ev.failExpr(KindTypeMismatch, at, "Invalid initializer \"%s\" for type %s", s, u.env.Types.Format(t))
	}
	var n int64
	for _, c := range s {
		n = n<<1 | int64(c-'0')
	}
	return types.IntValue(n), nil
}

// coerce converts v to the declared type t, checking array shapes.
func (u *unroller) coerce(t types.TypeID, at ast.ExprID, v Value) (Value, error) {
	tt := u.env.Types.MustLookup(t)
	if tt.Kind == types.KindArray {
		if v.Kind != types.ValueArray {
			if !v.Known() {
				return u.blank(t), nil
			}
			return Value{}, u.ev.failExpr(KindTypeMismatch, at, "Cannot assign a scalar to a variable of type %s", u.env.Types.Format(t))
		}
		if len(v.Elems) != int(tt.Count) {
			return Value{}, u.ev.failExpr(KindTypeMismatch, at, "Array initializer has %d elements, type %s expects %d",
				len(v.Elems), u.env.Types.Format(t), tt.Count)
		}
		elems := make([]Value, len(v.Elems))
		for i, e := range v.Elems {
			c, err := u.coerce(tt.Elem, at, e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = c
		}
		return types.ArrayValue(elems), nil
	}
	if v.Kind == types.ValueArray {
		return Value{}, u.ev.failExpr(KindTypeMismatch, at, "Cannot assign an array to a variable of type %s", u.env.Types.Format(t))
	}
	if tt.Kind == types.KindBit && tt.Width != types.WidthAny {
		if !v.Known() {
			return v, nil
		}
		n := v.Convert(types.KindInt).Int
		return types.IntValue(n & (int64(1)<<tt.Width - 1)), nil
	}
	return v.Convert(tt.Kind), nil
}

func (u *unroller) assign(id ast.StmtID, stmt *ast.Stmt) error {
	a, _ := u.env.AST.Stmts.Assign(id)
	exprs := u.env.AST.Exprs
	root, indices := exprs.IndexRoot(a.Target)
	ident, ok := exprs.Ident(root)
	if !ok {
		return u.ev.failExpr(KindTypeMismatch, a.Target, "Invalid assignment target '%s'", u.ev.text(a.Target))
	}
	name := u.env.name(ident.Name)
	symID, sym, err := u.env.Symbols.Lookup(ident.Name)
	if err != nil {
		if _, builtin := builtinConstants[name]; builtin {
			return u.env.fail(KindImmutableAssignment, stmt.Span, u.snippet(id), "Assignment to constant variable '%s' not allowed", name)
		}
		return u.ev.failExpr(KindUndeclaredIdentifier, root, "Undefined identifier '%s' in expression", name)
	}
	if sym.Kind != symbols.SymbolVar {
		return u.env.fail(KindTypeMismatch, stmt.Span, u.snippet(id), "Cannot assign to %s '%s'", sym.Kind, name)
	}
	if sym.Const {
		return u.env.fail(KindImmutableAssignment, stmt.Span, u.snippet(id), "Assignment to constant variable '%s' not allowed", name)
	}

	if m, ok := exprs.Measure(exprs.Unparen(a.Value)); ok && a.Op == ast.AssignSet {
		dst, err := u.resolveBits(a.Target)
		if err != nil {
			return err
		}
		return u.emitMeasure(id, stmt.Span, m.Operand, dst)
	}

	rhs, err := u.ev.Eval(a.Value)
	if err != nil {
		return err
	}
	pos, known, err := u.indexPositions(indices)
	if err != nil {
		return err
	}
	// Eval may have inlined a call and grown the arena.
	sym = u.env.Symbols.Symbols.Get(symID)

	cur, elemT := sym.Value, sym.Type
	if len(indices) > 0 {
		cur = Value{}
	}
	if len(indices) > 0 && known {
		cur, elemT, err = u.ev.selectElement(name, sym.Type, sym.Value, pos, indices)
		if err != nil {
			return err
		}
	}
	next := rhs
	if op, ok := a.Op.Binary(); ok {
		if next, err = u.ev.binary(a.Value, op, cur, rhs); err != nil {
			return err
		}
	}

	var updated Value
	switch {
	case len(indices) == 0:
		if next, err = u.coerce(sym.Type, a.Value, next); err != nil {
			return err
		}
		updated = next
	case known:
		next = next.Convert(u.env.Types.Kind(elemT))
		updated = u.replaceElement(sym.Type, sym.Value, pos, next)
	default:
		updated = u.blank(sym.Type)
	}
	if err := u.env.Symbols.Assign(ident.Name, updated); err != nil {
		return u.env.fail(KindImmutableAssignment, stmt.Span, u.snippet(id), "Assignment to constant variable '%s' not allowed", name)
	}

	target := u.clone(a.Target)
	if known && len(indices) > 0 {
		target = u.out.Exprs.NewIdent(exprs.Get(root).Span, ident.Name)
		for _, p := range pos {
			target = u.out.Exprs.NewIndex(exprs.Get(a.Target).Span, target, u.intLiteral(exprs.Get(a.Target).Span, p))
		}
	}
	if next.Known() {
		u.emit(u.out.Stmts.NewAssign(stmt.Span, target, ast.AssignSet, u.literal(exprs.Get(a.Value).Span, next)))
	} else {
		u.emit(u.out.Stmts.NewAssign(stmt.Span, target, a.Op, u.clone(a.Value)))
	}
	return nil
}

// indexPositions evaluates subscripts; known is false if any of them is
// not statically known.
func (u *unroller) indexPositions(indices []ast.ExprID) ([]int64, bool, error) {
	pos := make([]int64, 0, len(indices))
	for _, ix := range indices {
		v, err := u.ev.Eval(ix)
		if err != nil {
			return nil, false, err
		}
		if !v.Known() {
			return nil, false, nil
		}
		n, ok := v.AsInt()
		if !ok {
			return nil, false, u.ev.failExpr(KindTypeMismatch, ix, "Index '%s' must be an integer", u.ev.text(ix))
		}
		pos = append(pos, n)
	}
	return pos, true, nil
}

// replaceElement returns val with the element at pos set to elem.
// Positions were range-checked by selectElement.
func (u *unroller) replaceElement(t types.TypeID, val Value, pos []int64, elem Value) Value {
	if len(pos) == 0 {
		return elem
	}
	size, elemT, _ := u.ev.dimension(t)
	at := pos[0]
	if at < 0 {
		at += size
	}
	if u.env.Types.Kind(t) == types.KindArray {
		elems := make([]Value, size)
		if val.Kind == types.ValueArray {
			copy(elems, val.Elems)
		}
		elems[at] = u.replaceElement(elemT, elems[at], pos[1:], elem)
		return types.ArrayValue(elems)
	}
	if !val.Known() || !elem.Known() {
		return Value{}
	}
	n := val.Int
	if bit, _ := elem.Truthy(); bit {
		n |= 1 << uint(at)
	} else {
		n &^= 1 << uint(at)
	}
	return types.IntValue(n)
}

func (u *unroller) returnStmt(id ast.StmtID, stmt *ast.Stmt) (flow, error) {
	if u.inDef == 0 {
		return flow{}, u.env.fail(KindInvalidScope, stmt.Span, u.snippet(id), "Return statement outside of subroutine")
	}
	r, _ := u.env.AST.Stmts.Return(id)
	if !r.Value.IsValid() {
		return flow{returned: true}, nil
	}
	v, err := u.ev.Eval(r.Value)
	if err != nil {
		return flow{}, err
	}
	return flow{returned: true, value: v}, nil
}
