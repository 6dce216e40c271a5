package sema

import (
	"math"

	"qasmc/internal/ast"
	"qasmc/internal/symbols"
	"qasmc/internal/types"
)

// Eval computes the value of a classical expression. Mutable symbols
// contribute their tracked value; an operand that is not statically known
// makes the result Unknown rather than failing.
func (ev *Evaluator) Eval(id ast.ExprID) (Value, error) {
	exprs := ev.env.AST.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return Value{}, nil
	}

	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		v, ok := literalValue(lit, ev.env.name(lit.Value))
		if !ok {
			return Value{}, ev.failExpr(KindTypeMismatch, id, "Invalid literal %s", ev.text(id))
		}
		return v, nil

	case ast.ExprIdent:
		data, _ := exprs.Ident(id)
		sym, err := ev.lookup(data.Name, id)
		if err != nil {
			return Value{}, err
		}
		if sym == nil {
			return types.FloatValue(builtinConstants[ev.env.name(data.Name)]), nil
		}
		if sym.Kind != symbols.SymbolVar {
			return Value{}, ev.failExpr(KindTypeMismatch, id, "%s '%s' cannot be used as a classical value", sym.Kind, ev.env.name(data.Name))
		}
		return sym.Value, nil

	case ast.ExprGroup:
		g, _ := exprs.Group(id)
		return ev.Eval(g.Inner)

	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		v, err := ev.Eval(u.Operand)
		if err != nil {
			return Value{}, err
		}
		return ev.unary(id, u.Op, v)

	case ast.ExprBinary:
		b, _ := exprs.Binary(id)
		l, err := ev.Eval(b.Left)
		if err != nil {
			return Value{}, err
		}
		r, err := ev.Eval(b.Right)
		if err != nil {
			return Value{}, err
		}
		return ev.binary(id, b.Op, l, r)

	case ast.ExprIndex:
		return ev.evalIndex(id)

	case ast.ExprCall:
		return ev.evalCall(id)

	case ast.ExprArray:
		arr, _ := exprs.Array(id)
		elems := make([]Value, 0, len(arr.Elems))
		for _, e := range arr.Elems {
			v, err := ev.Eval(e)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return types.ArrayValue(elems), nil

	default:
		return Value{}, ev.failExpr(KindTypeMismatch, id, "Measurement is only allowed as a statement or assignment source")
	}
}

func (ev *Evaluator) unary(id ast.ExprID, op ast.ExprUnaryOp, v Value) (Value, error) {
	if !v.Known() {
		return Value{}, nil
	}
	if v.Kind == types.ValueArray {
		return Value{}, ev.failExpr(KindTypeMismatch, id, "Operator %s cannot be applied to an array", op)
	}
	switch op {
	case ast.ExprUnaryMinus:
		if v.Kind == types.ValueFloat {
			return types.FloatValue(-v.Float), nil
		}
		return types.IntValue(-v.Int), nil
	case ast.ExprUnaryNot:
		b, _ := v.Truthy()
		return types.BoolValue(!b), nil
	case ast.ExprUnaryBitNot:
		if v.Kind == types.ValueFloat {
			return Value{}, ev.failExpr(KindTypeMismatch, id, "Operator ~ requires an integer operand")
		}
		return types.IntValue(^v.Int), nil
	default:
		return v, nil
	}
}

func (ev *Evaluator) binary(id ast.ExprID, op ast.ExprBinaryOp, l, r Value) (Value, error) {
	if !l.Known() || !r.Known() {
		return Value{}, nil
	}
	if l.Kind == types.ValueArray || r.Kind == types.ValueArray {
		return Value{}, ev.failExpr(KindTypeMismatch, id, "Operator %s cannot be applied to an array", op)
	}
	useFloat := l.Kind == types.ValueFloat || r.Kind == types.ValueFloat
	if op == ast.ExprBinaryPow && !useFloat && r.Int < 0 {
		useFloat = true
	}
	if useFloat {
		a, _ := l.AsFloat()
		b, _ := r.AsFloat()
		v, fe := foldFloat(op, a, b)
		if fe != nil {
			return Value{}, ev.failExpr(fe.kind, id, "%s in expression '%s'", fe.msg, ev.text(id))
		}
		return v, nil
	}
	n, fe := foldInt(op, l.Int, r.Int)
	if fe != nil {
		return Value{}, ev.failExpr(fe.kind, id, "%s in expression '%s'", fe.msg, ev.text(id))
	}
	if op.IsBoolean() {
		return types.BoolValue(n != 0), nil
	}
	return types.IntValue(n), nil
}

func (ev *Evaluator) evalIndex(id ast.ExprID) (Value, error) {
	exprs := ev.env.AST.Exprs
	root, indices := exprs.IndexRoot(id)
	ident, ok := exprs.Ident(root)
	if !ok {
		return Value{}, ev.failExpr(KindTypeMismatch, id, "Only variables can be indexed in '%s'", ev.text(id))
	}
	name := ev.env.name(ident.Name)
	sym, err := ev.lookup(ident.Name, root)
	if err != nil {
		return Value{}, err
	}
	if sym == nil || sym.Kind != symbols.SymbolVar {
		return Value{}, ev.failExpr(KindTypeMismatch, root, "'%s' cannot be indexed as a classical value", name)
	}
	pos := make([]int64, 0, len(indices))
	for _, ix := range indices {
		v, err := ev.Eval(ix)
		if err != nil {
			return Value{}, err
		}
		if !v.Known() {
			return Value{}, nil
		}
		n, ok := v.AsInt()
		if !ok {
			return Value{}, ev.failExpr(KindTypeMismatch, ix, "Index '%s' must be an integer", ev.text(ix))
		}
		pos = append(pos, n)
	}
	v, _, err := ev.selectElement(name, sym.Type, sym.Value, pos, indices)
	return v, err
}

// dimension reports how many elements one subscript of t can address and
// the type of the element.
func (ev *Evaluator) dimension(t types.TypeID) (int64, types.TypeID, bool) {
	tt, ok := ev.env.Types.Lookup(t)
	if !ok {
		return 0, types.NoTypeID, false
	}
	b := ev.env.Types.Builtins()
	switch tt.Kind {
	case types.KindArray:
		return int64(tt.Count), tt.Elem, true
	case types.KindBit, types.KindInt, types.KindUint:
		if tt.Width == types.WidthAny {
			return 0, types.NoTypeID, false
		}
		return int64(tt.Width), b.Bit, true
	case types.KindQubit:
		if tt.Width == types.WidthAny {
			return 0, types.NoTypeID, false
		}
		return int64(tt.Width), b.Qubit, true
	default:
		return 0, types.NoTypeID, false
	}
}

// selectElement walks pos into val, checking every subscript against the
// shape of t. Negative positions count from the end.
func (ev *Evaluator) selectElement(name string, t types.TypeID, val Value, pos []int64, indices []ast.ExprID) (Value, types.TypeID, error) {
	for i, n := range pos {
		size, elem, ok := ev.dimension(t)
		if !ok {
			return Value{}, types.NoTypeID, ev.failExpr(KindTypeMismatch, indices[i], "Cannot index '%s' of type %s", name, ev.env.Types.Format(t))
		}
		at := n
		if at < 0 {
			at += size
		}
		if at < 0 || at >= size {
			return Value{}, types.NoTypeID, ev.failExpr(KindIndexOutOfRange, indices[i], "Index %d out of range for '%s' of size %d", n, name, size)
		}
		if ev.env.Types.Kind(t) == types.KindArray {
			if e, ok := val.Index(at); ok {
				val = e
			} else {
				val = Value{}
			}
		} else if val.Known() {
			val = types.IntValue((val.Int >> uint(at)) & 1)
		}
		t = elem
	}
	return val, t, nil
}

func (ev *Evaluator) evalCall(id ast.ExprID) (Value, error) {
	data, _ := ev.env.AST.Exprs.Call(id)
	name := ev.env.name(data.Name)
	if _, sym, err := ev.env.Symbols.Lookup(data.Name); err == nil && sym.Kind == symbols.SymbolSubroutine {
		if ev.call == nil {
			return Value{}, ev.failExpr(KindNotConstant, id, "Expected expression '%s' to be constant in given expression", ev.text(id))
		}
		return ev.call(id, data)
	}
	fn, ok := builtinFuncs[name]
	if !ok {
		return Value{}, ev.failExpr(KindUnknownGate, id, "Undefined subroutine '%s'", name)
	}
	if len(data.Args) != 1 {
		return Value{}, ev.failExpr(KindArity, id, "Function '%s' expects 1 argument, got %d", name, len(data.Args))
	}
	arg, err := ev.Eval(data.Args[0])
	if err != nil || !arg.Known() {
		return Value{}, err
	}
	f, ok := arg.AsFloat()
	if !ok {
		return Value{}, ev.failExpr(KindTypeMismatch, id, "Function '%s' expects a numeric argument", name)
	}
	res := fn(f)
	if math.IsNaN(res) || math.IsInf(res, 0) {
		return Value{}, ev.failExpr(KindTypeMismatch, id, "Invalid argument %s to function '%s'", formatFloat(f), name)
	}
	return types.FloatValue(res), nil
}

// firstUnknown finds the leftmost variable whose value is not statically
// known. It never reports.
func (ev *Evaluator) firstUnknown(id ast.ExprID) (ast.ExprID, string, bool) {
	exprs := ev.env.AST.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return ast.NoExprID, "", false
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := exprs.Ident(id)
		_, sym, err := ev.env.Symbols.Lookup(data.Name)
		if err == nil && sym.Kind == symbols.SymbolVar && !sym.Value.Known() {
			return id, ev.env.name(data.Name), true
		}
	case ast.ExprGroup:
		g, _ := exprs.Group(id)
		return ev.firstUnknown(g.Inner)
	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		return ev.firstUnknown(u.Operand)
	case ast.ExprBinary:
		b, _ := exprs.Binary(id)
		if at, name, ok := ev.firstUnknown(b.Left); ok {
			return at, name, ok
		}
		return ev.firstUnknown(b.Right)
	case ast.ExprIndex:
		root, indices := exprs.IndexRoot(id)
		for _, ix := range indices {
			if at, name, ok := ev.firstUnknown(ix); ok {
				return at, name, ok
			}
		}
		if ident, ok := exprs.Ident(root); ok {
			return root, ev.env.name(ident.Name), true
		}
	case ast.ExprCall:
		c, _ := exprs.Call(id)
		for _, a := range c.Args {
			if at, name, ok := ev.firstUnknown(a); ok {
				return at, name, ok
			}
		}
		return id, ev.env.name(c.Name), true
	case ast.ExprMeasure:
		return id, "measure", true
	}
	return ast.NoExprID, "", false
}

// requireKnown evaluates id and insists on a statically known result.
func (ev *Evaluator) requireKnown(id ast.ExprID) (Value, error) {
	v, err := ev.Eval(id)
	if err != nil {
		return Value{}, err
	}
	if v.Known() {
		return v, nil
	}
	at, name, ok := ev.firstUnknown(id)
	if !ok {
		at, name = id, ev.text(id)
	}
	return Value{}, ev.failExpr(KindNotConstant, at, "Expected variable '%s' to be constant in given expression", name)
}
