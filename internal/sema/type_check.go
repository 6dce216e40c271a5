package sema

import (
	"fmt"

	"fortio.org/safecast"

	"qasmc/internal/ast"
	"qasmc/internal/symbols"
	"qasmc/internal/types"
)

// TypeOf computes the static type of an expression. Array literals and
// calls of subroutines without a return type have no type.
func (ev *Evaluator) TypeOf(id ast.ExprID) (types.TypeID, error) {
	exprs := ev.env.AST.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return types.NoTypeID, nil
	}
	b := ev.env.Types.Builtins()

	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		switch lit.Kind {
		case ast.ExprLitInt:
			return b.Int, nil
		case ast.ExprLitFloat:
			return b.Float, nil
		case ast.ExprLitTrue, ast.ExprLitFalse:
			return b.Bool, nil
		default:
			return types.NoTypeID, nil
		}

	case ast.ExprIdent:
		data, _ := exprs.Ident(id)
		sym, err := ev.lookup(data.Name, id)
		if err != nil {
			return types.NoTypeID, err
		}
		if sym == nil {
			return b.Float, nil
		}
		return sym.Type, nil

	case ast.ExprGroup:
		g, _ := exprs.Group(id)
		return ev.TypeOf(g.Inner)

	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		t, err := ev.TypeOf(u.Operand)
		if err != nil {
			return types.NoTypeID, err
		}
		switch u.Op {
		case ast.ExprUnaryNot:
			return b.Bool, nil
		case ast.ExprUnaryMinus, ast.ExprUnaryPlus:
			if k := ev.env.Types.Kind(t); k == types.KindBool || k == types.KindBit {
				return b.Int, nil
			}
			return t, nil
		default:
			return t, nil
		}

	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		l, err := ev.TypeOf(bin.Left)
		if err != nil {
			return types.NoTypeID, err
		}
		r, err := ev.TypeOf(bin.Right)
		if err != nil {
			return types.NoTypeID, err
		}
		if bin.Op.IsBoolean() {
			return b.Bool, nil
		}
		lk, rk := ev.env.Types.Kind(l), ev.env.Types.Kind(r)
		switch {
		case lk == types.KindFloat || rk == types.KindFloat || lk == types.KindAngle || rk == types.KindAngle:
			return b.Float, nil
		case lk == types.KindUint && rk == types.KindUint:
			return b.Uint, nil
		default:
			return b.Int, nil
		}

	case ast.ExprIndex:
		root, indices := exprs.IndexRoot(id)
		t, err := ev.TypeOf(root)
		if err != nil {
			return types.NoTypeID, err
		}
		for _, ix := range indices {
			_, elem, ok := ev.dimension(t)
			if !ok {
				return types.NoTypeID, ev.failExpr(KindTypeMismatch, ix, "Cannot index '%s' of type %s", ev.text(root), ev.env.Types.Format(t))
			}
			t = elem
		}
		return t, nil

	case ast.ExprCall:
		return ev.callType(id)

	case ast.ExprMeasure:
		return b.Bit, nil

	default:
		return types.NoTypeID, nil
	}
}

func (ev *Evaluator) callType(id ast.ExprID) (types.TypeID, error) {
	data, _ := ev.env.AST.Exprs.Call(id)
	if _, sym, err := ev.env.Symbols.Lookup(data.Name); err == nil && sym.Kind == symbols.SymbolSubroutine {
		def, ok := ev.env.AST.Stmts.Def(sym.Decl)
		if !ok || def.Return.Kind == ast.TypeSpecNone {
			return types.NoTypeID, nil
		}
		return ev.ResolveType(def.Return)
	}
	if _, ok := builtinFuncs[ev.env.name(data.Name)]; ok {
		return ev.env.Types.Builtins().Float, nil
	}
	return types.NoTypeID, ev.failExpr(KindUnknownGate, id, "Undefined subroutine '%s'", ev.env.name(data.Name))
}

// ResolveType turns a written type into an interned one. Designators and
// array dimensions must be positive integer constants.
func (ev *Evaluator) ResolveType(ts ast.TypeSpec) (types.TypeID, error) {
	if ts.Kind == ast.TypeSpecArray {
		elem, err := ev.scalarType(ts.Elem, ts.ElemWidth)
		if err != nil {
			return types.NoTypeID, err
		}
		dims := make([]uint32, 0, len(ts.Dims))
		for _, d := range ts.Dims {
			n, err := ev.designator(d)
			if err != nil {
				return types.NoTypeID, err
			}
			dims = append(dims, n)
		}
		return ev.env.Types.ArrayOf(elem, dims), nil
	}
	return ev.scalarType(ts.Kind, ts.Width)
}

func (ev *Evaluator) scalarType(kind ast.TypeSpecKind, width ast.ExprID) (types.TypeID, error) {
	var w uint32
	if width.IsValid() {
		n, err := ev.designator(width)
		if err != nil {
			return types.NoTypeID, err
		}
		w = n
	}
	in := ev.env.Types
	switch kind {
	case ast.TypeSpecInt:
		return in.Intern(types.MakeInt(w)), nil
	case ast.TypeSpecUint:
		return in.Intern(types.MakeUint(w)), nil
	case ast.TypeSpecFloat:
		return in.Intern(types.MakeFloat(w)), nil
	case ast.TypeSpecBool:
		return in.Builtins().Bool, nil
	case ast.TypeSpecBit:
		return in.Intern(types.MakeBits(w)), nil
	case ast.TypeSpecAngle:
		return in.Intern(types.Type{Kind: types.KindAngle, Width: w}), nil
	case ast.TypeSpecQubit:
		return in.Intern(types.MakeQubits(w)), nil
	default:
		return types.NoTypeID, fmt.Errorf("sema: unexpected type kind %s", kind)
	}
}

// designator folds a size or width expression.
func (ev *Evaluator) designator(id ast.ExprID) (uint32, error) {
	n, err := ev.FoldConst(id)
	if err != nil {
		return 0, err
	}
	size, convErr := safecast.Conv[uint32](n)
	if convErr != nil || size == 0 {
		return 0, ev.failExpr(KindTypeMismatch, id, "Invalid size %d, expected a positive integer", n)
	}
	return size, nil
}

// requireTargetType checks that a switch target is an integer. The error
// names the variable behind an indexed target.
func (ev *Evaluator) requireTargetType(sw *ast.SwitchStmt, header string) error {
	t, err := ev.TypeOf(sw.Target)
	if err != nil {
		return err
	}
	if ev.env.Types.Kind(t).IsInteger() {
		return nil
	}
	exprs := ev.env.AST.Exprs
	name := ev.text(sw.Target)
	root, _ := exprs.IndexRoot(exprs.Unparen(sw.Target))
	if ident, ok := exprs.Ident(root); ok {
		name = ev.env.name(ident.Name)
	}
	return ev.env.fail(KindSwitchTargetType, sw.Keyword, header, "Switch target %s must be of type int", name)
}

// requireLabelType checks a case label bottom-up so the innermost offending
// literal or variable is the one reported.
func (ev *Evaluator) requireLabelType(id ast.ExprID) error {
	exprs := ev.env.AST.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return nil
	}

	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		if lit.Kind == ast.ExprLitInt {
			return nil
		}
		return ev.failExpr(KindCaseLabelType, id, "Invalid value %s with type %s for required type int",
			ev.env.name(lit.Value), literalTypeName(lit.Kind))

	case ast.ExprIdent:
		data, _ := exprs.Ident(id)
		t, err := ev.TypeOf(id)
		if err != nil {
			return err
		}
		if ev.env.Types.Kind(t).IsInteger() {
			return nil
		}
		return ev.failExpr(KindCaseLabelType, id, "Invalid type %s of variable '%s' for required type int",
			ev.env.Types.Format(t), ev.env.name(data.Name))

	case ast.ExprGroup:
		g, _ := exprs.Group(id)
		return ev.requireLabelType(g.Inner)

	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		if err := ev.requireLabelType(u.Operand); err != nil {
			return err
		}
	case ast.ExprBinary:
		bin, _ := exprs.Binary(id)
		if err := ev.requireLabelType(bin.Left); err != nil {
			return err
		}
		if err := ev.requireLabelType(bin.Right); err != nil {
			return err
		}
	}

	t, err := ev.TypeOf(id)
	if err != nil {
		return err
	}
	if ev.env.Types.Kind(t).IsInteger() {
		return nil
	}
	return ev.failExpr(KindCaseLabelType, id, "Invalid type %s of expression '%s' for required type int",
		ev.env.Types.Format(t), ev.text(id))
}
