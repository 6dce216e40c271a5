package sema

import (
	"strconv"

	"qasmc/internal/ast"
	"qasmc/internal/source"
	"qasmc/internal/symbols"
	"qasmc/internal/types"
)

func (u *unroller) emit(id ast.StmtID) {
	u.out.PushStmt(u.file, id)
}

func (u *unroller) intern(s string) source.StringID {
	return u.out.Strings.Intern(s)
}

// literal builds an output node for a known value.
func (u *unroller) literal(sp source.Span, v Value) ast.ExprID {
	exprs := u.out.Exprs
	switch v.Kind {
	case types.ValueInt:
		if v.Int < 0 {
			return exprs.NewUnary(sp, ast.ExprUnaryMinus, u.literal(sp, types.IntValue(-v.Int)))
		}
		return exprs.NewLiteral(sp, ast.ExprLitInt, u.intern(strconv.FormatInt(v.Int, 10)))
	case types.ValueFloat:
		if v.Float < 0 {
			return exprs.NewUnary(sp, ast.ExprUnaryMinus, u.literal(sp, types.FloatValue(-v.Float)))
		}
		return exprs.NewLiteral(sp, ast.ExprLitFloat, u.intern(formatFloat(v.Float)))
	case types.ValueBool:
		if v.Int != 0 {
			return exprs.NewLiteral(sp, ast.ExprLitTrue, u.intern("true"))
		}
		return exprs.NewLiteral(sp, ast.ExprLitFalse, u.intern("false"))
	case types.ValueArray:
		elems := make([]ast.ExprID, 0, len(v.Elems))
		for _, e := range v.Elems {
			elems = append(elems, u.literal(sp, e))
		}
		return exprs.NewArray(sp, elems)
	default:
		return ast.NoExprID
	}
}

func (u *unroller) intLiteral(sp source.Span, n int64) ast.ExprID {
	return u.literal(sp, types.IntValue(n))
}

// qubitExpr renders a physical slot as `q[i]`.
func (u *unroller) qubitExpr(sp source.Span, ref symbols.QubitRef) ast.ExprID {
	exprs := u.out.Exprs
	base := exprs.NewIdent(sp, ref.Register)
	return exprs.NewIndex(sp, base, u.intLiteral(sp, int64(ref.Index)))
}

// clone copies an input expression into the output arenas.
func (u *unroller) clone(id ast.ExprID) ast.ExprID {
	in := u.env.AST.Exprs
	out := u.out.Exprs
	expr := in.Get(id)
	if expr == nil {
		return ast.NoExprID
	}
	switch expr.Kind {
	case ast.ExprIdent:
		d, _ := in.Ident(id)
		return out.NewIdent(expr.Span, d.Name)
	case ast.ExprLit:
		d, _ := in.Literal(id)
		return out.NewLiteral(expr.Span, d.Kind, d.Value)
	case ast.ExprBinary:
		d, _ := in.Binary(id)
		return out.NewBinary(expr.Span, d.Op, u.clone(d.Left), u.clone(d.Right))
	case ast.ExprUnary:
		d, _ := in.Unary(id)
		return out.NewUnary(expr.Span, d.Op, u.clone(d.Operand))
	case ast.ExprGroup:
		d, _ := in.Group(id)
		return out.NewGroup(expr.Span, u.clone(d.Inner))
	case ast.ExprIndex:
		d, _ := in.Index(id)
		return out.NewIndex(expr.Span, u.clone(d.Target), u.clone(d.Index))
	case ast.ExprCall:
		d, _ := in.Call(id)
		return out.NewCall(expr.Span, d.Name, d.NameSpan, u.cloneList(d.Args))
	case ast.ExprArray:
		d, _ := in.Array(id)
		return out.NewArray(expr.Span, u.cloneList(d.Elems))
	case ast.ExprMeasure:
		d, _ := in.Measure(id)
		return out.NewMeasure(expr.Span, u.clone(d.Operand))
	default:
		return ast.NoExprID
	}
}

func (u *unroller) cloneList(ids []ast.ExprID) []ast.ExprID {
	res := make([]ast.ExprID, 0, len(ids))
	for _, id := range ids {
		res = append(res, u.clone(id))
	}
	return res
}

// valueOrClone prefers the folded value and falls back to the source text.
func (u *unroller) valueOrClone(id ast.ExprID, v Value) ast.ExprID {
	if v.Known() {
		return u.literal(u.env.exprSpan(id), v)
	}
	return u.clone(id)
}

// typeSpec rebuilds a declared type with folded designators.
func (u *unroller) typeSpec(t types.TypeID, sp source.Span) ast.TypeSpec {
	in := u.env.Types
	elem, dims := in.Shape(t)
	et := in.MustLookup(elem)
	ts := ast.TypeSpec{Kind: specKind(et.Kind), Span: sp}
	if et.Width != types.WidthAny {
		ts.Width = u.intLiteral(sp, int64(et.Width))
	}
	if len(dims) == 0 {
		return ts
	}
	arr := ast.TypeSpec{Kind: ast.TypeSpecArray, Elem: ts.Kind, ElemWidth: ts.Width, Span: sp}
	for _, d := range dims {
		arr.Dims = append(arr.Dims, u.intLiteral(sp, int64(d)))
	}
	return arr
}

func specKind(k types.Kind) ast.TypeSpecKind {
	switch k {
	case types.KindInt:
		return ast.TypeSpecInt
	case types.KindUint:
		return ast.TypeSpecUint
	case types.KindFloat:
		return ast.TypeSpecFloat
	case types.KindBool:
		return ast.TypeSpecBool
	case types.KindBit:
		return ast.TypeSpecBit
	case types.KindAngle:
		return ast.TypeSpecAngle
	case types.KindQubit:
		return ast.TypeSpecQubit
	default:
		return ast.TypeSpecNone
	}
}
