package sema

import (
	"qasmc/internal/ast"
	"qasmc/internal/format"
	"qasmc/internal/source"
	"qasmc/internal/symbols"
)

// CallFunc evaluates a call to a user subroutine. The unroller plugs in
// its inliner; a nil CallFunc makes every call non-constant.
type CallFunc func(id ast.ExprID, call *ast.ExprCallData) (Value, error)

// Evaluator folds, evaluates and types expressions against the current
// scope of env.Symbols.
type Evaluator struct {
	env  *Env
	call CallFunc
}

func NewEvaluator(env *Env, call CallFunc) *Evaluator {
	return &Evaluator{env: env, call: call}
}

func (ev *Evaluator) text(id ast.ExprID) string {
	return format.Expr(ev.env.AST, id)
}

func (ev *Evaluator) failExpr(kind ErrorKind, id ast.ExprID, format string, args ...any) error {
	return ev.env.fail(kind, ev.env.exprSpan(id), ev.text(id), format, args...)
}

// lookup resolves an identifier. A nil symbol with a nil error means the
// name is one of the builtin constants.
func (ev *Evaluator) lookup(name source.StringID, id ast.ExprID) (*symbols.Symbol, error) {
	_, sym, err := ev.env.Symbols.Lookup(name)
	if err == nil {
		return sym, nil
	}
	if _, ok := builtinConstants[ev.env.name(name)]; ok {
		return nil, nil
	}
	return nil, ev.failExpr(KindUndeclaredIdentifier, id, "Undefined identifier '%s' in expression", ev.env.name(name))
}

// FoldConst folds an integer constant expression. Identifiers fold only
// when they name const symbols; the first mutable one fails the fold.
func (ev *Evaluator) FoldConst(id ast.ExprID) (int64, error) {
	exprs := ev.env.AST.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return 0, nil
	}

	switch expr.Kind {
	case ast.ExprLit:
		lit, _ := exprs.Literal(id)
		text := ev.env.name(lit.Value)
		v, ok := literalValue(lit, text)
		if !ok {
			return 0, ev.failExpr(KindTypeMismatch, id, "Invalid literal %s", ev.text(id))
		}
		n, ok := v.AsInt()
		if !ok {
			return 0, ev.failExpr(KindCaseLabelType, id, "Invalid value %s with type %s for required type int", text, literalTypeName(lit.Kind))
		}
		return n, nil

	case ast.ExprIdent:
		data, _ := exprs.Ident(id)
		name := ev.env.name(data.Name)
		sym, err := ev.lookup(data.Name, id)
		if err != nil {
			return 0, err
		}
		if sym == nil {
			return 0, ev.failExpr(KindCaseLabelType, id, "Invalid type float of variable '%s' for required type int", name)
		}
		if sym.Kind != symbols.SymbolVar || !sym.Const || !sym.Value.Known() {
			return 0, ev.failExpr(KindNotConstant, id, "Expected variable '%s' to be constant in given expression", name)
		}
		n, ok := sym.Value.AsInt()
		if !ok {
			return 0, ev.failExpr(KindCaseLabelType, id, "Invalid type %s of variable '%s' for required type int", ev.env.Types.Format(sym.Type), name)
		}
		return n, nil

	case ast.ExprGroup:
		g, _ := exprs.Group(id)
		return ev.FoldConst(g.Inner)

	case ast.ExprUnary:
		u, _ := exprs.Unary(id)
		n, err := ev.FoldConst(u.Operand)
		if err != nil {
			return 0, err
		}
		switch u.Op {
		case ast.ExprUnaryMinus:
			return -n, nil
		case ast.ExprUnaryNot:
			return boolInt(n == 0), nil
		case ast.ExprUnaryBitNot:
			return ^n, nil
		default:
			return n, nil
		}

	case ast.ExprBinary:
		b, _ := exprs.Binary(id)
		l, err := ev.FoldConst(b.Left)
		if err != nil {
			return 0, err
		}
		r, err := ev.FoldConst(b.Right)
		if err != nil {
			return 0, err
		}
		n, fe := foldInt(b.Op, l, r)
		if fe != nil {
			return 0, ev.failExpr(fe.kind, id, "%s in constant expression '%s'", fe.msg, ev.text(id))
		}
		return n, nil

	case ast.ExprIndex:
		return ev.foldIndex(id)

	default:
		return 0, ev.failExpr(KindNotConstant, id, "Expected expression '%s' to be constant in given expression", ev.text(id))
	}
}

// foldIndex folds `c[i]` when c is a const array or integer.
func (ev *Evaluator) foldIndex(id ast.ExprID) (int64, error) {
	exprs := ev.env.AST.Exprs
	root, indices := exprs.IndexRoot(id)
	ident, ok := exprs.Ident(root)
	if !ok {
		return 0, ev.failExpr(KindNotConstant, id, "Expected expression '%s' to be constant in given expression", ev.text(id))
	}
	name := ev.env.name(ident.Name)
	sym, err := ev.lookup(ident.Name, root)
	if err != nil {
		return 0, err
	}
	if sym == nil || sym.Kind != symbols.SymbolVar || !sym.Const {
		return 0, ev.failExpr(KindNotConstant, root, "Expected variable '%s' to be constant in given expression", name)
	}
	pos := make([]int64, 0, len(indices))
	for _, ix := range indices {
		n, err := ev.FoldConst(ix)
		if err != nil {
			return 0, err
		}
		pos = append(pos, n)
	}
	v, elem, err := ev.selectElement(name, sym.Type, sym.Value, pos, indices)
	if err != nil {
		return 0, err
	}
	if !v.Known() {
		return 0, ev.failExpr(KindNotConstant, id, "Expected expression '%s' to be constant in given expression", ev.text(id))
	}
	n, ok := v.AsInt()
	if !ok {
		return 0, ev.failExpr(KindCaseLabelType, id, "Invalid type %s of expression '%s' for required type int", ev.env.Types.Format(elem), ev.text(id))
	}
	return n, nil
}
