package sema

import (
	"context"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/format"
	"qasmc/internal/source"
	"qasmc/internal/symbols"
	"qasmc/internal/trace"
	"qasmc/internal/types"
)

// DefaultMaxInlineDepth bounds nested subroutine and gate expansion.
const DefaultMaxInlineDepth = 64

// Options configure a validation or unrolling pass.
type Options struct {
	Reporter       diag.Reporter
	Files          *source.FileSet
	MaxInlineDepth int
}

// Result is the flattened program. AST is a fresh builder sharing the
// input's string interner; the input tree is never modified.
type Result struct {
	AST       *ast.Builder
	File      ast.FileID
	NumQubits int
	NumClbits int
	Switches  int
}

// Unroll resolves every switch of the file to its selected branch, inlines
// subroutine and gate calls and emits a branch-free program.
func Unroll(ctx context.Context, in *ast.Builder, file ast.FileID, opts Options) (Result, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "unroll")
	defer span.End("")

	u := newUnroller(ctx, in, opts)
	f := in.Files.Get(file)
	if f == nil {
		return Result{}, nil
	}
	u.file = u.out.NewFile(f.Span)
	u.res.File = u.file
	if _, err := u.walk(f.Stmts); err != nil {
		return Result{}, err
	}
	return *u.res, nil
}

// Validate runs every check Unroll performs and discards the output.
func Validate(ctx context.Context, in *ast.Builder, file ast.FileID, opts Options) error {
	_, err := Unroll(ctx, in, file, opts)
	return err
}

type unroller struct {
	ctx      context.Context
	env      *Env
	ev       *Evaluator
	out      *ast.Builder
	file     ast.FileID
	res      *Result
	depth    int
	maxDepth int
	inDef    int
}

// flow carries a `return` out of nested bodies.
type flow struct {
	returned bool
	value    Value
}

func newUnroller(ctx context.Context, in *ast.Builder, opts Options) *unroller {
	u := &unroller{
		ctx:      ctx,
		env:      NewEnv(in, opts.Files, opts.Reporter),
		out:      ast.NewBuilder(ast.Hints{}, in.Strings),
		maxDepth: opts.MaxInlineDepth,
	}
	if u.maxDepth <= 0 {
		u.maxDepth = DefaultMaxInlineDepth
	}
	u.res = &Result{AST: u.out}
	u.ev = NewEvaluator(u.env, u.callSubroutine)
	return u
}

func (u *unroller) walk(body []ast.StmtID) (flow, error) {
	for _, id := range body {
		if err := u.ctx.Err(); err != nil {
			return flow{}, err
		}
		f, err := u.stmt(id)
		if err != nil {
			return flow{}, err
		}
		if f.returned {
			return f, nil
		}
	}
	return flow{}, nil
}

func (u *unroller) snippet(id ast.StmtID) string {
	return format.Snippet(u.env.AST, id)
}

func (u *unroller) scopeKind() symbols.ScopeKind {
	table := u.env.Symbols
	return table.Scopes.Get(table.Current()).Kind
}

func (u *unroller) stmt(id ast.StmtID) (flow, error) {
	stmts := u.env.AST.Stmts
	stmt := stmts.Get(id)
	if stmt == nil {
		return flow{}, nil
	}

	switch stmt.Kind {
	case ast.StmtVersion:
		v, _ := stmts.Version(id)
		u.emit(u.out.Stmts.NewVersion(stmt.Span, v.Version))
	case ast.StmtInclude:
		inc, _ := stmts.Include(id)
		u.emit(u.out.Stmts.NewInclude(stmt.Span, inc.Path))
	case ast.StmtQubitDecl:
		return flow{}, u.qubitDecl(id, stmt)
	case ast.StmtClassicalDecl:
		return flow{}, u.classicalDecl(id, stmt)
	case ast.StmtAssign:
		return flow{}, u.assign(id, stmt)
	case ast.StmtMeasure:
		m, _ := stmts.Measure(id)
		return flow{}, u.measure(id, stmt.Span, m.Source, m.Target)
	case ast.StmtGateCall:
		return flow{}, u.gateCall(id, stmt)
	case ast.StmtReset:
		return flow{}, u.reset(id, stmt)
	case ast.StmtBarrier:
		return flow{}, u.barrier(id, stmt)
	case ast.StmtGateDef:
		g, _ := stmts.GateDef(id)
		return flow{}, u.define(id, g.Name, symbols.SymbolGate)
	case ast.StmtDef:
		d, _ := stmts.Def(id)
		return flow{}, u.define(id, d.Name, symbols.SymbolSubroutine)
	case ast.StmtReturn:
		return u.returnStmt(id, stmt)
	case ast.StmtExpr:
		e, _ := stmts.Expr(id)
		_, err := u.ev.Eval(e.Expr)
		return flow{}, err
	case ast.StmtSwitch:
		sw, _ := stmts.Switch(id)
		return u.unrollSwitch(id, stmt, sw)
	}
	return flow{}, nil
}

func (u *unroller) requireGlobal(id ast.StmtID, what string) error {
	if u.scopeKind() == symbols.ScopeGlobal {
		return nil
	}
	return u.env.fail(KindInvalidScope, u.env.stmtSpan(id), u.snippet(id), "%s can only be declared in the global scope", what)
}

func (u *unroller) declare(id ast.StmtID, sym symbols.Symbol, what string) error {
	if _, err := u.env.Symbols.Declare(sym); err != nil {
		return u.env.fail(KindRedeclaration, sym.Span, u.snippet(id), "Re-declaration of %s '%s'", what, u.env.name(sym.Name))
	}
	return nil
}

func (u *unroller) define(id ast.StmtID, name source.StringID, kind symbols.SymbolKind) error {
	what := "Subroutine"
	if kind == symbols.SymbolGate {
		what = "Gate"
	}
	if err := u.requireGlobal(id, what); err != nil {
		return err
	}
	return u.declare(id, symbols.Symbol{
		Name: name,
		Kind: kind,
		Span: u.env.stmtSpan(id),
		Decl: id,
	}, kind.String())
}

func (u *unroller) qubitDecl(id ast.StmtID, stmt *ast.Stmt) error {
	decl, _ := u.env.AST.Stmts.QubitDecl(id)
	if err := u.requireGlobal(id, "Qubit"); err != nil {
		return err
	}
	size := uint32(1)
	width := types.WidthAny
	if decl.Size.IsValid() {
		n, err := u.ev.designator(decl.Size)
		if err != nil {
			return err
		}
		size, width = n, n
	}
	t := u.env.Types.Intern(types.MakeQubits(width))
	if err := u.declare(id, symbols.Symbol{Name: decl.Name, Kind: symbols.SymbolQubit, Type: t, Span: decl.NameSpan}, "variable"); err != nil {
		return err
	}
	u.res.NumQubits += int(size)
	u.emit(u.out.Stmts.NewQubitDecl(stmt.Span, ast.QubitDeclStmt{
		Name:     decl.Name,
		NameSpan: decl.NameSpan,
		Size:     u.intLiteral(stmt.Span, int64(size)),
	}))
	return nil
}
