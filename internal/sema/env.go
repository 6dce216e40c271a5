package sema

import (
	"fmt"

	"qasmc/internal/ast"
	"qasmc/internal/diag"
	"qasmc/internal/source"
	"qasmc/internal/symbols"
	"qasmc/internal/types"
)

// Value is a compile-time value of a classical expression.
type Value = types.Value

// Env is the context shared by every component of one pass. The fields are
// set once; the symbol table behind Symbols is the only mutable part.
type Env struct {
	AST      *ast.Builder
	Types    *types.Interner
	Symbols  *symbols.Table
	Files    *source.FileSet
	Reporter diag.Reporter
}

// NewEnv prepares an environment over a parsed tree.
func NewEnv(in *ast.Builder, fs *source.FileSet, reporter diag.Reporter) *Env {
	return &Env{
		AST:      in,
		Types:    types.NewInterner(),
		Symbols:  symbols.NewTable(symbols.Hints{}, in.Strings),
		Files:    fs,
		Reporter: reporter,
	}
}

// fail builds a ValidationError, reports it and returns it.
func (env *Env) fail(kind ErrorKind, span source.Span, snippet, format string, args ...any) *ValidationError {
	msg := fmt.Sprintf(format, args...)
	ve := &ValidationError{
		kind:    kind,
		Message: msg,
		Span:    span,
		Snippet: snippet,
	}
	if env.Files != nil {
		ve.Line, ve.Column, _ = diag.Location(env.Files, span)
	}
	b := diag.ReportError(env.Reporter, kind.Code(), span, msg)
	if snippet != "" {
		b.WithNote(span, snippet)
	}
	ve.Diag = b.Diagnostic()
	b.Emit()
	return ve
}

func (env *Env) name(id source.StringID) string {
	return env.AST.Name(id)
}

func (env *Env) exprSpan(id ast.ExprID) source.Span {
	if e := env.AST.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

func (env *Env) stmtSpan(id ast.StmtID) source.Span {
	if s := env.AST.Stmts.Get(id); s != nil {
		return s.Span
	}
	return source.Span{}
}
