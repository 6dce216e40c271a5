package sema

import (
	"qasmc/internal/ast"
	"qasmc/internal/format"
)

// gatekeep rejects definitions and array declarations directly inside a
// selected case body. Nested blocks are checked when they are entered.
func (env *Env) gatekeep(body []ast.StmtID) error {
	for _, id := range body {
		stmt := env.AST.Stmts.Get(id)
		if stmt == nil {
			continue
		}
		var keyword string
		switch stmt.Kind {
		case ast.StmtDef:
			keyword = "def"
		case ast.StmtGateDef:
			keyword = "gate"
		case ast.StmtClassicalDecl:
			decl, _ := env.AST.Stmts.ClassicalDecl(id)
			if decl.Type.Kind != ast.TypeSpecArray {
				continue
			}
			keyword = "array"
		default:
			continue
		}
		return env.fail(KindUnsupportedStatement, stmt.Span, format.Snippet(env.AST, id),
			"Unsupported statement '%s' in case block", keyword)
	}
	return nil
}
