package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"qasmc/internal/ast"
	"qasmc/internal/source"
)

// CheckSpanInvariants verifies that the spans of a parsed file nest:
// every statement lies inside the file span and inside its parent
// (switch case, default block, gate or def body), and nothing points past
// the end of the source.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}
	if len(f.Stmts) > 0 && f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	c := checker{b: b, file: sf.ID}
	return c.body(f.Stmts, f.Span, "file")
}

type checker struct {
	b    *ast.Builder
	file source.FileID
}

func (c checker) within(sp, parent source.Span, what string) error {
	if sp.End < sp.Start {
		return fmt.Errorf("%s span is inverted: %v", what, sp)
	}
	if sp.File != c.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, c.file)
	}
	if !parent.Contains(sp) {
		return fmt.Errorf("%s span %v is outside %v", what, sp, parent)
	}
	return nil
}

func (c checker) body(ids []ast.StmtID, parent source.Span, owner string) error {
	for _, id := range ids {
		stmt := c.b.Stmts.Get(id)
		if stmt == nil {
			return fmt.Errorf("nil statement id=%d in %s", id, owner)
		}
		what := stmt.Kind.String()
		if err := c.within(stmt.Span, parent, what); err != nil {
			return err
		}
		if err := c.children(id, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) children(id ast.StmtID, stmt *ast.Stmt) error {
	switch stmt.Kind {
	case ast.StmtSwitch:
		sw, _ := c.b.Stmts.Switch(id)
		for i, cs := range sw.Cases {
			what := fmt.Sprintf("case #%d", i)
			if err := c.within(cs.Span, stmt.Span, what); err != nil {
				return err
			}
			if err := c.body(cs.Body, cs.Span, what); err != nil {
				return err
			}
		}
		if sw.HasDefault {
			if err := c.within(sw.DefaultSpan, stmt.Span, "default"); err != nil {
				return err
			}
			return c.body(sw.Default, sw.DefaultSpan, "default")
		}
	case ast.StmtGateDef:
		g, _ := c.b.Stmts.GateDef(id)
		return c.body(g.Body, stmt.Span, "gate")
	case ast.StmtDef:
		d, _ := c.b.Stmts.Def(id)
		return c.body(d.Body, stmt.Span, "def")
	}
	return nil
}
