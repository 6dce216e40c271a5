package sema

import (
	"strconv"

	"qasmc/internal/ast"
	"qasmc/internal/symbols"
	"qasmc/internal/trace"
)

// unrollSwitch validates a switch and splices the body of the clause the
// target selects. With no match and no default nothing is emitted.
func (u *unroller) unrollSwitch(id ast.StmtID, _ *ast.Stmt, sw *ast.SwitchStmt) (flow, error) {
	header := u.snippet(id)
	if err := u.ev.requireTargetType(sw, header); err != nil {
		return flow{}, err
	}
	sets, err := u.ev.caseSets(sw, header)
	if err != nil {
		return flow{}, err
	}
	target, err := u.ev.requireKnown(sw.Target)
	if err != nil {
		return flow{}, err
	}
	v, ok := target.AsInt()
	if !ok {
		return flow{}, u.env.fail(KindSwitchTargetType, sw.Keyword, header, "Switch target %s must be of type int", u.ev.text(sw.Target))
	}

	branch := "none"
	body, span := sw.Default, sw.DefaultSpan
	if sw.HasDefault {
		branch = "default"
	}
	for i, set := range sets {
		if set.Contains(v) {
			branch = "case " + strconv.Itoa(i)
			body, span = set.Body, set.Span
			break
		}
	}
	trace.Point(u.ctx, trace.ScopeNode, "switch", header, map[string]string{
		"value":  strconv.FormatInt(v, 10),
		"branch": branch,
	})
	u.res.Switches++
	if branch == "none" {
		return flow{}, nil
	}

	if err := u.env.gatekeep(body); err != nil {
		return flow{}, err
	}
	u.env.Symbols.Push(symbols.ScopeCase, span)
	defer u.env.Symbols.Pop()
	return u.walk(body)
}
