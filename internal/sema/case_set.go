package sema

import (
	"qasmc/internal/ast"
	"qasmc/internal/source"
)

// CaseSet is one clause after folding: its distinct label values in
// source order and the body to splice when selected.
type CaseSet struct {
	Values []int64
	Body   []ast.StmtID
	Span   source.Span
}

// Contains reports whether v is one of the clause labels.
func (c CaseSet) Contains(v int64) bool {
	for _, x := range c.Values {
		if x == v {
			return true
		}
	}
	return false
}

// caseSets type-checks and folds every label, left to right, clause by
// clause. Values must be distinct across the whole switch.
func (ev *Evaluator) caseSets(sw *ast.SwitchStmt, header string) ([]CaseSet, error) {
	seen := make(map[int64]struct{})
	sets := make([]CaseSet, 0, len(sw.Cases))
	for _, clause := range sw.Cases {
		set := CaseSet{Body: clause.Body, Span: clause.Span, Values: make([]int64, 0, len(clause.Labels))}
		for _, label := range clause.Labels {
			if err := ev.requireLabelType(label); err != nil {
				return nil, err
			}
			v, err := ev.FoldConst(label)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[v]; dup {
				return nil, ev.env.fail(KindDuplicateCase, sw.Keyword, header, "Duplicate case value %d in switch statement", v)
			}
			seen[v] = struct{}{}
			set.Values = append(set.Values, v)
		}
		sets = append(sets, set)
	}
	if len(sets) == 0 {
		return nil, ev.env.fail(KindEmptySwitch, sw.Keyword, header, "Switch statement must have at least one case")
	}
	return sets, nil
}
