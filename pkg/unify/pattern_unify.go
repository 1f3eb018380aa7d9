package unify

import (
	"github.com/gitrdm/ntprove/pkg/pattern"
	"github.com/gitrdm/ntprove/pkg/term"
)

// UnifyPatternTerms implements the "simple case" of pattern-term
// unification from spec.md §4.3: base terms must be variants; then it
// tries to align the pattern substitutions via refactoring (spec.md
// §4.4(1)); it returns (nil, nil, false) on failure at either step.
func UnifyPatternTerms(p, q *pattern.PatternTerm) (*pattern.PatternTerm, *pattern.PatternTerm, bool) {
	if !term.IsVariantOf(p.Base, q.Base) {
		return nil, nil, false
	}
	return pattern.Refactor(p, q)
}
