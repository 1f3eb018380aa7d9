package pattern

import (
	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
)

// Refactor implements spec.md §4.4(1): if base(p) is more general than
// base(q) via a renaming η, rewrite p and q's closing substitutions to
// use a common domain. For each x↦t in η where t = c^a(x) for a ground
// 1-context c (i.e. t is a hat application wrapping the variable x itself),
// push x↦c^{0,0}(θ(x)) into both sides' closing substitutions. Aborts
// (returns ok=false) if x is already in the pumping domain of either
// side, since a variable cannot simultaneously be aligned by renaming and
// already pumped.
func Refactor(p, q *PatternTerm) (*PatternTerm, *PatternTerm, bool) {
	eta, ok := subst.MatchTerms(p.Base, q.Base)
	if !ok {
		return nil, nil, false
	}

	leftTheta := p.Theta.Clone()
	rightTheta := q.Theta.Clone()

	for _, x := range eta.Domain() {
		t := eta.Lookup(x)
		hat, isHat := t.(*term.HatApp)
		if !isHat {
			continue
		}
		v, isVar := hat.Arg.(*term.Variable)
		if !isVar || v != x {
			continue
		}
		if leftTheta.InPumpingDomain(x) || rightTheta.InPumpingDomain(x) {
			return nil, nil, false
		}

		leftExisting := leftTheta.Closing.Apply(x)
		rightExisting := rightTheta.Closing.Apply(x)

		leftWrapped, err := term.NewHatApp(hat.Sym, []int{0}, 0, leftExisting)
		if err != nil {
			return nil, nil, false
		}
		rightWrapped, err := term.NewHatApp(hat.Sym, []int{0}, 0, rightExisting)
		if err != nil {
			return nil, nil, false
		}
		leftTheta.Closing = leftTheta.Closing.Extend(x, leftWrapped)
		rightTheta.Closing = rightTheta.Closing.Extend(x, rightWrapped)
	}

	refactoredP, err := New(p.Base, leftTheta)
	if err != nil {
		return nil, nil, false
	}
	refactoredQ, err := New(q.Base, rightTheta)
	if err != nil {
		return nil, nil, false
	}
	return refactoredP, refactoredQ, true
}
