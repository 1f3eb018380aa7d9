package unify

import "github.com/gitrdm/ntprove/pkg/term"

// DisagreementPositions enumerates every position at which s and t differ
// at the top of their subterms: same-symbol compounds recurse; anything
// else (different symbols, a variable on either side, mismatched hat
// applications) is reported as a disagreement and is not descended into.
// Positions are emitted in pre-order (left to right, depth first);
// NonVariableDisagreements reorders them non-variable-position first for
// guided unfolding (spec.md §4.6).
func DisagreementPositions(s, t term.Term) []term.Position {
	var out []term.Position
	walk(s, t, term.Root(), &out)
	return out
}

func walk(s, t term.Term, pos term.Position, out *[]term.Position) {
	sc, sOK := s.(*term.Compound)
	tc, tOK := t.(*term.Compound)
	if sOK && tOK && sc.Sym == tc.Sym && len(sc.Args) == len(tc.Args) {
		for i := range sc.Args {
			walk(sc.Args[i], tc.Args[i], pos.Append(i), out)
		}
		return
	}

	sh, shOK := s.(*term.HatApp)
	th, thOK := t.(*term.HatApp)
	if shOK && thOK && sh.Sym == th.Sym && sh.B == th.B && sameExponents(sh.Exponents, th.Exponents) {
		walk(sh.Arg, th.Arg, pos.Append(0), out)
		return
	}

	if term.DeepEquals(s, t) {
		return
	}
	*out = append(*out, pos)
}

func sameExponents(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// NonVariableDisagreements reorders DisagreementPositions so that the
// positions whose subterm is non-variable on at least one side come first,
// followed by those where both sides are variables; no position is
// dropped — spec.md §4.6's "guided by disagreement positions... at
// non-variable positions first" ordering.
func NonVariableDisagreements(s, t term.Term) []term.Position {
	all := DisagreementPositions(s, t)
	var nonVar, rest []term.Position
	for _, p := range all {
		sSub, sOK := term.Subterm(s, p)
		tSub, tOK := term.Subterm(t, p)
		isVar := true
		if sOK {
			if _, ok := sSub.(*term.Variable); !ok {
				isVar = false
			}
		}
		if tOK {
			if _, ok := tSub.(*term.Variable); !ok {
				isVar = false
			}
		}
		if isVar {
			rest = append(rest, p)
		} else {
			nonVar = append(nonVar, p)
		}
	}
	return append(nonVar, rest...)
}
