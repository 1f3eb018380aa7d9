package dpproc

import "github.com/gitrdm/ntprove/pkg/term"

// Precedence orders function symbols; higher returned values mean
// higher precedence. LPO/KBO both parameterize over one of these.
type Precedence map[*term.Symbol]int

func (p Precedence) rank(sym *term.Symbol) int { return p[sym] }

// LPOGreater implements the lexicographic path ordering s >_lpo t
// (spec.md §4.8's reduction-pair ordering family), standard three-case
// recursive definition: s > t if some argument of s is >= t, or s and t
// share a root symbol and s's arguments lexicographically dominate t's
// (each prefix argument greater-or-equal, first strict), or s's root
// symbol outranks t's and every argument of t is dominated by s itself.
func LPOGreater(prec Precedence, s, t term.Term) bool {
	sc, ok := s.(*term.Compound)
	if !ok {
		return false
	}
	for _, si := range sc.Args {
		if LPOEqual(prec, si, t) || LPOGreater(prec, si, t) {
			return true
		}
	}
	tc, ok := t.(*term.Compound)
	if !ok {
		// t is a variable (or ground atom of arity 0 handled above):
		// s > t holds iff t occurs in s, which the subterm scan above
		// already covers via LPOEqual; otherwise no relation.
		return false
	}
	if sc.Sym == tc.Sym {
		return lexGreater(prec, sc.Args, tc.Args, s, t)
	}
	if prec.rank(sc.Sym) > prec.rank(tc.Sym) {
		for _, ti := range tc.Args {
			if !LPOGreater(prec, s, ti) {
				return false
			}
		}
		return true
	}
	return false
}

// lexGreater compares two equal-arity argument lists left to right:
// skip leading pairwise-equal arguments, then require the first
// differing pair to have sArgs[i] > tArgs[i] and every subsequent tArgs
// position to be dominated by s as a whole (standard LPO same-symbol
// case, status = left-to-right lexicographic).
func lexGreater(prec Precedence, sArgs, tArgs []term.Term, s, t term.Term) bool {
	if len(sArgs) != len(tArgs) {
		return false
	}
	for i := range sArgs {
		if LPOEqual(prec, sArgs[i], tArgs[i]) {
			continue
		}
		if !LPOGreater(prec, sArgs[i], tArgs[i]) {
			return false
		}
		for j := i + 1; j < len(tArgs); j++ {
			if !LPOGreater(prec, s, tArgs[j]) {
				return false
			}
		}
		return true
	}
	return false
}

// LPOEqual reports syntactic equality up to the ordering's own notion of
// equivalence, which for a precedence-only LPO (no AC/multiset status) is
// plain structural equality.
func LPOEqual(prec Precedence, s, t term.Term) bool {
	return term.DeepEquals(s, t)
}
