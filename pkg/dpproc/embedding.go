package dpproc

import "github.com/gitrdm/ntprove/pkg/term"

// Embeds implements the homeomorphic embedding relation s <| t (spec.md
// §4.8's termination-guaranteeing well-quasi-order, used both to
// strengthen Elim and, directly, as the EmbedsFunc pkg/unfold's Elim
// expects): s embeds into t if s is a variable equal to t, if s embeds
// into some proper subterm of t, or if s and t share a root symbol and
// every argument of s embeds (pairwise) into the corresponding argument
// of t.
func Embeds(s, t term.Term) bool {
	if sv, ok := s.(*term.Variable); ok {
		if tv, ok := t.(*term.Variable); ok {
			return sv == tv
		}
		return embedsIntoSubterm(s, t)
	}
	if embedsIntoSubterm(s, t) {
		return true
	}
	sc, ok1 := s.(*term.Compound)
	tc, ok2 := t.(*term.Compound)
	if ok1 && ok2 && sc.Sym == tc.Sym && len(sc.Args) == len(tc.Args) {
		for i := range sc.Args {
			if !Embeds(sc.Args[i], tc.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// embedsIntoSubterm reports whether s embeds into some (possibly
// improper, for HatApp's single argument) immediate or deeper subterm of
// t — the "diving" case of the embedding definition.
func embedsIntoSubterm(s, t term.Term) bool {
	switch n := t.(type) {
	case *term.Compound:
		for _, a := range n.Args {
			if Embeds(s, a) {
				return true
			}
		}
	case *term.HatApp:
		return Embeds(s, n.Arg)
	}
	return false
}
