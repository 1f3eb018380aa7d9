package dpproc

import "github.com/gitrdm/ntprove/pkg/term"

// Weights assigns a natural-number weight to each function symbol, plus
// the shared weight every variable carries (w0), the two parameters a
// Knuth-Bendix ordering needs alongside its precedence.
type Weights struct {
	Symbol map[*term.Symbol]int
	W0     int
}

func (w Weights) weightOf(sym *term.Symbol) int {
	if v, ok := w.Symbol[sym]; ok {
		return v
	}
	return 1
}

// weight computes |t|_w: the weighted size of t under w, treating every
// variable occurrence as w0 and every compound as its symbol's own
// weight plus the weights of its arguments (KBO's standard recursive
// weight function; HatApp nodes count as weight 1 plus their argument's
// weight, since hat symbols carry no declared weight of their own).
func weight(w Weights, t term.Term) int {
	switch n := t.(type) {
	case *term.Variable:
		return w.W0
	case *term.Compound:
		total := w.weightOf(n.Sym)
		for _, a := range n.Args {
			total += weight(w, a)
		}
		return total
	case *term.HatApp:
		return 1 + weight(w, n.Arg)
	default:
		return 0
	}
}

// varCount counts each variable's occurrences in t, the multiset KBO's
// variable-coincidence condition compares between s and t.
func varCount(t term.Term) map[*term.Variable]int {
	counts := make(map[*term.Variable]int)
	var walk func(term.Term)
	walk = func(t term.Term) {
		switch n := t.(type) {
		case *term.Variable:
			counts[n]++
		case *term.Compound:
			for _, a := range n.Args {
				walk(a)
			}
		case *term.HatApp:
			walk(n.Arg)
		}
	}
	walk(t)
	return counts
}

// subsumesVarCount reports whether every variable's count in sub is <=
// its count in super — the KBO precondition "every variable occurs in s
// at least as often as in t" (required before the weight/precedence
// tie-break is consulted at all).
func subsumesVarCount(sub, super map[*term.Variable]int) bool {
	for v, n := range sub {
		if super[v] < n {
			return false
		}
	}
	return true
}

// KBOGreater implements the Knuth-Bendix ordering s >_kbo t (spec.md
// §4.8's second reduction-pair ordering): the variable-coincidence
// precondition must hold, then weight strictly decides unless s and t
// are weight-equal, in which case LPO-style precedence plus the
// same-symbol lexicographic/subterm fallback decides (standard KBO
// definition specialized to unary-or-lower symbol status, i.e. no
// explicit multiset/lexicographic status table beyond what LPOGreater
// already provides).
func KBOGreater(prec Precedence, w Weights, s, t term.Term) bool {
	if !subsumesVarCount(varCount(t), varCount(s)) {
		return false
	}
	ws, wt := weight(w, s), weight(w, t)
	if ws > wt {
		return true
	}
	if ws < wt {
		return false
	}
	if tv, ok := t.(*term.Variable); ok {
		sc, ok := s.(*term.Compound)
		return ok && len(sc.Args) == 1 && term.DeepEquals(sc.Args[0], tv)
	}
	return LPOGreater(prec, s, t)
}
