package pattern

import "github.com/gitrdm/ntprove/pkg/term"

// substituteHole replaces every occurrence of hole in t with arg. c is
// always a ground 1-context (exactly one placeholder variable), so this
// is a plain single-variable substitution — no need for the general
// Substitution machinery here.
func substituteHole(t term.Term, hole *term.Variable, arg term.Term) term.Term {
	switch n := t.(type) {
	case *term.Variable:
		if n == hole {
			return arg
		}
		return n
	case *term.Compound:
		if len(n.Args) == 0 {
			return n
		}
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteHole(a, hole, arg)
		}
		return &term.Compound{Sym: n.Sym, Args: args}
	case *term.HatApp:
		exps := make([]int, len(n.Exponents))
		copy(exps, n.Exponents)
		return &term.HatApp{Sym: n.Sym, Exponents: exps, B: n.B, Arg: substituteHole(n.Arg, hole, arg)}
	default:
		return t
	}
}

// ApplyContext is c[hole := arg], exported so other packages (e.g. the
// witness builders that synthesize ground nonterminating terms) can embed
// a term under a 1-context without reaching into this package's
// internals.
func ApplyContext(c term.Term, hole *term.Variable, arg term.Term) term.Term {
	return substituteHole(c, hole, arg)
}

// TowerOfContexts implements testable property 6: returns (k, true) iff
// s = c^k(t) for some k >= 0, where c^k denotes k-fold embedding of t
// under the 1-context c via its hole variable. Returns (0, false) if no
// such k exists. Bounded by depth(s)+1 since each embedding strictly
// increases depth whenever the hole is a proper subterm of c (the only
// case a ground 1-context can be, since it has exactly one placeholder
// distinct from the context's own root when c is non-trivial).
func TowerOfContexts(s, c term.Term, hole *term.Variable, t term.Term) (int, bool) {
	candidate := t
	bound := term.Depth(s) + 1
	for k := 0; k <= bound; k++ {
		if term.DeepEquals(s, candidate) {
			return k, true
		}
		candidate = ApplyContext(c, hole, candidate)
	}
	return 0, false
}

// MaxEmbeddingHeight returns the maximum k such that the subterm of base
// at position p equals c^k(·) for some inner term — the per-occurrence
// computation spec.md §4.4(5)'s simplification step needs before taking
// k* = min over all occurrences of a variable in the base term. It walks
// from p towards the root, since embedding depth can only be certified by
// checking successively shorter prefixes of the occurrence's position.
func MaxEmbeddingHeight(base term.Term, p term.Position, c term.Term, hole *term.Variable, t term.Term) int {
	best := 0
	cur := p
	for {
		sub, ok := term.Subterm(base, cur)
		if !ok {
			break
		}
		k, ok := TowerOfContexts(sub, c, hole, t)
		if !ok || k <= best {
			break
		}
		best = k
		if cur.IsRoot() {
			break
		}
		cur = cur[:len(cur)-1]
	}
	return best
}
