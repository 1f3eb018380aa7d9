// Package unify implements Robinson-style unification over the term model,
// disagreement-position enumeration, and the specialized unification used
// by pattern terms. Grounded on the teacher's unify/unifyWithConstraints
// pair (pkg/minikanren/primitives.go), generalized here from binary Pair
// recursion to n-ary Compound/HatApp terms and extended with an occurs
// check (the teacher relies on the constraint store to reject cyclic
// bindings lazily; this engine checks eagerly, per spec.md §4.3).
package unify

import (
	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
)

// Unify attempts to unify s and t under the accumulator substitution acc
// (New() for a fresh attempt), adding x↦t bindings and propagating. It
// returns the extended substitution, or (nil, false) on failure.
func Unify(s, t term.Term, acc *subst.Substitution) (*subst.Substitution, bool) {
	if acc == nil {
		acc = subst.New()
	}
	a := acc.Walk(s)
	b := acc.Walk(t)

	if av, ok := a.(*term.Variable); ok {
		if bv, ok := b.(*term.Variable); ok && av == bv {
			return acc, true
		}
		if occurs(av, b, acc) {
			return nil, false
		}
		return acc.Extend(av, b), true
	}
	if bv, ok := b.(*term.Variable); ok {
		if occurs(bv, a, acc) {
			return nil, false
		}
		return acc.Extend(bv, a), true
	}

	switch an := a.(type) {
	case *term.Compound:
		bn, ok := b.(*term.Compound)
		if !ok || an.Sym != bn.Sym || len(an.Args) != len(bn.Args) {
			return nil, false
		}
		cur := acc
		for i := range an.Args {
			var ok2 bool
			cur, ok2 = Unify(an.Args[i], bn.Args[i], cur)
			if !ok2 {
				return nil, false
			}
		}
		return cur, true
	case *term.HatApp:
		bn, ok := b.(*term.HatApp)
		if !ok || an.Sym != bn.Sym || an.B != bn.B || len(an.Exponents) != len(bn.Exponents) {
			return nil, false
		}
		for i := range an.Exponents {
			if an.Exponents[i] != bn.Exponents[i] {
				return nil, false
			}
		}
		return Unify(an.Arg, bn.Arg, acc)
	default:
		if term.DeepEquals(a, b) {
			return acc, true
		}
		return nil, false
	}
}

// occurs reports whether v occurs free in t, once every variable is walked
// through acc — the occurs check spec.md §4.3 requires so that unify never
// produces a cyclic (infinite) substitution.
func occurs(v *term.Variable, t term.Term, acc *subst.Substitution) bool {
	switch n := acc.Walk(t).(type) {
	case *term.Variable:
		return n == v
	case *term.Compound:
		for _, a := range n.Args {
			if occurs(v, a, acc) {
				return true
			}
		}
		return false
	case *term.HatApp:
		return occurs(v, n.Arg, acc)
	default:
		return false
	}
}

// Match is Unify restricted to only extending the variables of s
// (the pattern); variables of t are never bound. This is the "matching"
// half of the package's name, used when t must stay rigid (e.g. matching a
// body atom's instantiated left-hand side against a rule).
func Match(pattern, target term.Term, acc *subst.Substitution) (*subst.Substitution, bool) {
	if acc == nil {
		acc = subst.New()
	}
	p := acc.Walk(pattern)
	if pv, ok := p.(*term.Variable); ok {
		if existing := acc.Lookup(pv); existing != nil {
			if term.DeepEquals(existing, target) {
				return acc, true
			}
			return nil, false
		}
		return acc.Extend(pv, target), true
	}
	switch pn := p.(type) {
	case *term.Compound:
		tn, ok := target.(*term.Compound)
		if !ok || pn.Sym != tn.Sym || len(pn.Args) != len(tn.Args) {
			return nil, false
		}
		cur := acc
		for i := range pn.Args {
			var ok2 bool
			cur, ok2 = Match(pn.Args[i], tn.Args[i], cur)
			if !ok2 {
				return nil, false
			}
		}
		return cur, true
	case *term.HatApp:
		tn, ok := target.(*term.HatApp)
		if !ok || pn.Sym != tn.Sym || pn.B != tn.B || len(pn.Exponents) != len(tn.Exponents) {
			return nil, false
		}
		for i := range pn.Exponents {
			if pn.Exponents[i] != tn.Exponents[i] {
				return nil, false
			}
		}
		return Match(pn.Arg, tn.Arg, acc)
	default:
		if term.DeepEquals(p, target) {
			return acc, true
		}
		return nil, false
	}
}
