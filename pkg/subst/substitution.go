// Package subst implements the substitution algebra: finite maps from
// variables to terms, with apply/compose/union/commute/more-general
// operations, plus the pattern-substitution extension used by the
// pattern-term engine.
package subst

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gitrdm/ntprove/pkg/term"
)

// Substitution is an ordered finite map variable -> term. Ordering is
// insertion order, kept only so String() is deterministic for proof
// traces; it has no semantic significance. Grounded on the teacher's
// Substitution (core.go): Clone/Bind/Walk/Size/String carry over in
// shape, generalized here to the full algebra spec.md §4.2 requires
// (Compose/UnionWith/CommutesWith/IsMoreGeneralThan/RenameWith).
type Substitution struct {
	order []*term.Variable
	binds map[*term.Variable]term.Term
}

// New creates an empty substitution.
func New() *Substitution {
	return &Substitution{binds: make(map[*term.Variable]term.Term)}
}

// Lookup returns the term bound to v, or nil if v is unbound.
func (s *Substitution) Lookup(v *term.Variable) term.Term {
	return s.binds[v]
}

// Domain returns the bound variables in insertion order.
func (s *Substitution) Domain() []*term.Variable {
	out := make([]*term.Variable, len(s.order))
	copy(out, s.order)
	return out
}

// Size returns the number of bindings.
func (s *Substitution) Size() int { return len(s.order) }

// Clone returns a shallow copy (bound terms are shared; this is safe
// because terms themselves are treated as immutable once constructed).
func (s *Substitution) Clone() *Substitution {
	c := &Substitution{
		order: make([]*term.Variable, len(s.order)),
		binds: make(map[*term.Variable]term.Term, len(s.binds)),
	}
	copy(c.order, s.order)
	for k, v := range s.binds {
		c.binds[k] = v
	}
	return c
}

// Extend returns a new substitution with v bound to t, in addition to
// every binding of s. A self-binding (t == v) is tolerated but not
// productive, per spec.md's Substitution invariant.
func (s *Substitution) Extend(v *term.Variable, t term.Term) *Substitution {
	c := s.Clone()
	if _, exists := c.binds[v]; !exists {
		c.order = append(c.order, v)
	}
	c.binds[v] = t
	return c
}

// Walk traverses a term following variable bindings, leftmost-outermost,
// until it reaches a non-variable or an unbound variable.
func (s *Substitution) Walk(t term.Term) term.Term {
	for {
		v, ok := t.(*term.Variable)
		if !ok {
			return t
		}
		bound, has := s.binds[v]
		if !has {
			return t
		}
		t = bound
	}
}

// Apply substitutes every variable in t according to s, recursively,
// following chains of bindings (x↦y, y↦f(z) sends x to f(z)). A variable
// met again inside its own expansion is left as it is, so a
// self-referential binding such as x↦f(x) is applied once. For
// a HatApp it rewrites the wrapped argument pointwise (the
// exponent-adjusting behavior is specific to SimplePatternSubstitution,
// see pattern_substitution.go).
func (s *Substitution) Apply(t term.Term) term.Term {
	return s.apply(t, nil)
}

func (s *Substitution) apply(t term.Term, expanding []*term.Variable) term.Term {
	walked := t
	for v, ok := walked.(*term.Variable); ok && s.binds[v] != nil && !slices.Contains(expanding, v); v, ok = walked.(*term.Variable) {
		expanding = append(expanding, v)
		walked = s.binds[v]
	}
	switch n := walked.(type) {
	case *term.Compound:
		if len(n.Args) == 0 {
			return n
		}
		args := make([]term.Term, len(n.Args))
		changed := false
		for i, a := range n.Args {
			applied := s.apply(a, expanding)
			args[i] = applied
			if applied != a {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return &term.Compound{Sym: n.Sym, Args: args}
	case *term.HatApp:
		newArg := s.apply(n.Arg, expanding)
		if newArg == n.Arg {
			return n
		}
		exps := make([]int, len(n.Exponents))
		copy(exps, n.Exponents)
		return &term.HatApp{Sym: n.Sym, Exponents: exps, B: n.B, Arg: newArg}
	default:
		return walked
	}
}

// Compose returns compose(s, other) = x -> other(s(x)) for x in dom(s),
// extended by other on dom(other) \ dom(s).
func (s *Substitution) Compose(other *Substitution) *Substitution {
	out := New()
	for _, v := range s.order {
		out = out.Extend(v, other.Apply(s.binds[v]))
	}
	for _, v := range other.order {
		if _, inS := s.binds[v]; !inS {
			out = out.Extend(v, other.binds[v])
		}
	}
	return out
}

// ErrIncompatible is returned by UnionWith when the two substitutions
// disagree on a shared variable.
type ErrIncompatible struct {
	Var *term.Variable
}

func (e *ErrIncompatible) Error() string {
	return fmt.Sprintf("subst: incompatible bindings for %s", e.Var.String())
}

// UnionWith returns s ∪ other if for every x in dom(s) ∩ dom(other),
// s(x) ≡ other(x); otherwise it returns an ErrIncompatible.
func (s *Substitution) UnionWith(other *Substitution) (*Substitution, error) {
	out := s.Clone()
	for _, v := range other.order {
		t := other.binds[v]
		if existing, ok := s.binds[v]; ok {
			if !term.DeepEquals(existing, t) {
				return nil, &ErrIncompatible{Var: v}
			}
			continue
		}
		out = out.Extend(v, t)
	}
	return out, nil
}

// CommutesWith reports whether s(other(x)) ≡ other(s(x)) for every
// variable x appearing in either domain — the test EEG'12 Lemma 6 needs
// of pumping/closing substitutions.
func (s *Substitution) CommutesWith(other *Substitution) bool {
	vars := make(map[*term.Variable]bool)
	for _, v := range s.order {
		vars[v] = true
	}
	for _, v := range other.order {
		vars[v] = true
	}
	for v := range vars {
		left := s.Apply(other.Apply(v))
		right := other.Apply(s.Apply(v))
		if !term.DeepEquals(left, right) {
			return false
		}
	}
	return true
}

// IsMoreGeneralThan reports whether there exists rho such that
// rho∘s ≡ other on dom(s) ∪ dom(other), accumulating a witness
// renaming/instantiating substitution. The search is the natural "solve
// each variable's image" pass: for each x in dom(s) ∪ dom(other), require rho(s.Apply(x)) == other.Apply(x)
// by extending rho with whatever bindings make that hold; fail if a
// conflicting binding would be required.
func (s *Substitution) IsMoreGeneralThan(other *Substitution, rho *Substitution) (*Substitution, bool) {
	acc := rho
	if acc == nil {
		acc = New()
	}
	seen := make(map[*term.Variable]bool)
	for _, v := range s.order {
		seen[v] = true
	}
	for _, v := range other.order {
		seen[v] = true
	}
	for v := range seen {
		left := s.Apply(v)
		right := other.Apply(v)
		var ok bool
		acc, ok = matchInto(left, right, acc)
		if !ok {
			return nil, false
		}
	}
	return acc, true
}

// MatchTerms computes a one-directional match: a substitution η such that
// η(pattern) ≡ target, where only pattern's variables may be bound. Used
// by pkg/pattern's refactoring step to find the renaming between two
// pattern terms' base terms without introducing a dependency on pkg/unify.
func MatchTerms(pattern, target term.Term) (*Substitution, bool) {
	return matchInto(pattern, target, New())
}

// matchInto extends acc so that acc.Apply(pattern) == target, failing if
// pattern and target disagree on non-variable structure.
func matchInto(pattern, target term.Term, acc *Substitution) (*Substitution, bool) {
	p := acc.Walk(pattern)
	if v, ok := p.(*term.Variable); ok {
		existing := acc.Lookup(v)
		if existing == nil {
			return acc.Extend(v, target), true
		}
		if term.DeepEquals(existing, target) {
			return acc, true
		}
		return acc, false
	}
	switch pn := p.(type) {
	case *term.Compound:
		tn, ok := target.(*term.Compound)
		if !ok || tn.Sym != pn.Sym || len(tn.Args) != len(pn.Args) {
			return acc, false
		}
		cur := acc
		var ok2 bool
		for i := range pn.Args {
			cur, ok2 = matchInto(pn.Args[i], tn.Args[i], cur)
			if !ok2 {
				return acc, false
			}
		}
		return cur, true
	case *term.HatApp:
		tn, ok := target.(*term.HatApp)
		if !ok || tn.Sym != pn.Sym || tn.B != pn.B || len(tn.Exponents) != len(pn.Exponents) {
			return acc, false
		}
		for i := range pn.Exponents {
			if pn.Exponents[i] != tn.Exponents[i] {
				return acc, false
			}
		}
		return matchInto(pn.Arg, tn.Arg, acc)
	default:
		if term.DeepEquals(p, target) {
			return acc, true
		}
		return acc, false
	}
}

// RenameWith renames every key and every variable appearing in a bound
// term according to rho (a substitution mapping old variables to new
// variables).
func (s *Substitution) RenameWith(rho *Substitution) *Substitution {
	out := New()
	for _, v := range s.order {
		newVar := v
		if nv, ok := rho.Lookup(v).(*term.Variable); ok {
			newVar = nv
		}
		out = out.Extend(newVar, rho.Apply(s.binds[v]))
	}
	return out
}

func (s *Substitution) String() string {
	if len(s.order) == 0 {
		return "{}"
	}
	parts := make([]string, len(s.order))
	for i, v := range s.order {
		parts[i] = fmt.Sprintf("%s↦%s", v.String(), s.binds[v].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
