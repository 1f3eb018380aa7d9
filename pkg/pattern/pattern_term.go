// Package pattern implements the pattern-term engine (spec.md §4.4): the
// representation of infinite families of terms produced by iterated
// context embedding, their refactoring into a common domain, the
// validity/α-threshold computation, a Gauss-Jordan-over-naturals fallback
// solver, and the hat-context tower test. No library in the example pack
// performs symbolic linear algebra over naturals or pattern-term algebra,
// so this package is necessarily hand-written against spec.md itself; its
// internal shape (a Solve-style entry point returning (result, ok), never
// an exception) follows the teacher's constraint-solver idiom.
package pattern

import (
	"fmt"

	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
)

// PatternTerm is the pair (t, θ) of spec.md §3: a base term plus a pattern
// substitution. Evaluation is p(n_1,...,n_l) = μ(σ_l^{n_l}(...σ_1^{n_1}(t))).
type PatternTerm struct {
	Base  term.Term
	Theta *subst.PatternSubstitution
}

// New constructs a pattern term, rejecting a theta with an arity mismatch
// against the supplied exponent count at Instantiate time rather than at
// construction (the arity itself is validated by NewPatternSubstitution).
func New(base term.Term, theta *subst.PatternSubstitution) (*PatternTerm, error) {
	if base == nil {
		return nil, fmt.Errorf("pattern: nil base term")
	}
	if theta == nil {
		return nil, fmt.Errorf("pattern: nil pattern substitution")
	}
	return &PatternTerm{Base: base, Theta: theta}, nil
}

// Instantiate evaluates p(n_1,...,n_l).
func (p *PatternTerm) Instantiate(n []int) (term.Term, error) {
	return p.Theta.Instantiate(p.Base, n)
}

// Arity returns l, the pattern substitution's pumping arity.
func (p *PatternTerm) Arity() int { return p.Theta.Arity() }

// isSimpleBinding reports whether a bound term is acceptable in a
// SimplePatternTerm: either a plain term, or a hat-function application
// whose own argument is not itself wrapped in a *different* hat symbol —
// chains of hat applications must stay uniform so a single tower-of-
// contexts computation (context_tower.go) can collapse them.
func isSimpleBinding(t term.Term) bool {
	h, ok := t.(*term.HatApp)
	if !ok {
		return true
	}
	inner, ok := h.Arg.(*term.HatApp)
	if !ok {
		return true
	}
	return inner.Sym == h.Sym
}

// SimplePatternTerm is the normalized subclass of spec.md §3: a pattern
// term whose pattern substitution can be rewritten so that every bound
// variable maps to either a plain term or a hat function. The interning
// factory (NewSimple) rejects ill-formed instances.
type SimplePatternTerm struct {
	PatternTerm
}

// ErrUnconstructible is returned when a pattern term fails the
// SimplePatternTerm well-formedness check.
var ErrUnconstructible = fmt.Errorf("pattern: unconstructible SimplePatternTerm")

// NewSimple validates base and theta against the SimplePatternTerm
// constraints (every binding across every pumping/closing substitution is
// a plain term or a uniform hat chain, and the pattern substitution's
// pieces commute per spec.md invariant 4) and returns ErrUnconstructible
// if they fail.
func NewSimple(base term.Term, theta *subst.PatternSubstitution) (*SimplePatternTerm, error) {
	if !theta.Commutes() {
		return nil, ErrUnconstructible
	}
	all := theta.Pumping
	for _, sigma := range all {
		for _, v := range sigma.Domain() {
			if !isSimpleBinding(sigma.Lookup(v)) {
				return nil, ErrUnconstructible
			}
		}
	}
	for _, v := range theta.Closing.Domain() {
		if !isSimpleBinding(theta.Closing.Lookup(v)) {
			return nil, ErrUnconstructible
		}
	}
	pt, err := New(base, theta)
	if err != nil {
		return nil, err
	}
	return &SimplePatternTerm{PatternTerm: *pt}, nil
}
