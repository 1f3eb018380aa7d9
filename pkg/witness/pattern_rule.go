package witness

import (
	"github.com/gitrdm/ntprove/pkg/pattern"
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
)

// groundWithZero replaces every variable occurring in t with the 0/0
// constant of registry, producing the ground witness term spec.md §4.6
// derives from p(α): "a ground nonterminating term derived by replacing
// all variables of p(α) with a fresh constant 0".
func groundWithZero(registry *term.Registry, t term.Term) (term.Term, error) {
	zeroSym := registry.Function("0", 0)
	zero, err := term.NewCompound(zeroSym)
	if err != nil {
		return nil, err
	}
	bindings := make(map[*term.Variable]term.Term)
	for _, v := range term.Variables(t) {
		bindings[v] = zero
	}
	return substituteAll(t, bindings), nil
}

func substituteAll(t term.Term, bindings map[*term.Variable]term.Term) term.Term {
	switch n := t.(type) {
	case *term.Variable:
		if repl, ok := bindings[n]; ok {
			return repl
		}
		return n
	case *term.Compound:
		args := make([]term.Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = substituteAll(a, bindings)
		}
		out, _ := term.NewCompound(n.Sym, args...)
		return out
	case *term.HatApp:
		out, _ := term.NewHatApp(n.Sym, n.Exponents, n.B, substituteAll(n.Arg, bindings))
		return out
	default:
		return t
	}
}

// PatternRuleLp wraps an α-threshold witness derived from a pattern-rule
// family unfolded from a logic program: it carries the validity tag,
// the computed α, and the ground instance p(α,...,α) with its variables
// replaced by the constant 0.
type PatternRuleLp struct {
	Pattern  *pattern.PatternTerm
	Validity pattern.Validity
	Alpha    int
	Ground   term.Term
}

// NewPatternRuleLp computes α from (left, right) — the two aligned
// closing substitutions Refactor produced for the rule's recursive
// pattern — instantiates p at exponent α in every pumping position, and
// grounds the result.
func NewPatternRuleLp(registry *term.Registry, p *pattern.PatternTerm, left, right *subst.Substitution) (*PatternRuleLp, bool) {
	return newPatternRule(registry, p, left, right)
}

// PatternRuleTrsIclp25 is the TRS-side counterpart of PatternRuleLp,
// identical in construction but kept as a distinct named type since
// spec.md §4.7 lists it as its own witness variant (ArgumentIclp25 in the
// closed-interface enumeration).
type PatternRuleTrsIclp25 struct {
	Pattern  *pattern.PatternTerm
	Validity pattern.Validity
	Alpha    int
	Ground   term.Term
}

// NewPatternRuleTrsIclp25 mirrors NewPatternRuleLp for the TRS side.
func NewPatternRuleTrsIclp25(registry *term.Registry, p *pattern.PatternTerm, left, right *subst.Substitution) (*PatternRuleTrsIclp25, bool) {
	pr, ok := newPatternRule(registry, p, left, right)
	if !ok {
		return nil, false
	}
	return &PatternRuleTrsIclp25{Pattern: pr.Pattern, Validity: pr.Validity, Alpha: pr.Alpha, Ground: pr.Ground}, true
}

func newPatternRule(registry *term.Registry, p *pattern.PatternTerm, left, right *subst.Substitution) (*PatternRuleLp, bool) {
	v, ok := pattern.Validate(left, right)
	if !ok {
		return nil, false
	}
	alpha := pattern.ComputeAlpha(v)
	exponents := make([]int, p.Arity())
	for i := range exponents {
		exponents[i] = alpha
	}
	instance, err := p.Instantiate(exponents)
	if err != nil {
		return nil, false
	}
	ground, err := groundWithZero(registry, instance)
	if err != nil {
		return nil, false
	}
	return &PatternRuleLp{Pattern: p, Validity: v, Alpha: alpha, Ground: ground}, true
}

// ProvesNonTerminationOf reports the ground witness as the query whenever
// its root symbol's arity matches mode — the pattern-rule witness carries
// a single ground term rather than a head/body rule, so a match is a
// structural arity check rather than an input/output instantiation.
func (p *PatternRuleLp) ProvesNonTerminationOf(mode program.Mode) (*term.Compound, bool) {
	c, ok := p.Ground.(*term.Compound)
	if !ok || c.Sym.Arity() != mode.Arity {
		return nil, false
	}
	return c, true
}

// ProvesNonTerminationOf implements Witness for the TRS variant, identical
// in shape to PatternRuleLp's.
func (p *PatternRuleTrsIclp25) ProvesNonTerminationOf(mode program.Mode) (*term.Compound, bool) {
	c, ok := p.Ground.(*term.Compound)
	if !ok || c.Sym.Arity() != mode.Arity {
		return nil, false
	}
	return c, true
}

var (
	_ Witness = (*PatternRuleLp)(nil)
	_ Witness = (*PatternRuleTrsIclp25)(nil)
)
