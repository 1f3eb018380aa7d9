package subst

import "github.com/gitrdm/ntprove/pkg/term"

// PatternSubstitution is the tuple (σ_1,...,σ_l, μ) of spec.md §3: l >= 1
// pumping substitutions plus one closing substitution. It underlies every
// PatternTerm (pkg/pattern).
type PatternSubstitution struct {
	Pumping []*Substitution
	Closing *Substitution
}

// NewPatternSubstitution builds a pattern substitution from its pumping
// substitutions and closing substitution. It fails if fewer than one
// pumping substitution is supplied (l >= 1 is a construction invariant).
func NewPatternSubstitution(pumping []*Substitution, closing *Substitution) (*PatternSubstitution, error) {
	if len(pumping) == 0 {
		return nil, errPatternSubstitutionArity
	}
	if closing == nil {
		closing = New()
	}
	cp := make([]*Substitution, len(pumping))
	copy(cp, pumping)
	return &PatternSubstitution{Pumping: cp, Closing: closing}, nil
}

var errPatternSubstitutionArity = patternArityError{}

type patternArityError struct{}

func (patternArityError) Error() string {
	return "subst: pattern substitution requires at least one pumping substitution"
}

// Arity returns l, the number of pumping substitutions.
func (ps *PatternSubstitution) Arity() int { return len(ps.Pumping) }

// InPumpingDomain reports whether v is in the pumping domain: some σ_i
// maps it to a non-self term.
func (ps *PatternSubstitution) InPumpingDomain(v *term.Variable) bool {
	for _, sigma := range ps.Pumping {
		if bound := sigma.Lookup(v); bound != nil {
			if bv, ok := bound.(*term.Variable); !ok || bv != v {
				return true
			}
		}
	}
	return false
}

// RelevantVariables returns the variables that are either in the pumping
// domain of any σ_i or in the domain of μ — the set EEG'12 Lemma 6's
// commutation requirement (spec.md invariant 4) quantifies over.
func (ps *PatternSubstitution) RelevantVariables() []*term.Variable {
	seen := make(map[*term.Variable]bool)
	var out []*term.Variable
	add := func(v *term.Variable) {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, sigma := range ps.Pumping {
		for _, v := range sigma.Domain() {
			add(v)
		}
	}
	for _, v := range ps.Closing.Domain() {
		add(v)
	}
	return out
}

// Commutes reports whether the pattern substitution is well-formed per
// spec.md invariant 4: the closing substitution and every pumping
// substitution commute pairwise over the relevant variables.
func (ps *PatternSubstitution) Commutes() bool {
	for i := range ps.Pumping {
		if !ps.Pumping[i].CommutesWith(ps.Closing) {
			return false
		}
		for j := i + 1; j < len(ps.Pumping); j++ {
			if !ps.Pumping[i].CommutesWith(ps.Pumping[j]) {
				return false
			}
		}
	}
	return true
}

// applyNTimes applies sigma to t, n times in sequence. Applying a
// substitution repeatedly to a term is the direct reading of
// "σ_i^{n_i}(...)" from spec.md §3's evaluation rule; the engine never
// assumes idempotence (invariant 3), so this loop never short-circuits.
func applyNTimes(sigma *Substitution, t term.Term, n int) term.Term {
	for i := 0; i < n; i++ {
		t = sigma.Apply(t)
	}
	return t
}

// Instantiate evaluates p(n_1,...,n_l) = μ(σ_l^{n_l}(...σ_1^{n_1}(t)...)).
// len(exponents) must equal ps.Arity().
func (ps *PatternSubstitution) Instantiate(base term.Term, exponents []int) (term.Term, error) {
	if len(exponents) != ps.Arity() {
		return nil, errExponentArity
	}
	t := base
	for i, sigma := range ps.Pumping {
		t = applyNTimes(sigma, t, exponents[i])
	}
	return ps.Closing.Apply(t), nil
}

var errExponentArity = exponentArityError{}

type exponentArityError struct{}

func (exponentArityError) Error() string {
	return "subst: instantiation requires one exponent per pumping substitution"
}

// Clone deep-copies the pattern substitution's substitution slice (the
// substitutions themselves are cloned; bound terms remain shared, as with
// Substitution.Clone).
func (ps *PatternSubstitution) Clone() *PatternSubstitution {
	pumping := make([]*Substitution, len(ps.Pumping))
	for i, s := range ps.Pumping {
		pumping[i] = s.Clone()
	}
	return &PatternSubstitution{Pumping: pumping, Closing: ps.Closing.Clone()}
}
