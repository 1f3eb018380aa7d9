package witness

import (
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
)

// LoopingPair is a binary-rule sequence R_1,...,R_n together with a
// DN-witnessing SoP tau (spec.md §4.5): tau certifies that unfolding the
// sequence against itself indefinitely grows a term without bound.
type LoopingPair struct {
	Registry *term.Registry
	Rules    []*program.UnfoldedLPRule
	Tau      *program.SoP
}

// tauMoreGeneral reports whether, projected onto tau's domain positions
// for sym, pattern is at least as general as target: every domain
// position of pattern must be able to match the corresponding position
// of target via subst.MatchTerms. Positions outside the domain are
// ignored, matching spec.md's definition of "tau-more-general".
func tauMoreGeneral(tau *program.SoP, pattern, target *term.Compound) bool {
	if pattern.Sym != target.Sym {
		return false
	}
	domain := tau.Positions(pattern.Sym)
	for i := range pattern.Args {
		if i >= len(domain) || !domain[i] {
			continue
		}
		if _, ok := subst.MatchTerms(pattern.Args[i], target.Args[i]); !ok {
			return false
		}
	}
	return true
}

// isUnitLoop reports whether a single binary rule R is, by itself, a
// looping pair: its body atom must be tau-more-general than its head.
func isUnitLoop(tau *program.SoP, r *program.UnfoldedLPRule) bool {
	if !r.IsBinary() {
		return false
	}
	return tauMoreGeneral(tau, r.Body[0], r.Head)
}

// NewLoopingPair constructs a SoP from rules' heads (ConstructSoP) and
// verifies every rule in the sequence is a unit loop under it. It fails
// if the sequence is empty, any rule is not binary, or any rule fails the
// tau-more-general check.
func NewLoopingPair(registry *term.Registry, rules []*program.UnfoldedLPRule) (*LoopingPair, bool) {
	if len(rules) == 0 {
		return nil, false
	}
	plain := make([]*program.LPRule, len(rules))
	for i, r := range rules {
		plain[i] = &r.LPRule
	}
	tau := program.ConstructSoP(plain)
	for _, r := range rules {
		if !isUnitLoop(tau, r) {
			return nil, false
		}
	}
	return &LoopingPair{Registry: registry, Rules: rules, Tau: tau}, true
}

// Extend appends r to the sequence and re-runs NewLoopingPair on the
// result: tau is recomputed from every rule's head, and every rule, r
// included, must be a unit loop under it. This whole-sequence recheck is
// this engine's conservative proxy for the "more general across rules"
// cross-rule property DN2/DN3 describe; no check relates r's head to the
// previous rule's body.
func (lp *LoopingPair) Extend(r *program.UnfoldedLPRule) (*LoopingPair, bool) {
	candidate := make([]*program.UnfoldedLPRule, len(lp.Rules)+1)
	copy(candidate, lp.Rules)
	candidate[len(lp.Rules)] = r
	return NewLoopingPair(lp.Registry, candidate)
}

// ProvesNonTerminationOf implements Witness: it reports the first rule's
// head with every non-input position replaced by a fresh constant,
// leaving input positions as-is, the standard "instantiate inputs, query
// the rest" form of a nontermination witness atom.
func (lp *LoopingPair) ProvesNonTerminationOf(mode program.Mode) (*term.Compound, bool) {
	if len(lp.Rules) == 0 {
		return nil, false
	}
	head := lp.Rules[0].Head
	if head.Sym.Arity() != mode.Arity {
		return nil, false
	}
	if !tauMoreGeneral(lp.Tau, lp.Rules[0].Body[0], head) {
		return nil, false
	}
	zeroSym := lp.Registry.Function("0", 0)
	zero, err := term.NewCompound(zeroSym)
	if err != nil {
		return nil, false
	}
	args := make([]term.Term, len(head.Args))
	for i, a := range head.Args {
		if mode.IsInput(i) {
			args[i] = a
		} else {
			args[i] = zero
		}
	}
	query, err := term.NewCompound(head.Sym, args...)
	if err != nil {
		return nil, false
	}
	return query, true
}

var _ Witness = (*LoopingPair)(nil)
