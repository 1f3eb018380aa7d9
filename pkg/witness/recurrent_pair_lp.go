package witness

import (
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
)

// RecurrentPairLp generalizes LoopingPair to a cycle through more than
// one binary rule: R_1,...,R_n chain so that each rule's body feeds the
// next rule's head (tau-more-general), and the last rule's body feeds
// back into the first rule's head, closing the cycle. A unit loop
// (LoopingPair with n=1) is the degenerate case of this same check, but
// is kept as its own type per spec.md §4.7's enumeration.
type RecurrentPairLp struct {
	Registry *term.Registry
	Rules    []*program.UnfoldedLPRule
	Tau      *program.SoP
}

// NewRecurrentPairLp requires at least two binary rules and verifies the
// cyclic tau-more-general chain: rules[i].Body[0] tau-more-general than
// rules[i+1].Head (indices mod len(rules)).
func NewRecurrentPairLp(registry *term.Registry, rules []*program.UnfoldedLPRule) (*RecurrentPairLp, bool) {
	if len(rules) < 2 {
		return nil, false
	}
	plain := make([]*program.LPRule, len(rules))
	for i, r := range rules {
		if !r.IsBinary() {
			return nil, false
		}
		plain[i] = &r.LPRule
	}
	tau := program.ConstructSoP(plain)
	for i, r := range rules {
		next := rules[(i+1)%len(rules)]
		if !tauMoreGeneral(tau, r.Body[0], next.Head) {
			return nil, false
		}
	}
	return &RecurrentPairLp{Registry: registry, Rules: rules, Tau: tau}, true
}

// ProvesNonTerminationOf instantiates the first rule's head the same way
// LoopingPair does: mode's input positions kept as-is, every other
// position replaced by a fresh ground constant.
func (rp *RecurrentPairLp) ProvesNonTerminationOf(mode program.Mode) (*term.Compound, bool) {
	if len(rp.Rules) == 0 {
		return nil, false
	}
	head := rp.Rules[0].Head
	if head.Sym.Arity() != mode.Arity {
		return nil, false
	}
	zeroSym := rp.Registry.Function("0", 0)
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

var _ Witness = (*RecurrentPairLp)(nil)
