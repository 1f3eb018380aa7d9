package dpproc

import (
	"context"
	"math"

	"github.com/gitrdm/ntprove/pkg/pattern"
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
	"github.com/gitrdm/ntprove/pkg/unfold"
)

// NB_ITE/NB_UNF per spec.md §9's Open Questions: Payet and Iclp25 use the
// effectively-unbounded INT_MAX/2 (the loop still terminates because each
// iteration either proves nontermination or exhausts a finite unfolding
// frontier), Eeg12 is capped at the much tighter 200 unfolded rules the
// original paper's experiments used. Preserved exactly, not tuned.
const (
	nbItePayetIclp25 = math.MaxInt / 2
	nbUnfPayetIclp25 = math.MaxInt / 2
	nbUnfEeg12       = 200
)

// unfoldSearch drives one depth-escalation unfolding search over a
// frontier of dependency-pair triples seeded from seed: at each depth it
// tests every live triple for nontermination, drops the ones Elim
// eliminates, and replaces each survivor with its ForwardUnfold/
// BackwardUnfold successors (tagged at the next depth) for the following
// iteration. The search ends, with no witness, once the frontier runs dry
// or the iteration bound is exhausted.
func unfoldSearch(ctx context.Context, seed *program.DPTriple, ruleSet []*program.UnfoldedTRSRule, baseDepth int, embeds unfold.EmbedsFunc, connectable unfold.ConnectableFunc, recurrentTest func(n, nPrime *program.UnfoldedTRSRule) bool, variableUnfold bool) (bool, error) {
	frontier := []*program.DPTriple{seed}
	for depth := baseDepth; depth < baseDepth+nbItePayetIclp25 && depth < baseDepth+nbUnfPayetIclp25 && len(frontier) > 0; depth++ {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		var next []*program.DPTriple
		for _, triple := range frontier {
			if unfold.NonTerminationTest(triple, recurrentTest) {
				return true, nil
			}
			if !unfold.Elim(triple, depth, embeds, connectable) {
				continue
			}
			next = append(next, unfold.ForwardUnfold(triple, ruleSet, depth+1, variableUnfold)...)
			next = append(next, unfold.BackwardUnfold(triple, ruleSet, depth+1, variableUnfold)...)
		}
		frontier = next
	}
	return false, nil
}

// ProcUnfoldPayet implements the Payet-style unfolding processor: starting
// from rule as a unit triple, it alternates NonTerminationTest and Elim
// with the F-/B-operators generating each iteration's successor triples
// from ruleSet, escalating the depth bound from the TRS's own depth
// (rule.Left's term depth) up to nbItePayetIclp25 iterations. If the whole
// search frontier runs dry without a witness, it retries once more with
// variableUnfold=true, widening the unfolding operators' candidate
// positions to bare-variable disagreements too — spec.md §4.8's "re-tries
// with variable unfolding turned on if the first pass fails".
func ProcUnfoldPayet(ctx context.Context, rule *program.UnfoldedTRSRule, ruleSet []*program.UnfoldedTRSRule, embeds unfold.EmbedsFunc, connectable unfold.ConnectableFunc, recurrentTest func(n, nPrime *program.UnfoldedTRSRule) bool) (bool, error) {
	baseDepth := term.Depth(rule.Left)
	seed := program.NewUnitTriple(rule, nil)

	ok, err := unfoldSearch(ctx, seed, ruleSet, baseDepth, embeds, connectable, recurrentTest, false)
	if err != nil || ok {
		return ok, err
	}
	return unfoldSearch(ctx, seed, ruleSet, baseDepth, embeds, connectable, recurrentTest, true)
}

// ProcUnfoldEeg12 iterates EEG'12 narrowing (pkg/unfold.NarrowStep) up to
// nbUnfEeg12 times, checking unfold.DetectNontermination after each step,
// and early-exits on the first successful witness.
func ProcUnfoldEeg12(ctx context.Context, rule *pattern.PatternTerm, used *program.UnfoldedTRSRule) (bool, error) {
	theta, err := patternToRuleTrs(rule)
	if err != nil {
		return false, err
	}
	for i := 0; i < nbUnfEeg12; i++ {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}
		if _, _, ok := unfold.DetectNontermination(theta, used); ok {
			return true, nil
		}
		next, ok := unfold.NarrowStep(theta, used)
		if !ok {
			return false, nil
		}
		theta = next
	}
	return false, nil
}

func patternToRuleTrs(p *pattern.PatternTerm) (*unfold.PatternRuleTrs, error) {
	return &unfold.PatternRuleTrs{Left: p, Right: p}, nil
}

// IdentityPatternSeed wraps base in the trivial identity pattern
// substitution (a single pumping substitution mapping a fresh variable to
// itself, no closing substitution) — the degenerate seed ProcUnfoldEeg12
// needs when the caller has a plain TRS rule rather than an
// already-pattern-unfolded term to narrow from.
func IdentityPatternSeed(base term.Term) (*pattern.PatternTerm, error) {
	dummy := term.NewVariable("_")
	sigma := subst.New().Extend(dummy, dummy)
	theta, err := subst.NewPatternSubstitution([]*subst.Substitution{sigma}, subst.New())
	if err != nil {
		return nil, err
	}
	return pattern.New(base, theta)
}

// ProcUnfoldIclp25 mirrors ProcUnfoldPayet's depth-escalation F-/B-operator
// loop, but without the variable-unfolding retry pass Payet's variant
// adds — the ICLP'25 technique spec.md names alongside it is
// pattern-rule-based (PatternRuleTrsIclp25, pkg/witness) rather than
// depth-escalation-based, so this processor explores only the
// non-variable-first frontier once.
func ProcUnfoldIclp25(ctx context.Context, rule *program.UnfoldedTRSRule, ruleSet []*program.UnfoldedTRSRule, embeds unfold.EmbedsFunc, connectable unfold.ConnectableFunc, recurrentTest func(n, nPrime *program.UnfoldedTRSRule) bool) (bool, error) {
	baseDepth := term.Depth(rule.Left)
	seed := program.NewUnitTriple(rule, nil)
	return unfoldSearch(ctx, seed, ruleSet, baseDepth, embeds, connectable, recurrentTest, false)
}
