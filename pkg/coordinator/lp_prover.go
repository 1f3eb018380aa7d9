package coordinator

import (
	"context"

	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
	"github.com/gitrdm/ntprove/pkg/unfold"
	"github.com/gitrdm/ntprove/pkg/witness"
)

// lpBinaryPoolCap bounds the binary-rule pool proveLPBinary accumulates
// across unfolding iterations before trying recurrent-pair cycles over
// it — an all-pairs search, so the pool is kept small rather than
// unbounded.
const lpBinaryPoolCap = 50

// proveLP races the LP strategies spec.md §4.9 names: binary unfolding,
// pattern unfolding, and (when configured) an external cTI call.
func (c *Coordinator) proveLP(ctx context.Context, prog *program.Program, target *term.Symbol, mode program.Mode) Result {
	tasks := []proverTask{
		func(ctx context.Context) Result { return c.proveLPBinary(ctx, prog, target, mode) },
		func(ctx context.Context) Result { return c.proveLPPattern(ctx, prog, target, mode) },
	}
	if c.Config.CTIPath != "" {
		tasks = append(tasks, func(ctx context.Context) Result { return c.proveLPCTI(ctx, target, mode) })
	}
	return c.race(ctx, "lp", tasks)
}

// proveLPBinary iterates T^β (unfold.UnfoldLPStep), after each step
// searching the accumulated binary-rule pool for a unit-loop or
// recurrent-pair witness headed by target.
func (c *Coordinator) proveLPBinary(ctx context.Context, prog *program.Program, target *term.Symbol, mode program.Mode) Result {
	logger := c.Logger.Named("lp")
	var pool []*program.UnfoldedLPRule
	frontier := prog.LP

	collect := func(rules []*program.UnfoldedLPRule) {
		for _, r := range rules {
			if r.IsBinary() && r.Head.Sym == target {
				pool = append(pool, r)
			}
		}
		if len(pool) > lpBinaryPoolCap {
			pool = pool[len(pool)-lpBinaryPoolCap:]
		}
	}
	collect(prog.LP)

	for iteration := 1; iteration <= c.Config.MaxIterations; iteration++ {
		select {
		case <-ctx.Done():
			return Result{Kind: ResultMaybe}
		default:
		}

		if w, ok := searchLoopingWitnesses(prog.Registry, pool, mode); ok {
			logger.Debug("looping/recurrent pair witness found", "iteration", iteration)
			return Result{Kind: ResultNo, Witness: w}
		}

		next := unfold.UnfoldLPStep(ctx, frontier, prog.LP, iteration)
		if len(next) == 0 {
			return Result{Kind: ResultMaybe}
		}
		collect(next)
		frontier = next
		logger.Trace("unfolding step", "iteration", iteration, "rules", len(next))
	}
	return Result{Kind: ResultMaybe}
}

// searchLoopingWitnesses tries every pool rule as a unit loop (degenerate
// LoopingPair), then every ordered pair as a two-rule RecurrentPairLp
// cycle. Exploring every n-rule cycle is combinatorial in the pool's
// size, so this engine only searches unit and pairwise cycles — the
// bounded substitute documented in DESIGN.md.
func searchLoopingWitnesses(registry *term.Registry, pool []*program.UnfoldedLPRule, mode program.Mode) (*term.Compound, bool) {
	for _, r := range pool {
		if lp, ok := witness.NewLoopingPair(registry, []*program.UnfoldedLPRule{r}); ok {
			if q, ok := lp.ProvesNonTerminationOf(mode); ok {
				return q, true
			}
		}
	}
	for _, a := range pool {
		for _, b := range pool {
			if a == b {
				continue
			}
			if rp, ok := witness.NewRecurrentPairLp(registry, []*program.UnfoldedLPRule{a, b}); ok {
				if q, ok := rp.ProvesNonTerminationOf(mode); ok {
					return q, true
				}
			}
		}
	}
	return nil, false
}

// proveLPPattern iterates T^π_{P,B}: for every binary rule headed by
// target, and every seed pattern rule (unfold.SeedPatternRules) headed by
// the same symbol, it derives a PatternRuleLp witness and tests it
// against mode.
func (c *Coordinator) proveLPPattern(ctx context.Context, prog *program.Program, target *term.Symbol, mode program.Mode) Result {
	logger := c.Logger.Named("lp")
	seeds := unfold.SeedPatternRules(prog.LP)
	for _, r := range prog.LP {
		if !r.IsBinary() || r.Head.Sym != target {
			continue
		}
		for _, seed := range seeds {
			select {
			case <-ctx.Done():
				return Result{Kind: ResultMaybe}
			default:
			}
			base, ok := seed.Head.Base.(*term.Compound)
			if !ok || base.Sym != target {
				continue
			}
			pr, ok := derivePatternWitness(prog.Registry, r.Body[0], seed)
			if !ok {
				continue
			}
			if q, ok := pr.ProvesNonTerminationOf(mode); ok {
				logger.Debug("pattern-rule witness found")
				return Result{Kind: ResultNo, Witness: q}
			}
		}
	}
	return Result{Kind: ResultMaybe}
}

// derivePatternWitness iterates seed against bodyAtom twice in a row,
// taking the two resulting refactored pattern terms' closing
// substitutions as the (left, right) pair NewPatternRuleLp needs to
// compute alpha from — the natural two-sample growth measurement
// Validate/ComputeAlpha need, since the exact derivation is
// underspecified beyond its single worked example (see DESIGN.md).
func derivePatternWitness(registry *term.Registry, bodyAtom term.Term, seed *unfold.LPPatternRule) (*witness.PatternRuleLp, bool) {
	first, ok := unfold.IteratePattern(bodyAtom, seed)
	if !ok {
		return nil, false
	}
	second, ok := unfold.IteratePattern(bodyAtom, &unfold.LPPatternRule{Head: first})
	if !ok {
		return nil, false
	}
	return witness.NewPatternRuleLp(registry, second, first.Theta.Closing, second.Theta.Closing)
}
