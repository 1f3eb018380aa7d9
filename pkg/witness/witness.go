// Package witness implements the nontermination witness variants of
// spec.md §4.7: LoopingPair and PatternRuleLp for logic programs,
// RecurrentPair and PatternRuleTrsIclp25 for term rewriting systems.
// Grounded on the teacher's Goal/Stream idiom generalized to a
// result-returning, exception-free interface, per spec.md §9's "every
// fallible operation returns an optional/result" redesign strategy.
package witness

import (
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
)

// Witness is the closed interface every nontermination witness variant
// implements: a single query method that, given a mode, either reports
// the atomic query proving nontermination under that mode, or reports
// that this witness does not (yet) cover the mode.
type Witness interface {
	// ProvesNonTerminationOf instantiates the witness against mode and
	// returns the ground (or input-ground) query atom that witnesses
	// nontermination, or (nil, false) if mode is not covered.
	ProvesNonTerminationOf(mode program.Mode) (*term.Compound, bool)
}
