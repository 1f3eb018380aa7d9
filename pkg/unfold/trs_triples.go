package unfold

import (
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
	"github.com/gitrdm/ntprove/pkg/unify"
)

// EmbedsFunc reports whether a embeds b (e.g. homeomorphic embedding,
// pkg/dpproc's embedding.go). ConnectableFunc reports whether there is a
// rewrite-graph path connecting left to right (pkg/dpproc's SCC/graph
// machinery). Both are injected as function values rather than imported
// directly, since pkg/dpproc depends on pkg/unfold and not the reverse.
type EmbedsFunc func(a, b term.Term) bool
type ConnectableFunc func(left, right term.Term) bool

// Elim implements spec.md §4.6's unit-triple survival test: keep a unit
// triple iff its depth (the iteration at which N was produced) does not
// exceed maxDepth, N's left does not embed its right, and right is
// connectable to left in the rewrite graph.
func Elim(triple *program.DPTriple, maxDepth int, embeds EmbedsFunc, connectable ConnectableFunc) bool {
	if triple.Kind != program.KindUnit {
		return true
	}
	if triple.N.Iteration > maxDepth {
		return false
	}
	if embeds(triple.N.Left, triple.N.Right) {
		return false
	}
	return connectable(triple.N.Left, triple.N.Right)
}

// ShallowLeftUnify reports whether a TRS rule's right-hand side unifies
// with its own left-hand side — the cheapest witness of self-embedding a
// rule can carry (e.g. f(x,y) → f(y,x): the right side re-matches the
// left side's shape, so iterating the rule never terminates).
func ShallowLeftUnify(n *program.UnfoldedTRSRule) bool {
	_, ok := unify.Unify(n.Left, n.Right, nil)
	return ok
}

// disagreementPositions orders a unit triple's left/right disagreement
// positions non-variable-first (spec.md §4.6's guidance), and, unless
// variableUnfold is set, drops positions where both sides disagree at a
// bare variable — the "re-tries with variable unfolding turned on if the
// first pass fails" distinction spec.md §4.8 draws between Payet's two
// passes: the first pass only narrows structural mismatches, the retry
// additionally narrows at a variable occurrence itself.
func disagreementPositions(s, t term.Term, variableUnfold bool) []term.Position {
	all := unify.NonVariableDisagreements(s, t)
	if variableUnfold {
		return all
	}
	var out []term.Position
	for _, p := range all {
		if isVariableDisagreement(s, t, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isVariableDisagreement(s, t term.Term, p term.Position) bool {
	isVar := true
	if sSub, ok := term.Subterm(s, p); ok {
		if _, ok := sSub.(*term.Variable); !ok {
			isVar = false
		}
	}
	if tSub, ok := term.Subterm(t, p); ok {
		if _, ok := tSub.(*term.Variable); !ok {
			isVar = false
		}
	}
	return isVar
}

// ForwardUnfold (the F-operator) unfolds a unit triple's right-hand side
// at a disagreement position between left and right, using ruleSet to
// narrow that subterm. It returns the new triples produced, tagged at
// iteration. variableUnfold widens the candidate positions to include
// bare-variable disagreements, per spec.md §4.8's second-pass retry.
func ForwardUnfold(triple *program.DPTriple, ruleSet []*program.UnfoldedTRSRule, iteration int, variableUnfold bool) []*program.DPTriple {
	if triple.Kind != program.KindUnit {
		return nil
	}
	positions := disagreementPositions(triple.N.Left, triple.N.Right, variableUnfold)
	var out []*program.DPTriple
	for _, p := range positions {
		sub, ok := term.Subterm(triple.N.Right, p)
		if !ok {
			continue
		}
		for _, rule := range ruleSet {
			fresh := renameTRS(rule)
			theta, ok := unify.Unify(sub, fresh.Left, nil)
			if !ok {
				continue
			}
			newRight, ok := term.ReplaceAt(triple.N.Right, p, fresh.Right)
			if !ok {
				continue
			}
			newRight = theta.Apply(newRight)
			newLeft := theta.Apply(triple.N.Left)
			newRule := &program.UnfoldedTRSRule{
				TRSRule:   program.TRSRule{Left: newLeft, Right: newRight},
				Iteration: iteration,
				Parent:    triple.N,
			}
			out = append(out, program.NewUnitTriple(newRule, triple.SimpleL))
		}
	}
	return out
}

// BackwardUnfold (the B-operator) is ForwardUnfold's mirror image: it
// narrows the left-hand side at a disagreement position instead.
func BackwardUnfold(triple *program.DPTriple, ruleSet []*program.UnfoldedTRSRule, iteration int, variableUnfold bool) []*program.DPTriple {
	if triple.Kind != program.KindUnit {
		return nil
	}
	positions := disagreementPositions(triple.N.Left, triple.N.Right, variableUnfold)
	var out []*program.DPTriple
	for _, p := range positions {
		sub, ok := term.Subterm(triple.N.Left, p)
		if !ok {
			continue
		}
		for _, rule := range ruleSet {
			fresh := renameTRS(rule)
			theta, ok := unify.Unify(sub, fresh.Right, nil)
			if !ok {
				continue
			}
			newLeft, ok := term.ReplaceAt(triple.N.Left, p, fresh.Left)
			if !ok {
				continue
			}
			newLeft = theta.Apply(newLeft)
			newRight := theta.Apply(triple.N.Right)
			newRule := &program.UnfoldedTRSRule{
				TRSRule:   program.TRSRule{Left: newLeft, Right: newRight},
				Iteration: iteration,
				Parent:    triple.N,
			}
			out = append(out, program.NewUnitTriple(newRule, triple.SimpleL))
		}
	}
	return out
}

// NonTerminationTest implements the composed-triple test: first try
// ShallowLeftUnify on the primary rule N; on failure, attempt a
// recurrent-pair construction between N and N' (left to pkg/witness,
// injected here as recurrentPairTest to avoid pkg/unfold depending on
// pkg/witness).
func NonTerminationTest(triple *program.DPTriple, recurrentPairTest func(n, nPrime *program.UnfoldedTRSRule) bool) bool {
	if ShallowLeftUnify(triple.N) {
		return true
	}
	if triple.Kind == program.KindComposed && triple.NPrime != nil && recurrentPairTest != nil {
		return recurrentPairTest(triple.N, triple.NPrime)
	}
	return false
}

// ExpandTransitory implements spec.md §4.6's transitory-triple expansion:
// (N, N, L) collapses to a single unit triple (N, ∅, L) once N is already
// a recognized member of the simple-cycle set L, or when its SCC has no
// other rule to pair with — there is nothing left to compose. Otherwise
// it fans out to one composed triple (N::N', N, L) per other rule N'
// drawn from the SCC, the two-rule candidates NonTerminationTest's
// recurrent-pair fallback is built to test.
func ExpandTransitory(triple *program.DPTriple) []*program.DPTriple {
	if triple.Kind != program.KindTransitory {
		return nil
	}
	if triple.IsSimpleCycle(triple.N) || len(triple.SCC) < 2 {
		return []*program.DPTriple{program.NewUnitTriple(triple.N, triple.SimpleL)}
	}
	var out []*program.DPTriple
	for _, nPrime := range triple.SCC {
		if nPrime == triple.N {
			continue
		}
		out = append(out, program.NewComposedTriple(triple.N, nPrime, triple.SimpleL))
	}
	return out
}

func renameTRS(r *program.UnfoldedTRSRule) *program.UnfoldedTRSRule {
	copies := make(map[*term.Variable]*term.Variable)
	left := term.DeepCopy(r.Left, copies)
	right := term.DeepCopy(r.Right, copies)
	return &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: left, Right: right}}
}
