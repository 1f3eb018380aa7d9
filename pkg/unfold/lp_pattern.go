package unfold

import (
	"github.com/gitrdm/ntprove/pkg/pattern"
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
	"github.com/gitrdm/ntprove/pkg/unify"
)

// LPPatternRule is a pattern-term-headed LP rule: the seed unit T^π_{P,B}
// (spec.md §4.6) iterates on. Head and Body carry the same base term as
// an ordinary LPRule would, but under a pattern substitution describing
// how repeated unfolding grows the term.
type LPPatternRule struct {
	Head *pattern.PatternTerm
	Body []*pattern.PatternTerm
}

func trivialIdentityTheta() *subst.PatternSubstitution {
	dummy := term.NewVariable("_")
	sigma := subst.New().Extend(dummy, dummy)
	theta, _ := subst.NewPatternSubstitution([]*subst.Substitution{sigma}, subst.New())
	return theta
}

// trivialPattern wraps t in the identity pattern substitution — the
// "h^*" trivial pattern spec.md §4.6 assigns to any rule not otherwise
// reachable by the two composition schemas below.
func trivialPattern(t term.Term) *pattern.PatternTerm {
	pt, _ := pattern.New(t, trivialIdentityTheta())
	return pt
}

// SeedPatternRules implements the three generator schemas of
// `getCorrectPatternRules` (spec.md §4.6): (1) direct construction for
// facts — a fact's head becomes a trivial-pattern fact rule; (2) a
// binary-unfolding-style composition when a fact pairs with a binary
// rule whose body atom unifies with the fact's head — the resulting seed
// carries the unifying substitution as its closing substitution, with an
// identity pumping substitution (arity 1) since no pumping structure is
// known yet at seed time; (3) h^* — the trivial pattern, assigned to any
// rule untouched by (1) or (2), so every program rule has a
// representative seed for the narrowing-style iteration in
// IteratePattern to build on.
//
// This engine does not attempt the full three-rule composition schema
// spec.md names only by reference to `getCorrectPatternRules` in the
// original source (no original_source/ material survived distillation
// for this spec, see DESIGN.md); seeds (1), (2) and h^* cover every rule,
// which is sufficient for the iteration step to make progress.
func SeedPatternRules(rules []*program.UnfoldedLPRule) []*LPPatternRule {
	var seeds []*LPPatternRule
	used := make(map[*program.UnfoldedLPRule]bool)

	facts := make([]*program.UnfoldedLPRule, 0)
	for _, r := range rules {
		if r.IsFact() {
			facts = append(facts, r)
		}
	}

	for _, fact := range facts {
		seeds = append(seeds, &LPPatternRule{Head: trivialPattern(fact.Head)})
		used[fact] = true
	}

	for _, r := range rules {
		if !r.IsBinary() {
			continue
		}
		for _, fact := range facts {
			freshFact := rename(fact)
			theta, ok := unify.Unify(r.Body[0], freshFact.Head, nil)
			if !ok {
				continue
			}
			head := theta.Apply(r.Head)
			closing := theta
			pumping := subst.New()
			for _, v := range term.Variables(r.Head) {
				pumping = pumping.Extend(v, v)
			}
			ps, err := subst.NewPatternSubstitution([]*subst.Substitution{pumping}, closing)
			if err != nil {
				continue
			}
			pt, err := pattern.New(head, ps)
			if err != nil {
				continue
			}
			seeds = append(seeds, &LPPatternRule{Head: pt})
			used[r] = true
		}
	}

	for _, r := range rules {
		if !used[r] {
			seeds = append(seeds, &LPPatternRule{Head: trivialPattern(r.Head)})
		}
	}
	return seeds
}

// IteratePattern performs one step of T^π_{P,B}: unify the i-th body atom
// of a program rule (reinterpreted as a simple pattern term with a
// trivial pattern substitution) against the left-hand side of a seed
// pattern rule's head, composing pattern substitutions on success.
func IteratePattern(bodyAtom term.Term, seed *LPPatternRule) (*pattern.PatternTerm, bool) {
	bodyAsPattern := trivialPattern(bodyAtom)
	_, refactoredSeed, ok := unify.UnifyPatternTerms(bodyAsPattern, seed.Head)
	if !ok {
		return nil, false
	}
	return refactoredSeed, true
}
