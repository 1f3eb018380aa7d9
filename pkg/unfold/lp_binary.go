// Package unfold implements the unfolding operators of spec.md §4.6: LP
// binary unfolding (T^β), LP pattern unfolding (T^π), TRS dependency-pair
// triple unfolding (unit/transitory/composed), and EEG'12 narrowing for
// TRS pattern rules. Grounded on the teacher's resolution-style Goal
// composition (pkg/minikanren's conjunction/disjunction combinators),
// generalized from miniKanren's relational composition to SLD-style
// clause resolution over program.LPRule/TRSRule.
package unfold

import (
	"context"

	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
	"github.com/gitrdm/ntprove/pkg/unify"
)

// rename returns a deep copy of an LP rule using a fresh variable
// namespace, so resolving against it never captures the caller's
// variables.
func rename(r *program.UnfoldedLPRule) *program.UnfoldedLPRule {
	copies := make(map[*term.Variable]*term.Variable)
	head := term.DeepCopy(r.Head, copies).(*term.Compound)
	body := make([]*term.Compound, len(r.Body))
	for i, b := range r.Body {
		body[i] = term.DeepCopy(b, copies).(*term.Compound)
	}
	return &program.UnfoldedLPRule{LPRule: program.LPRule{Head: head, Body: body}}
}

func applyToCompound(s *subst.Substitution, c *term.Compound) *term.Compound {
	applied := s.Apply(c)
	if cc, ok := applied.(*term.Compound); ok {
		return cc
	}
	return c
}

// UnfoldLPStep performs one iteration of T^β (spec.md §4.6's LP binary
// unfolding): for every rule in frontier (tagged iteration-1) and every
// way to resolve its leftmost body atom against a rule of programRules
// (renamed fresh) — including the identity option of simply re-tagging
// the rule unchanged — it emits new rules tagged iteration. Resolving
// against a fact (empty body) shortens the body by one atom; resolving
// against a binary rule replaces the atom with the renamed rule's body.
// Returns nil if no rule can be produced (signaling universal
// termination to the caller, per spec.md §4.6).
func UnfoldLPStep(ctx context.Context, frontier, programRules []*program.UnfoldedLPRule, iteration int) []*program.UnfoldedLPRule {
	var out []*program.UnfoldedLPRule
	for _, r := range frontier {
		select {
		case <-ctx.Done():
			return out
		default:
		}

		if len(r.Body) == 0 {
			continue
		}

		// Identity: carry the rule forward unchanged at the new iteration.
		out = append(out, &program.UnfoldedLPRule{
			LPRule:    r.LPRule,
			Iteration: iteration,
			Parent:    r,
		})

		selected := r.Body[0]
		rest := r.Body[1:]

		for _, p := range programRules {
			fresh := rename(p)
			theta, ok := unify.Unify(selected, fresh.Head, nil)
			if !ok {
				continue
			}
			newHead := applyToCompound(theta, r.Head)
			newBody := make([]*term.Compound, 0, len(rest)+len(fresh.Body))
			for _, c := range fresh.Body {
				newBody = append(newBody, applyToCompound(theta, c))
			}
			for _, c := range rest {
				newBody = append(newBody, applyToCompound(theta, c))
			}
			out = append(out, &program.UnfoldedLPRule{
				LPRule:    program.LPRule{Head: newHead, Body: newBody},
				Iteration: iteration,
				Parent:    r,
			})
		}
	}
	return out
}
