package unfold

import (
	"context"
	"testing"

	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
)

func TestUnfoldLPStepResolvesFactAndShortensBody(t *testing.T) {
	r := term.NewRegistry()
	p := r.Function("p", 1)
	q := r.Function("q", 1)
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	factHead, _ := term.NewCompound(q, atom)
	fact := &program.UnfoldedLPRule{LPRule: program.LPRule{Head: factHead}}

	x := term.NewVariable("x")
	qx, _ := term.NewCompound(q, x)
	px, _ := term.NewCompound(p, x)
	rule := &program.UnfoldedLPRule{LPRule: program.LPRule{Head: px, Body: []*term.Compound{qx}}, Iteration: 0}

	out := UnfoldLPStep(context.Background(), []*program.UnfoldedLPRule{rule}, []*program.UnfoldedLPRule{fact}, 1)

	foundResolved := false
	foundIdentity := false
	for _, o := range out {
		if o.Iteration != 1 {
			t.Errorf("expected every produced rule tagged iteration 1, got %d", o.Iteration)
		}
		if len(o.Body) == 0 {
			foundResolved = true
			pAtom := o.Head
			if pAtom == nil || pAtom.Sym != p {
				t.Errorf("expected resolved rule's head to remain p(...), got %v", o.Head)
			}
		}
		if len(o.Body) == 1 {
			foundIdentity = true
		}
	}
	if !foundResolved {
		t.Error("expected a resolved fact (empty body) among the produced rules")
	}
	if !foundIdentity {
		t.Error("expected the identity-tagged carry-forward rule among the produced rules")
	}
}

func TestUnfoldLPStepReturnsNilWhenFrontierHasNoBinaryRules(t *testing.T) {
	r := term.NewRegistry()
	p := r.Function("p", 0)
	head, _ := term.NewCompound(p)
	fact := &program.UnfoldedLPRule{LPRule: program.LPRule{Head: head}}

	out := UnfoldLPStep(context.Background(), []*program.UnfoldedLPRule{fact}, nil, 1)
	if out != nil {
		t.Errorf("expected nil for a frontier consisting only of facts, got %v", out)
	}
}
