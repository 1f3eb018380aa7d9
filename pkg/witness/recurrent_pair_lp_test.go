package witness

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
)

func TestNewRecurrentPairLpRequiresAtLeastTwoRules(t *testing.T) {
	r, rule := permuteLikeRule(t)
	if _, ok := NewRecurrentPairLp(r, []*program.UnfoldedLPRule{rule}); ok {
		t.Error("expected a single-rule sequence to be rejected (use LoopingPair instead)")
	}
}

func TestNewRecurrentPairLpAcceptsCyclicChain(t *testing.T) {
	r := term.NewRegistry()
	p := r.Function("p", 1)
	q := r.Function("q", 1)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	qx, _ := term.NewCompound(q, x)
	px, _ := term.NewCompound(p, x)
	py, _ := term.NewCompound(p, y)
	qy, _ := term.NewCompound(q, y)

	r1 := &program.UnfoldedLPRule{LPRule: program.LPRule{Head: px, Body: []*term.Compound{qx}}}
	r2 := &program.UnfoldedLPRule{LPRule: program.LPRule{Head: qy, Body: []*term.Compound{py}}}

	rp, ok := NewRecurrentPairLp(r, []*program.UnfoldedLPRule{r1, r2})
	if !ok {
		t.Fatal("expected the p->q->p cycle to form a recurrent pair")
	}
	mode, err := program.ParseMode("i")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rp.ProvesNonTerminationOf(mode); !ok {
		t.Error("expected ProvesNonTerminationOf to succeed for a matching-arity mode")
	}
}
