package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
)

// TestProveLPPermuteDeleteFindsUnitLoop builds the classic permute/delete
// program:
//
//	delete(X, [X|T], T).
//	delete(X, [H|T], [H|T1]) :- delete(X, T, T1).
//	permute([], []).
//	permute([H|T], L2) :- delete(H, L2, L3), permute(T, L3).
//
// Resolving permute's leftmost body atom against delete's fact (the base
// case) at the first unfolding step shortens the body to a single atom:
// permute([H|T], [H|T1]) :- permute(T, T1), a unit loop headed by
// permute. proveLPBinary's pool-and-search loop should find it on its
// second iteration, the first search after that unfolding step.
func TestProveLPPermuteDeleteFindsUnitLoop(t *testing.T) {
	r := term.NewRegistry()
	deleteSym := r.Function("delete", 3)
	permute := r.Function("permute", 2)
	cons := r.Function("cons", 2)
	nilSym := r.Function("nil", 0)

	x := term.NewVariable("x")
	h := term.NewVariable("h")
	tl := term.NewVariable("t")
	t1 := term.NewVariable("t1")

	// delete(X, cons(X,T), T).
	consXT, _ := term.NewCompound(cons, x, tl)
	deleteFactHead, _ := term.NewCompound(deleteSym, x, consXT, tl)

	// delete(X, cons(H,T), cons(H,T1)) :- delete(X, T, T1).
	consHT, _ := term.NewCompound(cons, h, tl)
	consHT1, _ := term.NewCompound(cons, h, t1)
	deleteRuleHead, _ := term.NewCompound(deleteSym, x, consHT, consHT1)
	deleteRuleBody, _ := term.NewCompound(deleteSym, x, tl, t1)

	// permute(nil, nil).
	nilTerm, _ := term.NewCompound(nilSym)
	permuteFactHead, _ := term.NewCompound(permute, nilTerm, nilTerm)

	// permute(cons(H,T), L2) :- delete(H, L2, L3), permute(T, L3).
	h2 := term.NewVariable("h")
	t2 := term.NewVariable("t")
	l2 := term.NewVariable("l2")
	l3 := term.NewVariable("l3")
	consH2T2, _ := term.NewCompound(cons, h2, t2)
	permuteRuleHead, _ := term.NewCompound(permute, consH2T2, l2)
	deleteCall, _ := term.NewCompound(deleteSym, h2, l2, l3)
	permuteCall, _ := term.NewCompound(permute, t2, l3)

	mode, err := program.ParseMode("oi")
	if err != nil {
		t.Fatal(err)
	}

	prog := program.NewBuilder(r).
		AddLPRule(deleteFactHead).
		AddLPRule(deleteRuleHead, deleteRuleBody).
		AddLPRule(permuteFactHead).
		AddLPRule(permuteRuleHead, deleteCall, permuteCall).
		SetMode(permute, mode).
		Build()

	c := testCoordinator(3 * time.Second)
	defer c.Close()

	got := c.Prove(context.Background(), prog, permute)
	if got.Kind != ResultNo {
		t.Fatalf("got %v, want ResultNo", got.Kind)
	}
	if got.Witness == nil || got.Witness.Sym != permute {
		t.Errorf("expected a witness rooted at permute, got %v", got.Witness)
	}
}

// TestProveLPSameGenerationAcceptsCTIYes builds a minimal sg/2 program
// (its own rules terminate trivially; what's under test is dispatch, not
// sg/2's own shape) and drives it through the full coordinator with a
// fake cTI binary that reports YES. The binary-unfolding and
// pattern-unfolding racers both return MAYBE for this program, so the
// race should settle on cTI's YES.
func TestProveLPSameGenerationAcceptsCTIYes(t *testing.T) {
	script := "#!/bin/sh\necho 'YES'\necho 'predicate_term_condition(sg(i,o))'\n"
	path := writeFakeCTI(t, script)

	r := term.NewRegistry()
	sg := r.Function("sg", 2)
	x := term.NewVariable("x")
	sgXX, _ := term.NewCompound(sg, x, x)
	mode, err := program.ParseMode("io")
	if err != nil {
		t.Fatal(err)
	}
	prog := program.NewBuilder(r).AddLPRule(sgXX).SetMode(sg, mode).Build()

	c := testCoordinator(3 * time.Second)
	c.Config.CTIPath = path
	c.Config.FilePath = path
	defer c.Close()

	got := c.Prove(context.Background(), prog, sg)
	if got.Kind != ResultYes {
		t.Fatalf("got %v, want ResultYes via cTI", got.Kind)
	}
}
