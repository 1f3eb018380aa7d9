package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
)

// permuteLikeProgram builds p(cons(h,x)) :- p(x) with mode p(i), the
// classic unit-loop shape.
func permuteLikeProgram(t *testing.T) (*program.Program, *term.Symbol) {
	t.Helper()
	r := term.NewRegistry()
	p := r.Function("p", 1)
	cons := r.Function("cons", 2)
	h := term.NewVariable("h")
	x := term.NewVariable("x")
	consHX, _ := term.NewCompound(cons, h, x)
	head, _ := term.NewCompound(p, consHX)
	body, _ := term.NewCompound(p, x)

	mode, err := program.ParseMode("i")
	if err != nil {
		t.Fatal(err)
	}
	prog := program.NewBuilder(r).
		AddLPRule(head, body).
		SetMode(p, mode).
		Build()
	return prog, p
}

func TestProveLPBinaryFindsUnitLoop(t *testing.T) {
	c := testCoordinator(2 * time.Second)
	defer c.Close()

	prog, p := permuteLikeProgram(t)
	mode := prog.Modes[p]

	got := c.proveLPBinary(context.Background(), prog, p, mode)
	if got.Kind != ResultNo {
		t.Fatalf("got %v, want ResultNo", got.Kind)
	}
	if got.Witness == nil || got.Witness.Sym != p {
		t.Errorf("expected a witness rooted at p, got %v", got.Witness)
	}
}

func TestProveLPDispatchesThroughCoordinator(t *testing.T) {
	c := testCoordinator(2 * time.Second)
	defer c.Close()

	prog, p := permuteLikeProgram(t)
	got := c.Prove(context.Background(), prog, p)
	if got.Kind != ResultNo {
		t.Fatalf("got %v, want ResultNo", got.Kind)
	}
}

func TestProveLPBinaryRespectsIterationCap(t *testing.T) {
	c := testCoordinator(2 * time.Second)
	c.Config.MaxIterations = 1
	defer c.Close()

	r := term.NewRegistry()
	p := r.Function("p", 0)
	head, _ := term.NewCompound(p)
	mode, err := program.ParseMode("")
	if err != nil {
		t.Fatal(err)
	}
	// A single fact with no recursive structure at all: no binary rule
	// ever enters the pool, so every iteration's witness search fails and
	// unfolding a fact set yields nothing new.
	prog := program.NewBuilder(r).AddLPRule(head).SetMode(p, mode).Build()

	got := c.proveLPBinary(context.Background(), prog, p, mode)
	if got.Kind != ResultMaybe {
		t.Fatalf("got %v, want ResultMaybe for a non-recursive fact", got.Kind)
	}
}

func TestProveLPNoModeIsError(t *testing.T) {
	c := testCoordinator(time.Second)
	defer c.Close()

	r := term.NewRegistry()
	q := r.Function("q", 1)
	prog := program.NewBuilder(r).Build()

	got := c.Prove(context.Background(), prog, q)
	if got.Kind != ResultError {
		t.Fatalf("got %v, want ResultError for an undeclared mode", got.Kind)
	}
}
