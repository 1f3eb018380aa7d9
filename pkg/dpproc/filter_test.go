package dpproc

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/term"
)

func TestArgumentFilterCollapsesSinglePosition(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 2)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	fxy, _ := term.NewCompound(f, x, y)

	af := ArgumentFilter{f: {true, false}}
	got := af.Apply(fxy)
	if got != term.Term(x) {
		t.Errorf("expected projection filter to collapse f(x,y) to x, got %v", got)
	}
}

func TestArgumentFilterKeepsMarkedPositions(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 3)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	z := term.NewVariable("z")
	fxyz, _ := term.NewCompound(f, x, y, z)

	af := ArgumentFilter{f: {true, false, true}}
	got, ok := af.Apply(fxyz).(*term.Compound)
	if !ok || len(got.Args) != 2 {
		t.Fatalf("expected a 2-argument compound, got %v", got)
	}
	if got.Args[0] != term.Term(x) || got.Args[1] != term.Term(z) {
		t.Errorf("expected kept args [x, z], got %v", got.Args)
	}
}

func TestEnumerateFiltersRespectsCap(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 16)
	filters, truncated := EnumerateFilters([]*term.Symbol{f})
	if len(filters) > argFilterInstantiationCap {
		t.Errorf("got %d filters, exceeds cap %d", len(filters), argFilterInstantiationCap)
	}
	if !truncated {
		t.Error("expected a 16-ary symbol's 65536 filterings to be truncated by the cap")
	}
}

func TestEnumerateFiltersNotTruncatedForSmallSignature(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 2)
	filters, truncated := EnumerateFilters([]*term.Symbol{f})
	if truncated {
		t.Error("expected a small signature's filterings not to hit the cap")
	}
	if len(filters) != 4 {
		t.Errorf("expected 2^2 = 4 filterings, got %d", len(filters))
	}
}
