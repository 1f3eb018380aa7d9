package dpproc

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/term"
)

func TestKBOGreaterByWeight(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	g := r.Function("g", 1)
	x := term.NewVariable("x")
	fx, _ := term.NewCompound(f, x)
	gx, _ := term.NewCompound(g, x)

	w := Weights{Symbol: map[*term.Symbol]int{f: 3, g: 1}, W0: 1}
	prec := Precedence{f: 1, g: 1}
	if !KBOGreater(prec, w, fx, gx) {
		t.Error("expected f(x) > g(x) when f's symbol weight dominates")
	}
	if KBOGreater(prec, w, gx, fx) {
		t.Error("expected g(x) not> f(x)")
	}
}

func TestKBOGreaterRejectsMissingVariable(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	g := r.Function("g", 1)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	fx, _ := term.NewCompound(f, x)
	gy, _ := term.NewCompound(g, y)

	w := Weights{Symbol: map[*term.Symbol]int{f: 5, g: 1}, W0: 1}
	prec := Precedence{f: 1, g: 1}
	if KBOGreater(prec, w, fx, gy) {
		t.Error("expected f(x) not> g(y): y does not occur in f(x)")
	}
}

func TestKBOGreaterFallsBackToPrecedenceOnTie(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	g := r.Function("g", 1)
	x := term.NewVariable("x")
	fx, _ := term.NewCompound(f, x)
	gx, _ := term.NewCompound(g, x)

	w := Weights{Symbol: map[*term.Symbol]int{f: 2, g: 2}, W0: 1}
	prec := Precedence{f: 2, g: 1}
	if !KBOGreater(prec, w, fx, gx) {
		t.Error("expected f(x) > g(x) on a weight tie, via precedence")
	}
}
