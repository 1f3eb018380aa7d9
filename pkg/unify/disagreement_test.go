package unify

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/term"
)

func TestDisagreementPositionsFindsMismatch(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 2)
	g := r.Function("g", 1)
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	x := term.NewVariable("x")
	y := term.NewVariable("y")

	gx, _ := term.NewCompound(g, x)
	s1, _ := term.NewCompound(f, gx, atom)
	s2, _ := term.NewCompound(f, y, atom)

	positions := DisagreementPositions(s1, s2)
	if len(positions) != 1 || !positions[0].Equal(term.Position{0}) {
		t.Errorf("expected a single disagreement at position 0, got %v", positions)
	}
}

func TestDisagreementPositionsEmptyForIdenticalTerms(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	fa, _ := term.NewCompound(f, atom)

	if positions := DisagreementPositions(fa, fa); len(positions) != 0 {
		t.Errorf("expected no disagreements for identical terms, got %v", positions)
	}
}

func TestNonVariableDisagreementsOrdersNonVariableFirst(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 2)
	g := r.Function("g", 1)
	h := r.Function("h", 1)
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	x := term.NewVariable("x")
	y := term.NewVariable("y")

	gAtom, _ := term.NewCompound(g, atom)
	hAtom, _ := term.NewCompound(h, atom)
	s1, _ := term.NewCompound(f, x, gAtom)
	s2, _ := term.NewCompound(f, y, hAtom)

	positions := NonVariableDisagreements(s1, s2)
	if len(positions) != 2 {
		t.Fatalf("expected 2 disagreement positions, got %d: %v", len(positions), positions)
	}
	if !positions[0].Equal(term.Position{1}) {
		t.Errorf("expected the non-variable disagreement (position 1) to be first, got %v", positions[0])
	}
}
