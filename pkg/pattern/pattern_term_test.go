package pattern

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
)

func TestInstantiateThroughPatternTerm(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	fx, _ := term.NewCompound(f, x)
	sigma := subst.New().Extend(x, fx)

	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	mu := subst.New().Extend(x, atom)

	theta, err := subst.NewPatternSubstitution([]*subst.Substitution{sigma}, mu)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := New(x, theta)
	if err != nil {
		t.Fatal(err)
	}

	got, err := pt.Instantiate([]int{2})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := term.NewCompound(f, atom)
	want, _ = term.NewCompound(f, want)
	if !term.DeepEquals(got, want) {
		t.Errorf("Instantiate([2]) = %v, want %v", got, want)
	}
}

func TestNewSimpleRejectsNonCommutingSubstitutions(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	fx, _ := term.NewCompound(f, x)

	sigma1 := subst.New().Extend(x, y)
	sigma2 := subst.New().Extend(y, fx)
	theta, err := subst.NewPatternSubstitution([]*subst.Substitution{sigma1, sigma2}, subst.New().Extend(x, y))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewSimple(x, theta); err != ErrUnconstructible {
		t.Errorf("expected ErrUnconstructible, got %v", err)
	}
}

func TestNewSimpleAcceptsPlainBindings(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	x := term.NewVariable("x")
	y := term.NewVariable("y")

	sigma := subst.New().Extend(x, atom)
	mu := subst.New().Extend(y, atom)
	theta, err := subst.NewPatternSubstitution([]*subst.Substitution{sigma}, mu)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewSimple(x, theta); err != nil {
		t.Errorf("expected a constructible SimplePatternTerm, got %v", err)
	}
}
