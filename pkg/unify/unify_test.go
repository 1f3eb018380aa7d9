package unify

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/term"
)

func TestUnifyBindsVariableToTerm(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	x := term.NewVariable("x")

	theta, ok := Unify(x, atom, nil)
	if !ok {
		t.Fatal("expected unification to succeed")
	}
	if got := theta.Apply(x); !term.DeepEquals(got, atom) {
		t.Errorf("theta.Apply(x) = %v, want %v", got, atom)
	}
}

func TestUnifyRecursesIntoCompound(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 2)
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	x := term.NewVariable("x")
	y := term.NewVariable("y")

	s1, _ := term.NewCompound(f, x, atom)
	s2, _ := term.NewCompound(f, atom, y)

	theta, ok := Unify(s1, s2, nil)
	if !ok {
		t.Fatal("expected f(x,a) and f(a,y) to unify")
	}
	if got := theta.Apply(x); !term.DeepEquals(got, atom) {
		t.Errorf("x should unify to a, got %v", got)
	}
	if got := theta.Apply(y); !term.DeepEquals(got, atom) {
		t.Errorf("y should unify to a, got %v", got)
	}
}

func TestUnifyFailsOnSymbolClash(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 0)
	b := r.Function("b", 0)
	atomA, _ := term.NewCompound(a)
	atomB, _ := term.NewCompound(b)

	if _, ok := Unify(atomA, atomB, nil); ok {
		t.Error("expected a and b to fail to unify")
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	fx, _ := term.NewCompound(f, x)

	if _, ok := Unify(x, fx, nil); ok {
		t.Error("expected occurs check to reject x = f(x)")
	}
}

func TestUnifySoundness(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 2)
	g := r.Function("g", 1)
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	gy, _ := term.NewCompound(g, y)

	s1, _ := term.NewCompound(f, x, atom)
	s2, _ := term.NewCompound(f, gy, y)

	theta, ok := Unify(s1, s2, nil)
	if !ok {
		t.Fatal("expected unification to succeed")
	}
	if !term.DeepEquals(theta.Apply(s1), theta.Apply(s2)) {
		t.Error("unification soundness violated: apply(theta,s1) != apply(theta,s2)")
	}
}

func TestMatchDoesNotBindTargetVariables(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	fy, _ := term.NewCompound(f, y)

	theta, ok := Match(x, fy, nil)
	if !ok {
		t.Fatal("expected x to match f(y)")
	}
	if got := theta.Apply(x); !term.DeepEquals(got, fy) {
		t.Errorf("x should match to f(y), got %v", got)
	}

	if _, ok := Match(fy, x, nil); ok {
		t.Error("f(y) should not match a rigid variable target")
	}
}
