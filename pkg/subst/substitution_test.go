package subst

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/term"
)

func TestExtendAndWalk(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	y := term.NewVariable("y")

	s := New().Extend(x, y)
	fy, _ := term.NewCompound(f, y)
	s = s.Extend(y, fy)

	if got := s.Walk(x); got != fy {
		t.Errorf("Walk(x) = %v, want %v", got, fy)
	}
}

func TestApplyRecursesIntoCompoundAndHatApp(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	fx, _ := term.NewCompound(f, x)
	hat, err := r.Hat(fx, x)
	if err != nil {
		t.Fatal(err)
	}

	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	hatApp, err := term.NewHatApp(hat, []int{1}, 0, atom)
	if err != nil {
		t.Fatal(err)
	}

	g := r.Function("g", 1)
	y := term.NewVariable("y")
	wrapped, _ := term.NewCompound(g, y)

	s := New().Extend(y, hatApp)
	applied := s.Apply(wrapped)

	gc, ok := applied.(*term.Compound)
	if !ok || gc.Sym != g {
		t.Fatalf("expected g(...) compound, got %v", applied)
	}
	if _, ok := gc.Args[0].(*term.HatApp); !ok {
		t.Errorf("expected hat application to survive Apply, got %T", gc.Args[0])
	}
}

func TestComposeMatchesSequentialApplication(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	z := term.NewVariable("z")

	s1 := New().Extend(x, y)
	fz, _ := term.NewCompound(f, z)
	s2 := New().Extend(y, fz)

	composed := s1.Compose(s2)
	if got := composed.Apply(x); !term.DeepEquals(got, fz) {
		t.Errorf("compose(s1,s2)(x) = %v, want %v", got, fz)
	}
	if got := s2.Apply(s1.Apply(x)); !term.DeepEquals(got, composed.Apply(x)) {
		t.Error("Compose must agree with sequential application")
	}
}

func TestUnionWithDetectsConflict(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 0)
	b := r.Function("b", 0)
	atomA, _ := term.NewCompound(a)
	atomB, _ := term.NewCompound(b)
	x := term.NewVariable("x")

	s1 := New().Extend(x, atomA)
	s2 := New().Extend(x, atomB)

	if _, err := s1.UnionWith(s2); err == nil {
		t.Error("expected ErrIncompatible for conflicting bindings")
	}

	s3 := New().Extend(x, atomA)
	union, err := s1.UnionWith(s3)
	if err != nil {
		t.Fatalf("unexpected error unioning compatible substitutions: %v", err)
	}
	if got := union.Apply(x); !term.DeepEquals(got, atomA) {
		t.Errorf("union.Apply(x) = %v, want %v", got, atomA)
	}
}

func TestCommutesWith(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	x := term.NewVariable("x")
	y := term.NewVariable("y")

	disjoint1 := New().Extend(x, atom)
	disjoint2 := New().Extend(y, atom)
	if !disjoint1.CommutesWith(disjoint2) {
		t.Error("substitutions on disjoint domains must commute")
	}

	f := r.Function("f", 1)
	fx, _ := term.NewCompound(f, x)
	s1 := New().Extend(x, y)
	s2 := New().Extend(y, fx)
	if s1.CommutesWith(s2) {
		t.Error("s1(s2(x)) should differ from s2(s1(x)) here")
	}
}

func TestIsMoreGeneralThan(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	fatom, _ := term.NewCompound(f, atom)

	general := New().Extend(x, y)
	specific := New().Extend(x, fatom)

	rho, ok := general.IsMoreGeneralThan(specific, nil)
	if !ok {
		t.Fatal("expected {x->y} to be more general than {x->f(a)}")
	}
	if got := rho.Apply(y); !term.DeepEquals(got, fatom) {
		t.Errorf("witness substitution maps y to %v, want %v", got, fatom)
	}

	if _, ok := specific.IsMoreGeneralThan(general, nil); ok {
		t.Error("{x->f(a)} should not be more general than {x->y}")
	}
}

func TestRenameWith(t *testing.T) {
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	xPrime := term.NewVariable("x'")

	s := New().Extend(x, y)
	rho := New().Extend(x, xPrime)

	renamed := s.RenameWith(rho)
	if got := renamed.Lookup(xPrime); got != y {
		t.Errorf("renamed substitution should bind x' to y, got %v", got)
	}
}

func TestStringIsDeterministic(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	x := term.NewVariable("x")

	s := New().Extend(x, atom)
	if s.String() != s.Clone().String() {
		t.Error("String() should be stable across Clone()")
	}
	if New().String() != "{}" {
		t.Error("empty substitution should render as {}")
	}
}
