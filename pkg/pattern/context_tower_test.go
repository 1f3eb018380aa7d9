package pattern

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/term"
)

func TestTowerOfContexts(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	hole := term.NewVariable("x")
	c, err := term.NewCompound(f, hole)
	if err != nil {
		t.Fatal(err)
	}

	a := r.Function("a", 0)
	base, _ := term.NewCompound(a)

	s := base
	for i := 0; i < 4; i++ {
		s, _ = term.NewCompound(f, s)
	}

	k, ok := TowerOfContexts(s, c, hole, base)
	if !ok || k != 4 {
		t.Errorf("TowerOfContexts = (%d, %v), want (4, true)", k, ok)
	}

	k0, ok0 := TowerOfContexts(base, c, hole, base)
	if !ok0 || k0 != 0 {
		t.Errorf("TowerOfContexts(base,...) = (%d, %v), want (0, true)", k0, ok0)
	}

	g := r.Function("g", 0)
	unrelated, _ := term.NewCompound(g)
	if _, ok := TowerOfContexts(unrelated, c, hole, base); ok {
		t.Error("expected no tower relation between unrelated terms")
	}
}

func TestApplyContext(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	hole := term.NewVariable("x")
	c, _ := term.NewCompound(f, hole)

	a := r.Function("a", 0)
	arg, _ := term.NewCompound(a)

	got := ApplyContext(c, hole, arg)
	want, _ := term.NewCompound(f, arg)
	if !term.DeepEquals(got, want) {
		t.Errorf("ApplyContext = %v, want %v", got, want)
	}
}
