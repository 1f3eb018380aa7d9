package unfold

import (
	"testing"

	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
)

func TestShallowLeftUnifyDetectsSelfEmbeddingRule(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 2)
	x := term.NewVariable("x")
	y := term.NewVariable("y")
	left, _ := term.NewCompound(f, x, y)
	right, _ := term.NewCompound(f, y, x)

	rule := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: left, Right: right}}
	if !ShallowLeftUnify(rule) {
		t.Error("expected f(x,y) -> f(y,x) to be detected as self-embedding via shallow left-unify")
	}
}

func TestElimRejectsWhenDepthExceeded(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	rule := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: atom, Right: atom}, Iteration: 10}
	triple := program.NewUnitTriple(rule, nil)

	noEmbed := func(a, b term.Term) bool { return false }
	alwaysConnectable := func(a, b term.Term) bool { return true }

	if Elim(triple, 5, noEmbed, alwaysConnectable) {
		t.Error("expected Elim to reject a triple whose depth exceeds maxDepth")
	}
	if !Elim(triple, 20, noEmbed, alwaysConnectable) {
		t.Error("expected Elim to accept a triple within maxDepth when not embedded and connectable")
	}
}

func TestNonTerminationTestFallsBackToRecurrentPair(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	fa, _ := term.NewCompound(f, atom)

	n := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: fa, Right: atom}}
	nPrime := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: atom, Right: fa}}
	triple := program.NewComposedTriple(n, nPrime, nil)

	called := false
	recurrent := func(n, nPrime *program.UnfoldedTRSRule) bool {
		called = true
		return true
	}

	if !NonTerminationTest(triple, recurrent) {
		t.Error("expected NonTerminationTest to succeed via the recurrent-pair fallback")
	}
	if !called {
		t.Error("expected the recurrent-pair test to be invoked since ShallowLeftUnify fails here")
	}
}

func TestForwardUnfoldNarrowsDisagreementPosition(t *testing.T) {
	// a(x) -> b(x), with a companion rule b(x) -> a(x): the only
	// disagreement position is the root, so the F-operator should narrow
	// b(x) against the companion's left-hand side and produce a(x) -> a(x).
	r := term.NewRegistry()
	a := r.Function("a", 1)
	b := r.Function("b", 1)
	x := term.NewVariable("x")
	ax, _ := term.NewCompound(a, x)
	bx, _ := term.NewCompound(b, x)

	rule := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: ax, Right: bx}}
	companion := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: bx, Right: ax}}
	triple := program.NewUnitTriple(rule, nil)

	successors := ForwardUnfold(triple, []*program.UnfoldedTRSRule{companion}, 1, false)
	if len(successors) == 0 {
		t.Fatal("expected at least one successor triple from narrowing b(x) via the companion rule")
	}
	found := false
	for _, s := range successors {
		if ShallowLeftUnify(s.N) {
			found = true
		}
	}
	if !found {
		t.Error("expected a successor triple whose rule self-unifies after narrowing")
	}
}

func TestBackwardUnfoldNarrowsLeftHandSide(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 1)
	b := r.Function("b", 1)
	x := term.NewVariable("x")
	ax, _ := term.NewCompound(a, x)
	bx, _ := term.NewCompound(b, x)

	// b(x) -> a(x), with a companion rule a(x) -> b(x): narrowing the left
	// side b(x) via the companion's right-hand side should yield a(x) -> a(x).
	rule := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: bx, Right: ax}}
	companion := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: ax, Right: bx}}
	triple := program.NewUnitTriple(rule, nil)

	successors := BackwardUnfold(triple, []*program.UnfoldedTRSRule{companion}, 1, false)
	if len(successors) == 0 {
		t.Fatal("expected at least one successor triple from narrowing b(x) via the companion rule")
	}
	found := false
	for _, s := range successors {
		if ShallowLeftUnify(s.N) {
			found = true
		}
	}
	if !found {
		t.Error("expected a successor triple whose rule self-unifies after narrowing")
	}
}

func TestForwardUnfoldSkipsNonUnitTriples(t *testing.T) {
	r := term.NewRegistry()
	a := r.Function("a", 0)
	atom, _ := term.NewCompound(a)
	n := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: atom, Right: atom}}
	transitory := program.NewTransitoryTriple(n, []*program.UnfoldedTRSRule{n}, nil)

	if out := ForwardUnfold(transitory, nil, 1, false); out != nil {
		t.Errorf("expected ForwardUnfold to return nil for a non-unit triple, got %v", out)
	}
	if out := BackwardUnfold(transitory, nil, 1, false); out != nil {
		t.Errorf("expected BackwardUnfold to return nil for a non-unit triple, got %v", out)
	}
}

func TestExpandTransitoryCollapsesSimpleCycle(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	fx, _ := term.NewCompound(f, x)

	n := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: fx, Right: fx}}
	other := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: fx, Right: fx}}
	simpleL := []*program.UnfoldedTRSRule{n}
	transitory := program.NewTransitoryTriple(n, []*program.UnfoldedTRSRule{n, other}, simpleL)

	out := ExpandTransitory(transitory)
	if len(out) != 1 || out[0].Kind != program.KindUnit {
		t.Fatalf("expected a single unit triple when N is already a simple cycle, got %v", out)
	}
	if out[0].N != n {
		t.Errorf("expected the collapsed unit triple to retain N, got %v", out[0].N)
	}
}

func TestExpandTransitoryFansOutComposedTriples(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	g := r.Function("g", 1)
	x := term.NewVariable("x")
	fx, _ := term.NewCompound(f, x)
	gx, _ := term.NewCompound(g, x)

	n := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: fx, Right: gx}}
	nPrime := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: gx, Right: fx}}
	transitory := program.NewTransitoryTriple(n, []*program.UnfoldedTRSRule{n, nPrime}, nil)

	out := ExpandTransitory(transitory)
	if len(out) != 1 || out[0].Kind != program.KindComposed {
		t.Fatalf("expected one composed triple pairing N with its SCC companion, got %v", out)
	}
	if out[0].N != n || out[0].NPrime != nPrime {
		t.Errorf("expected the composed triple to pair N with N', got N=%v N'=%v", out[0].N, out[0].NPrime)
	}
}

func TestExpandTransitoryCollapsesWhenSCCHasNoCompanion(t *testing.T) {
	r := term.NewRegistry()
	f := r.Function("f", 1)
	x := term.NewVariable("x")
	fx, _ := term.NewCompound(f, x)

	n := &program.UnfoldedTRSRule{TRSRule: program.TRSRule{Left: fx, Right: fx}}
	transitory := program.NewTransitoryTriple(n, []*program.UnfoldedTRSRule{n}, nil)

	out := ExpandTransitory(transitory)
	if len(out) != 1 || out[0].Kind != program.KindUnit {
		t.Fatalf("expected a single unit triple when the SCC has no other rule to pair with, got %v", out)
	}
}
