package term

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Term is the common interface of every node in the term model: plain
// variables, compound function applications, hat-function applications,
// and transient holes used while synthesizing contexts.
type Term interface {
	// String returns a human-readable representation of the term.
	String() string
	// IsGround reports whether the term contains no variables.
	IsGround() bool
}

var varCounter int64

// Variable is a logic variable. Two variables are equal iff they are the
// same object (pointer identity) — there is no value-based equality for
// variables, matching spec.md's data model.
type Variable struct {
	id   int64
	name string
}

// NewVariable allocates a fresh variable with a monotonically increasing
// id. The name is cosmetic, used only for String().
func NewVariable(name string) *Variable {
	id := atomic.AddInt64(&varCounter, 1)
	return &Variable{id: id, name: name}
}

// ID returns the variable's unique allocation-order identifier.
func (v *Variable) ID() int64 { return v.id }

func (v *Variable) String() string {
	if v.name != "" {
		return fmt.Sprintf("%s_%d", v.name, v.id)
	}
	return fmt.Sprintf("_G%d", v.id)
}

// IsGround is always false for a variable.
func (v *Variable) IsGround() bool { return false }

// Compound is f(t1,...,ta) with a == f.Arity().
type Compound struct {
	Sym  *Symbol
	Args []Term
}

// NewCompound constructs a compound term, failing (returning an error)
// only if the supplied argument count disagrees with the symbol's arity —
// a construction invariant per spec.md §7, not a runtime possibility the
// rest of the core needs to re-check.
func NewCompound(sym *Symbol, args ...Term) (*Compound, error) {
	if sym == nil {
		return nil, fmt.Errorf("term: nil symbol")
	}
	if len(args) != sym.Arity() {
		return nil, fmt.Errorf("term: %s expects %d arguments, got %d", sym, sym.Arity(), len(args))
	}
	return &Compound{Sym: sym, Args: args}, nil
}

func (c *Compound) String() string {
	if len(c.Args) == 0 {
		return c.Sym.Name()
	}
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Sym.Name(), strings.Join(parts, ","))
}

// IsGround reports whether every argument is ground.
func (c *Compound) IsGround() bool {
	for _, a := range c.Args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

// HatApp is f^{a1,...,al,b}(t): a hat symbol application. Its arity as a
// term is always 1 (it wraps a single argument t), regardless of the
// number of exponents.
type HatApp struct {
	Sym       *Symbol
	Exponents []int // a_1,...,a_l ; each > 0 per spec.md invariant 0 < l
	B         int   // the additive constant b
	Arg       Term
}

// NewHatApp constructs a hat-function application.
func NewHatApp(sym *Symbol, exponents []int, b int, arg Term) (*HatApp, error) {
	if sym == nil || sym.Kind() != KindHat {
		return nil, fmt.Errorf("term: hat application requires a hat symbol")
	}
	if len(exponents) == 0 {
		return nil, fmt.Errorf("term: hat application requires at least one exponent (0 < l)")
	}
	if b < 0 {
		return nil, fmt.Errorf("term: hat application requires b >= 0")
	}
	if arg == nil {
		return nil, fmt.Errorf("term: nil argument")
	}
	cp := make([]int, len(exponents))
	copy(cp, exponents)
	return &HatApp{Sym: sym, Exponents: cp, B: b, Arg: arg}, nil
}

func (h *HatApp) String() string {
	parts := make([]string, len(h.Exponents)+1)
	for i, a := range h.Exponents {
		parts[i] = fmt.Sprintf("%d", a)
	}
	parts[len(h.Exponents)] = fmt.Sprintf("%d", h.B)
	return fmt.Sprintf("%s^{%s}(%s)", h.Sym.Name(), strings.Join(parts, ","), h.Arg.String())
}

// IsGround reports whether the wrapped argument is ground (the exponents
// and b are naturals, always "ground").
func (h *HatApp) IsGround() bool { return h.Arg.IsGround() }

// Hole is a named, ground, childless placeholder used transiently while
// synthesizing contexts (e.g. during recurrent-pair construction).
type Hole struct {
	Name string
}

// NewHole creates a named hole.
func NewHole(name string) *Hole { return &Hole{Name: name} }

func (h *Hole) String() string   { return "[]" + h.Name }
func (h *Hole) IsGround() bool   { return true }

// DeepEquals is structural equality: recursive by root symbol and
// children, using reference equality on variables. A DeepCopy of a term
// with variables is therefore not DeepEquals to it, only IsVariantOf it
// (testable property 2's companion).
func DeepEquals(a, b Term) bool {
	switch x := a.(type) {
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x == y
	case *Compound:
		y, ok := b.(*Compound)
		if !ok || x.Sym != y.Sym || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !DeepEquals(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *HatApp:
		y, ok := b.(*HatApp)
		if !ok || x.Sym != y.Sym || x.B != y.B || len(x.Exponents) != len(y.Exponents) {
			return false
		}
		for i := range x.Exponents {
			if x.Exponents[i] != y.Exponents[i] {
				return false
			}
		}
		return DeepEquals(x.Arg, y.Arg)
	case *Hole:
		y, ok := b.(*Hole)
		return ok && x.Name == y.Name
	default:
		return false
	}
}

// DeepCopy produces a fresh, share-free copy of t: every distinct source
// variable receives a fresh, distinct target variable (testable property
// 2). The copies map threads variable identity across the whole call so
// that two occurrences of the same source variable map to the same fresh
// variable.
func DeepCopy(t Term, copies map[*Variable]*Variable) Term {
	switch n := t.(type) {
	case *Variable:
		if fresh, ok := copies[n]; ok {
			return fresh
		}
		fresh := NewVariable(n.name)
		copies[n] = fresh
		return fresh
	case *Compound:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = DeepCopy(a, copies)
		}
		return &Compound{Sym: n.Sym, Args: args}
	case *HatApp:
		exps := make([]int, len(n.Exponents))
		copy(exps, n.Exponents)
		return &HatApp{Sym: n.Sym, Exponents: exps, B: n.B, Arg: DeepCopy(n.Arg, copies)}
	case *Hole:
		return &Hole{Name: n.Name}
	default:
		return t
	}
}

// Variables returns the set of distinct variables occurring in t, in
// first-occurrence order.
func Variables(t Term) []*Variable {
	seen := make(map[*Variable]bool)
	var out []*Variable
	var walk func(Term)
	walk = func(t Term) {
		switch n := t.(type) {
		case *Variable:
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		case *Compound:
			for _, a := range n.Args {
				walk(a)
			}
		case *HatApp:
			walk(n.Arg)
		}
	}
	walk(t)
	return out
}

// Depth returns the term's depth: 0 for a variable/hole/constant, else
// 1 + max depth of children.
func Depth(t Term) int {
	switch n := t.(type) {
	case *Compound:
		if len(n.Args) == 0 {
			return 0
		}
		max := 0
		for _, a := range n.Args {
			if d := Depth(a); d > max {
				max = d
			}
		}
		return 1 + max
	case *HatApp:
		return 1 + Depth(n.Arg)
	default:
		return 0
	}
}

// MaxArity returns the maximum arity of any function symbol occurring in t.
func MaxArity(t Term) int {
	switch n := t.(type) {
	case *Compound:
		max := len(n.Args)
		for _, a := range n.Args {
			if m := MaxArity(a); m > max {
				max = m
			}
		}
		return max
	case *HatApp:
		return MaxArity(n.Arg)
	default:
		return 0
	}
}

// IsVariantOf reports whether a and b are identical up to a
// variable-to-variable renaming bijection.
func IsVariantOf(a, b Term) bool {
	forward := make(map[*Variable]*Variable)
	backward := make(map[*Variable]*Variable)
	return variantWalk(a, b, forward, backward)
}

func variantWalk(a, b Term, forward, backward map[*Variable]*Variable) bool {
	switch x := a.(type) {
	case *Variable:
		y, ok := b.(*Variable)
		if !ok {
			return false
		}
		if mapped, ok := forward[x]; ok {
			return mapped == y
		}
		if _, taken := backward[y]; taken {
			return false
		}
		forward[x] = y
		backward[y] = x
		return true
	case *Compound:
		y, ok := b.(*Compound)
		if !ok || x.Sym != y.Sym || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !variantWalk(x.Args[i], y.Args[i], forward, backward) {
				return false
			}
		}
		return true
	case *HatApp:
		y, ok := b.(*HatApp)
		if !ok || x.Sym != y.Sym || x.B != y.B || len(x.Exponents) != len(y.Exponents) {
			return false
		}
		for i := range x.Exponents {
			if x.Exponents[i] != y.Exponents[i] {
				return false
			}
		}
		return variantWalk(x.Arg, y.Arg, forward, backward)
	default:
		return DeepEquals(a, b)
	}
}
