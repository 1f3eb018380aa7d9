// Package term implements the first-order term model shared by the logic
// program and term rewriting provers: interned function symbols, hat
// symbols encoding iterated context embedding, variables, compound terms,
// and positions.
package term

import (
	"fmt"
	"sync"
)

// Kind distinguishes the three flavors of function symbol.
type Kind int

const (
	// KindFunction is an ordinary function or constant symbol.
	KindFunction Kind = iota
	// KindTuple is the "sharped" dependency-pair variant of a function symbol.
	KindTuple
	// KindHat is a hat symbol c^{...}, carrying a ground 1-context.
	KindHat
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindTuple:
		return "tuple"
	case KindHat:
		return "hat"
	default:
		return "unknown"
	}
}

// Symbol is a function/tuple/hat symbol, uniquely interned within a
// Registry by (name, arity, kind), or by context-up-to-alpha-equivalence
// for hat symbols.
type Symbol struct {
	name  string
	arity int
	kind  Kind

	// Context and Hole are only meaningful for KindHat: c is a ground term
	// with exactly one occurrence of the hole variable Hole.
	context Term
	hole    *Variable
}

// Name returns the symbol's name.
func (s *Symbol) Name() string { return s.name }

// Arity returns the symbol's declared arity.
func (s *Symbol) Arity() int { return s.arity }

// Kind returns the symbol's kind.
func (s *Symbol) Kind() Kind { return s.kind }

// Context returns the ground 1-context of a hat symbol, or nil for other kinds.
func (s *Symbol) Context() Term { return s.context }

// Hole returns the hole variable of a hat symbol's context, or nil for other kinds.
func (s *Symbol) Hole() *Variable { return s.hole }

// String renders the symbol for diagnostics and proof traces.
func (s *Symbol) String() string {
	if s.kind == KindHat {
		return fmt.Sprintf("%s^{..}", s.name)
	}
	return fmt.Sprintf("%s/%d", s.name, s.arity)
}

type funcKey struct {
	name  string
	arity int
	kind  Kind
}

// Registry is the process-wide (or, within one proof run, thread-shared)
// symbol interner. Lookups are idempotent: two calls with the same key
// return the identical *Symbol. A single write lock guards inserts; reads
// of the resulting map take the same lock, trading a little read
// throughput for a far simpler implementation than a lock-free index —
// symbol interning is not the hot path, unification and unfolding are.
type Registry struct {
	mu        sync.Mutex
	functions map[funcKey]*Symbol
	hats      map[string]*Symbol // keyed by canonical (alpha-normalized) context string
}

// NewRegistry creates an empty symbol registry.
func NewRegistry() *Registry {
	return &Registry{
		functions: make(map[funcKey]*Symbol),
		hats:      make(map[string]*Symbol),
	}
}

// Function interns (or returns the existing) function symbol with the
// given name and arity.
func (r *Registry) Function(name string, arity int) *Symbol {
	return r.intern(funcKey{name: name, arity: arity, kind: KindFunction})
}

// Tuple interns (or returns the existing) tuple ("sharped") symbol with
// the given name and arity, used for dependency pairs.
func (r *Registry) Tuple(name string, arity int) *Symbol {
	return r.intern(funcKey{name: name, arity: arity, kind: KindTuple})
}

func (r *Registry) intern(key funcKey) *Symbol {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sym, ok := r.functions[key]; ok {
		return sym
	}
	sym := &Symbol{name: key.name, arity: key.arity, kind: key.kind}
	r.functions[key] = sym
	return sym
}

// Hat interns a hat symbol for the given ground 1-context and hole
// variable. Two hat symbols whose contexts are alpha-equivalent (equal
// after renaming the hole to a canonical placeholder) collapse to the
// same identity, per spec.md invariant 1.
func (r *Registry) Hat(context Term, hole *Variable) (*Symbol, error) {
	if context == nil || hole == nil {
		return nil, fmt.Errorf("term: hat symbol requires a non-nil context and hole")
	}
	if !containsVariable(context, hole) {
		return nil, fmt.Errorf("term: hat context does not mention its hole variable")
	}

	canon := canonicalizeContext(context, hole)

	r.mu.Lock()
	defer r.mu.Unlock()

	if sym, ok := r.hats[canon]; ok {
		return sym, nil
	}
	sym := &Symbol{name: "c", arity: 1, kind: KindHat, context: context, hole: hole}
	r.hats[canon] = sym
	return sym, nil
}

func containsVariable(t Term, v *Variable) bool {
	switch n := t.(type) {
	case *Variable:
		return n == v
	case *Compound:
		for _, a := range n.Args {
			if containsVariable(a, v) {
				return true
			}
		}
		return false
	case *HatApp:
		return containsVariable(n.Arg, v)
	default:
		return false
	}
}

// canonicalizeContext renders a context term with its hole replaced by a
// fixed placeholder token, so that structurally-identical contexts using
// different hole variable identities hash to the same key.
func canonicalizeContext(t Term, hole *Variable) string {
	var b []byte
	b = appendCanonical(b, t, hole)
	return string(b)
}

func appendCanonical(b []byte, t Term, hole *Variable) []byte {
	switch n := t.(type) {
	case *Variable:
		if n == hole {
			return append(b, "@hole"...)
		}
		return append(b, fmt.Sprintf("@var%p", n)...)
	case *Hole:
		return append(b, "@named-hole:"+n.Name...)
	case *Compound:
		b = append(b, n.Sym.name...)
		b = append(b, '(')
		for i, a := range n.Args {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendCanonical(b, a, hole)
		}
		return append(b, ')')
	case *HatApp:
		b = append(b, n.Sym.String()...)
		b = append(b, '(')
		b = appendCanonical(b, n.Arg, hole)
		return append(b, ')')
	default:
		return append(b, fmt.Sprintf("%v", t)...)
	}
}
