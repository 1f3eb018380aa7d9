package term

import "strings"

// Position is a persistent sequence of child indices identifying a
// subterm. The empty Position denotes the root. Positions are treated as
// immutable values; every mutator returns a new Position.
type Position []int

// Root is the empty position.
func Root() Position { return Position{} }

// Append returns a new position with idx appended at the end (descend one
// more level).
func (p Position) Append(idx int) Position {
	out := make(Position, len(p)+1)
	copy(out, p)
	out[len(p)] = idx
	return out
}

// AddFirst returns a new position with idx prepended.
func (p Position) AddFirst(idx int) Position {
	out := make(Position, len(p)+1)
	out[0] = idx
	copy(out[1:], p)
	return out
}

// AddLast is an alias of Append, named to match the spec's vocabulary.
func (p Position) AddLast(idx int) Position { return p.Append(idx) }

// IsRoot reports whether p is the empty position.
func (p Position) IsRoot() bool { return len(p) == 0 }

// Equal reports positional equality.
func (p Position) Equal(q Position) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// ProperPrefix reports whether p is a strict prefix of q.
func (p Position) ProperPrefix(q Position) bool {
	if len(p) >= len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// String renders the position as a dot-separated list, e.g. "1.2.1".
func (p Position) String() string {
	if len(p) == 0 {
		return "ε"
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = itoa(idx)
	}
	return strings.Join(parts, ".")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Subterm returns the subterm of t at position p, or (nil, false) if the
// position runs off the end of the term (out of range at any step).
func Subterm(t Term, p Position) (Term, bool) {
	cur := t
	for _, idx := range p {
		switch n := cur.(type) {
		case *Compound:
			if idx < 0 || idx >= len(n.Args) {
				return nil, false
			}
			cur = n.Args[idx]
		case *HatApp:
			if idx != 0 {
				return nil, false
			}
			cur = n.Arg
		default:
			return nil, false
		}
	}
	return cur, true
}

// ReplaceAt returns a copy of t with the subterm at position p replaced by
// repl. It returns (t, false) unchanged if p is out of range.
func ReplaceAt(t Term, p Position, repl Term) (Term, bool) {
	if len(p) == 0 {
		return repl, true
	}
	switch n := t.(type) {
	case *Compound:
		idx := p[0]
		if idx < 0 || idx >= len(n.Args) {
			return t, false
		}
		newChild, ok := ReplaceAt(n.Args[idx], p[1:], repl)
		if !ok {
			return t, false
		}
		newArgs := make([]Term, len(n.Args))
		copy(newArgs, n.Args)
		newArgs[idx] = newChild
		return &Compound{Sym: n.Sym, Args: newArgs}, true
	case *HatApp:
		if p[0] != 0 {
			return t, false
		}
		newArg, ok := ReplaceAt(n.Arg, p[1:], repl)
		if !ok {
			return t, false
		}
		exps := make([]int, len(n.Exponents))
		copy(exps, n.Exponents)
		return &HatApp{Sym: n.Sym, Exponents: exps, B: n.B, Arg: newArg}, true
	default:
		return t, false
	}
}

// AllPositions returns every position in t (including the root), in
// pre-order.
func AllPositions(t Term) []Position {
	var out []Position
	var walk func(Term, Position)
	walk = func(t Term, p Position) {
		out = append(out, p)
		switch n := t.(type) {
		case *Compound:
			for i, a := range n.Args {
				walk(a, p.Append(i))
			}
		case *HatApp:
			walk(n.Arg, p.Append(0))
		}
	}
	walk(t, Root())
	return out
}

// NonVariablePositions returns the positions of t whose subterm is not a
// variable, in pre-order — used to drive guided TRS unfolding (spec.md
// §4.6, "non-variable positions first").
func NonVariablePositions(t Term) []Position {
	var out []Position
	for _, p := range AllPositions(t) {
		sub, ok := Subterm(t, p)
		if !ok {
			continue
		}
		if _, isVar := sub.(*Variable); !isVar {
			out = append(out, p)
		}
	}
	return out
}
