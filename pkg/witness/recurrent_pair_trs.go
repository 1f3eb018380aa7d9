package witness

import (
	"github.com/gitrdm/ntprove/pkg/pattern"
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
)

// recurrentSearchBound caps the m1,n1..n4 search NewRecurrentPair runs.
// Unlike eeg12MaxM/eeg12MaxB, spec.md does not pin an exact value for this
// search, so this bound is this engine's own choice, not a preserved
// constant — see DESIGN.md.
const recurrentSearchBound = 4

// RecurrentPair is the TRS nontermination witness built from four rules'
// left/right-hand sides sharing a root symbol, a ground 2-context c1 with
// two hole variables, and a ground 1-context c2 with one hole variable:
// iterating c1[c2^{n1}(·), c2^{n2}(·)] must produce an infinite rewrite
// sequence (spec.md §4.7).
type RecurrentPair struct {
	U1, V1, U2, V2   *term.Compound
	C1               term.Term
	HoleA, HoleB     *term.Variable
	C2               term.Term
	Hole             *term.Variable
	M1, M2           int
	N1, N2, N3, N4   int
	S, T             term.Term
}

func apply1N(c term.Term, hole *term.Variable, arg term.Term, n int) term.Term {
	for i := 0; i < n; i++ {
		arg = pattern.ApplyContext(c, hole, arg)
	}
	return arg
}

func apply2(c1 term.Term, holeA, holeB *term.Variable, a, b term.Term) term.Term {
	return pattern.ApplyContext(pattern.ApplyContext(c1, holeA, a), holeB, b)
}

// NewRecurrentPair fails fast (returns false) whenever the shape checks
// fail: u1,v1,u2,v2 must share a root symbol, and v1 must be structurally
// equal to u2 while v2 is structurally equal to u1 (v_k structurally
// equal to u_{3-k}). It then bounded-searches for m1 >= 1 and
// n1,n2,n3,n4 >= 0 (M2 is recorded equal to M1; no separate m2 is
// searched) such that embedding c2's n1/n2-fold iterations of s,t
// into c1 equals c2's m1-fold iteration of embedding c2's n3/n4-fold
// iterations of s,t into c1 — the repeatable growth step that certifies
// an infinite rewrite sequence.
func NewRecurrentPair(u1, v1, u2, v2 *term.Compound, c1 term.Term, holeA, holeB *term.Variable, c2 term.Term, hole *term.Variable, s, t term.Term) (*RecurrentPair, bool) {
	if u1.Sym != v1.Sym || u1.Sym != u2.Sym || u1.Sym != v2.Sym {
		return nil, false
	}
	if !term.DeepEquals(v1, u2) || !term.DeepEquals(v2, u1) {
		return nil, false
	}

	for n1 := 0; n1 <= recurrentSearchBound; n1++ {
		for n2 := 0; n2 <= recurrentSearchBound; n2++ {
			lhs := apply2(c1, holeA, holeB, apply1N(c2, hole, s, n1), apply1N(c2, hole, t, n2))
			for m1 := 1; m1 <= recurrentSearchBound; m1++ {
				for n3 := 0; n3 <= recurrentSearchBound; n3++ {
					for n4 := 0; n4 <= recurrentSearchBound; n4++ {
						inner := apply2(c1, holeA, holeB, apply1N(c2, hole, s, n3), apply1N(c2, hole, t, n4))
						rhs := apply1N(c2, hole, inner, m1)
						if term.DeepEquals(lhs, rhs) {
							return &RecurrentPair{
								U1: u1, V1: v1, U2: u2, V2: v2,
								C1: c1, HoleA: holeA, HoleB: holeB,
								C2: c2, Hole: hole,
								M1: m1, M2: m1,
								N1: n1, N2: n2, N3: n3, N4: n4,
								S: s, T: t,
							}, true
						}
					}
				}
			}
		}
	}
	return nil, false
}

// ProvesNonTerminationOf reports the c1[c2^{n1}(s), c2^{n2}(t)] instance
// as the witness whenever its root symbol's arity matches mode.
func (rp *RecurrentPair) ProvesNonTerminationOf(mode program.Mode) (*term.Compound, bool) {
	instance := apply2(rp.C1, rp.HoleA, rp.HoleB, apply1N(rp.C2, rp.Hole, rp.S, rp.N1), apply1N(rp.C2, rp.Hole, rp.T, rp.N2))
	c, ok := instance.(*term.Compound)
	if !ok || c.Sym.Arity() != mode.Arity {
		return nil, false
	}
	return c, true
}

var _ Witness = (*RecurrentPair)(nil)
