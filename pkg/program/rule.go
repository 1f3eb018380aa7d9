// Package program holds the lightweight, parser-free data model for logic
// programs and term rewriting systems: rules, dependency-pair triples,
// Sets-of-Positions, modes, and an in-memory builder that substitutes for
// a real parser front-end (spec.md §1 names parsing an external
// collaborator this repo does not implement). Grounded on the teacher's
// plain struct-container style for its data types (`Var`, `Pair` as
// simple value holders, no behavior beyond accessors and a constructor)
// and on katalvlaran/lvlath's `core` package for the "small struct +
// constructor + validation method" shape used for graph edges/vertices —
// a Rule or DP triple is structurally the same kind of lightweight typed
// record.
package program

import "github.com/gitrdm/ntprove/pkg/term"

// LPRule is `h ← b_1,...,b_n`: a logic-program clause. A fact has an
// empty body; a binary rule has exactly one body atom.
type LPRule struct {
	Head *term.Compound
	Body []*term.Compound
}

// IsFact reports whether the rule has no body atoms.
func (r *LPRule) IsFact() bool { return len(r.Body) == 0 }

// IsBinary reports whether the rule has exactly one body atom.
func (r *LPRule) IsBinary() bool { return len(r.Body) == 1 }

// UnfoldedLPRule is a rule plus the iteration at which it was produced and
// an optional parent trace, per spec.md §3's UnfoldedRule. Parent is an
// arena-style back-reference (spec.md §9's redesign strategy for cyclic
// parent pointers): it simply points at the prior UnfoldedLPRule rather
// than at an arena index, since proof traces in this engine are discarded
// per-proof rather than shared across a long-lived process.
type UnfoldedLPRule struct {
	LPRule
	Iteration int
	Parent    *UnfoldedLPRule
}

// TRSRule is `left → right`: a term-rewriting rule.
type TRSRule struct {
	Left  term.Term
	Right term.Term
}

// UnfoldedTRSRule is a TRS rule plus the iteration at which it was
// produced and an optional parent trace.
type UnfoldedTRSRule struct {
	TRSRule
	Iteration int
	Parent    *UnfoldedTRSRule
}

// RootSymbol returns the root function symbol of a TRS rule's left-hand
// side, or nil if the left-hand side is a bare variable (malformed for a
// rewrite rule, but the accessor stays total rather than panicking).
func (r *TRSRule) RootSymbol() *term.Symbol {
	if c, ok := r.Left.(*term.Compound); ok {
		return c.Sym
	}
	return nil
}
