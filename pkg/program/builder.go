package program

import "github.com/gitrdm/ntprove/pkg/term"

// Program is the built, ready-to-analyze collection of a logic program's
// or TRS's rules plus the shared symbol registry they were built against.
// A proof coordinator run is always scoped to exactly one Program.
type Program struct {
	Registry *term.Registry
	LP       []*UnfoldedLPRule
	TRS      []*UnfoldedTRSRule
	Modes    map[*term.Symbol]Mode
}

// Builder assembles a Program in memory. It exists in place of a real
// parser front-end: spec.md §1 names parsing as an external collaborator
// this repo does not implement, so callers (tests, cmd/ntprove, or a
// future parser) construct terms directly via the registry and hand them
// to the builder.
type Builder struct {
	registry *term.Registry
	lp       []*UnfoldedLPRule
	trs      []*UnfoldedTRSRule
	modes    map[*term.Symbol]Mode
}

// NewBuilder creates an empty builder over the given registry.
func NewBuilder(registry *term.Registry) *Builder {
	return &Builder{registry: registry, modes: make(map[*term.Symbol]Mode)}
}

// AddLPRule appends an LP rule tagged as iteration 0 (the original
// program, before any unfolding).
func (b *Builder) AddLPRule(head *term.Compound, body ...*term.Compound) *Builder {
	b.lp = append(b.lp, &UnfoldedLPRule{LPRule: LPRule{Head: head, Body: body}, Iteration: 0})
	return b
}

// AddTRSRule appends a TRS rule tagged as iteration 0.
func (b *Builder) AddTRSRule(left, right term.Term) *Builder {
	b.trs = append(b.trs, &UnfoldedTRSRule{TRSRule: TRSRule{Left: left, Right: right}, Iteration: 0})
	return b
}

// SetMode records the mode declaration for a predicate symbol.
func (b *Builder) SetMode(sym *term.Symbol, mode Mode) *Builder {
	b.modes[sym] = mode
	return b
}

// Build finalizes the Program. The builder remains usable afterwards
// (Build snapshots its slices); further additions do not retroactively
// affect a previously built Program.
func (b *Builder) Build() *Program {
	lp := make([]*UnfoldedLPRule, len(b.lp))
	copy(lp, b.lp)
	trs := make([]*UnfoldedTRSRule, len(b.trs))
	copy(trs, b.trs)
	modes := make(map[*term.Symbol]Mode, len(b.modes))
	for k, v := range b.modes {
		modes[k] = v
	}
	return &Program{Registry: b.registry, LP: lp, TRS: trs, Modes: modes}
}
