package dpproc

import "github.com/gitrdm/ntprove/pkg/term"

// argFilterInstantiationCap bounds the number of candidate argument
// filterings EnumerateFilters will generate before bailing out, per
// spec.md §4.8's "5000-instantiation cap" on the argument-filtering
// search.
const argFilterInstantiationCap = 5000

// ArgumentFilter maps each symbol to the subset of argument positions
// kept under the filtering (a position missing from the slice, or set to
// false, is discarded).
type ArgumentFilter map[*term.Symbol][]bool

// Apply filters t according to af: a compound whose symbol has exactly
// one kept position collapses to that argument (standard "projection"
// filtering); otherwise the compound keeps only its marked positions, in
// order, under the same symbol (arity mismatch is accepted here since the
// filtered term is only ever used for ordering comparisons, never
// reconstructed into a well-typed program).
func (af ArgumentFilter) Apply(t term.Term) term.Term {
	c, ok := t.(*term.Compound)
	if !ok {
		return t
	}
	keep, ok := af[c.Sym]
	if !ok {
		keep = make([]bool, len(c.Args))
		for i := range keep {
			keep[i] = true
		}
	}
	var kept []term.Term
	for i, a := range c.Args {
		if i < len(keep) && keep[i] {
			kept = append(kept, af.Apply(a))
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return &term.Compound{Sym: c.Sym, Args: kept}
}

// EnumerateFilters generates every argument filtering over symbols up to
// argFilterInstantiationCap candidates (2^totalArity filterings in
// principle; the cap guards against the combinatorial blow-up of highly
// variadic signatures). Returns the filters generated and whether the
// enumeration was truncated by the cap.
func EnumerateFilters(symbols []*term.Symbol) ([]ArgumentFilter, bool) {
	total := 0
	for _, s := range symbols {
		total += s.Arity()
	}
	if total == 0 {
		return []ArgumentFilter{{}}, false
	}
	if total > 20 {
		total = 20 // 2^20 already exceeds the cap; clamp the bit-scan width
	}

	var out []ArgumentFilter
	truncated := false
	limit := 1 << total
	for mask := 0; mask < limit; mask++ {
		if len(out) >= argFilterInstantiationCap {
			truncated = true
			break
		}
		filter := make(ArgumentFilter, len(symbols))
		bit := 0
		for _, sym := range symbols {
			keep := make([]bool, sym.Arity())
			for i := range keep {
				if bit < total {
					keep[i] = mask&(1<<bit) != 0
				} else {
					keep[i] = true
				}
				bit++
			}
			filter[sym] = keep
		}
		out = append(out, filter)
	}
	return out, truncated
}
