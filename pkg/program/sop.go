package program

import "github.com/gitrdm/ntprove/pkg/term"

// SoP (Set-of-Positions) maps each predicate symbol to a fixed-length
// boolean array: true marks a position "in the domain" (kept), false
// marks it "not in the domain" (spec.md's `null`). A SoP is the
// per-predicate witness a LoopingPair carries to certify DN1-DN4 against
// a binary-rule sequence.
type SoP struct {
	domain map[*term.Symbol][]bool
}

// NewFullSoP builds a SoP with every position of every given symbol
// initially in the domain — the starting point the DN-shrinking fixpoint
// iterates from.
func NewFullSoP(symbols []*term.Symbol) *SoP {
	s := &SoP{domain: make(map[*term.Symbol][]bool)}
	for _, sym := range symbols {
		arr := make([]bool, sym.Arity())
		for i := range arr {
			arr[i] = true
		}
		s.domain[sym] = arr
	}
	return s
}

// Positions returns the domain array for sym (nil if sym is unknown to
// this SoP).
func (s *SoP) Positions(sym *term.Symbol) []bool { return s.domain[sym] }

// InDomain reports whether position k of sym is in the domain.
func (s *SoP) InDomain(sym *term.Symbol, k int) bool {
	arr, ok := s.domain[sym]
	if !ok || k < 0 || k >= len(arr) {
		return false
	}
	return arr[k]
}

// Remove drops position k of sym from the domain.
func (s *SoP) Remove(sym *term.Symbol, k int) {
	if arr, ok := s.domain[sym]; ok && k >= 0 && k < len(arr) {
		arr[k] = false
	}
}

// Clone deep-copies the SoP's per-symbol arrays.
func (s *SoP) Clone() *SoP {
	out := &SoP{domain: make(map[*term.Symbol][]bool, len(s.domain))}
	for sym, arr := range s.domain {
		cp := make([]bool, len(arr))
		copy(cp, arr)
		out.domain[sym] = cp
	}
	return out
}

// variablesAt collects the variables occurring in the head's arguments at
// the positions where inDomain(position) == want.
func variablesAt(head *term.Compound, domain []bool, want bool) map[*term.Variable]bool {
	out := make(map[*term.Variable]bool)
	for i, arg := range head.Args {
		in := i < len(domain) && domain[i]
		if in != want {
			continue
		}
		for _, v := range term.Variables(arg) {
			out[v] = true
		}
	}
	return out
}

// checkDN1 enforces "no pair-position-redundancy": two domain positions
// whose head arguments are the very same variable make one of the two
// positions redundant (unifying one pins the other). It returns the set
// of positions to drop (the higher-indexed one of each offending pair) to
// break the redundancy.
func checkDN1(head *term.Compound, domain []bool) []int {
	var drop []int
	seen := make(map[*term.Variable]int)
	for i, arg := range head.Args {
		if i >= len(domain) || !domain[i] {
			continue
		}
		v, ok := arg.(*term.Variable)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			drop = append(drop, i)
			continue
		}
		seen[v] = i
	}
	return drop
}

// checkDN4 enforces "no forbidden variable sharing between in- and
// out-positions": a variable that occurs both at a domain position and a
// non-domain position of the same head atom makes the domain position
// unsafe to treat as independently instantiable. Offending domain
// positions are reported for removal.
func checkDN4(head *term.Compound, domain []bool) []int {
	outVars := variablesAt(head, domain, false)
	var drop []int
	for i, arg := range head.Args {
		if i >= len(domain) || !domain[i] {
			continue
		}
		for _, v := range term.Variables(arg) {
			if outVars[v] {
				drop = append(drop, i)
				break
			}
		}
	}
	return drop
}

// ConstructSoP implements spec.md §4.5's SoP constructor for a binary
// rule sequence: starting from the full domain for every symbol
// mentioned in the sequence, iteratively apply DN1 and DN4 (the two
// checks directly expressible from a rule's head alone; DN2/DN3 govern
// cross-rule "more general" relationships that this engine's conservative
// LoopingPair builder enforces separately via subst.IsMoreGeneralThan at
// extension time, see pkg/witness/looping_pair.go) until a fixpoint is
// reached — testable property 8 requires this loop to terminate, which it
// does because every step only ever removes positions, on a finite set.
func ConstructSoP(rules []*LPRule) *SoP {
	symbolSet := make(map[*term.Symbol]bool)
	for _, r := range rules {
		symbolSet[r.Head.Sym] = true
	}
	symbols := make([]*term.Symbol, 0, len(symbolSet))
	for sym := range symbolSet {
		symbols = append(symbols, sym)
	}
	sop := NewFullSoP(symbols)

	for {
		changed := false
		for _, r := range rules {
			domain := sop.Positions(r.Head.Sym)
			for _, drop := range checkDN1(r.Head, domain) {
				if domain[drop] {
					sop.Remove(r.Head.Sym, drop)
					changed = true
				}
			}
			for _, drop := range checkDN4(r.Head, domain) {
				if domain[drop] {
					sop.Remove(r.Head.Sym, drop)
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return sop
}
