package pattern

import (
	"github.com/gitrdm/ntprove/pkg/subst"
	"github.com/gitrdm/ntprove/pkg/term"
)

// Classification is the NT1/NT2/NT tag spec.md §4.4(2) assigns to a pair
// of aligned closing substitutions, depending on which kind of mapping
// they contain.
type Classification int

const (
	// ClassNT1 is assigned when every mapping targets a variable (no
	// ground-targeting mapping was seen).
	ClassNT1 Classification = iota
	// ClassNT2 is assigned when every mapping targets a ground term.
	ClassNT2
	// ClassNT is the combined form: both kinds of mapping occur.
	ClassNT
)

type mappingKind int

const (
	kindVariable mappingKind = iota
	kindGround
)

type parsedMapping struct {
	kind mappingKind
	a    int
	b    int
}

// parseMapping decomposes a bound term into the (a, b, target-kind) tuple
// spec.md §4.4(2) walks: a plain term has a=0, b=0; a hat application
// f^{a,b}(arg) contributes its first exponent as a and its constant as b,
// classified by whether arg is itself a variable or a ground term.
func parseMapping(t term.Term) parsedMapping {
	if hat, ok := t.(*term.HatApp); ok {
		a := 0
		if len(hat.Exponents) > 0 {
			a = hat.Exponents[0]
		}
		kind := kindGround
		if _, isVar := hat.Arg.(*term.Variable); isVar {
			kind = kindVariable
		}
		return parsedMapping{kind: kind, a: a, b: hat.B}
	}
	kind := kindGround
	if _, isVar := t.(*term.Variable); isVar {
		kind = kindVariable
	}
	return parsedMapping{kind: kind, a: 0, b: 0}
}

// unionDomain returns the union of two substitutions' domains, in
// left-then-right insertion order with duplicates removed.
func unionDomain(left, right *subst.Substitution) []*term.Variable {
	seen := make(map[*term.Variable]bool)
	var out []*term.Variable
	for _, v := range left.Domain() {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range right.Domain() {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// Validity is the result of walking dom(θ_l) ∪ dom(θ_r) and checking
// agreement of the running (a_l, a_r, d_l, d_r) and (b_l, b_r, e)
// integers spec.md §4.4(2) describes.
type Validity struct {
	Class              Classification
	AL, AR, DL, DR      int
	BL, BR, E           int
	K                   int
	HasVariableMapping  bool
	HasGroundMapping    bool
}

// Validate walks left and right (the two sides' closing substitutions,
// already aligned to a common domain by Refactor) and checks the
// monotonicity and divisibility conditions of spec.md §4.4(2). It returns
// (validity, false) if any variable is unmapped on one side, the mapping
// kinds disagree, a running value disagrees with an earlier mapping, or
// the required monotonicity/divisibility constraints fail.
func Validate(left, right *subst.Substitution) (Validity, bool) {
	var v Validity
	for _, x := range unionDomain(left, right) {
		lt := left.Lookup(x)
		rt := right.Lookup(x)
		if lt == nil || rt == nil {
			return v, false
		}
		pl := parseMapping(lt)
		pr := parseMapping(rt)
		if pl.kind != pr.kind {
			return v, false
		}
		switch pl.kind {
		case kindVariable:
			if !v.HasVariableMapping {
				v.AL, v.DL, v.AR, v.DR = pl.a, pl.b, pr.a, pr.b
				v.HasVariableMapping = true
			} else if pl.a != v.AL || pl.b != v.DL || pr.a != v.AR || pr.b != v.DR {
				return v, false
			}
		case kindGround:
			if !v.HasGroundMapping {
				if pl.a != pr.a {
					return v, false
				}
				v.E, v.BL, v.BR = pl.a, pl.b, pr.b
				v.HasGroundMapping = true
			} else if pl.a != v.E || pr.a != v.E || pl.b != v.BL || pr.b != v.BR {
				return v, false
			}
		}
	}

	if v.HasVariableMapping {
		if v.AL > v.AR {
			return v, false
		}
		if v.DL > v.DR {
			return v, false
		}
	}
	if v.HasGroundMapping {
		if v.E == 0 {
			if v.BL != v.BR {
				return v, false
			}
			v.K = 0
		} else {
			if (v.BR-v.BL)%v.E != 0 {
				return v, false
			}
			v.K = (v.BR - v.BL) / v.E
		}
	}

	switch {
	case v.HasVariableMapping && v.HasGroundMapping:
		v.Class = ClassNT
	case v.HasGroundMapping:
		v.Class = ClassNT2
	default:
		v.Class = ClassNT1
	}
	return v, true
}

// ComputeAlpha implements spec.md §4.4(3): the least non-negative natural
// α such that for all n ≥ α and all θ, p(n)θ starts an infinite
// derivation, given the classification produced by Validate.
func ComputeAlpha(v Validity) int {
	if !v.HasVariableMapping || v.AL >= v.AR {
		return 0
	}
	numerator := v.E*v.K - (v.DR - v.DL)
	denominator := v.AR - v.AL
	if numerator <= 0 {
		return 0
	}
	alpha := numerator / denominator
	if numerator%denominator != 0 {
		alpha++
	}
	if alpha < 0 {
		return 0
	}
	return alpha
}
