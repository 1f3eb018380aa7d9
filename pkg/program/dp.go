package program

// TripleKind tags a dependency-pair triple's shape. Spec.md §9 flags the
// teacher-equivalent deep class hierarchy (`UnfoldedRuleTrs`/`PatternRule`
// subclassing per kind) as a redesign target; this engine represents the
// triple as one struct with a kind tag and kind-specific fields, and
// dispatches behavior (elim/unfold/nonTerminationTest, implemented in
// pkg/unfold) as functions switching on Kind rather than virtual methods.
type TripleKind int

const (
	// KindUnit is (N, ∅, L): a single candidate rule with no SCC.
	KindUnit TripleKind = iota
	// KindTransitory is (N, N, L): N paired with its own SCC.
	KindTransitory
	// KindComposed is (N::N', N, L): a two-rule candidate.
	KindComposed
)

func (k TripleKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindTransitory:
		return "transitory"
	case KindComposed:
		return "composed"
	default:
		return "unknown"
	}
}

// DPTriple is a dependency-pair triple: the primary rule N, an optional
// secondary rule N' (composed triples only), the SCC this pair belongs to
// (transitory triples), and the simple-cycle set L.
type DPTriple struct {
	Kind    TripleKind
	N       *UnfoldedTRSRule
	NPrime  *UnfoldedTRSRule   // composed triples only; nil otherwise
	SCC     []*UnfoldedTRSRule // transitory triples' SCC component, in order
	SimpleL []*UnfoldedTRSRule // the simple-cycle set L
}

// NewUnitTriple builds a unit triple (N, ∅, L).
func NewUnitTriple(n *UnfoldedTRSRule, simpleL []*UnfoldedTRSRule) *DPTriple {
	return &DPTriple{Kind: KindUnit, N: n, SimpleL: simpleL}
}

// NewTransitoryTriple builds a transitory triple (N, N, L).
func NewTransitoryTriple(n *UnfoldedTRSRule, scc []*UnfoldedTRSRule, simpleL []*UnfoldedTRSRule) *DPTriple {
	return &DPTriple{Kind: KindTransitory, N: n, SCC: scc, SimpleL: simpleL}
}

// NewComposedTriple builds a composed triple (N::N', N, L).
func NewComposedTriple(n, nPrime *UnfoldedTRSRule, simpleL []*UnfoldedTRSRule) *DPTriple {
	return &DPTriple{Kind: KindComposed, N: n, NPrime: nPrime, SimpleL: simpleL}
}

// IsSimpleCycle reports whether a rule participates in this triple's
// simple-cycle set L.
func (t *DPTriple) IsSimpleCycle(r *UnfoldedTRSRule) bool {
	for _, l := range t.SimpleL {
		if l == r {
			return true
		}
	}
	return false
}
