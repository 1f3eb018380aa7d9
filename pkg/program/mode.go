package program

import "fmt"

// Mode is a subset of {0,...,n-1} marking input positions of an n-ary
// predicate, per spec.md §4.5. Annotation is the original per-argument
// tag ('i' input, 'o' output, 'b' bound-but-output — kept distinct from
// input since only 'i' marks a position the caller must instantiate).
type Mode struct {
	Arity int
	Input []bool
}

// ParseMode parses a mode declaration such as "io" or "oi" (one
// annotation character per argument position, left to right) into a
// Mode. 'i' marks input; 'o' and 'b' mark non-input (output / bound-
// output). Any other character is rejected.
func ParseMode(annotations string) (Mode, error) {
	m := Mode{Arity: len(annotations), Input: make([]bool, len(annotations))}
	for i, c := range annotations {
		switch c {
		case 'i':
			m.Input[i] = true
		case 'o', 'b':
			m.Input[i] = false
		default:
			return Mode{}, fmt.Errorf("program: invalid mode annotation %q at position %d", c, i)
		}
	}
	return m, nil
}

// IsInput reports whether position k is an input position.
func (m Mode) IsInput(k int) bool {
	if k < 0 || k >= len(m.Input) {
		return false
	}
	return m.Input[k]
}

// InputPositions returns the sorted list of input position indices.
func (m Mode) InputPositions() []int {
	var out []int
	for i, in := range m.Input {
		if in {
			out = append(out, i)
		}
	}
	return out
}

func (m Mode) String() string {
	out := make([]byte, m.Arity)
	for i, in := range m.Input {
		if in {
			out[i] = 'i'
		} else {
			out[i] = 'o'
		}
	}
	return string(out)
}
