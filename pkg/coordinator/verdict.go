package coordinator

import "fmt"

// challengingProblemsHint is appended to every MAYBE verdict, matching
// the original tool's standing invitation to submit problems it could
// not settle.
const challengingProblemsHint = "If you believe this problem should have been solved, please submit it as a challenging problem."

// FormatVerdict renders r as the verdict text: the bare verdict word,
// followed by a "** BEGIN proof argument **"/"** END proof argument **"
// block whenever r carries one (an ordering summary, cTI's captured
// term-condition lines, or a witness atom's printed form), and the
// challenging-problems hint appended to every MAYBE. verbose widens the
// output with the underlying error text for ERROR results.
func FormatVerdict(r Result, verbose bool) string {
	out := r.Kind.String()

	argument := r.Argument
	if r.Witness != nil {
		if argument != "" {
			argument = r.Witness.String() + "\n" + argument
		} else {
			argument = r.Witness.String()
		}
	}
	if argument != "" {
		out += "\n** BEGIN proof argument **\n" + argument + "\n** END proof argument **"
	}

	if r.Kind == ResultMaybe {
		out += "\n" + challengingProblemsHint
	}
	if r.Kind == ResultError && verbose && r.Err != nil {
		out += fmt.Sprintf("\n%v", r.Err)
	}
	return out
}
