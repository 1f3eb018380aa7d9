package coordinator

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strings"

	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
	"github.com/pkg/errors"
)

// ctiTermConditionLine matches the "predicate_term_condition(...)"
// argument-detail lines the cTI process protocol emits after its
// verdict line, per spec.md §6.
var ctiTermConditionLine = regexp.MustCompile(`^predicate_term_condition\(.*\)$`)

// proveLPCTI spawns the external cTI tool (`<cTI_path> <file>`) and
// reads its stdout: the first line must start with "YES" to be accepted
// as a termination proof; any other first line yields MAYBE. Subsequent
// "predicate_term_condition(...)" lines are captured as the proof
// argument.
func (c *Coordinator) proveLPCTI(ctx context.Context, target *term.Symbol, mode program.Mode) Result {
	logger := c.Logger.Named("cti")
	if c.Config.CTIPath == "" || c.Config.FilePath == "" {
		return Result{Kind: ResultMaybe}
	}

	cmd := exec.CommandContext(ctx, c.Config.CTIPath, c.Config.FilePath)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return Result{Kind: ResultError, Err: errors.Wrap(err, "cti: process failed")}
	}

	scanner := bufio.NewScanner(&stdout)
	var conditions []string
	first := true
	accepted := false
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			accepted = strings.HasPrefix(line, "YES")
			if !accepted {
				break
			}
			continue
		}
		if ctiTermConditionLine.MatchString(line) {
			conditions = append(conditions, line)
		}
	}
	if !accepted {
		return Result{Kind: ResultMaybe}
	}
	logger.Debug("cti accepted termination", "predicate", target.Name(), "mode", mode.String(), "conditions", len(conditions))
	return Result{Kind: ResultYes, Argument: strings.Join(conditions, "\n")}
}

// ProveWithCTI is the entry point cmd/ntprove drives directly: with no
// parser (file parsing remains an external collaborator, per
// SPEC_FULL.md), delegating the whole file to the external cTI process
// is the only action this engine can take without a program.Program
// already constructed through the Builder API. target/mode are cosmetic
// (logging only) since cTI does its own parsing internally.
func (c *Coordinator) ProveWithCTI(ctx context.Context, filePath string) Result {
	c.Config.FilePath = filePath
	placeholder := term.NewRegistry().Function("goal", 0)
	mode, _ := program.ParseMode("")
	return c.proveLPCTI(ctx, placeholder, mode)
}
