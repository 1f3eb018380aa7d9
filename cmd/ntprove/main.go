// Command ntprove is the thin CLI wiring around pkg/coordinator: a
// `prove` action that delegates to the external cTI tool (file parsing
// remains an external collaborator this repo does not implement, so the
// internal dependency-pair/pattern engine is only reachable by
// constructing a program.Program through the Builder API, not from a
// file on disk), a `print` action that reports that limitation, and a
// `stat` action over the coordinator's internal/parallel.ExecutionStats.
// Grounded on hashicorp/cli, used the way hashicorp/nomad's own command
// package registers one cli.Command per verb.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gitrdm/ntprove/pkg/coordinator"
	"github.com/hashicorp/cli"
	"github.com/hashicorp/go-hclog"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	c := cli.NewCLI("ntprove", version)
	c.Args = args
	c.Commands = map[string]cli.CommandFactory{
		"prove": func() (cli.Command, error) { return &proveCommand{}, nil },
		"print": func() (cli.Command, error) { return &printCommand{}, nil },
		"stat":  func() (cli.Command, error) { return &statCommand{}, nil },
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitStatus
}

// sharedFlags is the -v/-t/-cTI flag set the prove action registers,
// following nomad's per-command flag.FlagSet idiom.
type sharedFlags struct {
	verbose bool
	timeout time.Duration
	ctiPath string
}

func (f *sharedFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&f.verbose, "v", false, "verbose output")
	fs.DurationVar(&f.timeout, "t", 30*time.Second, "global proof timeout")
	fs.StringVar(&f.ctiPath, "cTI", "", "path to the external cTI binary")
}

// proveCommand is the `prove` action: prove non(termination) of the
// program named by its sole argument.
type proveCommand struct{}

func (cmd *proveCommand) Help() string {
	return "Usage: ntprove prove [-v] [-t=duration] [-cTI=path] <file>\n\n" +
		"  Attempts to prove (non)termination of the program in <file>.\n" +
		"  Without -cTI, no parser is wired and the action reports an error;\n" +
		"  construct a program.Program via pkg/program's Builder API to drive\n" +
		"  the internal engine directly instead."
}

func (cmd *proveCommand) Synopsis() string { return "Prove (non)termination of a program" }

func (cmd *proveCommand) Run(args []string) int {
	var flags sharedFlags
	fs := flag.NewFlagSet("prove", flag.ContinueOnError)
	flags.register(fs)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, cmd.Help())
		return 1
	}
	file := fs.Arg(0)

	if flags.ctiPath == "" {
		fmt.Fprintln(os.Stderr, "ntprove: no parser is wired; pass -cTI=<path> to delegate to the external cTI tool")
		return 1
	}

	logger := hclog.NewNullLogger()
	if flags.verbose {
		logger = hclog.New(&hclog.LoggerOptions{Name: "ntprove", Level: hclog.Debug})
	}

	cfg := coordinator.DefaultProverConfig()
	cfg.GlobalTimeout = flags.timeout
	cfg.CTIPath = flags.ctiPath
	cfg.Verbose = flags.verbose

	coord := coordinator.NewCoordinator(cfg, logger)
	defer coord.Close()

	ctx, cancel := context.WithTimeout(context.Background(), flags.timeout)
	defer cancel()

	result := coord.ProveWithCTI(ctx, file)
	fmt.Println(coordinator.FormatVerdict(result, flags.verbose))
	if result.Kind == coordinator.ResultError {
		return 1
	}
	return 0
}

// printCommand reports cmd/ntprove's parsing limitation rather than
// silently pretending to print a parsed program.
type printCommand struct{}

func (cmd *printCommand) Help() string {
	return "Usage: ntprove print <file>\n\n" +
		"  File parsing is not implemented; there is no parsed program to print.\n" +
		"  Construct a program.Program via pkg/program's Builder API instead."
}

func (cmd *printCommand) Synopsis() string { return "Print a parsed program (unimplemented)" }

func (cmd *printCommand) Run(args []string) int {
	fmt.Fprintln(os.Stderr, "ntprove: file parsing is not implemented")
	return 1
}

// statCommand reports that statistics accumulate only within a single
// running process (a coordinator's internal/parallel.ExecutionStats),
// and a standalone CLI invocation has none carried over from a prior run.
type statCommand struct{}

func (cmd *statCommand) Help() string {
	return "Usage: ntprove stat\n\n" +
		"  Reports execution statistics. A standalone invocation has nothing\n" +
		"  accumulated; statistics are only meaningful for a long-lived\n" +
		"  coordinator instance (e.g. embedded in another program)."
}

func (cmd *statCommand) Synopsis() string { return "Report proof execution statistics" }

func (cmd *statCommand) Run(args []string) int {
	coord := coordinator.NewCoordinator(coordinator.DefaultProverConfig(), hclog.NewNullLogger())
	defer coord.Close()
	fmt.Println(coord.Stats().String())
	return 0
}
