// Package coordinator implements the top-level proof coordinator of
// spec.md §4.9: it races a handful of prover strategies per problem
// (binary/pattern unfolding and an optional cTI call for LP, an SCC-
// decomposed pipeline of ordering and unfolding processors for TRS),
// enforces per-proof and global timeouts, and formats the final verdict
// string. Grounded on the teacher's ParallelSearchConfig/SolveParallel
// shape (pkg/minikanren/parallel_search.go): an explicit config struct,
// a context-cancellable race among workers, and a channel collecting
// results as they complete.
package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/gitrdm/ntprove/internal/parallel"
	"github.com/gitrdm/ntprove/pkg/program"
	"github.com/gitrdm/ntprove/pkg/term"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
)

// ResultKind is the verdict a prover task or the coordinator itself
// reaches, per spec.md §6's verdict vocabulary.
type ResultKind int

const (
	ResultMaybe ResultKind = iota
	ResultYes
	ResultNo
	ResultError
)

func (k ResultKind) String() string {
	switch k {
	case ResultYes:
		return "YES"
	case ResultNo:
		return "NO"
	case ResultError:
		return "ERROR"
	default:
		return "MAYBE"
	}
}

// Result is the outcome of one prover task or of a whole coordinated
// proof: a verdict, an optional nontermination witness atom (NO only),
// an optional proof-argument string (YES's ordering summary, cTI's
// captured term-condition lines, or the "Timeout expired!" marker), and
// the underlying error for ERROR results.
type Result struct {
	Kind     ResultKind
	Witness  *term.Compound
	Argument string
	Err      error
}

// ProverConfig is the coordinator's only configuration surface — there
// is no persisted configuration file, per SPEC_FULL.md's Ambient Stack;
// every field is threaded explicitly through NewCoordinator, mirroring
// how the teacher threads ParallelSearchConfig into SolveParallel.
type ProverConfig struct {
	// PerProofTimeout bounds a single prover task (one racing thread).
	PerProofTimeout time.Duration
	// GlobalTimeout bounds the whole coordinated proof.
	GlobalTimeout time.Duration
	// CTIPath is the path to the external cTI binary; empty disables
	// the cTI racing task entirely.
	CTIPath string
	// FilePath is the original program source handed to the cTI
	// subprocess (parsing itself is an external collaborator; the
	// coordinator only forwards the path it was given).
	FilePath string
	// Verbose records the caller's verbosity choice; the coordinator
	// itself does not read it (cmd/ntprove raises its own logger's level
	// and passes the flag to FormatVerdict directly).
	Verbose bool
	// MaxIterations bounds the LP binary-unfolding loop depth before that
	// prover task gives up with MAYBE; the TRS prover does not read it.
	MaxIterations int
}

// DefaultProverConfig returns reasonable defaults: a five-second per-
// proof timeout, a thirty-second global timeout, no cTI, 500 unfolding
// iterations.
func DefaultProverConfig() ProverConfig {
	return ProverConfig{
		PerProofTimeout: 5 * time.Second,
		GlobalTimeout:   30 * time.Second,
		MaxIterations:   500,
	}
}

// Coordinator races prover tasks for one Program at a time. It is safe
// to reuse across proofs; each Prove call builds its own task set and
// deadline.
type Coordinator struct {
	Config ProverConfig
	Logger hclog.Logger
	pool   *parallel.Pool
}

// NewCoordinator builds a coordinator. A nil logger gets hclog's
// discard logger, matching the teacher's tolerance for an unconfigured
// logger in tests.
func NewCoordinator(config ProverConfig, logger hclog.Logger) *Coordinator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Coordinator{
		Config: config,
		Logger: logger,
		pool:   parallel.NewPool(),
	}
}

// Stats returns the execution statistics collected across every Prove
// call this coordinator has run, the backing store for the CLI's
// `-stat` action.
func (c *Coordinator) Stats() *parallel.ExecutionStats { return c.pool.GetStats() }

// Close finalizes the coordinator's stats collector and shuts down its
// deadlock detector. Safe to call once after the coordinator is no
// longer needed.
func (c *Coordinator) Close() { c.pool.Shutdown() }

// errConclusive is the sentinel an errgroup task returns to trigger the
// group's own context cancellation once it has found a YES/NO verdict —
// the "first conclusive result cancels the group via the shared
// context.Context" racing idiom SPEC_FULL.md's domain-stack table
// describes for errgroup, inverted from nomad's usual first-error-wins
// semantics to first-success-wins.
var errConclusive = errors.New("coordinator: conclusive result found")

// proverTask is one racing strategy; it must return promptly once ctx
// is cancelled.
type proverTask func(ctx context.Context) Result

// race runs every task in tasks concurrently via errgroup, each under
// its own per-proof-timeout context registered with the deadlock
// detector, and returns the first YES/NO result. If every task returns
// MAYBE (or the outer ctx's global timeout elapses first), it returns a
// MAYBE tagged with "Timeout expired!" when the cause was the deadline,
// and the last MAYBE observed otherwise. ERROR results are logged but
// never kept or returned, per spec.md §7.
func (c *Coordinator) race(ctx context.Context, label string, tasks []proverTask) Result {
	if len(tasks) == 0 {
		return Result{Kind: ResultMaybe}
	}

	ctx, cancel := context.WithTimeout(ctx, c.Config.GlobalTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	results := make(chan Result, len(tasks))
	detector := c.pool.GetDeadlockDetector()

	for _, task := range tasks {
		task := task
		taskID := uuid.NewString()
		g.Go(func() error {
			taskCtx, taskCancel := detector.TimeoutContext(gctx, taskID, label)
			defer taskCancel()
			if c.Config.PerProofTimeout > 0 {
				var perProofCancel context.CancelFunc
				taskCtx, perProofCancel = context.WithTimeout(taskCtx, c.Config.PerProofTimeout)
				defer perProofCancel()
			}
			start := time.Now()
			c.pool.GetStats().RecordTaskSubmitted()
			r := task(taskCtx)
			if r.Kind == ResultError {
				c.pool.GetStats().RecordTaskFailed(r.Err)
			} else {
				c.pool.GetStats().RecordTaskCompleted(time.Since(start))
			}
			results <- r
			if r.Kind == ResultYes || r.Kind == ResultNo {
				return errConclusive
			}
			return nil
		})
	}

	go func() {
		g.Wait()
		close(results)
	}()

	last := Result{Kind: ResultMaybe}
	for r := range results {
		switch r.Kind {
		case ResultYes, ResultNo:
			return r
		case ResultError:
			c.Logger.Debug("prover task error", "label", label, "error", r.Err)
		default:
			last = r
		}
	}
	if ctx.Err() != nil {
		last.Argument = "Timeout expired!"
	}
	return last
}

// Prove races the applicable prover strategies for prog and returns the
// coordinator's final verdict. target names the predicate symbol whose
// mode governs an LP proof; it is ignored for a TRS program (prog.TRS
// non-empty takes precedence, matching one Program instance holding
// exactly one formalism's rules per spec.md §3).
func (c *Coordinator) Prove(ctx context.Context, prog *program.Program, target *term.Symbol) Result {
	if len(prog.TRS) > 0 {
		return c.proveTRS(ctx, prog)
	}
	mode, ok := prog.Modes[target]
	if !ok {
		return Result{Kind: ResultError, Err: errors.New("coordinator: no mode declared for target predicate")}
	}
	return c.proveLP(ctx, prog, target, mode)
}
