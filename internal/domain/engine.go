package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"gnaw.dev/pkg/gnaw/internal/adapter"
	"gnaw.dev/pkg/gnaw/internal/domain/operators"
	m "gnaw.dev/pkg/gnaw/internal/model"
	"gnaw.dev/pkg/gnaw/pkg"
)

// Defaults applied when RunArgs leaves a knob unset.
const (
	DefaultMaxMutants = 50
	DefaultTimeout    = 30 * time.Second
)

// RunArgs parameterizes one mutation run against one target file.
type RunArgs struct {
	TargetPath      m.Path
	TestCommand     string
	OperatorNames   []string
	TargetFunctions []string
	MaxMutants      int
	Timeout         time.Duration
	Seed            *int64
}

// Observer receives progress callbacks during a run. Implementations must be
// safe for concurrent calls; parallel runs report from multiple goroutines.
type Observer interface {
	RunStarted(target m.Path, totalMutants int)
	MutantTested(target m.Path, result m.ExecutionResult)
	RunCompleted(report *m.MutationReport)
}

// Engine is the top-level mutation testing workflow: load, generate,
// execute, aggregate.
type Engine interface {
	// Run mutation-tests a single target file.
	Run(ctx context.Context, args RunArgs) (*m.MutationReport, error)

	// RunAll mutation-tests several targets, at most parallel at a time.
	// Each target gets an independent report.
	RunAll(ctx context.Context, targets []m.Path, args RunArgs, parallel int) ([]*m.MutationReport, error)

	// Estimate generates without executing and reports what a run would test.
	Estimate(args RunArgs) (*Estimation, error)
}

// OperatorCount pairs an operator with its generated-mutant count.
type OperatorCount struct {
	Operator string
	Count    int
}

// Estimation summarizes the uncapped candidate set for one target.
type Estimation struct {
	TargetPath m.Path
	Total      int
	Capped     int
	ByOperator []OperatorCount
	Warnings   []m.GenerationWarning
}

type engine struct {
	fs       adapter.SourceFSAdapter
	goFiles  adapter.GoFileAdapter
	sandbox  Sandbox
	observer Observer
}

// NewEngine wires the engine from its adapters. A nil observer is replaced
// with a no-op.
func NewEngine(fs adapter.SourceFSAdapter, goFiles adapter.GoFileAdapter, sandbox Sandbox, observer Observer) Engine {
	if observer == nil {
		observer = noopObserver{}
	}

	return &engine{fs: fs, goFiles: goFiles, sandbox: sandbox, observer: observer}
}

func (e *engine) Run(ctx context.Context, args RunArgs) (*m.MutationReport, error) {
	args = withDefaults(args)

	module, mutants, warnings, err := e.prepare(args)
	if err != nil {
		return nil, err
	}

	e.observer.RunStarted(module.Path, len(mutants))
	slog.Info("mutation run started",
		"target", module.Path,
		"mutants", len(mutants),
		"timeout", args.Timeout,
	)

	results, err := e.execute(ctx, module, mutants, args)
	if err != nil {
		return nil, err
	}

	report := Aggregate(module, mutants, results, warnings, ReportMeta{
		OperatorFilter:  args.OperatorNames,
		FunctionFilter:  args.TargetFunctions,
		SelectionPolicy: selectionPolicy(args.Seed),
		MaxMutants:      args.MaxMutants,
	})

	e.observer.RunCompleted(report)
	slog.Info("mutation run completed",
		"target", module.Path,
		"killed", report.Killed,
		"survived", report.Survived,
		"timed_out", report.TimedOut,
	)

	return report, nil
}

func (e *engine) RunAll(ctx context.Context, targets []m.Path, args RunArgs, parallel int) ([]*m.MutationReport, error) {
	reports := make([]*m.MutationReport, len(targets))

	group, groupCtx := errgroup.WithContext(ctx)
	if parallel > 0 {
		group.SetLimit(parallel)
	}

	for i, target := range targets {
		i, target := i, target
		group.Go(func() error {
			targetArgs := args
			targetArgs.TargetPath = target

			report, err := e.Run(groupCtx, targetArgs)
			if err != nil {
				return fmt.Errorf("target %s: %w", target, err)
			}

			reports[i] = report

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (e *engine) Estimate(args RunArgs) (*Estimation, error) {
	args = withDefaults(args)
	// Estimation always reports the full candidate set.
	args.MaxMutants = 0
	args.Seed = nil

	module, mutants, warnings, err := e.prepare(args)
	if err != nil {
		return nil, err
	}

	capped := len(mutants)
	if capped > DefaultMaxMutants {
		capped = DefaultMaxMutants
	}

	estimation := &Estimation{
		TargetPath: module.Path,
		Total:      len(mutants),
		Capped:     capped,
		Warnings:   warnings,
	}

	counts := make(map[string]int)

	var order []string

	for _, mutant := range mutants {
		if _, seen := counts[mutant.Operator.Name]; !seen {
			order = append(order, mutant.Operator.Name)
		}

		counts[mutant.Operator.Name]++
	}

	for _, name := range order {
		estimation.ByOperator = append(estimation.ByOperator, OperatorCount{Operator: name, Count: counts[name]})
	}

	return estimation, nil
}

// prepare loads the target and generates its mutant set.
func (e *engine) prepare(args RunArgs) (*m.SourceModule, []m.Mutant, []m.GenerationWarning, error) {
	module, err := LoadModule(e.fs, e.goFiles, args.TargetPath)
	if err != nil {
		return nil, nil, nil, err
	}

	ops, err := selectOperators(args.OperatorNames)
	if err != nil {
		return nil, nil, nil, err
	}

	mutants, warnings, err := Generate(module, GenerateArgs{
		Operators:       ops,
		TargetFunctions: args.TargetFunctions,
		MaxMutants:      args.MaxMutants,
		Seed:            args.Seed,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return module, mutants, warnings, nil
}

// execute runs every mutant through the sandbox in generation order,
// spilling results to disk as they arrive. Any sandbox error is fatal: a
// harness that cannot execute mutants faithfully must not report a score.
func (e *engine) execute(ctx context.Context, module *m.SourceModule, mutants []m.Mutant, args RunArgs) ([]m.ExecutionResult, error) {
	spill, err := pkg.NewSpill[m.ExecutionResult]()
	if err != nil {
		return nil, fmt.Errorf("%w: create result spill: %v", ErrInfra, err)
	}

	defer func() {
		if closeErr := spill.Close(); closeErr != nil {
			slog.Warn("result spill cleanup failed", "error", closeErr)
		}
	}()

	for _, mutant := range mutants {
		result, err := e.sandbox.Run(ctx, module, mutant, args.TestCommand, args.Timeout)
		if err != nil {
			return nil, err
		}

		if err := spill.Append(result); err != nil {
			return nil, fmt.Errorf("%w: spill result: %v", ErrInfra, err)
		}

		e.observer.MutantTested(module.Path, result)
	}

	return spill.Drain()
}

func withDefaults(args RunArgs) RunArgs {
	if args.MaxMutants == 0 {
		args.MaxMutants = DefaultMaxMutants
	}

	if args.Timeout <= 0 {
		args.Timeout = DefaultTimeout
	}

	return args
}

func selectOperators(names []string) ([]operators.Operator, error) {
	if len(names) == 0 {
		return operators.Catalog(), nil
	}

	ops, err := operators.Select(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}

	return ops, nil
}

func selectionPolicy(seed *int64) string {
	if seed != nil {
		return fmt.Sprintf("seeded-sample(seed=%d)", *seed)
	}

	return "stable-order"
}

type noopObserver struct{}

func (noopObserver) RunStarted(m.Path, int)                 {}
func (noopObserver) MutantTested(m.Path, m.ExecutionResult) {}
func (noopObserver) RunCompleted(*m.MutationReport)         {}
