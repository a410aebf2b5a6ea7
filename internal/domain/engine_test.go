package domain

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gnaw.dev/pkg/gnaw/internal/adapter"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

type recordingObserver struct {
	mu        sync.Mutex
	started   int
	total     int
	tested    int
	completed int
}

func (r *recordingObserver) RunStarted(_ m.Path, totalMutants int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
	r.total += totalMutants
}

func (r *recordingObserver) MutantTested(_ m.Path, _ m.ExecutionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tested++
}

func (r *recordingObserver) RunCompleted(_ *m.MutationReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed++
}

func newTestEngine(observer Observer) Engine {
	fs := adapter.NewLocalSourceFSAdapter()
	runner := adapter.NewLocalTestRunnerAdapter()

	return NewEngine(fs, adapter.NewLocalGoFileAdapter(), NewSandbox(fs, runner), observer)
}

func TestEngineRunAllKilled(t *testing.T) {
	target := writeModuleDir(t, calcSource)
	observer := &recordingObserver{}

	report, err := newTestEngine(observer).Run(context.Background(), RunArgs{
		TargetPath: target,
		// Fails as soon as either original expression disappears.
		TestCommand:   "grep -q 'a + b' main.go && grep -q 'x \\* 2' main.go",
		OperatorNames: []string{"arithmetic-swap"},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Generated != 2 {
		t.Fatalf("generated = %d, want 2", report.Generated)
	}

	if report.Killed != 2 || report.Survived != 0 {
		t.Fatalf("killed=%d survived=%d, want 2/0", report.Killed, report.Survived)
	}

	if report.Score == nil || *report.Score != 1.0 {
		t.Fatalf("score = %v, want 1.0", report.Score)
	}

	if observer.started != 1 || observer.tested != 2 || observer.completed != 1 {
		t.Fatalf("observer saw started=%d tested=%d completed=%d", observer.started, observer.tested, observer.completed)
	}
}

func TestEngineRunAllSurvived(t *testing.T) {
	target := writeModuleDir(t, calcSource)

	report, err := newTestEngine(nil).Run(context.Background(), RunArgs{
		TargetPath:    target,
		TestCommand:   "true",
		OperatorNames: []string{"arithmetic-swap"},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.Survived != report.Generated || report.Killed != 0 {
		t.Fatalf("killed=%d survived=%d generated=%d", report.Killed, report.Survived, report.Generated)
	}

	if report.Score == nil || *report.Score != 0.0 {
		t.Fatalf("score = %v, want 0.0", report.Score)
	}

	if len(report.Survivors) != report.Generated {
		t.Fatalf("survivors = %d, want %d", len(report.Survivors), report.Generated)
	}
}

func TestEngineTimeoutsExcludedFromScore(t *testing.T) {
	target := writeModuleDir(t, calcSource)

	report, err := newTestEngine(nil).Run(context.Background(), RunArgs{
		TargetPath:    target,
		TestCommand:   "sleep 10",
		OperatorNames: []string{"logical-swap", "arithmetic-swap"},
		// logical-swap finds nothing in the fixture, so only the two
		// arithmetic mutants hang.
		Timeout: 200 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.TimedOut != report.Generated {
		t.Fatalf("timed_out = %d, want %d", report.TimedOut, report.Generated)
	}

	if report.Score != nil {
		t.Fatalf("score = %v, want nil with no scored mutants", *report.Score)
	}
}

func TestEngineRejectsUnknownOperator(t *testing.T) {
	target := writeModuleDir(t, calcSource)

	_, err := newTestEngine(nil).Run(context.Background(), RunArgs{
		TargetPath:    target,
		TestCommand:   "true",
		OperatorNames: []string{"chaos-monkey"},
	})
	if !errors.Is(err, ErrInput) {
		t.Fatalf("err = %v, want ErrInput", err)
	}
}

func TestEngineRunAllMultipleTargets(t *testing.T) {
	first := writeModuleDir(t, calcSource)
	second := writeModuleDir(t, `package main

func flag() bool {
	return true
}
`)

	observer := &recordingObserver{}

	reports, err := newTestEngine(observer).RunAll(context.Background(), []m.Path{first, second}, RunArgs{
		TestCommand: "true",
	}, 2)
	if err != nil {
		t.Fatalf("run all: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}

	// Report order follows target order regardless of completion order.
	if reports[0].TargetPath != first || reports[1].TargetPath != second {
		t.Fatalf("report order: %s, %s", reports[0].TargetPath, reports[1].TargetPath)
	}

	if observer.completed != 2 {
		t.Fatalf("observer completed = %d, want 2", observer.completed)
	}
}

func TestEngineRunAllPropagatesFailure(t *testing.T) {
	good := writeModuleDir(t, calcSource)

	_, err := newTestEngine(nil).RunAll(context.Background(), []m.Path{good, "missing.go"}, RunArgs{
		TestCommand: "true",
	}, 2)
	if !errors.Is(err, ErrInput) {
		t.Fatalf("err = %v, want ErrInput", err)
	}
}

func TestEngineEstimate(t *testing.T) {
	target := writeModuleDir(t, calcSource)

	estimation, err := newTestEngine(nil).Estimate(RunArgs{TargetPath: target})
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}

	if estimation.Total == 0 {
		t.Fatal("estimation found no mutants")
	}

	counted := 0
	for _, count := range estimation.ByOperator {
		counted += count.Count
	}

	if counted != estimation.Total {
		t.Fatalf("per-operator counts sum to %d, total is %d", counted, estimation.Total)
	}

	if estimation.Capped > DefaultMaxMutants || estimation.Capped > estimation.Total {
		t.Fatalf("capped = %d out of range (total %d)", estimation.Capped, estimation.Total)
	}
}

func TestEngineAppliesDefaults(t *testing.T) {
	args := withDefaults(RunArgs{})

	if args.MaxMutants != DefaultMaxMutants {
		t.Fatalf("max mutants default = %d", args.MaxMutants)
	}

	if args.Timeout != DefaultTimeout {
		t.Fatalf("timeout default = %s", args.Timeout)
	}
}

func TestSelectionPolicyLabel(t *testing.T) {
	if got := selectionPolicy(nil); got != "stable-order" {
		t.Fatalf("policy = %q", got)
	}

	seed := int64(7)
	if got := selectionPolicy(&seed); got != "seeded-sample(seed=7)" {
		t.Fatalf("policy = %q", got)
	}
}
