package domain

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"gnaw.dev/pkg/gnaw/internal/adapter"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// firstArithmeticMutant builds the a+b -> a-b mutant for the calc fixture.
func firstArithmeticMutant(t *testing.T, module *m.SourceModule) m.Mutant {
	t.Helper()

	mutants, _, err := Generate(module, GenerateArgs{Operators: mustSelect(t, "arithmetic-swap")})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(mutants) == 0 {
		t.Fatal("no arithmetic mutants in fixture")
	}

	return mutants[0]
}

func newTestSandbox() Sandbox {
	return NewSandbox(adapter.NewLocalSourceFSAdapter(), adapter.NewLocalTestRunnerAdapter())
}

func TestSandboxKillsDetectedMutant(t *testing.T) {
	module := loadTestModule(t, calcSource)
	mutant := firstArithmeticMutant(t, module)

	// Stands in for a real test suite: fails when the addition is gone.
	testCommand := "grep -q 'a + b' main.go"

	result, err := newTestSandbox().Run(context.Background(), module, mutant, testCommand, 10*time.Second)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Verdict != m.VerdictKilled {
		t.Fatalf("verdict = %s, want killed", result.Verdict)
	}

	if result.MutantID != mutant.ID {
		t.Fatalf("result attributed to %s, want %s", result.MutantID, mutant.ID)
	}
}

func TestSandboxSurvivesUndetectedMutant(t *testing.T) {
	module := loadTestModule(t, calcSource)
	mutant := firstArithmeticMutant(t, module)

	result, err := newTestSandbox().Run(context.Background(), module, mutant, "true", 10*time.Second)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Verdict != m.VerdictSurvived {
		t.Fatalf("verdict = %s, want survived", result.Verdict)
	}
}

func TestSandboxTimesOutHangingCommand(t *testing.T) {
	module := loadTestModule(t, calcSource)
	mutant := firstArithmeticMutant(t, module)

	result, err := newTestSandbox().Run(context.Background(), module, mutant, "sleep 10", 200*time.Millisecond)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if result.Verdict != m.VerdictTimedOut {
		t.Fatalf("verdict = %s, want timed_out", result.Verdict)
	}
}

func TestSandboxNeverTouchesOriginal(t *testing.T) {
	module := loadTestModule(t, calcSource)
	mutant := firstArithmeticMutant(t, module)

	before, err := os.ReadFile(string(module.Path))
	if err != nil {
		t.Fatalf("read original: %v", err)
	}

	sandbox := newTestSandbox()

	// Exercise both a passing and a failing command against the same target.
	for _, command := range []string{"true", "grep -q 'a + b' main.go"} {
		if _, err := sandbox.Run(context.Background(), module, mutant, command, 10*time.Second); err != nil {
			t.Fatalf("run %q: %v", command, err)
		}
	}

	after, err := os.ReadFile(string(module.Path))
	if err != nil {
		t.Fatalf("read original after runs: %v", err)
	}

	if !bytes.Equal(before, after) {
		t.Fatal("original file changed during sandbox runs")
	}
}

func TestSandboxReportsExternalTargetChangeAsInfra(t *testing.T) {
	module := loadTestModule(t, calcSource)
	mutant := firstArithmeticMutant(t, module)

	// Concurrent edit between load and execution.
	if err := os.WriteFile(string(module.Path), []byte("package main\n"), 0o600); err != nil {
		t.Fatalf("overwrite target: %v", err)
	}

	result, err := newTestSandbox().Run(context.Background(), module, mutant, "true", 10*time.Second)
	if !errors.Is(err, ErrInfra) {
		t.Fatalf("err = %v, want ErrInfra", err)
	}

	if result.Verdict != m.VerdictInfraError {
		t.Fatalf("verdict = %s, want infra_error", result.Verdict)
	}
}

type failingRunner struct{}

func (failingRunner) RunCommand(context.Context, string, string) (adapter.CommandResult, error) {
	return adapter.CommandResult{}, errors.New("shell not found")
}

func TestSandboxSpawnFailureIsInfra(t *testing.T) {
	module := loadTestModule(t, calcSource)
	mutant := firstArithmeticMutant(t, module)

	sandbox := NewSandbox(adapter.NewLocalSourceFSAdapter(), failingRunner{})

	result, err := sandbox.Run(context.Background(), module, mutant, "true", 10*time.Second)
	if !errors.Is(err, ErrInfra) {
		t.Fatalf("err = %v, want ErrInfra", err)
	}

	if result.Verdict != m.VerdictInfraError {
		t.Fatalf("verdict = %s, want infra_error", result.Verdict)
	}
}

func TestSandboxHonorsCancelledContext(t *testing.T) {
	module := loadTestModule(t, calcSource)
	mutant := firstArithmeticMutant(t, module)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestSandbox().Run(ctx, module, mutant, "true", 10*time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
