package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gnaw.dev/pkg/gnaw/internal/adapter"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// Sandbox executes the test command against one mutant without ever writing
// to the original tree. Each run gets a fresh copy of the target's module
// root with the mutated file spliced in.
type Sandbox interface {
	Run(ctx context.Context, module *m.SourceModule, mutant m.Mutant, testCommand string, timeout time.Duration) (m.ExecutionResult, error)
}

type tempDirSandbox struct {
	fs     adapter.SourceFSAdapter
	runner adapter.TestRunnerAdapter
}

// NewSandbox constructs the temp-dir backed Sandbox.
func NewSandbox(fs adapter.SourceFSAdapter, runner adapter.TestRunnerAdapter) Sandbox {
	return &tempDirSandbox{fs: fs, runner: runner}
}

// Run materializes the mutant into an isolated copy of the module, runs the
// test command there and classifies the outcome. The original file is never
// modified; a hash mismatch after the run is an infrastructure failure
// because a concurrently edited target invalidates every pending verdict.
func (s *tempDirSandbox) Run(ctx context.Context, module *m.SourceModule, mutant m.Mutant, testCommand string, timeout time.Duration) (m.ExecutionResult, error) {
	infra := m.ExecutionResult{MutantID: mutant.ID, Verdict: m.VerdictInfraError}

	if err := ctx.Err(); err != nil {
		return infra, err
	}

	moduleRoot := s.fs.FindModuleRoot(module.Path)

	relTarget, err := s.fs.RelPath(moduleRoot, module.Path)
	if err != nil {
		return infra, fmt.Errorf("%w: resolve target inside module root: %v", ErrInfra, err)
	}

	tmpDir, err := s.fs.CreateTempDir("gnaw-sandbox-*")
	if err != nil {
		return infra, fmt.Errorf("%w: create sandbox dir: %v", ErrInfra, err)
	}

	defer func() {
		if rmErr := s.fs.RemoveAll(tmpDir); rmErr != nil {
			slog.Warn("sandbox cleanup failed", "dir", tmpDir, "error", rmErr)
		}
	}()

	if err := s.fs.CopyDir(moduleRoot, tmpDir); err != nil {
		return infra, fmt.Errorf("%w: copy module into sandbox: %v", ErrInfra, err)
	}

	mutatedPath := s.fs.JoinPath(string(tmpDir), string(relTarget))

	info, err := s.fs.FileInfo(module.Path)
	if err != nil {
		return infra, fmt.Errorf("%w: stat target: %v", ErrInfra, err)
	}

	if err := s.fs.WriteFile(mutatedPath, mutant.MutatedText, info.Mode()); err != nil {
		return infra, fmt.Errorf("%w: write mutated file: %v", ErrInfra, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmdResult, err := s.runner.RunCommand(runCtx, string(tmpDir), testCommand)
	if err != nil {
		return infra, fmt.Errorf("%w: spawn test command: %v", ErrInfra, err)
	}

	// A cancelled parent context is a stop request, not a timeout verdict.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return infra, ctxErr
	}

	if err := s.verifyOriginalIntact(module); err != nil {
		return infra, err
	}

	result := m.ExecutionResult{
		MutantID: mutant.ID,
		Verdict:  Classify(cmdResult),
		ExitCode: cmdResult.ExitCode,
		Duration: cmdResult.Duration,
	}

	if result.Verdict == m.VerdictSurvived {
		result.Output = cmdResult.Output
	}

	slog.Debug("mutant executed",
		"mutant", mutant.ID,
		"operator", mutant.Operator.Name,
		"verdict", result.Verdict,
		"duration", cmdResult.Duration,
	)

	return result, nil
}

func (s *tempDirSandbox) verifyOriginalIntact(module *m.SourceModule) error {
	hash, err := s.fs.HashFile(module.Path)
	if err != nil {
		return fmt.Errorf("%w: re-hash original %s: %v", ErrInfra, module.Path, err)
	}

	if hash != module.Hash {
		return fmt.Errorf("%w: target %s changed during the run", ErrInfra, module.Path)
	}

	return nil
}
