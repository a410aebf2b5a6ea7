package model

import "time"

// Verdict classifies the outcome of running the test suite against one mutant.
type Verdict string

const (
	// VerdictKilled means the test suite detected the mutation, including
	// mutants that broke compilation (killed by construction).
	VerdictKilled Verdict = "killed"
	// VerdictSurvived means the tests still passed against mutated code.
	VerdictSurvived Verdict = "survived"
	// VerdictTimedOut means the test command exceeded its wall-clock deadline.
	VerdictTimedOut Verdict = "timed_out"
	// VerdictBuildError marks a mutant that could not be materialized for
	// execution at all.
	VerdictBuildError Verdict = "build_error"
	// VerdictInfraError marks a failure of the harness itself; fatal to the run.
	VerdictInfraError Verdict = "infra_error"
)

// Scored reports whether the verdict participates in the mutation score
// denominator. Timeouts and errors are reported but excluded by default.
func (v Verdict) Scored() bool {
	return v == VerdictKilled || v == VerdictSurvived
}

// ExecutionResult is the immutable record of one test-command run against
// one mutant.
type ExecutionResult struct {
	MutantID string        `json:"mutant_id"`
	Verdict  Verdict       `json:"verdict"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration_ns"`
	Output   string        `json:"captured_output,omitempty"`
}
