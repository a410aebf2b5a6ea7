package model

import "time"

// WarningKind names a non-fatal condition observed during generation.
type WarningKind string

const (
	// WarnEquivalentDropped counts mutants whose rendered text was
	// byte-identical to the original and were excluded before execution.
	WarnEquivalentDropped WarningKind = "equivalent_dropped"
	// WarnDuplicateDropped counts mutants collapsed by mutated-text hash.
	WarnDuplicateDropped WarningKind = "duplicate_dropped"
	// WarnNoCandidates marks an enabled operator that matched nothing.
	WarnNoCandidates WarningKind = "no_candidates"
	// WarnHangGuardSkipped counts forced-predicate mutants skipped because
	// the predicate was already the forced literal.
	WarnHangGuardSkipped WarningKind = "hang_guard_skipped"
)

// GenerationWarning is recorded in the report; never fatal.
type GenerationWarning struct {
	Kind     WarningKind `json:"kind"`
	Operator string      `json:"operator,omitempty"`
	Count    int         `json:"count"`
	Detail   string      `json:"detail,omitempty"`
}

// OperatorStats breaks verdicts down for one operator.
type OperatorStats struct {
	Operator string   `json:"operator"`
	Killed   int      `json:"killed"`
	Survived int      `json:"survived"`
	TimedOut int      `json:"timed_out"`
	Errored  int      `json:"errored"`
	KillRate *float64 `json:"kill_rate"`
}

// FunctionStats breaks scored verdicts down per target function.
type FunctionStats struct {
	Function string   `json:"function"`
	Killed   int      `json:"killed"`
	Survived int      `json:"survived"`
	KillRate *float64 `json:"kill_rate"`
}

// Survivor describes a mutant the test suite failed to detect, with enough
// context for downstream review.
type Survivor struct {
	MutantID         string `json:"mutant_id"`
	Operator         string `json:"operator"`
	Function         string `json:"function,omitempty"`
	Line             int    `json:"line"`
	Column           int    `json:"column"`
	OriginalFragment string `json:"original_fragment"`
	MutatedFragment  string `json:"mutated_fragment"`
	Diff             string `json:"diff,omitempty"`
}

// MutationReport is the write-once artifact of a single run. Score is
// killed/(killed+survived) and nil when that denominator is zero.
type MutationReport struct {
	TargetPath      Path                `json:"target_path"`
	TargetHash      string              `json:"target_hash"`
	OperatorFilter  []string            `json:"operator_filter,omitempty"`
	FunctionFilter  []string            `json:"function_filter,omitempty"`
	SelectionPolicy string              `json:"selection_policy"`
	MaxMutants      int                 `json:"max_mutants"`
	Generated       int                 `json:"generated"`
	Killed          int                 `json:"killed"`
	Survived        int                 `json:"survived"`
	TimedOut        int                 `json:"timed_out"`
	Errored         int                 `json:"errored"`
	Score           *float64            `json:"score"`
	Results         []ExecutionResult   `json:"results"`
	Operators       []OperatorStats     `json:"operators"`
	Functions       []FunctionStats     `json:"functions,omitempty"`
	Survivors       []Survivor          `json:"survivors,omitempty"`
	Warnings        []GenerationWarning `json:"warnings,omitempty"`
	GeneratedAt     time.Time           `json:"generated_at"`
}
