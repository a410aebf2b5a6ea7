package domain

import (
	"gnaw.dev/pkg/gnaw/internal/adapter"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// Classify maps one completed test-command run to a verdict. Timeouts win
// over exit codes: a killed process group reports a non-zero exit that says
// nothing about test quality.
func Classify(result adapter.CommandResult) m.Verdict {
	if result.TimedOut {
		return m.VerdictTimedOut
	}

	if result.ExitCode == 0 {
		return m.VerdictSurvived
	}

	return m.VerdictKilled
}
