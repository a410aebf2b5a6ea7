package domain

import (
	"testing"

	"gnaw.dev/pkg/gnaw/internal/adapter"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		result adapter.CommandResult
		want   m.Verdict
	}{
		{"tests passed", adapter.CommandResult{ExitCode: 0}, m.VerdictSurvived},
		{"tests failed", adapter.CommandResult{ExitCode: 1}, m.VerdictKilled},
		{"build failure exit code", adapter.CommandResult{ExitCode: 2}, m.VerdictKilled},
		{"signal exit", adapter.CommandResult{ExitCode: -1}, m.VerdictKilled},
		{"timeout wins over exit code", adapter.CommandResult{ExitCode: -1, TimedOut: true}, m.VerdictTimedOut},
		{"timeout with zero exit", adapter.CommandResult{ExitCode: 0, TimedOut: true}, m.VerdictTimedOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.result); got != tt.want {
				t.Fatalf("Classify(%+v) = %s, want %s", tt.result, got, tt.want)
			}
		})
	}
}

func TestVerdictScored(t *testing.T) {
	scored := map[m.Verdict]bool{
		m.VerdictKilled:     true,
		m.VerdictSurvived:   true,
		m.VerdictTimedOut:   false,
		m.VerdictBuildError: false,
		m.VerdictInfraError: false,
	}

	for verdict, want := range scored {
		if verdict.Scored() != want {
			t.Errorf("%s.Scored() = %v, want %v", verdict, verdict.Scored(), want)
		}
	}
}
