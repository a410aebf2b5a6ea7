package controller

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"gnaw.dev/pkg/gnaw/internal/domain"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

func newBufferedUI() (*SimpleUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return NewSimpleUI(cmd), buf
}

func TestSimpleUIProgressLines(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.RunStarted("pkg/calc.go", 4)
	ui.MutantTested("pkg/calc.go", m.ExecutionResult{
		MutantID: "deadbeef",
		Verdict:  m.VerdictKilled,
		Duration: 1500 * time.Millisecond,
	})

	out := buf.String()

	if !strings.Contains(out, "Testing 4 mutant(s) in pkg/calc.go") {
		t.Fatalf("missing run banner:\n%s", out)
	}

	if !strings.Contains(out, "deadbeef -> killed (1.50s)") {
		t.Fatalf("missing verdict line:\n%s", out)
	}
}

func TestSimpleUIDisplayReport(t *testing.T) {
	ui, buf := newBufferedUI()

	score := 0.5
	rate := 0.5

	ui.DisplayReport(&m.MutationReport{
		TargetPath: "pkg/calc.go",
		Generated:  2,
		Killed:     1,
		Survived:   1,
		Score:      &score,
		Operators: []m.OperatorStats{
			{Operator: "arithmetic-swap", Killed: 1, Survived: 1, KillRate: &rate},
		},
		Survivors: []m.Survivor{
			{
				MutantID:         "cafe0000",
				Operator:         "arithmetic-swap",
				Line:             4,
				Column:           11,
				OriginalFragment: "+",
				MutatedFragment:  "-",
				Diff:             "-\treturn a + b\n+\treturn a - b\n",
			},
		},
		Warnings: []m.GenerationWarning{
			{Kind: m.WarnNoCandidates, Operator: "string-mutation", Count: 1},
		},
	})

	out := buf.String()

	for _, want := range []string{
		"pkg/calc.go",
		"50.0%",
		"arithmetic-swap",
		"cafe0000",
		"return a - b",
		"no_candidates",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}
}

func TestSimpleUIDisplaysNilScoreAsNA(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.DisplayReport(&m.MutationReport{TargetPath: "x.go", Generated: 1, TimedOut: 1})

	if !strings.Contains(buf.String(), "n/a") {
		t.Fatalf("nil score should render as n/a:\n%s", buf.String())
	}
}

func TestSimpleUIDisplayEstimation(t *testing.T) {
	ui, buf := newBufferedUI()

	ui.DisplayEstimation(&domain.Estimation{
		TargetPath: "pkg/calc.go",
		Total:      80,
		Capped:     50,
		ByOperator: []domain.OperatorCount{
			{Operator: "arithmetic-swap", Count: 30},
			{Operator: "number-mutation", Count: 50},
		},
	})

	out := buf.String()

	for _, want := range []string{"arithmetic-swap", "30", "number-mutation", "80", "50 of 80"} {
		if !strings.Contains(out, want) {
			t.Errorf("estimation output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatScore(t *testing.T) {
	if got := formatScore(nil); got != "n/a" {
		t.Fatalf("formatScore(nil) = %q", got)
	}

	one := 1.0
	if got := formatScore(&one); got != "100.0%" {
		t.Fatalf("formatScore(1.0) = %q", got)
	}
}

func TestIsTTYOnBuffer(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Fatal("a buffer is not a terminal")
	}
}
