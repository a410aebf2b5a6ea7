package controller

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"gnaw.dev/pkg/gnaw/internal/domain"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

// SimpleUI implements UI with line-oriented output through the cobra
// command's writer. Suitable for CI logs and piped output.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// RunStarted announces the mutant batch for one target.
func (s *SimpleUI) RunStarted(target m.Path, totalMutants int) {
	s.printf("Testing %d mutant(s) in %s\n", totalMutants, target)
}

// MutantTested prints one verdict line as it arrives.
func (s *SimpleUI) MutantTested(_ m.Path, result m.ExecutionResult) {
	s.printf("  %s -> %s (%.2fs)\n", result.MutantID, result.Verdict, result.Duration.Seconds())
}

// RunCompleted is a no-op; the report is rendered by DisplayReport once it
// has been persisted.
func (s *SimpleUI) RunCompleted(_ *m.MutationReport) {}

// Close finalizes the UI (no-op for SimpleUI).
func (s *SimpleUI) Close() {}

// DisplayReport renders the summary, the per-operator breakdown and every
// surviving mutant's diff.
func (s *SimpleUI) DisplayReport(report *m.MutationReport) {
	s.printf("\nTarget: %s\n", report.TargetPath)
	s.printf("%s", renderSummaryTable(report))

	if len(report.Operators) > 0 {
		s.printf("\n%s", renderOperatorTable(report.Operators))
	}

	for _, warning := range report.Warnings {
		if warning.Operator != "" {
			s.printf("warning: %s (%s)\n", warning.Kind, warning.Operator)
		} else {
			s.printf("warning: %s x%d\n", warning.Kind, warning.Count)
		}
	}

	if len(report.Survivors) > 0 {
		s.printf("\nSurviving mutants:\n")

		for _, survivor := range report.Survivors {
			s.printf("  %s %s at line %d, col %d: %q -> %q\n",
				survivor.MutantID, survivor.Operator,
				survivor.Line, survivor.Column,
				survivor.OriginalFragment, survivor.MutatedFragment)

			if survivor.Diff != "" {
				s.printf("%s\n", survivor.Diff)
			}
		}
	}
}

// DisplayEstimation renders the would-be mutant counts per operator.
func (s *SimpleUI) DisplayEstimation(estimation *domain.Estimation) {
	s.printf("\nTarget: %s\n", estimation.TargetPath)

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Operator", "Mutants"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, count := range estimation.ByOperator {
		table.Append([]string{count.Operator, fmt.Sprintf("%d", count.Count)})
	}

	table.SetFooter([]string{"Total", fmt.Sprintf("%d", estimation.Total)})
	table.Render()

	s.printf("%s", buf.String())

	if estimation.Total > estimation.Capped {
		s.printf("Default cap would select %d of %d mutants.\n", estimation.Capped, estimation.Total)
	}
}

func renderSummaryTable(report *m.MutationReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Generated", "Killed", "Survived", "Timed Out", "Errored", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	table.Append([]string{
		fmt.Sprintf("%d", report.Generated),
		fmt.Sprintf("%d", report.Killed),
		fmt.Sprintf("%d", report.Survived),
		fmt.Sprintf("%d", report.TimedOut),
		fmt.Sprintf("%d", report.Errored),
		formatScore(report.Score),
	})

	table.Render()

	return buf.String()
}

func renderOperatorTable(stats []m.OperatorStats) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Operator", "Killed", "Survived", "Timed Out", "Errored", "Kill Rate"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, stat := range stats {
		table.Append([]string{
			stat.Operator,
			fmt.Sprintf("%d", stat.Killed),
			fmt.Sprintf("%d", stat.Survived),
			fmt.Sprintf("%d", stat.TimedOut),
			fmt.Sprintf("%d", stat.Errored),
			formatScore(stat.KillRate),
		})
	}

	table.Render()

	return buf.String()
}

// formatScore renders a nil score as n/a rather than a misleading number.
func formatScore(score *float64) string {
	if score == nil {
		return "n/a"
	}

	return fmt.Sprintf("%.1f%%", *score*100)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
