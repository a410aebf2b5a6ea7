package controller

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gnaw.dev/pkg/gnaw/internal/domain"
	m "gnaw.dev/pkg/gnaw/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	killedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	survivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI with a live progress display. The Bubble Tea program is
// started lazily on the first progress event and torn down by Close; the
// final report is rendered as plain tables after the program exits.
type TUI struct {
	output  io.Writer
	once    sync.Once
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, done: make(chan struct{})}
}

// RunStarted feeds the batch size into the progress display.
func (t *TUI) RunStarted(target m.Path, totalMutants int) {
	t.ensureStarted()
	t.program.Send(runStartedMsg{target: string(target), total: totalMutants})
}

// MutantTested advances the progress bar by one verdict.
func (t *TUI) MutantTested(_ m.Path, result m.ExecutionResult) {
	t.ensureStarted()
	t.program.Send(mutantTestedMsg{result: result})
}

// RunCompleted marks one target as finished.
func (t *TUI) RunCompleted(report *m.MutationReport) {
	t.ensureStarted()
	t.program.Send(runCompletedMsg{target: string(report.TargetPath)})
}

// Close shuts the live display down and waits for the terminal to be
// released before anything else writes to it.
func (t *TUI) Close() {
	if t.program == nil {
		return
	}

	t.program.Send(shutdownMsg{})
	<-t.done
}

// DisplayReport renders the final report once the live display is gone.
func (t *TUI) DisplayReport(report *m.MutationReport) {
	fmt.Fprintf(t.output, "\n%s\n", titleStyle.Render("Target: "+string(report.TargetPath)))
	fmt.Fprint(t.output, renderSummaryTable(report))

	if len(report.Operators) > 0 {
		fmt.Fprintf(t.output, "\n%s", renderOperatorTable(report.Operators))
	}

	for _, survivor := range report.Survivors {
		fmt.Fprintf(t.output, "\n%s %s\n",
			survivedStyle.Render("survived:"),
			fmt.Sprintf("%s %s at line %d", survivor.MutantID, survivor.Operator, survivor.Line))

		if survivor.Diff != "" {
			fmt.Fprintf(t.output, "%s\n", mutedStyle.Render(survivor.Diff))
		}
	}
}

// DisplayEstimation renders estimation counts as a static table.
func (t *TUI) DisplayEstimation(estimation *domain.Estimation) {
	fmt.Fprintf(t.output, "\n%s\n", titleStyle.Render("Target: "+string(estimation.TargetPath)))

	for _, count := range estimation.ByOperator {
		fmt.Fprintf(t.output, "  %-24s %d\n", count.Operator, count.Count)
	}

	fmt.Fprintf(t.output, "  %-24s %d\n", "total", estimation.Total)
}

func (t *TUI) ensureStarted() {
	t.once.Do(func() {
		t.program = tea.NewProgram(newRunModel(), tea.WithOutput(t.output))

		go func() {
			_, _ = t.program.Run()
			close(t.done)
		}()
	})
}

type runStartedMsg struct {
	target string
	total  int
}

type mutantTestedMsg struct {
	result m.ExecutionResult
}

type runCompletedMsg struct {
	target string
}

type shutdownMsg struct{}

// runModel tracks aggregate progress across every target in the batch.
type runModel struct {
	bar      progress.Model
	targets  []string
	total    int
	tested   int
	killed   int
	survived int
	timedOut int
	errored  int
	last     string
}

func newRunModel() runModel {
	return runModel{bar: progress.New(progress.WithDefaultGradient())}
}

func (rm runModel) Init() tea.Cmd {
	return nil
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runStartedMsg:
		rm.targets = append(rm.targets, msg.target)
		rm.total += msg.total

		return rm, nil

	case mutantTestedMsg:
		rm.tested++
		rm.last = fmt.Sprintf("%s -> %s", msg.result.MutantID, msg.result.Verdict)

		switch msg.result.Verdict {
		case m.VerdictKilled:
			rm.killed++
		case m.VerdictSurvived:
			rm.survived++
		case m.VerdictTimedOut:
			rm.timedOut++
		default:
			rm.errored++
		}

		return rm, rm.bar.SetPercent(rm.percent())

	case runCompletedMsg:
		return rm, nil

	case shutdownMsg:
		return rm, tea.Quit

	case progress.FrameMsg:
		barModel, cmd := rm.bar.Update(msg)
		if bar, ok := barModel.(progress.Model); ok {
			rm.bar = bar
		}

		return rm, cmd

	case tea.WindowSizeMsg:
		rm.bar.Width = msg.Width - 4
		return rm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return rm, tea.Quit
		}
	}

	return rm, nil
}

func (rm runModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("gnaw mutation testing"))
	b.WriteString("\n\n")

	for _, target := range rm.targets {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(target))
	}

	fmt.Fprintf(&b, "\n  %s\n\n", rm.bar.View())
	fmt.Fprintf(&b, "  %d/%d tested  %s  %s  %d timed out  %d errored\n",
		rm.tested, rm.total,
		killedStyle.Render(fmt.Sprintf("%d killed", rm.killed)),
		survivedStyle.Render(fmt.Sprintf("%d survived", rm.survived)),
		rm.timedOut, rm.errored)

	if rm.last != "" {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render(rm.last))
	}

	return b.String()
}

func (rm runModel) percent() float64 {
	if rm.total == 0 {
		return 0
	}

	return float64(rm.tested) / float64(rm.total)
}
