package adapter

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// maxCapturedOutput bounds the combined stdout/stderr kept per test run so a
// chatty suite cannot balloon the report.
const maxCapturedOutput = 64 * 1024

// killGracePeriod is how long a timed-out child gets between context
// cancellation and the whole process group being reaped.
const killGracePeriod = 5 * time.Second

// CommandResult captures one completed test-command invocation.
type CommandResult struct {
	ExitCode int
	TimedOut bool
	Duration time.Duration
	Output   string
}

// TestRunnerAdapter abstracts test execution for mutation testing.
type TestRunnerAdapter interface {
	// RunCommand executes a shell command string inside workDir under the
	// deadline already attached to ctx. A non-nil error means the command
	// could not even be started; test failures are not errors.
	RunCommand(ctx context.Context, workDir string, command string) (CommandResult, error)
}

// LocalTestRunnerAdapter runs commands through the system shell.
type LocalTestRunnerAdapter struct {
	shell string
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter using sh.
func NewLocalTestRunnerAdapter() *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{shell: "sh"}
}

// RunCommand executes the command and classifies timeouts via ctx. The child
// runs in its own process group; on deadline the whole group is killed so no
// orphaned process outlives the sandbox it was reading from.
func (a *LocalTestRunnerAdapter) RunCommand(ctx context.Context, workDir string, command string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, a.shell, "-c", command)
	cmd.Dir = workDir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.WaitDelay = killGracePeriod
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		// Negative pid targets the process group.
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	var out boundedBuffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	start := time.Now()

	if err := cmd.Start(); err != nil {
		return CommandResult{}, err
	}

	err := cmd.Wait()
	result := CommandResult{
		Duration: time.Since(start),
		Output:   out.String(),
		TimedOut: errors.Is(ctx.Err(), context.DeadlineExceeded),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	return result, nil
}

// boundedBuffer keeps at most maxCapturedOutput bytes and silently drops the
// rest. Safe for the concurrent writes cmd.Stdout/Stderr sharing implies.
type boundedBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if room := maxCapturedOutput - len(b.buf); room > 0 {
		if len(p) > room {
			b.buf = append(b.buf, p[:room]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}

	return len(p), nil
}

func (b *boundedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return string(b.buf)
}
