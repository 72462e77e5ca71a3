package plan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"

	"github.com/MeKo-Tech/seqtimer/pkg/seqtimer"
)

// Executor runs a single step command.
type Executor interface {
	Execute(ctx context.Context, command string) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, command string) error

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, command string) error {
	return f(ctx, command)
}

// ShellExecutor runs commands through a shell such as "sh -c".
type ShellExecutor struct {
	Shell  []string
	Stdout io.Writer
	Stderr io.Writer
}

// Execute runs command with the configured shell.
func (e ShellExecutor) Execute(ctx context.Context, command string) error {
	if len(e.Shell) == 0 {
		return errors.New("no shell configured")
	}
	args := append(append([]string{}, e.Shell[1:]...), command)
	cmd := exec.CommandContext(ctx, e.Shell[0], args...) //nolint:gosec // G204: running user-provided steps is the point
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// StepError records a failed step.
type StepError struct {
	Index int
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%q) failed: %v", e.Index+1, e.Name, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Runner executes plans step by step.
type Runner struct {
	Executor        Executor
	ContinueOnError bool
	// Timeout bounds each step; zero means no limit.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run executes every step of p as an event of timer. The timer is finished
// before Run returns, also on failure, so its report covers every step that ran.
// Without ContinueOnError the first failure stops the run.
func (r *Runner) Run(ctx context.Context, p *Plan, timer *seqtimer.Timer) error {
	if err := p.Validate(); err != nil {
		return err
	}
	defer timer.Finish()

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var errs []error
	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}

		timer.Start(step.Name)
		logger.Debug("Running step", "index", i+1, "name", step.Name, "command", step.Run)

		if err := r.execute(ctx, step.Run); err != nil {
			stepErr := &StepError{Index: i, Name: step.Name, Err: err}
			if !r.ContinueOnError {
				logger.Error("Step failed", "index", i+1, "name", step.Name, "error", err)
				return stepErr
			}
			logger.Warn("Step failed, continuing", "index", i+1, "name", step.Name, "error", err)
			errs = append(errs, stepErr)
		}
	}

	timer.Finish()
	logger.Debug("Plan finished", "steps", len(p.Steps), "total", timer.Total(), "failed", len(errs))

	return errors.Join(errs...)
}

func (r *Runner) execute(ctx context.Context, command string) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	return r.Executor.Execute(ctx, command)
}
