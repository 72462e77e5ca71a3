package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRunCommandArgs(t *testing.T) {
	requireShell(t)

	stdout, stderr, err := executeCommandAndCaptureOutput(t, "run", "quick=true", "slow=sleep 0.05", "say=echo step-output")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(strings.TrimLeft(lines[0], " "), "slow | "), "got %q", lines[0])
	assert.NotContains(t, stdout, "step-output")
	assert.Contains(t, stderr, "step-output")
}

func TestRunCommandPlanFile(t *testing.T) {
	requireShell(t)

	planPath := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(planPath, []byte(`
steps:
  - name: one
    run: "true"
  - name: two
    run: "true"
`), 0o644))

	stdout, _, err := executeCommandAndCaptureOutput(t, "run", "--plan", planPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "one | ")
	assert.Contains(t, stdout, "two | ")
}

func TestRunCommandFailingStep(t *testing.T) {
	requireShell(t)

	stdout, _, err := executeCommandAndCaptureOutput(t, "run", "ok=true", "bad=exit 4", "never=true")
	require.Error(t, err)

	assert.Contains(t, err.Error(), `step 2 ("bad") failed`)
	// Steps that ran are still reported, "never" did not start and does not widen the names
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	prefixes := []string{lines[0][:6], lines[1][:6]}
	assert.ElementsMatch(t, []string{" ok | ", "bad | "}, prefixes)
	assert.NotContains(t, stdout, "never")
}

func TestRunCommandContinueOnError(t *testing.T) {
	requireShell(t)

	stdout, _, err := executeCommandAndCaptureOutput(t, "run", "--continue-on-error", "bad=false", "after=true")
	require.Error(t, err)

	assert.Contains(t, stdout, "after | ")
}

func TestRunCommandTableFormat(t *testing.T) {
	requireShell(t)

	stdout, _, err := executeCommandAndCaptureOutput(t, "run", "--format", "table", "only=true")
	require.NoError(t, err)

	assert.Contains(t, stdout, "only")
	assert.Contains(t, stdout, "100%")
	assert.NotContains(t, stdout, " ns | ")
}

func TestRunCommandMetricsTextfile(t *testing.T) {
	requireShell(t)

	metricsPath := filepath.Join(t.TempDir(), "seqtimer.prom")
	_, _, err := executeCommandAndCaptureOutput(t, "run", "--metrics-textfile", metricsPath, "only=true")
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `seqtimer_event_duration_seconds{event="only",rank="1"}`)
	assert.Contains(t, string(data), "seqtimer_unfinished_events 0")
}

func TestRunCommandInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no steps", []string{"run"}, "no steps given"},
		{"plan and args", []string{"run", "--plan", "plan.yaml", "a=true"}, "not both"},
		{"missing plan", []string{"run", "--plan", "/nonexistent/plan.yaml"}, "failed to open plan"},
		{"empty command", []string{"run", "a="}, "step has no command"},
		{"bad format", []string{"run", "--format", "xml", "a=true"}, "output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommandAndCaptureOutput(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
