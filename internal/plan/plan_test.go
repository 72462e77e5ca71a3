package plan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(`
steps:
  - name: build
    run: go build ./...
  - name: test
    run: go test ./...
  - run: echo unnamed
`))
	require.NoError(t, err)

	require.Len(t, p.Steps, 3)
	assert.Equal(t, Step{Name: "build", Run: "go build ./..."}, p.Steps[0])
	assert.Equal(t, Step{Name: "test", Run: "go test ./..."}, p.Steps[1])
	assert.Equal(t, Step{Name: "", Run: "echo unnamed"}, p.Steps[2])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty document", "", ErrEmptyPlan},
		{"no steps", "steps: []\n", ErrEmptyPlan},
		{"missing command", "steps:\n  - name: a\n", ErrEmptyCommand},
		{"blank command", "steps:\n  - name: a\n    run: '  '\n", ErrEmptyCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader("steps:\n  - name: a\n    command: ls\n"))
	assert.ErrorContains(t, err, "failed to decode plan")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps:\n  - name: a\n    run: 'true'\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []Step{{Name: "a", Run: "true"}}, p.Steps)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open plan")
}

func TestFromArgs(t *testing.T) {
	p, err := FromArgs([]string{"fetch=curl -s example.com", "sleep 1", "=echo x", "a=b=c"})
	require.NoError(t, err)

	assert.Equal(t, []Step{
		{Name: "fetch", Run: "curl -s example.com"},
		{Name: "sleep 1", Run: "sleep 1"},
		{Name: "", Run: "echo x"},
		{Name: "a", Run: "b=c"},
	}, p.Steps)
}

func TestFromArgsErrors(t *testing.T) {
	_, err := FromArgs(nil)
	assert.ErrorIs(t, err, ErrEmptyPlan)

	_, err = FromArgs([]string{"name="})
	assert.ErrorIs(t, err, ErrEmptyCommand)
}
