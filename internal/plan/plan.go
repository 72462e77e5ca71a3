// Package plan runs a sequence of named shell steps and times each one as a
// seqtimer event.
package plan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyPlan is returned for a plan without steps.
	ErrEmptyPlan = errors.New("plan has no steps")
	// ErrEmptyCommand is returned for a step without a command.
	ErrEmptyCommand = errors.New("step has no command")
)

// Step is one named command of a plan.
type Step struct {
	Name string `yaml:"name" json:"name"`
	Run  string `yaml:"run" json:"run"`
}

// Plan is an ordered list of steps.
type Plan struct {
	Steps []Step `yaml:"steps" json:"steps"`
}

// Validate checks that the plan can be run. Step names are free-form;
// empty and repeated names are allowed.
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return ErrEmptyPlan
	}
	for i, step := range p.Steps {
		if strings.TrimSpace(step.Run) == "" {
			return fmt.Errorf("step %d (%q): %w", i+1, step.Name, ErrEmptyCommand)
		}
	}
	return nil
}

// Parse decodes a YAML plan.
func Parse(r io.Reader) (*Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPlan
		}
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads a YAML plan from path.
func LoadFile(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plan: %w", err)
	}
	defer func() { _ = f.Close() }()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// FromArgs builds a plan from NAME=COMMAND arguments. An argument without
// '=' uses the command itself as the step name.
func FromArgs(args []string) (*Plan, error) {
	p := &Plan{Steps: make([]Step, 0, len(args))}
	for _, arg := range args {
		name, command, found := strings.Cut(arg, "=")
		if !found {
			name, command = arg, arg
		}
		p.Steps = append(p.Steps, Step{Name: name, Run: command})
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
