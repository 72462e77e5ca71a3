package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Report output formats.
const (
	FormatText  = "text"
	FormatTable = "table"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

var (
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validFormats   = []string{FormatText, FormatTable}

	// Prometheus metric name charset
	metricNamespace = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Run: RunConfig{
			Shell:           "sh -c",
			ContinueOnError: false,
			Timeout:         0,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
		Metrics: MetricsConfig{
			Namespace: "seqtimer",
		},
		Demo: DemoConfig{
			First:  time.Millisecond,
			Second: 10 * time.Millisecond,
		},
	}
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("%w: log level %q (must be one of: %s)",
			ErrInvalidConfig, c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("%w: output format %q (must be one of: %s)",
			ErrInvalidConfig, c.Output.Format, strings.Join(validFormats, ", "))
	}

	if len(c.ShellArgs()) == 0 {
		return fmt.Errorf("%w: run.shell must not be empty", ErrInvalidConfig)
	}
	if c.Run.Timeout < 0 {
		return fmt.Errorf("%w: run.timeout %v (must not be negative)", ErrInvalidConfig, c.Run.Timeout)
	}

	if c.Metrics.Namespace != "" && !metricNamespace.MatchString(c.Metrics.Namespace) {
		return fmt.Errorf("%w: metrics.namespace %q", ErrInvalidConfig, c.Metrics.Namespace)
	}

	if c.Demo.First < 0 || c.Demo.Second < 0 {
		return fmt.Errorf("%w: demo durations must not be negative", ErrInvalidConfig)
	}

	return nil
}

// ShellArgs splits run.shell into the command and its leading arguments.
func (c *Config) ShellArgs() []string {
	return strings.Fields(c.Run.Shell)
}
