package config

import "time"

// Config represents the complete configuration for the seqtimer CLI.
// It is loaded from configuration files, environment variables and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Step runner configuration (for run command)
	Run RunConfig `mapstructure:"run" yaml:"run" json:"run"`

	// Report output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Prometheus text-file export
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics" json:"metrics"`

	// Demo command configuration
	Demo DemoConfig `mapstructure:"demo" yaml:"demo" json:"demo"`
}

// RunConfig contains settings for running timed steps.
type RunConfig struct {
	Shell           string        `mapstructure:"shell" yaml:"shell" json:"shell"`
	ContinueOnError bool          `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

// OutputConfig contains report formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// MetricsConfig contains Prometheus export settings.
type MetricsConfig struct {
	Textfile  string `mapstructure:"textfile" yaml:"textfile" json:"textfile"`
	Namespace string `mapstructure:"namespace" yaml:"namespace" json:"namespace"`
}

// DemoConfig contains the event lengths of the demo command.
type DemoConfig struct {
	First  time.Duration `mapstructure:"first" yaml:"first" json:"first"`
	Second time.Duration `mapstructure:"second" yaml:"second" json:"second"`
}
