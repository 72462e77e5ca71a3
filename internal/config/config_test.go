package config

import (
	"errors"
	"testing"
	"time"
)

const (
	infoLevel  = "info"
	debugLevel = "debug"
)

// TestDefaultConfig verifies that DefaultConfig returns expected values.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != infoLevel {
		t.Errorf("Expected log_level '%s', got %s", infoLevel, cfg.LogLevel)
	}
	if cfg.Verbose {
		t.Error("Expected verbose to be false")
	}
	if cfg.Run.Shell != "sh -c" {
		t.Errorf("Expected shell 'sh -c', got %s", cfg.Run.Shell)
	}
	if cfg.Run.ContinueOnError {
		t.Error("Expected continue_on_error to be false")
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Expected format '%s', got %s", FormatText, cfg.Output.Format)
	}
	if cfg.Metrics.Namespace != "seqtimer" {
		t.Errorf("Expected namespace 'seqtimer', got %s", cfg.Metrics.Namespace)
	}
	if cfg.Demo.First != time.Millisecond || cfg.Demo.Second != 10*time.Millisecond {
		t.Errorf("Unexpected demo durations: %v, %v", cfg.Demo.First, cfg.Demo.Second)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should be valid, got %v", err)
	}
}

// TestValidate tests every validation rule.
func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*Config)
		wantError bool
	}{
		{"defaults", func(*Config) {}, false},
		{"debug level", func(c *Config) { c.LogLevel = debugLevel }, false},
		{"invalid log level", func(c *Config) { c.LogLevel = "trace" }, true},
		{"table format", func(c *Config) { c.Output.Format = FormatTable }, false},
		{"invalid format", func(c *Config) { c.Output.Format = "json" }, true},
		{"empty format", func(c *Config) { c.Output.Format = "" }, true},
		{"custom shell", func(c *Config) { c.Run.Shell = "bash -lc" }, false},
		{"blank shell", func(c *Config) { c.Run.Shell = "   " }, true},
		{"timeout", func(c *Config) { c.Run.Timeout = time.Minute }, false},
		{"negative timeout", func(c *Config) { c.Run.Timeout = -time.Second }, true},
		{"empty namespace", func(c *Config) { c.Metrics.Namespace = "" }, false},
		{"invalid namespace", func(c *Config) { c.Metrics.Namespace = "seq-timer" }, true},
		{"negative demo duration", func(c *Config) { c.Demo.Second = -time.Millisecond }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.setup(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

// TestShellArgs tests splitting of the shell setting.
func TestShellArgs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Run.Shell = "  bash   -lc "

	args := cfg.ShellArgs()
	if len(args) != 2 || args[0] != "bash" || args[1] != "-lc" {
		t.Errorf("ShellArgs() = %q, want [bash -lc]", args)
	}
}
