package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "seqtimer"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "SEQTIMER"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	// Use the global viper instance to ensure flag bindings work
	return &Loader{v: viper.GetViper()}
}

// NewLoaderWithViper creates a loader backed by v.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// Load loads configuration from files, environment variables, and sets defaults.
// A missing configuration file is not an error. Only files with a known
// extension (seqtimer.yaml, seqtimer.json, ...) are considered, so a binary
// named seqtimer in a search path is never read as configuration.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.addConfigPaths()

	return l.load(false)
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}
	l.v.SetConfigFile(configFile)

	return l.load(true)
}

func (l *Loader) load(requireFile bool) (*Config, error) {
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if requireFile || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, continue with defaults and env vars
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Get returns a value from the configuration.
func (l *Loader) Get(key string) any {
	return l.v.Get(key)
}

// Set sets a value in the configuration.
func (l *Loader) Set(key string, value any) {
	l.v.Set(key, value)
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// GetViper returns the underlying viper instance for advanced usage.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// ResolvedYAML renders every resolved setting as YAML. Durations are written
// in time.Duration notation so the output can be read back.
func (l *Loader) ResolvedYAML() ([]byte, error) {
	out, err := yaml.Marshal(readableSettings(l.v.AllSettings()))
	if err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}
	return out, nil
}

func readableSettings(settings map[string]any) map[string]any {
	for key, value := range settings {
		switch v := value.(type) {
		case map[string]any:
			settings[key] = readableSettings(v)
		case time.Duration:
			settings[key] = v.String()
		}
	}
	return settings
}

// addConfigPaths adds the standard configuration search paths.
func (l *Loader) addConfigPaths() {
	for _, path := range GetConfigSearchPaths() {
		l.v.AddConfigPath(path)
	}
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()

	// Replace dots and dashes with underscores in env var names
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("run.shell", defaults.Run.Shell)
	l.v.SetDefault("run.continue_on_error", defaults.Run.ContinueOnError)
	l.v.SetDefault("run.timeout", defaults.Run.Timeout)

	l.v.SetDefault("output.format", defaults.Output.Format)

	l.v.SetDefault("metrics.textfile", defaults.Metrics.Textfile)
	l.v.SetDefault("metrics.namespace", defaults.Metrics.Namespace)

	l.v.SetDefault("demo.first", defaults.Demo.First)
	l.v.SetDefault("demo.second", defaults.Demo.Second)
}

// GetConfigSearchPaths returns the paths where configuration files are searched.
func GetConfigSearchPaths() []string {
	paths := []string{"."}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home)
	}

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		paths = append(paths, filepath.Join(configDir, "seqtimer"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "seqtimer"))
	}

	return append(paths, "/etc/seqtimer")
}
