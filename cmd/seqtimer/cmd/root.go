package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/seqtimer/internal/config"
	"github.com/MeKo-Tech/seqtimer/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Configuration file path.
	cfgFile string
	// Flags bound to configuration keys, see bindFlag.
	flagBindings []flagBinding
)

type flagBinding struct {
	key  string
	flag *pflag.Flag
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "seqtimer",
	Short: "Time a sequence of named events and report where the time went",
	Long: `seqtimer measures the wall-clock duration of named, sequential events and
prints a breakdown sorted by duration, most expensive first, with the share
of each event in the total.

Starting an event finishes the previous one, so a sequence of steps needs
no explicit stop calls.

Examples:
  seqtimer demo
  seqtimer run "fetch=git fetch" "build=go build ./..." "test=go test ./..."
  seqtimer run --plan steps.yaml --format table`,
	Version:      version.String(),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}

		setupLogging(cmd, cfg)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
// This allows tests to execute commands without calling os.Exit().
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	// Global flags that apply to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/seqtimer, /etc/seqtimer)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	// Bind flags to viper
	bindFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	bindFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// bindFlag binds flag to a configuration key of the global viper instance.
func bindFlag(key string, flag *pflag.Flag) {
	flagBindings = append(flagBindings, flagBinding{key: key, flag: flag})
	_ = viper.BindPFlag(key, flag)
}

// rebindFlags binds all flags again, e.g. after viper.Reset.
func rebindFlags() {
	for _, b := range flagBindings {
		_ = viper.BindPFlag(b.key, b.flag)
	}
}

// setupLogging installs a structured logger on stderr; stdout is reserved for reports.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	var logLevel slog.Level

	// Check verbose flag first for backward compatibility
	if cfg.Verbose {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			logLevel = slog.LevelDebug
		case "warn":
			logLevel = slog.LevelWarn
		case "error":
			logLevel = slog.LevelError
		default:
			logLevel = slog.LevelInfo
		}
	}

	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// GetConfig loads the configuration, including values from bound CLI flags.
func GetConfig() (*config.Config, error) {
	loader := GetConfigLoader()

	cfg, err := loader.LoadWithFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return cfg, nil
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}
