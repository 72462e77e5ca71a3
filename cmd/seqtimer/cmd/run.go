package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/MeKo-Tech/seqtimer/internal/config"
	"github.com/MeKo-Tech/seqtimer/internal/metrics"
	"github.com/MeKo-Tech/seqtimer/internal/plan"
	"github.com/MeKo-Tech/seqtimer/internal/tableview"
	"github.com/MeKo-Tech/seqtimer/pkg/seqtimer"
	"github.com/spf13/cobra"
)

var planFile string

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run [NAME=COMMAND ...]",
	Short: "Run shell steps one after another and report their durations",
	Long: `Run a sequence of shell commands, timing each one as a named event, and
print the report when the last step is done.

Steps come either from the arguments (NAME=COMMAND, or just COMMAND to use the
command as its name) or from a YAML plan:

  steps:
    - name: build
      run: go build ./...
    - name: test
      run: go test ./...

Step output goes to stderr so that stdout only carries the report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}

		p, err := loadPlan(args)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		runner := &plan.Runner{
			Executor: plan.ShellExecutor{
				Shell:  cfg.ShellArgs(),
				Stdout: cmd.ErrOrStderr(),
				Stderr: cmd.ErrOrStderr(),
			},
			ContinueOnError: cfg.Run.ContinueOnError,
			Timeout:         cfg.Run.Timeout,
			Logger:          slog.Default(),
		}

		timer := seqtimer.New(seqtimer.WithOutput(cmd.OutOrStdout()))
		runErr := runner.Run(ctx, p, timer)

		// Report whatever ran, also when a step failed
		if err := writeReport(cmd, cfg, timer); err != nil {
			return errors.Join(runErr, err)
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&planFile, "plan", "", "YAML file with the steps to run")
	runCmd.Flags().String("shell", "sh -c", "shell used to run each step")
	runCmd.Flags().Bool("continue-on-error", false, "keep running the remaining steps after a failure")
	runCmd.Flags().Duration("timeout", 0, "time limit per step (0 = none)")
	runCmd.Flags().String("format", config.FormatText, "report format (text, table)")
	runCmd.Flags().String("metrics-textfile", "", "also write the report as Prometheus metrics to this file")

	bindFlag("run.shell", runCmd.Flags().Lookup("shell"))
	bindFlag("run.continue_on_error", runCmd.Flags().Lookup("continue-on-error"))
	bindFlag("run.timeout", runCmd.Flags().Lookup("timeout"))
	bindFlag("output.format", runCmd.Flags().Lookup("format"))
	bindFlag("metrics.textfile", runCmd.Flags().Lookup("metrics-textfile"))
}

func loadPlan(args []string) (*plan.Plan, error) {
	switch {
	case planFile != "" && len(args) > 0:
		return nil, errors.New("use either --plan or step arguments, not both")
	case planFile != "":
		return plan.LoadFile(planFile)
	case len(args) == 0:
		return nil, errors.New("no steps given: pass NAME=COMMAND arguments or --plan")
	default:
		return plan.FromArgs(args)
	}
}

func writeReport(cmd *cobra.Command, cfg *config.Config, timer *seqtimer.Timer) error {
	switch cfg.Output.Format {
	case config.FormatTable:
		if err := tableview.Render(cmd.OutOrStdout(), timer.Report()); err != nil {
			return err
		}
	default:
		timer.Print()
	}

	if cfg.Metrics.Textfile == "" {
		return nil
	}

	exporter := metrics.NewExporter(cfg.Metrics.Namespace)
	exporter.Observe(timer.Report())
	if err := exporter.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	slog.Debug("Metrics written", "path", cfg.Metrics.Textfile)
	return nil
}
