package cmd

import (
	"time"

	"github.com/MeKo-Tech/seqtimer/pkg/seqtimer"
	"github.com/spf13/cobra"
)

// demoCmd represents the demo command.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Time two sleeping events and print the report",
	Long: `Run the package example: start "the first event", sleep, start
"the second event" (which finishes the first), sleep again and print the
report. The output looks like:

  the second event | 10078204 ns |  88%
   the first event |  1265423 ns |  11%`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}

		timer := seqtimer.New(seqtimer.WithOutput(cmd.OutOrStdout()))

		timer.Start("the first event")
		time.Sleep(cfg.Demo.First)

		// finishes the first event and starts the second one
		timer.Start("the second event")
		time.Sleep(cfg.Demo.Second)

		timer.Print()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().Duration("first", time.Millisecond, "how long the first event sleeps")
	demoCmd.Flags().Duration("second", 10*time.Millisecond, "how long the second event sleeps")

	bindFlag("demo.first", demoCmd.Flags().Lookup("first"))
	bindFlag("demo.second", demoCmd.Flags().Lookup("second"))
}
