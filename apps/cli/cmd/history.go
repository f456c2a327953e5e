package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/abdul-hamid-achik/testpilot/packages/core/config"
	"github.com/abdul-hamid-achik/testpilot/packages/history"
	"github.com/spf13/cobra"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded past test runs",
	Long: `Show the most recent test runs from the local history database:
when they ran, the selection mode, browsers, seed and outcome.

A randomized run can be reproduced with the recorded seed:
  testpilot run --randomize --seed <seed>`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(projectConfigFlag)
		if err != nil {
			return err
		}

		if _, err := os.Stat(cfg.HistoryDB); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
			return nil
		}

		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(historyLimitFlag)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tMODE\tBROWSERS\tSEED\tFILES\tPASS\tFAIL\tSKIP\tEXIT\tDURATION")
		for _, rec := range records {
			seed := "-"
			if rec.Mode == "randomized" {
				seed = fmt.Sprintf("%d", rec.Seed)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
				rec.StartedAt.Format("2006-01-02 15:04:05"),
				rec.Mode,
				strings.Join(rec.Browsers, ","),
				seed,
				rec.FileCount,
				rec.Passed,
				rec.Failed,
				rec.Skipped,
				rec.ExitCode,
				rec.Duration.Round(10*time.Millisecond),
			)
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20, "Number of runs to show")
}
