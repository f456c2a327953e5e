package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "testpilot",
	Short: "Configure and launch browser test runs.",
	Long: `testpilot assembles the configuration for a browser test runner and
launches it: it picks the browsers, selects the test files (optionally
in seeded random order), patches build output files with a named config
block for the run, serves canned responses from a local fake-response
server, and exits with the runner's exit code.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(adtypesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}
