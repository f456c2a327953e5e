package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/testpilot/packages/fakeserver"
	"github.com/spf13/cobra"
)

var (
	servePortFlag    int
	serveDelayFlag   string
	serveRateFlag    float64
	serveVerboseFlag bool
)

var serveCmd = &cobra.Command{
	Use:   "serve <fixture-file|fixture-dir>...",
	Short: "Start the fake-response server standalone",
	Long: `Start the fake-response HTTP server on its own, outside a test run.

The server:
- Loads canned routes from YAML fixture files
- Supports path parameters (e.g., /ads/{{id}})
- Can add artificial delays or a rate limit to simulate slow networks

Examples:
  testpilot serve test/fixtures/fake-server
  testpilot serve routes.yaml --port 4537
  testpilot serve routes.yaml --delay 100ms --rate 50
  testpilot serve test/fixtures/fake-server --verbose`,
	Args: cobra.MinimumNArgs(1),
	RunE: serveCommand,
}

func init() {
	serveCmd.Flags().IntVarP(&servePortFlag, "port", "p", fakeserver.DefaultPort, "Port to run the fake-response server on")
	serveCmd.Flags().StringVarP(&serveDelayFlag, "delay", "d", "0", "Delay to add to all responses (e.g., 100ms, 1s)")
	serveCmd.Flags().Float64VarP(&serveRateFlag, "rate", "r", 0, "Maximum responses per second (0 = unlimited)")
	serveCmd.Flags().BoolVarP(&serveVerboseFlag, "verbose", "v", false, "Enable per-request logging")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	var delay time.Duration
	if serveDelayFlag != "0" {
		var err error
		delay, err = time.ParseDuration(serveDelayFlag)
		if err != nil {
			return fmt.Errorf("invalid delay value %q: %w", serveDelayFlag, err)
		}
	}

	server := fakeserver.NewServer(
		fakeserver.WithPort(servePortFlag),
		fakeserver.WithDelay(delay),
		fakeserver.WithRateLimit(serveRateFlag),
		fakeserver.WithVerbose(serveVerboseFlag),
	)

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if info.IsDir() {
			err = server.LoadFixtureDir(arg)
		} else {
			err = server.LoadFixtureFile(arg)
		}
		if err != nil {
			return fmt.Errorf("failed to load fixtures: %w", err)
		}
	}

	if len(server.Routes()) == 0 {
		return fmt.Errorf("no routes found in %v", args)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		cancel()
	}()

	err := server.StartWithContext(ctx)

	summary := server.Stats().Snapshot()
	fmt.Fprintf(cmd.OutOrStdout(), "Served %d request(s), %d matched a route\n",
		summary.TotalRequests, summary.MatchedRequests)
	if summary.TotalRequests > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Latency p50=%s p95=%s p99=%s max=%s\n",
			summary.P50, summary.P95, summary.P99, summary.Max)
	}

	return err
}
