package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/testpilot/packages/core/config"
	"github.com/abdul-hamid-achik/testpilot/packages/fakeserver"
	"github.com/abdul-hamid-achik/testpilot/packages/history"
	"github.com/abdul-hamid-achik/testpilot/packages/patch"
	"github.com/abdul-hamid-achik/testpilot/packages/runner"
	"github.com/abdul-hamid-achik/testpilot/packages/selection"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Configure and launch a browser test run",
	Long: `Configure and launch the external browser test runner.

Exactly one file-selection mode is active per run: explicit files,
--integration, --unit, --a4a, --randomize, or the default suite.

Examples:
  testpilot run --unit
  testpilot run --integration --saucelabs
  testpilot run --files "test/unit/amp-ad*.js" --firefox
  testpilot run --randomize --seed 123456789
  testpilot run --unit --watch --grep "renders"`,
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	// Selection flags
	unitFlag        bool
	integrationFlag bool
	a4aFlag         bool
	filesFlag       []string
	randomizeFlag   bool
	seedFlag        int64

	// Browser flags
	safariFlag  bool
	firefoxFlag bool
	edgeFlag    bool
	ieFlag      bool

	// Remote lab flags
	saucelabsFlag     bool
	saucelabsLiteFlag bool

	// Runner flags
	compiledFlag  bool
	coverageFlag  bool
	grepFlag      string
	testnamesFlag bool
	nobuildFlag   bool
	nohelpFlag    bool
	verboseFlag   bool
	watchFlag     bool

	// Config flags
	configFlag        string
	projectConfigFlag string
)

func init() {
	// Selection flags
	runCmd.Flags().BoolVar(&unitFlag, "unit", false, "Run the unit test suite")
	runCmd.Flags().BoolVar(&integrationFlag, "integration", false, "Run the integration test suite")
	runCmd.Flags().BoolVar(&a4aFlag, "a4a", false, "Run the a4a test suite")
	runCmd.Flags().StringSliceVar(&filesFlag, "files", nil, "Explicit test files or globs to run")
	runCmd.Flags().BoolVar(&randomizeFlag, "randomize", false, "Run the unit suite in seeded random order")
	runCmd.Flags().Int64Var(&seedFlag, "seed", 0, "Seed for --randomize (generated and echoed when omitted)")

	// Browser flags
	runCmd.Flags().BoolVar(&safariFlag, "safari", false, "Run tests on Safari")
	runCmd.Flags().BoolVar(&firefoxFlag, "firefox", false, "Run tests on Firefox")
	runCmd.Flags().BoolVar(&edgeFlag, "edge", false, "Run tests on Edge")
	runCmd.Flags().BoolVar(&ieFlag, "ie", false, "Run tests on Internet Explorer")

	// Remote lab flags
	runCmd.Flags().BoolVar(&saucelabsFlag, "saucelabs", false, "Run on the full remote browser lab (requires --integration)")
	runCmd.Flags().BoolVar(&saucelabsLiteFlag, "saucelabs_lite", false, "Run on the lab-safe remote browser subset")

	// Runner flags
	runCmd.Flags().BoolVar(&compiledFlag, "compiled", false, "Serve compiled assets to the runner")
	runCmd.Flags().BoolVar(&coverageFlag, "coverage", false, "Enable coverage instrumentation")
	runCmd.Flags().StringVar(&grepFlag, "grep", "", "Only run tests matching this pattern")
	runCmd.Flags().BoolVar(&testnamesFlag, "testnames", false, "Report every test name instead of dots")
	runCmd.Flags().BoolVar(&nobuildFlag, "nobuild", false, "Tell the runner to skip its build step")
	runCmd.Flags().BoolVar(&nohelpFlag, "nohelp", false, "Suppress the runner's helper output")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("TESTPILOT_VERBOSE", false), "Verbose output (env: TESTPILOT_VERBOSE)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch test files and re-run on changes")

	// Config flags
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("TESTPILOT_RUNTIME_CONFIG", "prod"), "Runtime config block to inject: prod or canary (env: TESTPILOT_RUNTIME_CONFIG)")
	runCmd.Flags().StringVar(&projectConfigFlag, "project-config", getEnvString("TESTPILOT_CONFIG", ""), "Path to the project config file (env: TESTPILOT_CONFIG)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func runCommand(cmd *cobra.Command, args []string) error {
	code, err := executeRun(cmd, args)
	if err != nil {
		color.Red("%v", err)
		os.Exit(exitCodeFor(err))
	}
	if code != ExitSuccess {
		os.Exit(code)
	}
	return nil
}

// exitCodeFor maps an error to the CLI exit code.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, runner.ErrUsage):
		return ExitUsageError
	case errors.Is(err, runner.ErrConfig):
		return ExitConfigError
	default:
		return ExitLaunchError
	}
}

// executeRun performs the whole orchestration and returns the runner's
// exit code. All teardown (unpatching the dist files, stopping the
// fake server) runs via defers, so it happens on every path.
func executeRun(cmd *cobra.Command, args []string) (int, error) {
	if !patch.Known(configFlag) {
		return 0, fmt.Errorf("%w: --config must be prod or canary, got %q", runner.ErrUsage, configFlag)
	}

	browser, err := selectedBrowser()
	if err != nil {
		return 0, err
	}

	cfg, err := config.LoadConfig(projectConfigFlag)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", runner.ErrConfig, err)
	}

	opts, err := runner.BuildOptions(runner.Flags{
		Integration:   integrationFlag,
		Saucelabs:     saucelabsFlag,
		SaucelabsLite: saucelabsLiteFlag,
		Browser:       browser,
		Compiled:      compiledFlag,
		Coverage:      coverageFlag,
		Verbose:       verboseFlag,
		TestNames:     testnamesFlag,
		Grep:          grepFlag,
		NoBuild:       nobuildFlag,
		NoHelp:        nohelpFlag,
	})
	if err != nil {
		return 0, err
	}

	req, err := selectionRequest(cmd, args, cfg)
	if err != nil {
		return 0, err
	}

	sel, err := selection.Select(req, selection.Suites{
		Default:     cfg.DefaultSuite,
		Integration: cfg.IntegrationSuite,
		Unit:        cfg.UnitSuite,
		UnitLabSafe: cfg.UnitLabSafe,
		SmokeTest:   cfg.SmokeTest,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", runner.ErrUsage, err)
	}
	opts.Files = sel.Files

	if sel.Randomized {
		color.Cyan("Randomized test order with seed %d", sel.Seed)
		color.Cyan("Reproduce this run with: testpilot run --randomize --seed %d", sel.Seed)
	}
	if verboseFlag {
		color.Cyan("Running %d file(s) in %s mode on %v", len(sel.Files), sel.Mode, opts.Browsers)
	}

	// Inject the runtime config block for the run's duration. The
	// unpatch defer is registered before Apply so a partial patch is
	// rolled back even when a later dist file cannot be patched.
	defer func() {
		if _, err := patch.Remove(cfg.DistFiles); err != nil {
			color.Yellow("Failed to remove config block: %v", err)
		}
	}()
	patched, err := patch.Apply(cfg.DistFiles, configFlag)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", runner.ErrConfig, err)
	}
	for _, file := range patched.Skipped {
		color.Yellow("Skipped config patch for %s (missing, unreadable, or already patched)", file)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, stopping...")
		cancel()
	}()

	startFakeServer(ctx, cfg)

	configFile, err := runner.WriteConfigFile(opts)
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(filepath.Dir(configFile))

	launcher := runner.NewLauncher(cfg.RunnerBin,
		runner.WithExtraArgs(cfg.RunnerArgs),
		runner.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)

	runTests := func() int {
		started := time.Now()
		code, runErr := launcher.Run(ctx, opts, configFile)
		if code < 0 {
			color.Red("%v", runErr)
			return ExitLaunchError
		}
		recordRun(cfg, sel, opts, code, time.Since(started))
		return code
	}

	code := runTests()

	if !watchFlag {
		return code, nil
	}

	if err := watchAndRerun(ctx, cmd, sel.Files, runTests); err != nil {
		return code, err
	}
	return ExitSuccess, nil
}

// selectedBrowser maps the browser flags to a single override. More
// than one is a usage error.
func selectedBrowser() (runner.Browser, error) {
	var picked []runner.Browser
	for flag, browser := range map[*bool]runner.Browser{
		&safariFlag:  runner.BrowserSafari,
		&firefoxFlag: runner.BrowserFirefox,
		&edgeFlag:    runner.BrowserEdge,
		&ieFlag:      runner.BrowserIE,
	} {
		if *flag {
			picked = append(picked, browser)
		}
	}

	switch len(picked) {
	case 0:
		return runner.BrowserDefault, nil
	case 1:
		return picked[0], nil
	default:
		return runner.BrowserDefault, fmt.Errorf("%w: at most one of --safari, --firefox, --edge, --ie may be set", runner.ErrUsage)
	}
}

// selectionRequest maps the selection flags to a Request, enforcing
// that exactly one mode is active.
func selectionRequest(cmd *cobra.Command, args []string, cfg *config.Config) (selection.Request, error) {
	explicit := append([]string{}, args...)
	explicit = append(explicit, filesFlag...)

	var modes []selection.Mode
	if len(explicit) > 0 {
		modes = append(modes, selection.ModeExplicit)
	}
	if integrationFlag {
		modes = append(modes, selection.ModeIntegration)
	}
	if unitFlag {
		modes = append(modes, selection.ModeUnit)
	}
	if a4aFlag {
		// a4a is explicit selection of the configured a4a suite.
		modes = append(modes, selection.ModeExplicit)
	}
	if randomizeFlag {
		modes = append(modes, selection.ModeRandomized)
	}

	if len(modes) > 1 {
		return selection.Request{}, fmt.Errorf("%w: --unit, --integration, --a4a, --files and --randomize are mutually exclusive", runner.ErrUsage)
	}

	req := selection.Request{
		Mode:            selection.ModeDefault,
		LabSafeOnly:     saucelabsLiteFlag,
		AppendSmokeTest: saucelabsFlag || saucelabsLiteFlag,
	}
	if len(modes) == 1 {
		req.Mode = modes[0]
	}
	if len(explicit) > 0 {
		req.Files = explicit
	}
	if a4aFlag {
		req.Files = cfg.A4ASuite
	}
	if cmd.Flags().Changed("seed") {
		req.Seed = seedFlag
		req.HasSeed = true
	}

	return req, nil
}

// startFakeServer brings up the canned-response server for the run's
// duration. A missing fixture directory is tolerated; the server then
// answers every request with 404.
func startFakeServer(ctx context.Context, cfg *config.Config) {
	srv := fakeserver.NewServer(
		fakeserver.WithPort(cfg.FakeServerPort),
		fakeserver.WithVerbose(verboseFlag),
	)

	if _, err := os.Stat(cfg.FixtureDir); err == nil {
		if err := srv.LoadFixtureDir(cfg.FixtureDir); err != nil {
			color.Yellow("Failed to load fake-server fixtures: %v", err)
		}
	} else {
		color.Yellow("Fixture directory %s not found; fake server starts with no routes", cfg.FixtureDir)
	}

	go func() {
		if err := srv.StartWithContext(ctx); err != nil {
			color.Yellow("Fake-response server stopped: %v", err)
		}
	}()
}

// recordRun stores the run in the history database, best effort.
func recordRun(cfg *config.Config, sel *selection.Result, opts *runner.Options, code int, duration time.Duration) {
	rec := &history.Record{
		StartedAt: time.Now().Add(-duration),
		Duration:  duration,
		Mode:      sel.Mode.String(),
		Browsers:  opts.Browsers,
		Seed:      sel.Seed,
		FileCount: len(sel.Files),
		ExitCode:  code,
	}

	if results, err := runner.ParseResults(cfg.ResultsFile); err == nil {
		rec.Passed = results.Passed
		rec.Failed = results.Failed
		rec.Skipped = results.Skipped
	}

	if err := os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0o755); err != nil {
		return
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return
	}
	defer store.Close()

	if _, err := store.Insert(rec); err != nil && verboseFlag {
		color.Yellow("Failed to record run: %v", err)
	}
}

// watchAndRerun watches the directories of the selected files and
// re-runs the suite on changes, debounced.
func watchAndRerun(ctx context.Context, cmd *cobra.Command, files []string, runTests func() int) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watchedDirs := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				color.Yellow("Failed to watch %s: %v", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	// Debounce timer for rapid file changes
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) && filepath.Ext(event.Name) == ".js" {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running tests...\n\n", event.Name)
					code := runTests()
					if code != ExitSuccess {
						color.Red("Run finished with exit code %d", code)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			color.Yellow("Watcher error: %v", err)
		}
	}
}
