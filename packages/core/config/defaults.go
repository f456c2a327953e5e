package config

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		RunnerBin:      "karma",
		RunnerArgs:     nil,
		AdsDir:         "ads",
		DistFiles:      []string{"dist/runtime.js", "dist/runtime.module.js"},
		FakeServerPort: 4537,
		FixtureDir:     "test/fixtures/fake-server",
		HistoryDB:      ".testpilot/runs.db",
		ResultsFile:    "dist/.test-results.json",
		DefaultSuite:   []string{"test/*.js"},
		IntegrationSuite: []string{
			"test/integration/*.js",
		},
		UnitSuite: []string{
			"test/unit/*.js",
		},
		UnitLabSafe: []string{
			"test/unit/lab-safe/*.js",
		},
		A4ASuite: []string{
			"test/a4a/*.js",
		},
		SmokeTest: "test/_init_tests.js",
		Verbose:   nil,
		NoColor:   nil,
	}
}
