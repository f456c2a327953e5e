package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"
)

// Config represents the testpilot project configuration.
type Config struct {
	// RunnerBin is the external test runner executable.
	RunnerBin string `json:"runnerBin,omitempty"`
	// RunnerArgs are extra arguments always passed to the runner.
	RunnerArgs []string `json:"runnerArgs,omitempty"`

	// AdsDir is the directory scanned for ad network implementations.
	AdsDir string `json:"adsDir,omitempty"`

	// DistFiles are the build output files patched with a config block
	// for the duration of a run.
	DistFiles []string `json:"distFiles,omitempty"`

	// FakeServerPort is the fixed port the fake-response server binds.
	FakeServerPort int `json:"fakeServerPort,omitempty"`
	// FixtureDir holds the fake-response server's YAML fixtures.
	FixtureDir string `json:"fixtureDir,omitempty"`

	// HistoryDB is the path of the SQLite run-history database.
	HistoryDB string `json:"historyDb,omitempty"`

	// ResultsFile is where the runner writes its JSON results summary.
	ResultsFile string `json:"resultsFile,omitempty"`

	// Suite file patterns.
	DefaultSuite     []string `json:"defaultSuite,omitempty"`
	IntegrationSuite []string `json:"integrationSuite,omitempty"`
	UnitSuite        []string `json:"unitSuite,omitempty"`
	// UnitLabSafe is the subset of the unit suite that is safe to run
	// on the remote browser lab.
	UnitLabSafe []string `json:"unitLabSafe,omitempty"`
	// A4ASuite holds the a4a (fast-fetch ad) test patterns.
	A4ASuite []string `json:"a4aSuite,omitempty"`
	// SmokeTest is appended to remote lab runs so every session has at
	// least one passing file.
	SmokeTest string `json:"smokeTest,omitempty"`

	Verbose *bool `json:"verbose,omitempty"`
	NoColor *bool `json:"noColor,omitempty"`
}

// getBool returns the value of a bool pointer, or the default if nil.
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetVerbose returns the verbose setting, defaulting to false.
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false.
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names.
var ConfigFilenames = []string{
	".testpilot.json",
	"testpilot.config.json",
	".testpilotrc",
	".testpilotrc.json",
}

// LoadConfig loads configuration from the specified path or searches
// for config files in the current directory.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory.
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateSchema checks a raw config document against the embedded
// JSON schema before unmarshaling, so typos surface with field names.
func validateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return nil
	}

	var msg string
	for _, desc := range result.Errors() {
		if msg != "" {
			msg += "; "
		}
		msg += desc.String()
	}
	return fmt.Errorf("%s", msg)
}

// Merge merges another config into this one, with other taking
// precedence.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.RunnerBin != "" {
		result.RunnerBin = other.RunnerBin
	}
	if len(other.RunnerArgs) > 0 {
		result.RunnerArgs = other.RunnerArgs
	}
	if other.AdsDir != "" {
		result.AdsDir = other.AdsDir
	}
	if len(other.DistFiles) > 0 {
		result.DistFiles = other.DistFiles
	}
	if other.FakeServerPort > 0 {
		result.FakeServerPort = other.FakeServerPort
	}
	if other.FixtureDir != "" {
		result.FixtureDir = other.FixtureDir
	}
	if other.HistoryDB != "" {
		result.HistoryDB = other.HistoryDB
	}
	if other.ResultsFile != "" {
		result.ResultsFile = other.ResultsFile
	}
	if len(other.DefaultSuite) > 0 {
		result.DefaultSuite = other.DefaultSuite
	}
	if len(other.IntegrationSuite) > 0 {
		result.IntegrationSuite = other.IntegrationSuite
	}
	if len(other.UnitSuite) > 0 {
		result.UnitSuite = other.UnitSuite
	}
	if len(other.UnitLabSafe) > 0 {
		result.UnitLabSafe = other.UnitLabSafe
	}
	if len(other.A4ASuite) > 0 {
		result.A4ASuite = other.A4ASuite
	}
	if other.SmokeTest != "" {
		result.SmokeTest = other.SmokeTest
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
