package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "karma", cfg.RunnerBin)
	assert.Equal(t, "ads", cfg.AdsDir)
	assert.Equal(t, 4537, cfg.FakeServerPort)
	assert.Len(t, cfg.DistFiles, 2)
	assert.Equal(t, "dist/.test-results.json", cfg.ResultsFile)
	assert.NotEmpty(t, cfg.UnitSuite)
	assert.NotEmpty(t, cfg.SmokeTest)
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetNoColor())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testpilot.config.json")
	content := `{
		"runnerBin": "/opt/karma/bin/karma",
		"adsDir": "src/ads",
		"fakeServerPort": 9123,
		"unitSuite": ["spec/unit/*.js"],
		"verbose": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/karma/bin/karma", cfg.RunnerBin)
	assert.Equal(t, "src/ads", cfg.AdsDir)
	assert.Equal(t, 9123, cfg.FakeServerPort)
	assert.Equal(t, []string{"spec/unit/*.js"}, cfg.UnitSuite)
	assert.True(t, cfg.GetVerbose())

	// Unset fields keep their defaults.
	assert.Equal(t, []string{"dist/runtime.js", "dist/runtime.module.js"}, cfg.DistFiles)
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".testpilot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"runerBin": "karma"}`), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "runerBin")
}

func TestLoadConfigRejectsWrongTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".testpilot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fakeServerPort": "4537"}`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestFindAndLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := FindAndLoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestFindAndLoadConfigDiscoversFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".testpilot.json"),
		[]byte(`{"adsDir": "custom/ads"}`), 0o644))

	cfg, err := FindAndLoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "custom/ads", cfg.AdsDir)
}

func TestMerge(t *testing.T) {
	base := DefaultConfig()
	verbose := true
	merged := base.Merge(&Config{
		AdsDir:      "other/ads",
		UnitSuite:   []string{"x/*.js"},
		ResultsFile: "out/results.json",
		Verbose:     &verbose,
	})

	assert.Equal(t, "other/ads", merged.AdsDir)
	assert.Equal(t, []string{"x/*.js"}, merged.UnitSuite)
	assert.Equal(t, "out/results.json", merged.ResultsFile)
	assert.True(t, merged.GetVerbose())

	// Base is untouched and unset fields survive.
	assert.Equal(t, "ads", base.AdsDir)
	assert.Equal(t, base.RunnerBin, merged.RunnerBin)
}
