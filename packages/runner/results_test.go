package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeResults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseResultsTopLevel(t *testing.T) {
	path := writeResults(t, `{"success": 120, "failed": 3, "skipped": 4}`)

	res, err := ParseResults(path)
	require.NoError(t, err)

	assert.Equal(t, 120, res.Passed)
	assert.Equal(t, 3, res.Failed)
	assert.Equal(t, 4, res.Skipped)
}

func TestParseResultsNestedSummary(t *testing.T) {
	path := writeResults(t, `{"summary": {"passed": 9, "failed": 0, "skipped": 1}}`)

	res, err := ParseResults(path)
	require.NoError(t, err)

	assert.Equal(t, 9, res.Passed)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 1, res.Skipped)
}

func TestParseResultsMissingFile(t *testing.T) {
	_, err := ParseResults(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParseResultsNotAnObject(t *testing.T) {
	path := writeResults(t, `[1, 2, 3]`)

	_, err := ParseResults(path)
	assert.Error(t, err)
}

func TestWriteConfigFile(t *testing.T) {
	opts, err := BuildOptions(Flags{Grep: "foo"})
	require.NoError(t, err)
	opts.Files = []string{"test/unit/spec-a.js"}

	path, err := WriteConfigFile(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(filepath.Dir(path)) })

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"grep": "foo"`)
	assert.Contains(t, string(data), "test/unit/spec-a.js")
}
