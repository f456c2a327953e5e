package selection

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSuites() Suites {
	return Suites{
		Default:     []string{"test/default-a.js", "test/default-b.js"},
		Integration: []string{"test/integration/spec-a.js", "test/integration/spec-b.js"},
		Unit:        []string{"test/unit/spec-a.js", "test/unit/spec-b.js", "test/unit/spec-c.js"},
		UnitLabSafe: []string{"test/unit/spec-a.js"},
		SmokeTest:   "test/_init_tests.js",
	}
}

func TestSelectDefault(t *testing.T) {
	res, err := Select(Request{Mode: ModeDefault}, testSuites())
	require.NoError(t, err)

	assert.Equal(t, ModeDefault, res.Mode)
	assert.Equal(t, []string{"test/default-a.js", "test/default-b.js"}, res.Files)
	assert.False(t, res.Randomized)
}

func TestSelectExplicit(t *testing.T) {
	res, err := Select(Request{
		Mode:  ModeExplicit,
		Files: []string{"test/my-spec.js"},
	}, testSuites())
	require.NoError(t, err)

	assert.Equal(t, []string{"test/my-spec.js"}, res.Files)
}

func TestSelectExplicitRequiresFiles(t *testing.T) {
	_, err := Select(Request{Mode: ModeExplicit}, testSuites())
	assert.Error(t, err)
}

func TestSelectUnitLabSafeSubset(t *testing.T) {
	res, err := Select(Request{Mode: ModeUnit, LabSafeOnly: true}, testSuites())
	require.NoError(t, err)

	assert.Equal(t, []string{"test/unit/spec-a.js"}, res.Files)
}

func TestSelectAppendsSmokeTest(t *testing.T) {
	res, err := Select(Request{Mode: ModeIntegration, AppendSmokeTest: true}, testSuites())
	require.NoError(t, err)

	require.NotEmpty(t, res.Files)
	assert.Equal(t, "test/_init_tests.js", res.Files[len(res.Files)-1])
}

func TestSelectRandomizedDeterministicForSeed(t *testing.T) {
	req := Request{Mode: ModeRandomized, Seed: 42, HasSeed: true}

	first, err := Select(req, testSuites())
	require.NoError(t, err)
	second, err := Select(req, testSuites())
	require.NoError(t, err)

	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, int64(42), first.Seed)
	assert.True(t, first.Randomized)

	// Same set of files, just reordered.
	assert.ElementsMatch(t, testSuites().Unit, first.Files)
}

func TestSelectRandomizedGeneratesSeed(t *testing.T) {
	res, err := Select(Request{Mode: ModeRandomized}, testSuites())
	require.NoError(t, err)

	assert.True(t, res.Randomized)
	assert.NotZero(t, res.Seed)

	// Replaying with the reported seed reproduces the order.
	replay, err := Select(Request{Mode: ModeRandomized, Seed: res.Seed, HasSeed: true}, testSuites())
	require.NoError(t, err)
	assert.Equal(t, res.Files, replay.Files)
}

func TestSelectRandomizedDifferentSeedsDiffer(t *testing.T) {
	suites := testSuites()
	// With three files, some seed pair must produce distinct orders.
	a, err := Select(Request{Mode: ModeRandomized, Seed: 1, HasSeed: true}, suites)
	require.NoError(t, err)

	distinct := false
	for seed := int64(2); seed < 20; seed++ {
		b, err := Select(Request{Mode: ModeRandomized, Seed: seed, HasSeed: true}, suites)
		require.NoError(t, err)
		if !assert.ObjectsAreEqual(a.Files, b.Files) {
			distinct = true
			break
		}
	}
	assert.True(t, distinct, "expected at least one seed to produce a different order")
}

func TestSelectExpandsGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b-spec.js", "a-spec.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("// spec"), 0o644))
	}

	res, err := Select(Request{
		Mode:  ModeExplicit,
		Files: []string{filepath.Join(dir, "*-spec.js")},
	}, testSuites())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a-spec.js"),
		filepath.Join(dir, "b-spec.js"),
	}, res.Files)
}

func TestSelectKeepsUnmatchedPatterns(t *testing.T) {
	res, err := Select(Request{
		Mode:  ModeExplicit,
		Files: []string{"test/does-not-exist.js"},
	}, testSuites())
	require.NoError(t, err)

	assert.Equal(t, []string{"test/does-not-exist.js"}, res.Files)
}
