package selection

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"
	"time"
)

// Mode identifies a file-selection mode. Exactly one mode is active
// per invocation.
type Mode int

const (
	// ModeDefault runs the default suite.
	ModeDefault Mode = iota
	// ModeExplicit runs an explicit list of files or globs.
	ModeExplicit
	// ModeIntegration runs the integration suite.
	ModeIntegration
	// ModeUnit runs the unit suite.
	ModeUnit
	// ModeRandomized runs a glob suite in seeded random order.
	ModeRandomized
)

// String returns the mode name as shown in console output.
func (m Mode) String() string {
	switch m {
	case ModeExplicit:
		return "explicit"
	case ModeIntegration:
		return "integration"
	case ModeUnit:
		return "unit"
	case ModeRandomized:
		return "randomized"
	default:
		return "default"
	}
}

// Suites holds the file patterns behind each named suite. They come
// from the project configuration.
type Suites struct {
	Default     []string
	Integration []string
	Unit        []string
	// UnitLabSafe is the subset of the unit suite known to pass on the
	// remote browser lab.
	UnitLabSafe []string
	// SmokeTest is the always-passing file appended to remote lab runs.
	SmokeTest string
}

// Request describes one invocation's selection. Build it from flags,
// then pass it to Select.
type Request struct {
	Mode Mode

	// Files holds explicit file paths or globs (ModeExplicit) or the
	// glob patterns to randomize (ModeRandomized, falls back to the
	// unit suite patterns when empty).
	Files []string

	// Seed drives the randomized ordering. When HasSeed is false a
	// seed is generated and reported back in Result.
	Seed    int64
	HasSeed bool

	// LabSafeOnly restricts ModeUnit to the lab-safe subset.
	LabSafeOnly bool

	// AppendSmokeTest adds Suites.SmokeTest to the final list. Set for
	// remote lab runs so every session has at least one passing file.
	AppendSmokeTest bool
}

// Result is the resolved file list plus the seed that produced it, if
// the ordering was randomized.
type Result struct {
	Mode       Mode
	Files      []string
	Seed       int64
	Randomized bool
}

// Select resolves a Request against the configured suites. Globs are
// expanded relative to the current directory; patterns that match
// nothing are kept verbatim so the runner reports them.
func Select(req Request, suites Suites) (*Result, error) {
	res := &Result{Mode: req.Mode}

	switch req.Mode {
	case ModeExplicit:
		if len(req.Files) == 0 {
			return nil, fmt.Errorf("explicit mode requires at least one file")
		}
		res.Files = expandGlobs(req.Files)

	case ModeIntegration:
		res.Files = expandGlobs(suites.Integration)

	case ModeUnit:
		patterns := suites.Unit
		if req.LabSafeOnly {
			patterns = suites.UnitLabSafe
		}
		res.Files = expandGlobs(patterns)

	case ModeRandomized:
		patterns := req.Files
		if len(patterns) == 0 {
			patterns = suites.Unit
		}
		files := expandGlobs(patterns)

		seed := req.Seed
		if !req.HasSeed {
			seed = time.Now().UnixNano()
		}
		res.Files = shuffle(files, seed)
		res.Seed = seed
		res.Randomized = true

	case ModeDefault:
		res.Files = expandGlobs(suites.Default)

	default:
		return nil, fmt.Errorf("unknown selection mode %d", req.Mode)
	}

	if req.AppendSmokeTest && suites.SmokeTest != "" {
		res.Files = append(res.Files, suites.SmokeTest)
	}

	return res, nil
}

// shuffle returns files reordered by a seeded Fisher-Yates shuffle. The
// input is sorted first so the ordering depends only on the seed and
// the set of files, not on filesystem iteration order.
func shuffle(files []string, seed int64) []string {
	out := make([]string, len(files))
	copy(out, files)
	sort.Strings(out)

	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func expandGlobs(patterns []string) []string {
	var files []string
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil || len(matches) == 0 {
			// Not a glob, or nothing matched. Pass it through so the
			// runner can surface the missing file.
			files = append(files, p)
			continue
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files
}
