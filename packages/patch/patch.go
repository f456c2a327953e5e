// Package patch injects a named runtime config block into build output
// files for the duration of a test run and removes it afterwards.
package patch

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

const (
	// marker identifies an injected block so it can be found and
	// removed without re-parsing the payload.
	marker = "/*TESTPILOT_CONFIG*/"
)

// payloads holds the config block served for each named configuration.
var payloads = map[string]string{
	"prod":   `self.TP_CONFIG={"type":"production","allow-doc-opt-in":[],"canary":0};`,
	"canary": `self.TP_CONFIG={"type":"canary","allow-doc-opt-in":[],"canary":1};`,
}

// Known reports whether name is a recognized configuration.
func Known(name string) bool {
	_, ok := payloads[name]
	return ok
}

// Block returns the full line injected for the named configuration.
func Block(name string) (string, error) {
	payload, ok := payloads[name]
	if !ok {
		return "", fmt.Errorf("unknown config %q (expected prod or canary)", name)
	}
	return marker + payload + "\n", nil
}

// Result reports what Apply and Remove did per target file.
type Result struct {
	Patched []string
	// Skipped lists files that were absent, unreadable, or already in
	// the desired state. A broken build output never fails the run.
	Skipped []string
}

// Apply prepends the named config block to each target file. Absent or
// unreadable files and files that already carry a block are skipped.
func Apply(files []string, config string) (*Result, error) {
	block, err := Block(config)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			res.Skipped = append(res.Skipped, file)
			continue
		}

		if bytes.Contains(data, []byte(marker)) {
			res.Skipped = append(res.Skipped, file)
			continue
		}

		patched := append([]byte(block), data...)
		if err := os.WriteFile(file, patched, 0o644); err != nil {
			res.Skipped = append(res.Skipped, file)
			continue
		}
		res.Patched = append(res.Patched, file)
	}

	return res, nil
}

// Remove strips any injected config block from each target file.
// Absent, unreadable, and unpatched files are skipped.
func Remove(files []string) (*Result, error) {
	res := &Result{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			res.Skipped = append(res.Skipped, file)
			continue
		}

		lines := strings.SplitAfter(string(data), "\n")
		var kept []string
		removed := false
		for _, line := range lines {
			if strings.HasPrefix(line, marker) {
				removed = true
				continue
			}
			kept = append(kept, line)
		}

		if !removed {
			res.Skipped = append(res.Skipped, file)
			continue
		}

		if err := os.WriteFile(file, []byte(strings.Join(kept, "")), 0o644); err != nil {
			return res, fmt.Errorf("cannot unpatch %s: %w", file, err)
		}
		res.Patched = append(res.Patched, file)
	}

	return res, nil
}
