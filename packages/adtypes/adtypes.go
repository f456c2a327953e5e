// Package adtypes enumerates the ad network integrations present in the
// source tree. Each implementation file under the ads directory maps to
// one or more logical ad type identifiers.
package adtypes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is the directory scanned for ad network implementations.
const DefaultDir = "ads"

// builtins are networks served by the runtime itself rather than an
// implementation file, so they never appear in the directory scan.
var builtins = []string{"adsense", "doubleclick"}

// exceptions maps an implementation file basename to the ad types it
// provides, for networks that share a single implementation.
var exceptions = map[string][]string{
	"adblade":  {"adblade", "industrybrains"},
	"mantis":   {"mantis-display", "mantis-recommend"},
	"weborama": {"weborama-display"},
}

// ignored implementation files that are not ad types themselves.
var ignored = map[string]bool{
	"ads.extern":  true,
	"ads.vendors": true,
	"README":      true,
}

// List scans dir for ad network implementation files and returns the
// ordered list of ad type identifiers: the built-in entries first, then
// one or more entries per file in name order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot scan ads directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if filepath.Ext(name) != ".js" {
			continue
		}
		base := strings.TrimSuffix(name, ".js")
		// Private helpers are prefixed with an underscore.
		if strings.HasPrefix(base, "_") || ignored[base] {
			continue
		}
		names = append(names, base)
	}
	sort.Strings(names)

	types := make([]string, 0, len(builtins)+len(names))
	types = append(types, builtins...)
	for _, name := range names {
		if expanded, ok := exceptions[name]; ok {
			types = append(types, expanded...)
			continue
		}
		types = append(types, name)
	}

	return types, nil
}
