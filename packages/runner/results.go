package runner

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Results summarizes the runner's JSON results file.
type Results struct {
	Passed  int
	Failed  int
	Skipped int
}

// ParseResults reads the runner's JSON results file. Runners differ in
// where they nest the summary, so both the top level and a "summary"
// object are checked.
func ParseResults(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read results file %s: %w", path, err)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("results file %s is not a JSON object", path)
	}

	res := &Results{
		Passed:  intField(doc, "success", "passed"),
		Failed:  intField(doc, "failed"),
		Skipped: intField(doc, "skipped"),
	}
	return res, nil
}

// intField returns the first of the named fields present, checking the
// top level and then a nested summary object.
func intField(doc gjson.Result, names ...string) int {
	for _, name := range names {
		if v := doc.Get(name); v.Exists() {
			return int(v.Int())
		}
		if v := doc.Get("summary." + name); v.Exists() {
			return int(v.Int())
		}
	}
	return 0
}
