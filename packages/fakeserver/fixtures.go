package fakeserver

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FixtureFile is the YAML document describing a set of canned routes.
type FixtureFile struct {
	Routes []FixtureRoute `yaml:"routes"`
}

// FixtureRoute is one canned route as written in a fixture file.
type FixtureRoute struct {
	Name        string            `yaml:"name,omitempty"`
	Method      string            `yaml:"method"`
	Path        string            `yaml:"path"`
	Status      int               `yaml:"status,omitempty"`
	ContentType string            `yaml:"contentType,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty"`
	Body        string            `yaml:"body,omitempty"`
}

// LoadFixtures parses a fixture file into routes. Defaults: GET, 200,
// application/json, empty object body.
func LoadFixtures(path string) ([]*Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read fixture file %s: %w", path, err)
	}

	var file FixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("cannot parse fixture file %s: %w", path, err)
	}

	routes := make([]*Route, 0, len(file.Routes))
	for i, fr := range file.Routes {
		if fr.Path == "" {
			return nil, fmt.Errorf("%s: route %d has no path", path, i)
		}

		method := fr.Method
		if method == "" {
			method = "GET"
		}
		status := fr.Status
		if status == 0 {
			status = 200
		}
		contentType := fr.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		body := fr.Body
		if body == "" {
			body = "{}"
		}

		routes = append(routes, &Route{
			Method:      method,
			PathPattern: fr.Path,
			PathRegex:   compilePathPattern(fr.Path),
			Name:        fr.Name,
			Response: &Response{
				StatusCode:  status,
				ContentType: contentType,
				Headers:     fr.Headers,
				Body:        body,
			},
		})
	}

	return routes, nil
}

// LoadFixtureDir loads every .yaml/.yml fixture file under dir.
func LoadFixtureDir(dir string) ([]*Route, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read fixture directory %s: %w", dir, err)
	}

	var routes []*Route
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		loaded, err := LoadFixtures(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		routes = append(routes, loaded...)
	}

	return routes, nil
}
