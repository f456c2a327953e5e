package config

// configSchema is the JSON schema user config files are validated
// against. additionalProperties is false so typos fail loudly instead
// of being silently ignored.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "runnerBin":        {"type": "string"},
    "runnerArgs":       {"type": "array", "items": {"type": "string"}},
    "adsDir":           {"type": "string"},
    "distFiles":        {"type": "array", "items": {"type": "string"}},
    "fakeServerPort":   {"type": "integer", "minimum": 1, "maximum": 65535},
    "fixtureDir":       {"type": "string"},
    "historyDb":        {"type": "string"},
    "resultsFile":      {"type": "string"},
    "defaultSuite":     {"type": "array", "items": {"type": "string"}},
    "integrationSuite": {"type": "array", "items": {"type": "string"}},
    "unitSuite":        {"type": "array", "items": {"type": "string"}},
    "unitLabSafe":      {"type": "array", "items": {"type": "string"}},
    "a4aSuite":         {"type": "array", "items": {"type": "string"}},
    "smokeTest":        {"type": "string"},
    "verbose":          {"type": "boolean"},
    "noColor":          {"type": "boolean"}
  }
}`
