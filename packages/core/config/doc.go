// Package config handles project configuration loading for testpilot.
//
// It provides functionality for:
//   - Loading configuration from .testpilot.json or testpilot.config.json
//   - Default configuration values
//   - JSON schema validation of user-provided config files
package config
