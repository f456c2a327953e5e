// Package cmd implements the testpilot CLI commands using Cobra.
//
// Available commands:
//   - run: Configure and launch a browser test run
//   - serve: Start the fake-response server standalone
//   - adtypes: List the ad network integration types in the source tree
//   - history: Show recorded past test runs
//   - version: Show testpilot version information
//
// The CLI supports flags for browser selection, test file selection,
// seeded randomization, coverage instrumentation and watch mode.
package cmd
