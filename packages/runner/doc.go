// Package runner assembles the configuration for the external browser
// test runner and launches it as a child process.
//
// Options are built with a fixed precedence: an explicit local browser
// flag beats the remote lab matrix, which beats the default browser.
// Mutually exclusive flag combinations fail fast before the runner is
// ever started, and the runner's exit code is propagated verbatim.
package runner
