package cmd

// Exit codes for the testpilot CLI. Test-failure codes come from the
// external runner and are propagated verbatim.
const (
	// ExitSuccess indicates the runner reported all tests passing
	ExitSuccess = 0

	// ExitTestFailure indicates the runner reported failing tests
	ExitTestFailure = 1

	// ExitConfigError indicates missing environment configuration,
	// such as absent remote lab credentials
	ExitConfigError = 3

	// ExitLaunchError indicates the runner could not be started
	ExitLaunchError = 4

	// ExitUsageError indicates an invalid flag combination
	ExitUsageError = 64
)
