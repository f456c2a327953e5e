package runner

import (
	"errors"
	"fmt"
	"os"
)

// ErrUsage marks errors caused by an invalid flag combination. The CLI
// maps these to the usage exit code.
var ErrUsage = errors.New("invalid usage")

// ErrConfig marks errors caused by missing environment configuration,
// such as absent remote lab credentials.
var ErrConfig = errors.New("configuration error")

// Browser is a local browser override.
type Browser string

const (
	BrowserDefault Browser = ""
	BrowserChrome  Browser = "Chrome"
	BrowserFirefox Browser = "Firefox"
	BrowserSafari  Browser = "Safari"
	BrowserEdge    Browser = "Edge"
	BrowserIE      Browser = "IE"
)

// Environment variable names consumed when building options.
const (
	EnvSauceUsername  = "SAUCE_USERNAME"
	EnvSauceAccessKey = "SAUCE_ACCESS_KEY"
	// EnvRestrictedRepo marks a downstream repository where only the
	// lab-safe browser subset may run.
	EnvRestrictedRepo = "RESTRICTED_REPO"
	// EnvServeMode tells the runner's web server which assets to serve.
	EnvServeMode = "SERVE_MODE"
)

// Flags captures the command-line choices that shape the runner
// configuration.
type Flags struct {
	Integration   bool
	Saucelabs     bool
	SaucelabsLite bool
	Browser       Browser
	Compiled      bool
	Coverage      bool
	Verbose       bool
	TestNames     bool
	Grep          string
	NoBuild       bool
	NoHelp        bool
}

// Options is the assembled configuration handed to the external runner.
type Options struct {
	Browsers   []string          `json:"browsers"`
	SingleRun  bool              `json:"singleRun"`
	Coverage   bool              `json:"coverage"`
	Grep       string            `json:"grep,omitempty"`
	Reporters  []string          `json:"reporters"`
	ClientArgs []string          `json:"clientArgs,omitempty"`
	Files      []string          `json:"files"`
	Env        map[string]string `json:"-"`
}

// BuildOptions validates the flag combination and assembles runner
// options. Overrides apply in a fixed precedence: local browser flag,
// then remote lab matrix, then the default browser.
func BuildOptions(flags Flags) (*Options, error) {
	if flags.Saucelabs && flags.SaucelabsLite {
		return nil, fmt.Errorf("%w: --saucelabs and --saucelabs_lite are mutually exclusive", ErrUsage)
	}
	if flags.Saucelabs && !flags.Integration {
		return nil, fmt.Errorf("%w: --saucelabs requires --integration; the full lab only runs integration tests", ErrUsage)
	}
	onSauce := flags.Saucelabs || flags.SaucelabsLite
	if onSauce && flags.Browser != BrowserDefault {
		return nil, fmt.Errorf("%w: a local browser flag cannot be combined with a remote lab run", ErrUsage)
	}

	opts := &Options{
		// Watch mode re-launches single-run sessions from the CLI, so
		// the runner itself never watches.
		SingleRun: true,
		Coverage:  flags.Coverage,
		Grep:      flags.Grep,
		Env:       map[string]string{},
	}

	switch {
	case flags.Browser != BrowserDefault:
		opts.Browsers = []string{string(flags.Browser)}
	case onSauce:
		if err := checkSauceCredentials(); err != nil {
			return nil, err
		}
		matrix := SauceBrowsers()
		if flags.SaucelabsLite || os.Getenv(EnvRestrictedRepo) != "" {
			matrix = SauceLabSafeBrowsers()
		}
		opts.Browsers = matrix
	default:
		opts.Browsers = []string{string(BrowserChrome)}
	}

	switch {
	case flags.TestNames:
		opts.Reporters = []string{"testnames"}
	case flags.Verbose:
		opts.Reporters = []string{"verbose"}
	default:
		opts.Reporters = []string{"dots"}
	}

	if flags.NoHelp {
		opts.ClientArgs = append(opts.ClientArgs, "--nohelp")
	}
	if flags.NoBuild {
		opts.ClientArgs = append(opts.ClientArgs, "--nobuild")
	}

	if flags.Compiled {
		opts.Env[EnvServeMode] = "compiled"
	} else {
		opts.Env[EnvServeMode] = "default"
	}

	return opts, nil
}

func checkSauceCredentials() error {
	for _, key := range []string{EnvSauceUsername, EnvSauceAccessKey} {
		if os.Getenv(key) == "" {
			return fmt.Errorf("%w: %s must be set for remote lab runs", ErrConfig, key)
		}
	}
	return nil
}
