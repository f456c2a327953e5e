package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/testpilot/packages/core/config"
	"github.com/abdul-hamid-achik/testpilot/packages/fakeserver"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new testpilot project",
	Long: `Initialize a new testpilot project in the current directory.

This creates:
  - .testpilot.json                       - Project configuration
  - test/fixtures/fake-server/routes.yaml - Example fake-server fixture

Examples:
  testpilot init
  testpilot init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".testpilot.json")
	fixtureFile := filepath.Join(cwd, "test", "fixtures", "fake-server", "routes.yaml")

	if !forceInit {
		for _, f := range []string{configFile, fixtureFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	fixture := fakeserver.FixtureFile{
		Routes: []fakeserver.FixtureRoute{
			{
				Name:   "ad request",
				Method: "GET",
				Path:   "/ads/{{id}}",
				Status: 200,
				Body:   `{"id": "{{id}}", "creative": "<html></html>"}`,
			},
			{
				Name:        "tracking pixel",
				Method:      "POST",
				Path:        "/track",
				Status:      204,
				ContentType: "text/plain",
			},
		},
	}

	fixtureYAML, _ := yaml.Marshal(&fixture)
	if err := os.MkdirAll(filepath.Dir(fixtureFile), 0o755); err != nil {
		return fmt.Errorf("failed to create fixture directory: %w", err)
	}
	if err := os.WriteFile(fixtureFile, fixtureYAML, 0644); err != nil {
		return fmt.Errorf("failed to create fixture file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", fixtureFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\ntestpilot project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'testpilot run --unit' to launch the unit suite.\n")

	return nil
}
