package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/testpilot/packages/adtypes"
	"github.com/abdul-hamid-achik/testpilot/packages/core/config"
	"github.com/spf13/cobra"
)

var adtypesDirFlag string

var adtypesCmd = &cobra.Command{
	Use:   "adtypes",
	Short: "List the ad network integration types in the source tree",
	Long: `List the logical ad type identifiers derived from the ads directory.

The list always starts with the built-in networks, followed by one or
more entries per implementation file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := adtypesDirFlag
		if dir == "" {
			cfg, err := config.LoadConfig(projectConfigFlag)
			if err != nil {
				return err
			}
			dir = cfg.AdsDir
		}

		types, err := adtypes.List(dir)
		if err != nil {
			return err
		}

		for _, t := range types {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
		return nil
	},
}

func init() {
	adtypesCmd.Flags().StringVar(&adtypesDirFlag, "dir", "", "Ads directory to scan (default: from project config)")
}
