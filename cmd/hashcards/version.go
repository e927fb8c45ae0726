package main

import (
	"fmt"
	"github.com/spf13/cobra"

	"github.com/kpauljoseph/hashcards/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detailed, _ := cmd.Flags().GetBool("detailed")
		if detailed {
			fmt.Fprint(cmd.OutOrStdout(), version.GetDetailedVersionInfo())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("detailed", false, "include the commit")
}
