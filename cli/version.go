package main

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version number of reaper",
	Args:  cobra.NoArgs,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("reaper version %s (%s)\n", version, lo.Substring(commit, 0, 7))
	},
}
