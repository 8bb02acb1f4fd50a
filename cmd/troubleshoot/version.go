package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of troubleshoot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "troubleshoot version %s\n", strings.TrimSpace(troubleshoot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
