package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the trees for consistency",
	Long:  `Loads every tree and reports missing start nodes, dangling references, malformed options and unreachable nodes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.Validate(cmd.Context(), cfg, cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All trees are valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
