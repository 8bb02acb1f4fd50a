package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the wizard in the terminal",
	Long: `Starts an interactive troubleshooting session. Type a number to answer,
b to go back, r to restart and q to quit. With --session the progress is saved
and resumed (in Redis when --redis-url is set).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		headless, _ := cmd.Flags().GetBool("headless")

		return cli.RunSession(cmd.Context(), cli.RunOptions{
			Config:    cfg,
			SessionID: sessionID,
			Headless:  headless,
			Input:     os.Stdin,
			Output:    os.Stdout,
		}, logger)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("session", "", "Session id to resume or create")
	runCmd.Flags().Bool("headless", false, "Plain output without banner, prompts or colors")

	rootCmd.RunE = runCmd.RunE
}
