package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot/internal/cli"
	"github.com/voltcraft/troubleshoot/internal/presentation/graph"
)

var graphCmd = &cobra.Command{
	Use:   "graph <category>",
	Short: "Export a tree as a Mermaid diagram",
	Long:  `Outputs a Mermaid flowchart (graph TD) of one category. With --session the visited path is highlighted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := cli.NewEngine(cfg, logger)
		if err != nil {
			return err
		}
		tree, err := engine.Tree(args[0])
		if err != nil {
			return err
		}

		var overlay *graph.Overlay
		if sessionID, _ := cmd.Flags().GetString("session"); sessionID != "" {
			sessions, closeStore, err := cli.NewSessions(cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()
			state, err := sessions.Load(cmd.Context(), sessionID)
			if err != nil {
				return err
			}
			if state.Category == tree.Category {
				overlay = graph.OverlayFromState(state)
			}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(tree, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("session", "", "Highlight the path of this session (needs --redis-url)")
}
