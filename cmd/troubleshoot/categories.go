package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot/internal/cli"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the equipment categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := cli.NewEngine(cfg, logger)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tTITLE\tNODES")
		for _, c := range engine.Categories() {
			tree, err := engine.Tree(c.Key)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Key, c.Title, len(tree.Nodes))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
