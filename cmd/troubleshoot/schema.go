package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot/pkg/catalog"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of tree documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := catalog.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
