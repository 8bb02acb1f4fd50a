package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/voltcraft/troubleshoot/internal/cli"
	"github.com/voltcraft/troubleshoot/internal/config"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "troubleshoot",
	Short: "Guided equipment troubleshooting",
	Long: `troubleshoot walks a user through a decision tree of questions for one
equipment category (generator, solar, borehole, HVAC, motor) until it
reaches a diagnosis with causes, solutions, cost and time estimates.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}

		// Flags win over environment and .env.
		flags := cmd.Flags()
		if flags.Changed("catalog") {
			loaded.Catalog, _ = flags.GetString("catalog")
		}
		if flags.Changed("loam") {
			loaded.Loam, _ = flags.GetBool("loam")
		}
		if flags.Changed("log-level") {
			loaded.LogLevel, _ = flags.GetString("log-level")
		}
		if flags.Changed("log-format") {
			loaded.LogFormat, _ = flags.GetString("log-format")
		}
		if flags.Changed("redis-url") {
			loaded.RedisURL, _ = flags.GetString("redis-url")
		}

		l, err := cli.NewLogger(os.Stderr, loaded)
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("catalog", "", "Directory of tree documents (builtin trees when empty)")
	flags.Bool("loam", false, "Read --catalog as a Loam markdown repository")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")
	flags.String("env-file", "", "Load environment variables from this file (default .env if present)")
	flags.String("redis-url", "", "Store sessions in Redis (redis://host:port/db)")
}
