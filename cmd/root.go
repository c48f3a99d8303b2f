package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/deltaddl/deltaddl/internal/config"
	"github.com/deltaddl/deltaddl/internal/wizard"
)

var (
	cfgFile  string
	logLevel string
	version  = "dev"
	commit   = "none"
	date     = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "deltaddl",
	Short: "DeltaDDL — Databricks DDL generator for Ellie.ai data models",
	Long: `DeltaDDL turns Ellie.ai data model JSON into Databricks Delta Lake DDL:
CREATE TABLE statements, informational primary and foreign key constraints,
and optional data validation queries.

Running without a subcommand launches the interactive wizard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfigIfPresent()
		return wizard.New(cfg).Run()
	},
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfigIfPresent loads the config file when one exists. A missing file
// is not an error; the built-in defaults apply.
func loadConfigIfPresent() *config.Config {
	path := cfgFile
	if path == "" {
		path = config.ExpandHome(config.DefaultPath)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil
	}
	return cfg
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.deltaddl/deltaddl.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
}
