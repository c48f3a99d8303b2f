package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deltaddl/deltaddl/internal/config"
	"github.com/deltaddl/deltaddl/internal/ellie"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View, validate, and manage DeltaDDL configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current config (secrets masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		opts := cfg.Options()

		fmt.Println("Current configuration:")
		fmt.Println()
		fmt.Printf("  Ellie:\n")
		fmt.Printf("    Environment:    %s\n", cfg.Ellie.Environment)
		fmt.Printf("    Token:          %s\n", maskSecret(cfg.Ellie.Token))
		fmt.Println()
		fmt.Printf("  Output:\n")
		fmt.Printf("    Directory:      %s\n", cfg.Output.Directory)
		fmt.Printf("    Type map:       %s\n", cfg.Output.TypeMapPath)
		fmt.Println()
		fmt.Printf("  DDL:\n")
		fmt.Printf("    Database stmt:  %t\n", opts.CreateDatabase)
		fmt.Printf("    Comments:       %t\n", opts.IncludeComments)
		fmt.Printf("    Clustering:     %t\n", opts.AddClustering)
		fmt.Printf("    USING DELTA:    %t\n", opts.UseDelta)
		fmt.Printf("    Primary keys:   %t\n", opts.IncludePK)
		fmt.Printf("    Constraints:    %s\n", opts.Constraints)
		fmt.Printf("    Validation:     %t\n", opts.IncludeValidation)
		fmt.Printf("    Sanitization:   %s\n", opts.SanitizeMethod)
		fmt.Println()
		fmt.Printf("  Logging:\n")
		fmt.Printf("    Level:          %s\n", cfg.Logging.Level)
		fmt.Printf("    Directory:      %s\n", cfg.Logging.Directory)
		fmt.Printf("    Retention:      %d days\n", cfg.Logging.RetentionDays)

		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("config invalid: %w", err)
		}

		var errors []string

		if cfg.Ellie.Token == "" {
			errors = append(errors, "ellie.token is empty; fetch commands will require --token")
		}
		if cfg.Output.Directory == "" {
			errors = append(errors, "output.directory is required")
		}

		if len(errors) > 0 {
			fmt.Println("Validation errors:")
			for _, e := range errors {
				fmt.Printf("  - %s\n", e)
			}
			return fmt.Errorf("%d validation error(s)", len(errors))
		}

		fmt.Println("Configuration is valid.")
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			Version: config.CurrentVersion,
			Ellie: config.EllieConfig{
				Environment: ellie.DefaultEnvironment,
				Token:       "${ENV:ELLIE_API_TOKEN}",
			},
			Output: config.OutputConfig{
				Directory: "output",
			},
		}
		if err := cfg.Save(cfgFile); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.ExpandHome(config.DefaultPath)
		}
		fmt.Printf("Config written to %s\n", path)
		return nil
	},
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
