package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/deltaddl/deltaddl/internal/config"
	"github.com/deltaddl/deltaddl/internal/ddl"
	"github.com/deltaddl/deltaddl/internal/model"
	"github.com/deltaddl/deltaddl/internal/sanitize"
	"github.com/deltaddl/deltaddl/internal/typemap"
)

var (
	generateInput  string
	generateOutput string
	generateStdout bool

	genCreateDatabase bool
	genConstraintInfo bool
	genComments       bool
	genClustering     bool
	genDelta          bool
	genPK             bool
	genForeignKeys    bool
	genFKComments     bool
	genValidation     bool
	genSanitize       string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Databricks DDL from a model JSON file",
	Long: `Generate Databricks Delta Lake DDL from an Ellie.ai data model JSON
document. Reads from --input, or from stdin when --input is "-".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if generateInput == "-" {
			raw, err = io.ReadAll(os.Stdin)
		} else {
			raw, err = os.ReadFile(generateInput)
		}
		if err != nil {
			return fmt.Errorf("reading model: %w", err)
		}

		m, err := model.Parse(raw)
		if err != nil {
			return fmt.Errorf("parsing model: %w", err)
		}
		for _, d := range m.Diagnostics {
			fmt.Fprintf(os.Stderr, "warning: %s\n", d)
		}

		cfg := loadConfigIfPresent()

		gen := ddl.Generator{
			Model:   m,
			Options: generateOptions(cmd, cfg),
			TypeMap: loadTypeMap(cfg),
		}
		res, err := gen.Generate()
		if err != nil {
			return fmt.Errorf("generating DDL: %w", err)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}

		if generateStdout {
			fmt.Println(res.DDL)
			return nil
		}

		out := generateOutput
		if out == "" {
			dir := "output"
			if cfg != nil && cfg.Output.Directory != "" {
				dir = cfg.Output.Directory
			}
			out = filepath.Join(config.ExpandHome(dir), ddl.OutputFilename(m.Name))
		}
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(out, []byte(res.DDL), 0o644); err != nil {
			return fmt.Errorf("writing DDL: %w", err)
		}

		fmt.Printf("DDL for %q written to %s\n", m.Name, out)
		return nil
	},
}

// generateOptions builds generation options from config defaults plus any
// flags the user set explicitly.
func generateOptions(cmd *cobra.Command, cfg *config.Config) ddl.Options {
	opts := ddl.DefaultOptions()
	if cfg != nil {
		opts = cfg.Options()
	}

	if cmd.Flags().Changed("create-database") {
		opts.CreateDatabase = genCreateDatabase
	}
	if cmd.Flags().Changed("constraint-info") {
		opts.IncludeConstraintInfo = genConstraintInfo
	}
	if cmd.Flags().Changed("comments") {
		opts.IncludeComments = genComments
	}
	if cmd.Flags().Changed("clustering") {
		opts.AddClustering = genClustering
	}
	if cmd.Flags().Changed("delta") {
		opts.UseDelta = genDelta
	}
	if cmd.Flags().Changed("pk") {
		opts.IncludePK = genPK
	}
	if cmd.Flags().Changed("foreign-keys") || cmd.Flags().Changed("fk-comments") {
		opts.Constraints = ddl.StyleFromFlags(genForeignKeys, genFKComments)
	}
	if cmd.Flags().Changed("validation") {
		opts.IncludeValidation = genValidation
	}
	if cmd.Flags().Changed("sanitize") {
		opts.SanitizeMethod = sanitize.ParseMethod(genSanitize)
	}
	return opts
}

// loadTypeMap returns the configured type mapping override file, or nil for
// the built-in defaults.
func loadTypeMap(cfg *config.Config) *typemap.TypeMap {
	if cfg == nil || cfg.Output.TypeMapPath == "" {
		return nil
	}
	tm, err := typemap.LoadYAML(config.ExpandHome(cfg.Output.TypeMapPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring type map file: %v\n", err)
		return nil
	}
	return tm
}

func init() {
	generateCmd.Flags().StringVarP(&generateInput, "input", "i", "", "model JSON file, or - for stdin")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file (default: <output dir>/<model>_databricks_ddl.sql)")
	generateCmd.Flags().BoolVar(&generateStdout, "stdout", false, "print DDL to stdout instead of writing a file")

	generateCmd.Flags().BoolVar(&genCreateDatabase, "create-database", true, "include CREATE DATABASE and USE statements")
	generateCmd.Flags().BoolVar(&genConstraintInfo, "constraint-info", true, "include the constraint information block")
	generateCmd.Flags().BoolVar(&genComments, "comments", true, "include table and column COMMENT clauses")
	generateCmd.Flags().BoolVar(&genClustering, "clustering", false, "add CLUSTERED BY on the first primary key")
	generateCmd.Flags().BoolVar(&genDelta, "delta", true, "add the USING DELTA clause")
	generateCmd.Flags().BoolVar(&genPK, "pk", true, "emit primary key constraints")
	generateCmd.Flags().BoolVar(&genForeignKeys, "foreign-keys", true, "emit foreign keys as ALTER TABLE statements")
	generateCmd.Flags().BoolVar(&genFKComments, "fk-comments", false, "emit foreign keys as comments instead")
	generateCmd.Flags().BoolVar(&genValidation, "validation", false, "include example data validation queries")
	generateCmd.Flags().StringVar(&genSanitize, "sanitize", "underscore", "identifier sanitization (underscore, backtick, doublequote)")

	generateCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(generateCmd)
}
