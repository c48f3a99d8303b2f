package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/deltaddl/deltaddl/internal/ellie"
	"github.com/deltaddl/deltaddl/internal/model"
)

var (
	fetchModelID     string
	fetchToken       string
	fetchEnvironment string
	fetchOutput      string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a model from the Ellie.ai API",
	Long: `Fetch a data model JSON document from the Ellie.ai API and save it
locally. Token and environment fall back to the config file when not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := fetchToken
		environment := fetchEnvironment
		if cfg := loadConfigIfPresent(); cfg != nil {
			if token == "" {
				token = cfg.Ellie.Token
			}
			if environment == "" {
				environment = cfg.Ellie.Environment
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client := ellie.New(environment, token)
		raw, err := client.FetchModel(ctx, fetchModelID)
		if err != nil {
			return err
		}

		// Parse to report what we fetched; the raw document is saved as-is.
		m, err := model.Parse(raw)
		if err != nil {
			return fmt.Errorf("fetched document is not a model: %w", err)
		}

		out := fetchOutput
		if out == "" {
			out = fmt.Sprintf("model_%s.json", fetchModelID)
		}
		if dir := filepath.Dir(out); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}
		if err := os.WriteFile(out, raw, 0o644); err != nil {
			return fmt.Errorf("writing model: %w", err)
		}

		fmt.Printf("Fetched %q (%d entities, %d relationships) to %s\n",
			m.Name, len(m.Entities), len(m.Relationships), out)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchModelID, "model-id", "", "Ellie.ai model ID")
	fetchCmd.Flags().StringVar(&fetchToken, "token", "", "Ellie.ai API token")
	fetchCmd.Flags().StringVar(&fetchEnvironment, "environment", "", "Ellie.ai environment slug or hostname")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "output file (default: model_<id>.json)")

	fetchCmd.MarkFlagRequired("model-id")
	rootCmd.AddCommand(fetchCmd)
}
