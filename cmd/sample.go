package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deltaddl/deltaddl/internal/model"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the bundled example model JSON",
	Long: `Print the bundled Logistics Hub example model to stdout. Pipe it into
generate to see the full output:

  deltaddl sample | deltaddl generate --input - --stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Print(model.SampleJSON)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}
