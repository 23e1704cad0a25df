package cli

import (
	"github.com/spf13/cobra"

	"xc60-deals/internal/app"
)

var cleanOutputPath string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Ingest and canonicalize the source listings without fitting",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.CleanOptions{
			OutputPath: cleanOutputPath,
		}
		return getApp().Clean(cmd.Context(), opts)
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanOutputPath, "output", "", "Path for the canonical CSV (defaults to <output.dir>/canonical.csv)")
}
