package cli

import (
	"github.com/spf13/cobra"

	"xc60-deals/internal/app"
)

var (
	exportOutputDir string
	exportTopDeals  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render the deals scatter and residual diagnostic charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.ExportOptions{
			OutputDir: exportOutputDir,
			TopDeals:  exportTopDeals,
		}
		return getApp().Export(cmd.Context(), opts)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "", "Directory for chart PNGs (defaults to config)")
	exportCmd.Flags().IntVar(&exportTopDeals, "top", 0, "Number of top deals to highlight (defaults to config)")
}
