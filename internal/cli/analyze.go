package cli

import (
	"github.com/spf13/cobra"

	"xc60-deals/internal/app"
)

var (
	analyzeOutputDir string
	analyzeNoCharts  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline: ingest, fit, score, and write all reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.AnalyzeOptions{
			OutputDir: analyzeOutputDir,
			NoCharts:  analyzeNoCharts,
		}
		return getApp().Analyze(cmd.Context(), opts)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOutputDir, "output-dir", "", "Directory for reports and charts (defaults to config)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCharts, "no-charts", false, "Skip PNG chart rendering")
}
