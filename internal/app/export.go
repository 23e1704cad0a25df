package app

import (
	"context"

	"xc60-deals/internal/deals"
)

// ExportOptions configure chart rendering.
type ExportOptions struct {
	OutputDir string
	TopDeals  int
}

// Export re-runs the pipeline and renders only the PNG charts: the
// price-vs-mileage scatter with top deals highlighted and the primary
// specification's residual diagnostic.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = a.Config.Output.Dir
	}
	topDeals := opts.TopDeals
	if topDeals <= 0 {
		topDeals = a.Config.Output.TopDeals
	}

	records, _, err := a.buildDataset()
	if err != nil {
		return err
	}

	_, linearModel, logModel := a.fitModels(records)

	var linearPred, logPred deals.Predictor
	if linearModel != nil {
		linearPred = linearModel
	}
	if logModel != nil {
		logPred = logModel
	}
	result := deals.Score(records, linearPred, logPred)

	if err := a.writeCharts(outDir, topDeals, result, linearModel, logModel); err != nil {
		return err
	}

	a.Logger.Info().Str("output_dir", outDir).Msg("charts exported")
	return nil
}
