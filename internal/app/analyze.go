package app

import (
	"context"
	"path/filepath"
	"time"

	"xc60-deals/internal/deals"
	"xc60-deals/internal/pipeline"
	"xc60-deals/internal/regress"
	"xc60-deals/internal/report"
	"xc60-deals/internal/storage"
)

// AnalyzeOptions configure a full pipeline run.
type AnalyzeOptions struct {
	OutputDir string
	NoCharts  bool
}

// Analyze runs the complete flow: ingest, canonicalize, fit both price
// specifications, score and rank, write every report, and persist a snapshot
// when a database is configured. A specification that fails to fit is logged
// and skipped; the run itself only fails on ingest or output errors.
func (a *App) Analyze(ctx context.Context, opts AnalyzeOptions) error {
	outDir := opts.OutputDir
	if outDir == "" {
		outDir = a.Config.Output.Dir
	}

	records, stats, err := a.buildDataset()
	if err != nil {
		return err
	}

	outcomes, linearModel, logModel := a.fitModels(records)

	var linearPred, logPred deals.Predictor
	if linearModel != nil {
		linearPred = linearModel
	}
	if logModel != nil {
		logPred = logModel
	}
	result := deals.Score(records, linearPred, logPred)

	a.Logger.Info().
		Int("ranked", len(result.Ranked)).
		Int("unscored", len(result.Unscored)).
		Msg("deals scored")

	if err := report.WriteCanonicalCSV(filepath.Join(outDir, "canonical.csv"), records); err != nil {
		return err
	}
	if err := report.WriteRankingCSV(filepath.Join(outDir, "ranking.csv"), result.Ranked); err != nil {
		return err
	}
	if err := report.WriteUnscoredCSV(filepath.Join(outDir, "unscored.csv"), result.Unscored); err != nil {
		return err
	}
	if err := report.WriteResidualsCSV(filepath.Join(outDir, "residuals.csv"), []*regress.Model{linearModel, logModel}); err != nil {
		return err
	}
	if err := report.WriteModelSummary(filepath.Join(outDir, "model_summary.txt"), outcomes, stats); err != nil {
		return err
	}

	if !opts.NoCharts {
		if err := a.writeCharts(outDir, a.Config.Output.TopDeals, result, linearModel, logModel); err != nil {
			return err
		}
	}

	if err := a.persistSnapshot(ctx, records, result.Ranked); err != nil {
		return err
	}

	a.Logger.Info().Str("output_dir", outDir).Msg("analyze complete")
	return nil
}

// fitModels fits both specifications, logging rather than failing when one
// cannot be estimated.
func (a *App) fitModels(records []pipeline.CanonicalRecord) ([]report.FitOutcome, *regress.Model, *regress.Model) {
	minRecords := a.Config.Model.MinRecords

	outcomes := make([]report.FitOutcome, 0, 2)
	var linearModel, logModel *regress.Model
	for _, kind := range []regress.Kind{regress.Linear, regress.LogLinear} {
		model, err := regress.Fit(kind, records, minRecords)
		outcomes = append(outcomes, report.FitOutcome{Kind: kind, Model: model, Err: err})
		if err != nil {
			a.Logger.Warn().
				Str("specification", string(kind)).
				Err(err).
				Msg("specification not fitted")
			continue
		}
		a.Logger.Info().
			Str("specification", string(kind)).
			Int("observations", model.NObs).
			Float64("r2", model.R2).
			Float64("aic", model.AIC).
			Msg("specification fitted")
		if kind == regress.Linear {
			linearModel = model
		} else {
			logModel = model
		}
	}
	return outcomes, linearModel, logModel
}

func (a *App) writeCharts(outDir string, topDeals int, result deals.Result, linearModel, logModel *regress.Model) error {
	chartOpts := report.ChartOptions{
		Width:  a.Config.Output.ChartWidth,
		Height: a.Config.Output.ChartHeight,
	}

	if len(result.Ranked) > 0 {
		path := filepath.Join(outDir, "deals.png")
		if err := report.WriteDealsChart(path, result.Ranked, topDeals, chartOpts); err != nil {
			return err
		}
	}

	primary := logModel
	if primary == nil {
		primary = linearModel
	}
	if primary != nil {
		path := filepath.Join(outDir, "residuals.png")
		if err := report.WriteResidualChart(path, primary, chartOpts); err != nil {
			return err
		}
	}
	return nil
}

// persistSnapshot upserts the canonical dataset and ranking under today's
// snapshot date. A missing database configuration disables persistence.
func (a *App) persistSnapshot(ctx context.Context, records []pipeline.CanonicalRecord, ranked []deals.ScoredRecord) error {
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Debug().Msg("database.dsn not configured; snapshot persistence disabled")
		return nil
	}
	defer closeStore()

	snapshot := time.Now().UTC().Truncate(24 * time.Hour)

	for _, rec := range records {
		if rec.Unverified {
			continue
		}
		if err := store.UpsertListing(ctx, listingRow(rec, snapshot)); err != nil {
			return err
		}
	}
	for _, rec := range ranked {
		row := storage.DealScoreRow{
			Registration:   rec.Registration,
			SnapshotDate:   snapshot,
			PredictedPrice: rec.Predicted,
			DiscountPct:    rec.DiscountPct,
			DiscountSEK:    rec.DiscountSEK,
			Rank:           rec.Rank,
		}
		if err := store.UpsertDealScore(ctx, row); err != nil {
			return err
		}
	}

	a.Logger.Info().
		Time("snapshot_date", snapshot).
		Int("listings", len(records)).
		Int("deal_scores", len(ranked)).
		Msg("snapshot persisted")
	return nil
}

func listingRow(rec pipeline.CanonicalRecord, snapshot time.Time) storage.ListingRow {
	row := storage.ListingRow{
		Registration: rec.Registration,
		SnapshotDate: snapshot,
		Source:       string(rec.Source),
		Price:        rec.Price,
	}
	if rec.ModelYear > 0 {
		year := rec.ModelYear
		row.ModelYear = &year
	}
	if rec.MileageResolved {
		mileage := rec.Mileage
		row.Mileage = &mileage
	}
	if rec.Horsepower > 0 {
		hp := rec.Horsepower
		row.Horsepower = &hp
	}
	row.EngineCode = optionalString(string(rec.Engine))
	row.FuelType = optionalString(string(rec.Fuel))
	row.Transmission = optionalString(string(rec.Transmission))
	row.DrivingType = optionalString(string(rec.Drive))
	row.Location = optionalString(rec.Location)
	row.ModelVariant = optionalString(rec.ModelVariant)
	return row
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
