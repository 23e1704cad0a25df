// Package app wires configuration, logging, and storage into the operations
// behind the CLI commands.
package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"xc60-deals/internal/config"
	"xc60-deals/internal/ingest"
	"xc60-deals/internal/logging"
	"xc60-deals/internal/pipeline"
	"xc60-deals/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logging.Component(logger, "app")}
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

type sourceInput struct {
	source ingest.Source
	path   string
}

func (a *App) sourceInputs() []sourceInput {
	var inputs []sourceInput
	if path := a.Config.Sources.VolvoSelekt; path != "" {
		inputs = append(inputs, sourceInput{ingest.SourceVolvoSelekt, path})
	}
	if path := a.Config.Sources.Bilia; path != "" {
		inputs = append(inputs, sourceInput{ingest.SourceBilia, path})
	}
	if path := a.Config.Sources.Rejmes; path != "" {
		inputs = append(inputs, sourceInput{ingest.SourceRejmes, path})
	}
	return inputs
}

// buildDataset runs ingestion and every canonicalization stage, returning the
// deduplicated dataset with features derived against the reference year.
func (a *App) buildDataset() ([]pipeline.CanonicalRecord, pipeline.Stats, error) {
	var stats pipeline.Stats

	var raws []ingest.RawRecord
	for _, input := range a.sourceInputs() {
		records, report, err := ingest.ReadFile(input.path, input.source, a.Logger)
		if err != nil {
			return nil, stats, err
		}
		a.Logger.Info().
			Str("source", string(report.Source)).
			Int("rows", report.Rows).
			Msg("source ingested")
		raws = append(raws, records...)
	}

	referenceYear := a.Config.ResolveReferenceYear(time.Now())

	records := pipeline.Translate(raws, &stats)
	records = pipeline.ResolveEngines(records, &stats)
	records = pipeline.Dedupe(records, &stats)
	records = pipeline.DeriveFeatures(records, referenceYear, &stats)

	a.Logger.Info().
		Int("raw_rows", stats.RawRows).
		Int("canonical", len(records)).
		Int("duplicates_merged", stats.DuplicatesMerged).
		Int("unverified", stats.UnverifiedRegistrations).
		Int("reference_year", referenceYear).
		Msg("dataset canonicalized")

	return records, stats, nil
}
