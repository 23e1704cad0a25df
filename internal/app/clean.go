package app

import (
	"context"
	"path/filepath"

	"xc60-deals/internal/report"
)

// CleanOptions configure the canonicalize-only run.
type CleanOptions struct {
	OutputPath string
}

// Clean runs ingestion and canonicalization and writes the deduplicated
// dataset without fitting or scoring.
func (a *App) Clean(ctx context.Context, opts CleanOptions) error {
	path := opts.OutputPath
	if path == "" {
		path = filepath.Join(a.Config.Output.Dir, "canonical.csv")
	}

	records, _, err := a.buildDataset()
	if err != nil {
		return err
	}

	if err := report.WriteCanonicalCSV(path, records); err != nil {
		return err
	}

	a.Logger.Info().
		Str("path", path).
		Int("records", len(records)).
		Msg("canonical dataset written")
	return nil
}
