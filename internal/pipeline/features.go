package pipeline

import (
	"xc60-deals/internal/vocab"
)

// DeriveFeatures computes the model features on the deduplicated set: vehicle
// age against an explicit reference year and a normalized location. The
// reference year is fixed per run by the caller; the pipeline never reads
// the clock itself. A model year beyond the reference year is flagged, not
// clamped.
func DeriveFeatures(records []CanonicalRecord, referenceYear int, stats *Stats) []CanonicalRecord {
	out := make([]CanonicalRecord, len(records))
	for i, rec := range records {
		if rec.ModelYear > 0 {
			age := referenceYear - rec.ModelYear
			if age < 0 {
				rec.FutureModelYear = true
				stats.FutureModelYears++
			} else {
				rec.Age = age
				rec.AgeResolved = true
			}
		}

		// Backfill may have supplied an engine-power string the donor never
		// had parsed; derive horsepower from it if still missing.
		if rec.Horsepower == 0 && rec.EnginePower != "" {
			rec.Horsepower = vocab.ParseHorsepower(rec.EnginePower)
		}

		rec.Location = vocab.NormalizeLocation(rec.Location)
		out[i] = rec
	}
	return out
}
