// Package report writes the pipeline's tabular and diagnostic outputs for
// the downstream reporting collaborators.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"xc60-deals/internal/deals"
	"xc60-deals/internal/pipeline"
	"xc60-deals/internal/regress"
)

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

var canonicalHeader = []string{
	"registration_number", "price", "model_year", "mileage", "horsepower",
	"age", "engine_code", "fuel_type", "transmission", "driving_type",
	"color", "location", "model_variant", "source", "unverified",
}

func canonicalRow(rec pipeline.CanonicalRecord) []string {
	price := ""
	if rec.Price.IsPositive() {
		price = rec.Price.String()
	}
	year := ""
	if rec.ModelYear > 0 {
		year = strconv.Itoa(rec.ModelYear)
	}
	mileage := ""
	if rec.MileageResolved {
		mileage = strconv.FormatFloat(rec.Mileage, 'f', -1, 64)
	}
	hp := ""
	if rec.Horsepower > 0 {
		hp = strconv.Itoa(rec.Horsepower)
	}
	age := ""
	if rec.AgeResolved {
		age = strconv.Itoa(rec.Age)
	}
	return []string{
		rec.Registration, price, year, mileage, hp, age,
		string(rec.Engine), string(rec.Fuel), string(rec.Transmission), string(rec.Drive),
		rec.Color, rec.Location, rec.ModelVariant, string(rec.Source),
		strconv.FormatBool(rec.Unverified),
	}
}

// WriteCanonicalCSV writes the deduplicated dataset. Unresolved fields are
// empty cells, never defaults.
func WriteCanonicalCSV(path string, records []pipeline.CanonicalRecord) error {
	return writeCSV(path, canonicalHeader, len(records), func(i int) []string {
		return canonicalRow(records[i])
	})
}

// WriteRankingCSV writes the ranked deal list: canonical columns plus the
// per-specification predictions and deal metrics, ordered by rank.
func WriteRankingCSV(path string, ranked []deals.ScoredRecord) error {
	header := append(append([]string{}, canonicalHeader...),
		"predicted_price_linear", "predicted_price_loglinear",
		"discount_pct", "discount_sek", "rank",
	)
	return writeCSV(path, header, len(ranked), func(i int) []string {
		rec := ranked[i]
		linear := ""
		if rec.HasLinear {
			linear = rec.PredictedLinear.StringFixed(0)
		}
		loglinear := ""
		if rec.HasLogLinear {
			loglinear = rec.PredictedLogLinear.StringFixed(0)
		}
		return append(canonicalRow(rec.CanonicalRecord),
			linear, loglinear,
			rec.DiscountPct.StringFixed(1),
			rec.DiscountSEK.StringFixed(0),
			strconv.Itoa(rec.Rank),
		)
	})
}

// WriteUnscoredCSV writes the records left out of the ranking with their
// reason codes, so excluded listings stay visible to reviewers.
func WriteUnscoredCSV(path string, unscored []deals.UnscoredRecord) error {
	header := append(append([]string{}, canonicalHeader...), "reason")
	return writeCSV(path, header, len(unscored), func(i int) []string {
		return append(canonicalRow(unscored[i].CanonicalRecord), unscored[i].Reason)
	})
}

// WriteResidualsCSV exposes each fitted model's raw residuals, one row per
// record per specification, in the specification's response scale.
func WriteResidualsCSV(path string, models []*regress.Model) error {
	header := []string{"specification", "registration_number", "actual", "fitted", "residual"}

	var rows [][]string
	for _, model := range models {
		if model == nil {
			continue
		}
		for _, res := range model.Residuals {
			rows = append(rows, []string{
				string(model.Kind),
				res.Registration,
				strconv.FormatFloat(res.Actual, 'f', 6, 64),
				strconv.FormatFloat(res.Fitted, 'f', 6, 64),
				strconv.FormatFloat(res.Residual, 'f', 6, 64),
			})
		}
	}
	return writeCSV(path, header, len(rows), func(i int) []string { return rows[i] })
}

func writeCSV(path string, header []string, n int, row func(int) []string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := writer.Write(row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return writer.Error()
}
