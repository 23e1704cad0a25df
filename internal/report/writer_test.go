package report

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"xc60-deals/internal/deals"
	"xc60-deals/internal/ingest"
	"xc60-deals/internal/pipeline"
	"xc60-deals/internal/regress"
	"xc60-deals/internal/vocab"
)

func sampleRecord() pipeline.CanonicalRecord {
	return pipeline.CanonicalRecord{
		Registration:    "ABC123",
		Source:          ingest.SourceVolvoSelekt,
		Price:           decimal.NewFromInt(459000),
		ModelYear:       2022,
		Mileage:         45000,
		MileageResolved: true,
		Fuel:            vocab.FuelPluginHybrid,
		Transmission:    vocab.TransmissionAutomatic,
		Drive:           vocab.DriveAWD,
		Engine:          vocab.EngineT8,
		Horsepower:      390,
		Age:             4,
		AgeResolved:     true,
		Color:           "Svart",
		Location:        "GÖTEBORG",
		ModelVariant:    "XC60 T8 Inscription",
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

func TestWriteCanonicalCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canonical.csv")

	unresolved := pipeline.CanonicalRecord{Registration: "BAD", Unverified: true, Source: ingest.SourceBilia}
	if err := WriteCanonicalCSV(path, []pipeline.CanonicalRecord{sampleRecord(), unresolved}); err != nil {
		t.Fatalf("WriteCanonicalCSV: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "registration_number" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "ABC123" || rows[1][1] != "459000" || rows[1][6] != "T8" {
		t.Errorf("unexpected row: %v", rows[1])
	}
	// unresolved fields stay empty, never zero-filled
	if rows[2][1] != "" || rows[2][6] != "" {
		t.Errorf("unresolved fields must be empty: %v", rows[2])
	}
	if rows[2][14] != "true" {
		t.Errorf("unverified flag must surface: %v", rows[2])
	}
}

func TestWriteRankingCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ranking.csv")

	scored := deals.ScoredRecord{
		CanonicalRecord:    sampleRecord(),
		PredictedLinear:    decimal.NewFromInt(480000),
		HasLinear:          true,
		PredictedLogLinear: decimal.NewFromInt(485000),
		HasLogLinear:       true,
		Predicted:          decimal.NewFromInt(485000),
		DiscountPct:        decimal.NewFromFloat(5.36),
		DiscountSEK:        decimal.NewFromInt(26000),
		Rank:               1,
	}
	if err := WriteRankingCSV(path, []deals.ScoredRecord{scored}); err != nil {
		t.Fatalf("WriteRankingCSV: %v", err)
	}

	rows := readCSV(t, path)
	header := rows[0]
	for _, want := range []string{"predicted_price_linear", "predicted_price_loglinear", "discount_pct", "discount_sek", "rank"} {
		found := false
		for _, col := range header {
			if col == want {
				found = true
			}
		}
		if !found {
			t.Errorf("header missing %q: %v", want, header)
		}
	}
	last := rows[1][len(rows[1])-1]
	if last != "1" {
		t.Errorf("rank column = %q, want 1", last)
	}
}

func TestWriteUnscoredCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unscored.csv")

	un := deals.UnscoredRecord{CanonicalRecord: sampleRecord(), Reason: deals.ReasonUnresolvedMileage}
	if err := WriteUnscoredCSV(path, []deals.UnscoredRecord{un}); err != nil {
		t.Fatalf("WriteUnscoredCSV: %v", err)
	}

	rows := readCSV(t, path)
	if rows[1][len(rows[1])-1] != deals.ReasonUnresolvedMileage {
		t.Errorf("reason column = %q", rows[1][len(rows[1])-1])
	}
}

func TestRenderModelSummary(t *testing.T) {
	var buf bytes.Buffer
	outcomes := []FitOutcome{
		{Kind: regress.Linear, Err: errors.New("singular design matrix")},
	}
	if err := renderModelSummary(&buf, outcomes, pipeline.Stats{RawRows: 42}); err != nil {
		t.Fatalf("renderModelSummary: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "specification: linear") {
		t.Errorf("summary missing specification header:\n%s", out)
	}
	if !strings.Contains(out, "not fitted: singular design matrix") {
		t.Errorf("failed fit must be reported:\n%s", out)
	}
	if !strings.Contains(out, "raw rows") {
		t.Errorf("pipeline counters missing:\n%s", out)
	}
}
