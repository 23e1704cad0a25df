package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"xc60-deals/internal/ingest"
	"xc60-deals/internal/vocab"
)

func TestTranslateParsesAndMaps(t *testing.T) {
	raws := []ingest.RawRecord{{
		Source:       ingest.SourceVolvoSelekt,
		Registration: "abc 123",
		Price:        "459 000 kr",
		ModelYear:    "2022",
		Mileage:      "45000",
		FuelType:     "Laddhybrid",
		Transmission: "Automat",
		DriveType:    "Fyrhjulsdrift",
		ModelVariant: "XC60 T8 Inscription",
		EnginePower:  "390 hk",
	}}

	var stats Stats
	records := Translate(raws, &stats)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.Registration != "ABC123" {
		t.Errorf("registration = %q, want ABC123", rec.Registration)
	}
	if !rec.Price.Equal(decimal.NewFromInt(459000)) {
		t.Errorf("price = %s, want 459000", rec.Price)
	}
	if rec.ModelYear != 2022 {
		t.Errorf("model year = %d", rec.ModelYear)
	}
	if !rec.MileageResolved || rec.Mileage != 45000 {
		t.Errorf("mileage = %v (%v)", rec.Mileage, rec.MileageResolved)
	}
	if rec.Fuel != vocab.FuelPluginHybrid || rec.Transmission != vocab.TransmissionAutomatic || rec.Drive != vocab.DriveAWD {
		t.Errorf("categories = %q/%q/%q", rec.Fuel, rec.Transmission, rec.Drive)
	}
}

func TestTranslateFlagsMalformedFieldsWithoutDropping(t *testing.T) {
	raws := []ingest.RawRecord{{
		Source:       ingest.SourceBilia,
		Registration: "DEF456",
		Price:        "ring för pris",
		ModelYear:    "1899",
		Mileage:      "-5",
		FuelType:     "Vätgas",
	}}

	var stats Stats
	records := Translate(raws, &stats)
	if len(records) != 1 {
		t.Fatal("malformed fields must not drop the record")
	}

	rec := records[0]
	if !rec.Price.IsZero() {
		t.Errorf("malformed price should stay unresolved, got %s", rec.Price)
	}
	if rec.ModelYear != 0 {
		t.Errorf("implausible year should stay unresolved, got %d", rec.ModelYear)
	}
	if rec.MileageResolved {
		t.Error("negative mileage should stay unresolved")
	}
	if rec.Fuel.Resolved() {
		t.Errorf("unknown fuel should stay unresolved, got %q", rec.Fuel)
	}
	if stats.MalformedPrice != 1 || stats.MalformedModelYear != 1 || stats.UnresolvedFuel != 1 {
		t.Errorf("stats not bumped: %+v", stats)
	}
}

func TestResolveEnginesExtractionBeatsInference(t *testing.T) {
	records := []CanonicalRecord{{
		ModelVariant: "XC60 B5 AWD Momentum",
		EnginePower:  "390 hk", // inference would say T8; extraction must win
	}}

	var stats Stats
	out := ResolveEngines(records, &stats)
	if out[0].Engine != vocab.EngineB5 {
		t.Errorf("engine = %q, want B5 from extraction", out[0].Engine)
	}
	if out[0].Horsepower != 390 {
		t.Errorf("horsepower = %d, want 390", out[0].Horsepower)
	}
	if stats.EnginesExtracted != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestResolveEnginesInfersFromHorsepower(t *testing.T) {
	records := []CanonicalRecord{{
		ModelVariant: "XC60 Momentum Pro",
		EnginePower:  "250 hk",
	}}

	var stats Stats
	out := ResolveEngines(records, &stats)
	if out[0].Engine != vocab.EngineT5 {
		t.Errorf("engine = %q, want T5 inferred from 250 hp", out[0].Engine)
	}
	if stats.EnginesInferred != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestResolveEnginesUnresolvedWithoutHorsepower(t *testing.T) {
	records := []CanonicalRecord{{
		ModelVariant: "XC60 Momentum Pro",
		EnginePower:  "",
	}}

	var stats Stats
	out := ResolveEngines(records, &stats)
	if out[0].Engine.Resolved() {
		t.Errorf("engine should stay unresolved, got %q", out[0].Engine)
	}
	if stats.UnresolvedEngine != 1 {
		t.Errorf("stats = %+v", stats)
	}
}
