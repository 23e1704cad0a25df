// Package pipeline turns raw per-source listings into a single canonical
// dataset. Every stage is a pure function over an immutable input slice and
// allocates a fresh output slice; re-running any stage on the same input
// yields identical output.
package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"xc60-deals/internal/ingest"
	"xc60-deals/internal/vocab"
)

// CanonicalRecord is one vehicle after normalization. Zero values mark
// unresolved fields: a zero Price, ModelYear, or Horsepower, an unset
// MileageResolved, or an empty category all mean the source data could not be
// parsed, never that the value is literally zero.
type CanonicalRecord struct {
	Registration string // uppercase, whitespace stripped
	Unverified   bool   // registration empty or malformed; never merged
	Source       ingest.Source

	Price           decimal.Decimal
	ModelYear       int
	Mileage         float64
	MileageResolved bool

	Fuel         vocab.FuelType
	Transmission vocab.Transmission
	Drive        vocab.DriveType
	Engine       vocab.EngineCode
	Horsepower   int

	Age             int
	AgeResolved     bool
	FutureModelYear bool

	Color        string
	Location     string
	ModelVariant string
	EnginePower  string
	DetailURL    string

	order int // ingestion position, stabilises tie-breaks
}

// Stats counts flagged and excluded records per stage so defects surface in
// the run summary instead of disappearing silently.
type Stats struct {
	RawRows                 int
	MalformedPrice          int
	MalformedModelYear      int
	MalformedMileage        int
	UnresolvedFuel          int
	UnresolvedTransmission  int
	UnresolvedDrive         int
	EnginesExtracted        int
	EnginesInferred         int
	UnresolvedEngine        int
	UnresolvedHorsepower    int
	DuplicatesMerged        int
	UnverifiedRegistrations int
	FutureModelYears        int
}

var leadingNumberRe = regexp.MustCompile(`\d+`)

// plausible model-year window; years outside it are treated as malformed.
const (
	minModelYear = 1990
	maxModelYear = 2099
)

// Translate parses the numeric fields of each raw record and maps its
// categorical strings onto the canonical vocabularies. Malformed fields are
// flagged unresolved on the record, never dropped with it.
func Translate(raws []ingest.RawRecord, stats *Stats) []CanonicalRecord {
	records := make([]CanonicalRecord, 0, len(raws))
	for i, raw := range raws {
		rec := CanonicalRecord{
			Registration: normalizeRegistration(raw.Registration),
			Source:       raw.Source,
			Color:        strings.TrimSpace(raw.Color),
			Location:     raw.Location,
			ModelVariant: strings.TrimSpace(raw.ModelVariant),
			EnginePower:  strings.TrimSpace(raw.EnginePower),
			DetailURL:    raw.DetailURL,
			order:        i,
		}

		if price, ok := parseAmount(raw.Price); ok && price.IsPositive() {
			rec.Price = price
		} else if strings.TrimSpace(raw.Price) != "" || !ok {
			stats.MalformedPrice++
		}

		if year, ok := parseYear(raw.ModelYear); ok {
			rec.ModelYear = year
		} else {
			stats.MalformedModelYear++
		}

		if km, ok := parseMileage(raw.Mileage); ok {
			rec.Mileage = km
			rec.MileageResolved = true
		} else {
			stats.MalformedMileage++
		}

		rec.Fuel = vocab.TranslateFuel(raw.FuelType, raw.ElectricType)
		if !rec.Fuel.Resolved() {
			stats.UnresolvedFuel++
		}
		rec.Transmission = vocab.TranslateTransmission(raw.Transmission)
		if !rec.Transmission.Resolved() {
			stats.UnresolvedTransmission++
		}
		rec.Drive = vocab.TranslateDrive(raw.DriveType)
		if !rec.Drive.Resolved() {
			stats.UnresolvedDrive++
		}

		records = append(records, rec)
	}
	stats.RawRows += len(raws)
	return records
}

// ResolveEngines parses horsepower and resolves the engine code for every
// record: extraction from the model-variant text first, nearest-band
// inference from horsepower second. Records where both fail keep an
// unresolved engine code and are flagged for review downstream.
func ResolveEngines(records []CanonicalRecord, stats *Stats) []CanonicalRecord {
	out := make([]CanonicalRecord, len(records))
	for i, rec := range records {
		rec.Horsepower = vocab.ParseHorsepower(rec.EnginePower)
		if rec.Horsepower == 0 && rec.EnginePower != "" {
			stats.UnresolvedHorsepower++
		}

		rec.Engine = vocab.ExtractEngineCode(rec.ModelVariant)
		switch {
		case rec.Engine.Resolved():
			stats.EnginesExtracted++
		default:
			rec.Engine = vocab.InferEngineCode(rec.Horsepower)
			if rec.Engine.Resolved() {
				stats.EnginesInferred++
			} else {
				stats.UnresolvedEngine++
			}
		}
		out[i] = rec
	}
	return out
}

func normalizeRegistration(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

func parseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ToLower(strings.ReplaceAll(raw, " ", ""))
	cleaned = strings.TrimSuffix(cleaned, "kr")
	cleaned = strings.TrimSuffix(cleaned, "sek")
	if cleaned == "" {
		return decimal.Decimal{}, true // absent, not malformed
	}
	digits := leadingNumberRe.FindString(cleaned)
	if digits == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseYear(raw string) (int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	year, err := strconv.Atoi(trimmed)
	if err != nil || year < minModelYear || year > maxModelYear {
		return 0, false
	}
	return year, true
}

func parseMileage(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	cleaned = strings.TrimSuffix(strings.ToLower(cleaned), "km")
	if cleaned == "" {
		return 0, false
	}
	km, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || km < 0 {
		return 0, false
	}
	return km, true
}
