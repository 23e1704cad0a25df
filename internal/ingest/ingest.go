// Package ingest reads the per-source listing CSVs produced by the scraping
// collaborators. Each source writes its own column set; readers map those
// columns onto a uniform RawRecord without interpreting field contents;
// parsing and validation belong to the pipeline stages.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Source identifies which scraper produced a record.
type Source string

// Known sources, in priority order (highest first).
const (
	SourceVolvoSelekt Source = "volvo_selekt"
	SourceBilia       Source = "bilia"
	SourceRejmes      Source = "rejmes"
)

// Priority returns the deduplication rank of a source; lower wins. Unknown
// sources sort last.
func (s Source) Priority() int {
	switch s {
	case SourceVolvoSelekt:
		return 0
	case SourceBilia:
		return 1
	case SourceRejmes:
		return 2
	default:
		return 3
	}
}

// RawRecord is one listing exactly as a source reported it. Every field is
// the raw string from the CSV cell; absent columns are empty.
type RawRecord struct {
	Source       Source
	Registration string
	Price        string
	ModelYear    string
	Mileage      string
	FuelType     string
	ElectricType string
	EnginePower  string
	Transmission string
	DriveType    string
	ModelVariant string
	Color        string
	Location     string
	BodyType     string
	DetailURL    string
	ScrapeDate   string
}

// columnMap names the CSV header for each RawRecord field. Empty entries mean
// the source does not carry that column.
type columnMap struct {
	registration string
	price        string
	modelYear    string
	mileage      string
	fuel         string
	electricType string
	enginePower  string
	transmission string
	drive        string
	variant      string
	color        string
	location     string
	bodyType     string
	url          string
	scrapeDate   string
}

// Column contracts with the scraping collaborators.
var sourceColumns = map[Source]columnMap{
	SourceVolvoSelekt: {
		registration: "registration_number",
		price:        "price",
		modelYear:    "model_year",
		mileage:      "mileage",
		fuel:         "fuel_type",
		enginePower:  "engine_power",
		transmission: "transmission",
		drive:        "driving_type",
		variant:      "model_variant",
		color:        "color",
		location:     "location",
		url:          "detail_url",
		scrapeDate:   "scrape_date",
	},
	SourceBilia: {
		registration: "registration",
		price:        "price",
		modelYear:    "model_year",
		mileage:      "mileage",
		fuel:         "fuel_type",
		electricType: "electric_type",
		enginePower:  "engine_power",
		transmission: "transmission",
		drive:        "drive_wheels",
		variant:      "version",
		color:        "color",
		location:     "location",
		bodyType:     "body_type",
		url:          "url",
		scrapeDate:   "scrape_date",
	},
	SourceRejmes: {
		registration: "registration",
		price:        "price",
		modelYear:    "model_year",
		mileage:      "mileage",
		fuel:         "fuel_type",
		electricType: "electric_type",
		enginePower:  "engine_power",
		transmission: "transmission",
		drive:        "drive_wheels",
		variant:      "version",
		color:        "color",
		location:     "location",
		bodyType:     "body_type",
		url:          "url",
		scrapeDate:   "scrape_date",
	},
}

// Report summarises one source read for the run log.
type Report struct {
	Source         Source
	Rows           int
	MissingColumns []string
}

// ReadFile loads one source CSV from disk.
func ReadFile(path string, source Source, logger zerolog.Logger) ([]RawRecord, Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Report{Source: source}, fmt.Errorf("open %s listings: %w", source, err)
	}
	defer file.Close()
	return Read(file, source, logger)
}

// Read parses a source CSV stream. Unknown columns are ignored; known columns
// absent from the header are reported and left empty on every record so the
// pipeline can flag affected fields instead of aborting the run.
func Read(r io.Reader, source Source, logger zerolog.Logger) ([]RawRecord, Report, error) {
	cols, ok := sourceColumns[source]
	if !ok {
		return nil, Report{Source: source}, fmt.Errorf("unknown source %q", source)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, Report{Source: source}, fmt.Errorf("read %s header: %w", source, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	report := Report{Source: source}
	for _, want := range cols.names() {
		if _, present := index[want]; !present {
			report.MissingColumns = append(report.MissingColumns, want)
		}
	}
	if len(report.MissingColumns) > 0 {
		logger.Warn().
			Str("source", string(source)).
			Strs("columns", report.MissingColumns).
			Msg("expected columns missing from source header")
	}

	cell := func(row []string, name string) string {
		if name == "" {
			return ""
		}
		i, present := index[name]
		if !present || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("read %s row: %w", source, err)
		}

		records = append(records, RawRecord{
			Source:       source,
			Registration: cell(row, cols.registration),
			Price:        cell(row, cols.price),
			ModelYear:    cell(row, cols.modelYear),
			Mileage:      cell(row, cols.mileage),
			FuelType:     cell(row, cols.fuel),
			ElectricType: cell(row, cols.electricType),
			EnginePower:  cell(row, cols.enginePower),
			Transmission: cell(row, cols.transmission),
			DriveType:    cell(row, cols.drive),
			ModelVariant: cell(row, cols.variant),
			Color:        cell(row, cols.color),
			Location:     cell(row, cols.location),
			BodyType:     cell(row, cols.bodyType),
			DetailURL:    cell(row, cols.url),
			ScrapeDate:   cell(row, cols.scrapeDate),
		})
	}

	report.Rows = len(records)
	return records, report, nil
}

func (c columnMap) names() []string {
	var out []string
	for _, name := range []string{
		c.registration, c.price, c.modelYear, c.mileage, c.fuel,
		c.electricType, c.enginePower, c.transmission, c.drive,
		c.variant, c.color, c.location, c.bodyType, c.url, c.scrapeDate,
	} {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
