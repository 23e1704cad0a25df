package pipeline

import (
	"regexp"
	"sort"
)

// Swedish plate format: three letters, two digits, one digit or letter.
var registrationRe = regexp.MustCompile(`^[A-Z]{3}[0-9]{2}[A-Z0-9]$`)

// Dedupe merges the combined per-source records into one record per
// registration number. The highest-priority source wins the record; fields it
// left unresolved are backfilled field-by-field from lower-priority sources.
// Records whose registration is empty or malformed are never merged; each
// stays a singleton flagged unverified. Running Dedupe on its own output is a
// no-op.
func Dedupe(records []CanonicalRecord, stats *Stats) []CanonicalRecord {
	groups := make(map[string][]CanonicalRecord)
	var keys []string
	var unverified []CanonicalRecord

	for _, rec := range records {
		if !registrationRe.MatchString(rec.Registration) {
			rec.Unverified = true
			unverified = append(unverified, rec)
			continue
		}
		if _, seen := groups[rec.Registration]; !seen {
			keys = append(keys, rec.Registration)
		}
		groups[rec.Registration] = append(groups[rec.Registration], rec)
	}

	out := make([]CanonicalRecord, 0, len(keys)+len(unverified))
	for _, key := range keys {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].Source.Priority() != group[j].Source.Priority() {
				return group[i].Source.Priority() < group[j].Source.Priority()
			}
			return group[i].order < group[j].order
		})

		merged := group[0]
		for _, donor := range group[1:] {
			merged = backfill(merged, donor)
		}
		if len(group) > 1 {
			stats.DuplicatesMerged += len(group) - 1
		}
		out = append(out, merged)
	}

	stats.UnverifiedRegistrations += len(unverified)
	out = append(out, unverified...)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Registration != out[j].Registration {
			return out[i].Registration < out[j].Registration
		}
		if out[i].Source.Priority() != out[j].Source.Priority() {
			return out[i].Source.Priority() < out[j].Source.Priority()
		}
		return out[i].order < out[j].order
	})
	return out
}

// backfill fills each unresolved field of the winning record from a
// lower-priority donor. Provenance stays with the winner; only individual
// missing fields move.
func backfill(winner, donor CanonicalRecord) CanonicalRecord {
	if winner.Price.IsZero() && !donor.Price.IsZero() {
		winner.Price = donor.Price
	}
	if winner.ModelYear == 0 && donor.ModelYear != 0 {
		winner.ModelYear = donor.ModelYear
	}
	if !winner.MileageResolved && donor.MileageResolved {
		winner.Mileage = donor.Mileage
		winner.MileageResolved = true
	}
	if !winner.Fuel.Resolved() && donor.Fuel.Resolved() {
		winner.Fuel = donor.Fuel
	}
	if !winner.Transmission.Resolved() && donor.Transmission.Resolved() {
		winner.Transmission = donor.Transmission
	}
	if !winner.Drive.Resolved() && donor.Drive.Resolved() {
		winner.Drive = donor.Drive
	}
	if !winner.Engine.Resolved() && donor.Engine.Resolved() {
		winner.Engine = donor.Engine
	}
	if winner.Horsepower == 0 && donor.Horsepower != 0 {
		winner.Horsepower = donor.Horsepower
	}
	if winner.Color == "" && donor.Color != "" {
		winner.Color = donor.Color
	}
	if winner.Location == "" && donor.Location != "" {
		winner.Location = donor.Location
	}
	if winner.ModelVariant == "" && donor.ModelVariant != "" {
		winner.ModelVariant = donor.ModelVariant
	}
	if winner.EnginePower == "" && donor.EnginePower != "" {
		winner.EnginePower = donor.EnginePower
	}
	if winner.DetailURL == "" && donor.DetailURL != "" {
		winner.DetailURL = donor.DetailURL
	}
	return winner
}
