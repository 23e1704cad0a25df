package vocab

import "strings"

// Translation rules are data, not control flow: each table is an ordered list
// of substring rules evaluated top to bottom against the normalized input.
// Order matters because Swedish listing sites overload terms ("laddhybrid"
// must match before the generic "hybrid", "el" only counts as electric when
// no combustion term is present).

type fuelRule struct {
	substr   string
	excludes []string
	target   FuelType
}

var fuelRules = []fuelRule{
	{substr: "laddhybrid", target: FuelPluginHybrid},
	{substr: "plug", target: FuelPluginHybrid},
	{substr: "el/bensin", target: FuelPluginHybrid}, // Rejmes: "Hybrid el/bensin"
	{substr: "bensin+el", target: FuelPluginHybrid}, // Bilia's plug-in format
	{substr: "bensin + el", target: FuelPluginHybrid},
	{substr: "mildhybrid", target: FuelMildHybrid},
	{substr: "hybrid", target: FuelHybrid},
	{substr: "el", excludes: []string{"diesel", "bensin"}, target: FuelElectric},
	{substr: "diesel", target: FuelDiesel},
	{substr: "bensin", target: FuelPetrol},
}

// electricTypeRules classify Bilia's dedicated electric_type column, which is
// authoritative over the fuel_type text when present.
var electricTypeRules = []fuelRule{
	{substr: "laddhybrid", target: FuelPluginHybrid},
	{substr: "elbil", target: FuelElectric},
	{substr: "mildhybrid", target: FuelMildHybrid},
}

type transmissionRule struct {
	substr string
	target Transmission
}

var transmissionRules = []transmissionRule{
	{substr: "auto", target: TransmissionAutomatic},
	{substr: "manu", target: TransmissionManual},
}

type driveRule struct {
	substr string
	target DriveType
}

var driveRules = []driveRule{
	{substr: "fyrhjuls", target: DriveAWD},
	{substr: "awd", target: DriveAWD},
	{substr: "4wd", target: DriveAWD},
	{substr: "framhjuls", target: DriveFWD},
	{substr: "fwd", target: DriveFWD},
}

func normalizeRaw(raw string) string {
	return strings.ToLower(strings.Join(strings.Fields(raw), " "))
}

// TranslateFuel maps a raw fuel string, plus the optional electric-type
// column some sources carry, to a canonical fuel category. Unmapped input
// yields FuelUnresolved.
func TranslateFuel(rawFuel, rawElectricType string) FuelType {
	if et := normalizeRaw(rawElectricType); et != "" {
		for _, rule := range electricTypeRules {
			if strings.Contains(et, rule.substr) {
				return rule.target
			}
		}
	}

	fuel := normalizeRaw(rawFuel)
	if fuel == "" {
		return FuelUnresolved
	}
	for _, rule := range fuelRules {
		if !strings.Contains(fuel, rule.substr) {
			continue
		}
		excluded := false
		for _, ex := range rule.excludes {
			if strings.Contains(fuel, ex) {
				excluded = true
				break
			}
		}
		if !excluded {
			return rule.target
		}
	}
	return FuelUnresolved
}

// TranslateTransmission maps a raw transmission string to a canonical
// category.
func TranslateTransmission(raw string) Transmission {
	norm := normalizeRaw(raw)
	if norm == "" {
		return TransmissionUnresolved
	}
	for _, rule := range transmissionRules {
		if strings.Contains(norm, rule.substr) {
			return rule.target
		}
	}
	return TransmissionUnresolved
}

// TranslateDrive maps a raw drive-type string to a canonical category.
func TranslateDrive(raw string) DriveType {
	norm := normalizeRaw(raw)
	if norm == "" {
		return DriveUnresolved
	}
	for _, rule := range driveRules {
		if strings.Contains(norm, rule.substr) {
			return rule.target
		}
	}
	return DriveUnresolved
}
