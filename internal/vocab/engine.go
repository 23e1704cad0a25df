package vocab

import (
	"regexp"
	"strconv"
	"strings"
)

// engineTokenRe matches candidate engine-code tokens (letter + digit) on word
// boundaries, e.g. the "B5" in "XC60 B5 AWD Momentum".
var engineTokenRe = regexp.MustCompile(`\b([TBDtbd][0-9])\b`)

// horsepowerRe matches the numeric part of Swedish engine-power strings such
// as "235 hk" or "350 hk / 261 kW".
var horsepowerRe = regexp.MustCompile(`(\d+)\s*[Hh][Kk]`)

// engineBand pairs an engine code with its nominal horsepower rating. The
// slice order is the documented tie-break priority for inference: when two
// codes sit at the same distance from an observed horsepower, the earlier
// entry wins. T5 precedes B5 so that 250 hp resolves to T5.
type engineBand struct {
	code EngineCode
	hp   int
}

var engineBands = []engineBand{
	{EngineT5, 250},
	{EngineT6, 310},
	{EngineT8, 400},
	{EngineB5, 250},
	{EngineB4, 197},
	{EngineD5, 235},
	{EngineD4, 190},
}

// ExtractEngineCode scans a model-variant string left to right for a known
// engine-code token. The first token that belongs to the enumerated set wins;
// matching is case-insensitive. Returns EngineUnresolved when no token is
// found.
func ExtractEngineCode(modelVariant string) EngineCode {
	for _, match := range engineTokenRe.FindAllStringSubmatch(modelVariant, -1) {
		candidate := EngineCode(strings.ToUpper(match[1]))
		for _, known := range EngineCodes {
			if candidate == known {
				return candidate
			}
		}
	}
	return EngineUnresolved
}

// InferEngineCode maps a horsepower reading to the engine code whose nominal
// rating is numerically closest. Distance ties fall to the band table's
// priority order. Non-positive horsepower cannot be classified.
func InferEngineCode(horsepower int) EngineCode {
	if horsepower <= 0 {
		return EngineUnresolved
	}

	best := EngineUnresolved
	bestDist := -1
	for _, band := range engineBands {
		dist := horsepower - band.hp
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best = band.code
			bestDist = dist
		}
	}
	return best
}

// ParseHorsepower extracts the numeric horsepower from an engine-power string
// by locating the leading number of the "hk" term. Returns 0 when the text
// holds no parseable reading.
func ParseHorsepower(enginePower string) int {
	match := horsepowerRe.FindStringSubmatch(enginePower)
	if match == nil {
		return 0
	}
	hp, err := strconv.Atoi(match[1])
	if err != nil || hp <= 0 {
		return 0
	}
	return hp
}
