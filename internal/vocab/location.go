package vocab

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// swedishCities whitelists the dealer cities observed across the three
// sources. Used to pick the city out of free-text dealer locations and to
// repair encoding-damaged names.
var swedishCities = map[string]struct{}{}

var swedishCityList = []string{
	"STOCKHOLM", "GÖTEBORG", "MALMÖ", "UPPSALA", "VÄSTERÅS", "ÖREBRO",
	"LINKÖPING", "HELSINGBORG", "NORRKÖPING", "JÖNKÖPING", "UMEÅ",
	"LUND", "BORÅS", "ESKILSTUNA", "GÄVLE", "SÖDERTÄLJE", "KARLSTAD",
	"HALMSTAD", "VÄXJÖ", "SUNDSVALL", "TROLLHÄTTAN", "ÖSTERSUND",
	"FALUN", "SKELLEFTEÅ", "KRISTIANSTAD", "KALMAR", "KUNGÄLV",
	"LIDKÖPING", "SKÖVDE", "UDDEVALLA", "MOTALA", "TRELLEBORG",
	"KARLSKRONA", "VARBERG", "ÄNGELHOLM", "NYKÖPING", "SANDVIKEN",
	"LIDINGÖ", "BOLLNÄS", "ÖRNSKÖLDSVIK", "LANDSKRONA", "YSTAD",
	"LINDESBERG", "FINSPÅNG", "MJÖLBY", "HALLSBERG", "ÅTVIDABERG",
	"UPPLANDS VÄSBY", "TÄBY", "SOLLENTUNA", "SOLNA", "NACKA",
	"JÄGERSRO", "KUNGSÄNGEN", "HANINGE", "SISJÖN", "KISTA",
	"SEGELTORP", "HUDDINGE", "MÄRSTA", "UPPLANDS BRO", "TIMRÅ",
	"ARÖD", "ÖSTHAMMAR", "ARVIKA", "SALA", "VARA",
	"LAHOLM", "ENKÖPING", "HAMMARBY SJÖSTAD", "VIMMERBY", "LJUSDAL",
	"HUDIKSVALL", "VALLENTUNA", "ESLÖV", "KRISTINEHAMN",
	"ALINGSÅS", "ÅMÅL", "DINGLE", "FALKÖPING", "LYSEKIL",
	"MARIESTAD", "MELLERUD", "STRÖMSTAD", "VÄNERSBORG",
	"HÄRNÖSAND", "KALIX", "STRÖMSUND", "NORRTÄLJE",
	"SÖDERHAMN", "VISBY", "KÖPING", "STRÄNGNÄS",
	"KUNGSBACKA", "STENUNGSUND", "BRO", "VÄRNHEM", "KUNGENS KURVA",
	"SÄVEDALEN",
}

// dealerPrefixes are dealership chain names that precede the city in some
// location strings.
var dealerPrefixes = []string{
	"BILBOLAGET PERSONBILAR", "VOLVO CAR", "BRANDT PERSONBILAR",
	"FINNVEDENS BIL", "SKOBES BIL", "HELMIA BIL", "BILMÅNSSON I SKÅNE",
	"REJMES PERSONVAGNAR", "BILKOMPANIET DALARNA", "JOHAN AHLBERG BIL",
	"BILBOLAGET NORD", "BILIA PERSONBILAR AB", "BILIA",
}

func init() {
	for _, city := range swedishCityList {
		swedishCities[city] = struct{}{}
	}
}

// IsSwedishCity reports whether text names a known Swedish dealer city.
func IsSwedishCity(text string) bool {
	_, ok := swedishCities[strings.ToUpper(strings.TrimSpace(text))]
	return ok
}

// repairCity fuzzy-matches a candidate against the city whitelist. Scraped
// data occasionally arrives with Å/Ä/Ö mangled into replacement characters;
// an edit distance of one per damaged rune is enough to recover the intended
// city. The whitelist is scanned in fixed order so equal-distance candidates
// resolve deterministically.
func repairCity(candidate string) (string, bool) {
	budget := strings.Count(candidate, "�")
	if budget == 0 {
		budget = 1
	}
	for _, city := range swedishCityList {
		if levenshtein.ComputeDistance(city, candidate) <= budget {
			return city, true
		}
	}
	return "", false
}

// NormalizeLocation extracts a clean uppercase city name from a raw dealer
// location string. Returns "" when the input is empty. Unknown locations pass
// through uppercased: a new city missing from the whitelist is still better
// than no location.
func NormalizeLocation(raw string) string {
	loc := strings.ToUpper(strings.Join(strings.Fields(raw), " "))
	if loc == "" {
		return ""
	}

	// "DEALER - CITY" or "CITY - STREET": prefer the part that validates.
	if strings.Contains(loc, " - ") {
		parts := strings.Split(loc, " - ")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) >= 2 && IsSwedishCity(parts[1]) {
			return parts[1]
		}
		if IsSwedishCity(parts[0]) {
			return parts[0]
		}
		if len(parts) >= 2 {
			if city, ok := repairCity(parts[1]); ok {
				return city
			}
			return parts[1]
		}
		return parts[0]
	}

	// Multi-word cities embedded in longer dealer names.
	for _, city := range swedishCityList {
		if strings.Contains(city, " ") && strings.Contains(loc, city) {
			return city
		}
	}

	// Single-word city anywhere in the text.
	for _, word := range strings.Fields(loc) {
		word = strings.Trim(word, ",-()")
		if IsSwedishCity(word) {
			return word
		}
	}

	if IsSwedishCity(loc) {
		return loc
	}

	for _, prefix := range dealerPrefixes {
		if strings.HasPrefix(loc, prefix) {
			remainder := strings.TrimLeft(strings.TrimPrefix(loc, prefix), "- ")
			if remainder != "" && IsSwedishCity(remainder) {
				return remainder
			}
		}
	}

	if city, ok := repairCity(loc); ok {
		return city
	}
	return loc
}
