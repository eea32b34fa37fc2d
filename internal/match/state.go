package match

import (
	"regexp"
	"strings"
)

// stateAbbr maps lowercase full state names to their postal abbreviation.
var stateAbbr = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
	"puerto rico": "PR",
}

// NormalizeState returns the uppercase postal abbreviation for a full name
// or abbreviation. Unknown values are returned uppercased and trimmed.
func NormalizeState(state string) string {
	s := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(state), ".")))
	if s == "" {
		return ""
	}
	if abbr, ok := stateAbbr[s]; ok {
		return abbr
	}
	return strings.ToUpper(s)
}

var usZip = regexp.MustCompile(`^(\d{5})(-?\d{4})?$`)

// NormalizeZip folds a US ZIP or ZIP+4 to its five digits. Any other
// postal code is uppercased with whitespace removed and kept whole.
func NormalizeZip(zip string) string {
	zip = strings.ToUpper(strings.Join(strings.Fields(zip), ""))
	if m := usZip.FindStringSubmatch(zip); m != nil {
		return m[1]
	}
	return zip
}

// CitiesMatch tolerates suffixes such as "Austin" vs "Austin City" and
// "St. Louis" vs "St Louis".
func CitiesMatch(a, b string) bool {
	na, nb := normalizeCity(a), normalizeCity(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeCity(city string) string {
	city = strings.ToLower(strings.TrimSpace(city))
	city = strings.NewReplacer(".", "", ",", "", "saint ", "st ").Replace(city)
	return strings.Join(strings.Fields(city), " ")
}
