package canon

import (
	"strconv"
	"strings"
)

// Slug converts a place name to the lowercase hyphen-joined form both vendor
// URL grammars expect ("San Antonio" -> "san-antonio").
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// stateNames maps two-letter state codes to the full lowercase hyphenated
// names LandWatch uses as path tokens. Codes missing from the table (the
// upstream never lists land in every state) fall through lowercased.
var stateNames = map[string]string{
	"AL": "alabama", "AZ": "arizona", "AR": "arkansas", "CA": "california",
	"CO": "colorado", "DE": "delaware", "FL": "florida", "GA": "georgia",
	"ID": "idaho", "IL": "illinois", "IN": "indiana", "IA": "iowa",
	"KS": "kansas", "KY": "kentucky", "LA": "louisiana", "MD": "maryland",
	"MN": "minnesota", "MS": "mississippi", "MO": "missouri", "NE": "nebraska",
	"NV": "nevada", "NH": "new-hampshire", "NJ": "new-jersey", "NM": "new-mexico",
	"NY": "new-york", "NC": "north-carolina", "OH": "ohio", "OK": "oklahoma",
	"OR": "oregon", "PA": "pennsylvania", "SC": "south-carolina", "TN": "tennessee",
	"TX": "texas", "UT": "utah", "VA": "virginia", "WA": "washington",
	"WV": "west-virginia", "WI": "wisconsin", "DC": "washington-dc",
}

// NumToken formats an acreage bound as a URL path token. Whole values keep
// no trailing decimals (100 -> "100", 1.5 -> "1.5").
func NumToken(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// StateToken resolves a two-letter state code to the LandWatch path token.
// Unmapped codes pass through lowercased unchanged.
func StateToken(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if name, ok := stateNames[code]; ok {
		return name
	}
	return strings.ToLower(code)
}
