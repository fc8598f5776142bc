package costar

import "encoding/json"

// stringNumber accepts string or number JSON and stores the textual form.
// Vendor IDs and zips show up as either depending on the listing.
type stringNumber string

func (s *stringNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = stringNumber(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*s = stringNumber(num.String())
	return nil
}

func (s stringNumber) String() string { return string(s) }

// Property is one record from a search response. Land.com and LandWatch run
// on the same CoStar platform and share this schema; only the native ID
// field differs (siteListingId vs lwPropertyId). Optional numerics decode to
// nil when the upstream sends null or omits the key.
type Property struct {
	SiteListingID     stringNumber `json:"siteListingId"`
	LWPropertyID      stringNumber `json:"lwPropertyId"`
	Title             string       `json:"title"`
	City              string       `json:"city"`
	StateAbbreviation string       `json:"stateAbbreviation"`
	Zip               stringNumber `json:"zip"`
	County            string       `json:"county"`
	Latitude          *float64     `json:"latitude"`
	Longitude         *float64     `json:"longitude"`
	Acres             *float64     `json:"acres"`
	Price             *float64     `json:"price"`
	Description       string       `json:"description"`
	CanonicalURL      string       `json:"canonicalUrl"`
}

// SearchPage is the envelope wrapping every search response page.
type SearchPage struct {
	SearchResults struct {
		TotalCount      int        `json:"totalCount"`
		PropertyResults []Property `json:"propertyResults"`
	} `json:"searchResults"`
}

func (p *SearchPage) Properties() []Property { return p.SearchResults.PropertyResults }

func (p *SearchPage) TotalCount() int { return p.SearchResults.TotalCount }
