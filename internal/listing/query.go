package listing

// PropertyType is one tag from the closed filter vocabulary shared by both
// vendors. Each vendor maps tags to its own integer codes; unknown tags
// contribute nothing to a vendor's type bitmask.
type PropertyType string

const (
	TypeHomesite     PropertyType = "homesite"
	TypeRecreational PropertyType = "recreational"
	TypeWaterfront   PropertyType = "waterfront"
	TypeUndeveloped  PropertyType = "undeveloped"
	TypeCommercial   PropertyType = "commercial"
)

// Vendor selection tags accepted on the sources query param.
const (
	VendorLandCom   = "landcom"
	VendorLandWatch = "landwatch"
)

// Query carries validated filter inputs for one aggregation. It is built
// fresh per request and discarded afterwards.
type Query struct {
	City      string
	StateCode string

	MinPrice int
	MaxPrice int
	MinAcres float64
	MaxAcres float64

	// Empty slices mean "all".
	PropertyTypes []PropertyType
	Sources       []string
}

// NewQuery returns a Query for the given location with the default ranges.
func NewQuery(city, stateCode string) Query {
	return Query{
		City:      city,
		StateCode: stateCode,
		MinPrice:  0,
		MaxPrice:  1_000_000,
		MinAcres:  0,
		MaxAcres:  100,
	}
}

// WantsSource reports whether the given vendor tag is selected. An empty
// source set selects every vendor.
func (q Query) WantsSource(tag string) bool {
	if len(q.Sources) == 0 {
		return true
	}
	for _, s := range q.Sources {
		if s == tag {
			return true
		}
	}
	return false
}
