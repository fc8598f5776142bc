package listing

// Source identifies the upstream vendor a listing came from.
type Source string

const (
	SourceLandCom   Source = "Land.com"
	SourceLandWatch Source = "LandWatch"
)

// Listing is the unified record shape shared by both vendors. Optional
// numeric fields are pointers: nil means the upstream omitted the value,
// which is distinct from an explicit zero. Vendor fields are never mutated
// after construction; DistanceToCenter is the only field set afterwards,
// by the aggregator.
type Listing struct {
	ID          string   `json:"listing_id"`
	Source      Source   `json:"source"`
	Title       string   `json:"title"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Zip         string   `json:"zip"`
	County      string   `json:"county"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Acres       *float64 `json:"acres"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	URL         string   `json:"listing_url"`

	DistanceToCenter *float64 `json:"distance_to_center"`
}

// HasCoords reports whether both coordinates were supplied by the vendor.
func (l *Listing) HasCoords() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// ReferenceLocation is the resolved city a search is anchored to, looked up
// from the reference store. Coordinates may be absent for cities we never
// geocoded; listings then carry no distance annotation.
type ReferenceLocation struct {
	City      string
	State     string
	Latitude  *float64
	Longitude *float64
}

func (r ReferenceLocation) HasCoords() bool {
	return r.Latitude != nil && r.Longitude != nil
}
