package landcom

import (
	"github.com/yourorg/land-api/internal/costar"
	"github.com/yourorg/land-api/internal/listing"
)

func (c *Client) mapProperty(p costar.Property) listing.Listing {
	return listing.Listing{
		ID:          "landcom_" + p.SiteListingID.String(),
		Source:      listing.SourceLandCom,
		Title:       p.Title,
		City:        p.City,
		State:       p.StateAbbreviation,
		Zip:         p.Zip.String(),
		County:      p.County,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Acres:       p.Acres,
		Price:       p.Price,
		Description: p.Description,
		URL:         c.origin + p.CanonicalURL,
	}
}

// include applies the Land.com inclusion policy: coordinates are required;
// with both price and acres known, both must be in range; with only acres
// known, acres alone decides. Records carrying a price but no acreage are
// excluded, matching the upstream-observed behavior.
func include(l listing.Listing, q listing.Query) bool {
	if !l.HasCoords() {
		return false
	}
	acresOK := l.Acres != nil && q.MinAcres <= *l.Acres && *l.Acres <= q.MaxAcres
	if l.Price != nil && l.Acres != nil {
		priceOK := float64(q.MinPrice) <= *l.Price && *l.Price <= float64(q.MaxPrice)
		return priceOK && acresOK
	}
	return acresOK
}

func (c *Client) collect(dst []listing.Listing, props []costar.Property, q listing.Query) []listing.Listing {
	for _, p := range props {
		l := c.mapProperty(p)
		if include(l, q) {
			dst = append(dst, l)
		}
	}
	return dst
}
