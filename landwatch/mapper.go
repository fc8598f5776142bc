package landwatch

import (
	"github.com/yourorg/land-api/internal/costar"
	"github.com/yourorg/land-api/internal/listing"
)

func (c *Client) mapProperty(p costar.Property) listing.Listing {
	return listing.Listing{
		ID:          "landwatch_" + p.LWPropertyID.String(),
		Source:      listing.SourceLandWatch,
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

// collect keeps records with coordinates; nothing else is filtered locally.
func (c *Client) collect(dst []listing.Listing, props []costar.Property) []listing.Listing {
	for _, p := range props {
		l := c.mapProperty(p)
		if !l.HasCoords() {
			continue
		}
		dst = append(dst, l)
	}
	return dst
}
