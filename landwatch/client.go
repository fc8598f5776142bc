package landwatch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/yourorg/land-api/internal/canon"
	"github.com/yourorg/land-api/internal/costar"
	"github.com/yourorg/land-api/internal/listing"
)

const (
	defaultOrigin = "https://www.landwatch.com"

	// Combined filter covering every property category.
	allTypesFilter = 7780
)

// Per-category filter codes understood by the LandWatch search API. The
// homesite code differs from Land.com's even though both sites share a
// platform.
var typeCodes = map[listing.PropertyType]int{
	listing.TypeRecreational: 4,
	listing.TypeUndeveloped:  32,
	listing.TypeCommercial:   64,
	listing.TypeHomesite:     4096,
	listing.TypeWaterfront:   3584,
}

// Client searches the LandWatch property API.
type Client struct {
	origin  string
	api     *costar.Client
	limiter *rate.Limiter
}

func NewClient() *Client {
	return &Client{
		origin:  defaultOrigin,
		api:     costar.NewClient(),
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// TypeFilter sums the codes of the requested categories. An empty or fully
// unrecognized set falls back to the all-types filter.
func TypeFilter(types []listing.PropertyType) int {
	sum := 0
	for _, t := range types {
		sum += typeCodes[t]
	}
	if sum == 0 {
		return allTypesFilter
	}
	return sum
}

// searchURL builds the first-page search URL. Grammar:
// /api/property/search/1113/{state-name}-land-for-sale/{city}/prop-types-{n}/price-{min}-{max}/acres-{min}-{max}/available
func (c *Client) searchURL(q listing.Query) string {
	return fmt.Sprintf("%s/api/property/search/1113/%s-land-for-sale/%s/prop-types-%d/price-%d-%d/acres-%s-%s/available",
		c.origin, canon.StateToken(q.StateCode), canon.Slug(q.City), TypeFilter(q.PropertyTypes),
		q.MinPrice, q.MaxPrice, canon.NumToken(q.MinAcres), canon.NumToken(q.MaxAcres))
}

func (c *Client) header() http.Header {
	h := http.Header{}
	h.Set("Referer", c.origin+"/")
	return h
}

// Search paginates the LandWatch API and returns the normalized listings.
// Price and acreage filtering is delegated entirely to the query string;
// locally only coordinate presence is checked. No warm-up request is needed
// for this vendor.
func (c *Client) Search(ctx context.Context, q listing.Query) ([]listing.Listing, error) {
	base := c.searchURL(q)
	header := c.header()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	first, err := c.api.GetPage(ctx, base, header)
	if err != nil {
		return nil, fmt.Errorf("landwatch: %w", err)
	}
	props := first.Properties()
	if len(props) == 0 {
		return nil, nil
	}

	out := c.collect(nil, props)
	pager := costar.NewPager(c.api, c.limiter, func(page int) string {
		return fmt.Sprintf("%s/page-%d", base, page)
	}, header, first.TotalCount(), len(props))
	for {
		batch, ok := pager.Next(ctx)
		if !ok {
			break
		}
		out = c.collect(out, batch)
	}
	return out, nil
}
