package landcom

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/yourorg/land-api/internal/canon"
	"github.com/yourorg/land-api/internal/costar"
	"github.com/yourorg/land-api/internal/listing"
)

const (
	defaultOrigin = "https://www.land.com"

	// Combined filter covering every property category.
	allTypesFilter = 3692
)

// Per-category filter codes understood by the Land.com search API.
var typeCodes = map[listing.PropertyType]int{
	listing.TypeHomesite:     8,
	listing.TypeRecreational: 4,
	listing.TypeWaterfront:   3584,
	listing.TypeUndeveloped:  32,
	listing.TypeCommercial:   64,
}

// Client searches the Land.com property API.
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
// /api/property/search/0/{city}-{STATE}/all-land/no-house/for-sale/under-{price}/{acres}/is-active/type-{n}/
func (c *Client) searchURL(q listing.Query) string {
	acresFilter := "any-size"
	if q.MaxAcres < 1000 {
		acresFilter = fmt.Sprintf("under-%s-acres", canon.NumToken(q.MaxAcres))
	}
	return fmt.Sprintf("%s/api/property/search/0/%s-%s/all-land/no-house/for-sale/under-%d/%s/is-active/type-%d/",
		c.origin, canon.Slug(q.City), q.StateCode, q.MaxPrice, acresFilter, TypeFilter(q.PropertyTypes))
}

// Search paginates the Land.com API and returns the normalized listings
// that pass the inclusion policy. A first-page failure returns whatever was
// gathered (nothing) plus the error; later pages are skipped on failure.
func (c *Client) Search(ctx context.Context, q listing.Query) ([]listing.Listing, error) {
	base := c.searchURL(q)

	// Session priming: the API rejects clients that never visited the site.
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if err := c.api.Warmup(ctx, c.origin); err != nil {
		return nil, fmt.Errorf("land.com warmup: %w", err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	first, err := c.api.GetPage(ctx, base, nil)
	if err != nil {
		return nil, fmt.Errorf("land.com: %w", err)
	}
	props := first.Properties()
	if len(props) == 0 {
		return nil, nil
	}

	out := c.collect(nil, props, q)
	pager := costar.NewPager(c.api, c.limiter, func(page int) string {
		return fmt.Sprintf("%spage-%d/", base, page)
	}, nil, first.TotalCount(), len(props))
	for {
		batch, ok := pager.Next(ctx)
		if !ok {
			break
		}
		out = c.collect(out, batch, q)
	}
	return out, nil
}
