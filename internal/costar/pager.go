package costar

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"
)

// Vendors are never asked for more than this many pages, regardless of how
// large totalCount claims the result set is.
const maxPages = 20

// PageCount derives the number of pages to fetch from the first page's
// totalCount and its observed page size, capped at maxPages.
func PageCount(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := (totalCount + pageSize - 1) / pageSize
	if pages > maxPages {
		return maxPages
	}
	return pages
}

// Pager walks a vendor's result pages after the first, in strictly
// increasing page order, spacing requests through the shared limiter. A page
// that fails to fetch or decode is skipped, not fatal: Next yields an empty
// batch and pagination continues with the following page.
type Pager struct {
	client  *Client
	limiter *rate.Limiter
	pageURL func(page int) string
	header  http.Header

	next  int
	total int
}

// NewPager prepares pagination for pages 2..PageCount(totalCount, pageSize).
func NewPager(client *Client, limiter *rate.Limiter, pageURL func(page int) string, header http.Header, totalCount, pageSize int) *Pager {
	return &Pager{
		client:  client,
		limiter: limiter,
		pageURL: pageURL,
		header:  header,
		next:    2,
		total:   PageCount(totalCount, pageSize),
	}
}

// Next fetches the next page. The second return is false once pages are
// exhausted or the context is done.
func (p *Pager) Next(ctx context.Context) ([]Property, bool) {
	if p.next > p.total {
		return nil, false
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, false
	}
	page := p.next
	p.next++

	result, err := p.client.GetPage(ctx, p.pageURL(page), p.header)
	if err != nil {
		// Skip the bad page, keep what we have, move on.
		return nil, true
	}
	return result.Properties(), true
}
