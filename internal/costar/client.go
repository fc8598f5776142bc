package costar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Both upstreams block non-browser clients; every request carries a
// realistic browser fingerprint. This is an operational requirement, not
// cosmetic.
const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	acceptJSON       = "application/json, text/plain, */*"
)

// Client is the HTTP layer shared by both vendor adapters. The cookie jar
// carries session cookies handed out by the warm-up request; retries are
// disabled because each page is a single-pass best-effort fetch.
type Client struct {
	http *retryablehttp.Client
}

func NewClient() *Client {
	jar, _ := cookiejar.New(nil)
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.HTTPClient.Jar = jar
	return &Client{http: rc}
}

// Warmup primes the session by hitting the site root, the way a browser
// would before calling the search API. Land.com rejects API calls from
// cookie-less clients.
func (c *Client) Warmup(ctx context.Context, origin string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, origin, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return nil
}

// GetPage fetches and decodes one search page. extra headers (if any) are
// applied on top of the browser fingerprint.
func (c *Client) GetPage(ctx context.Context, url string, extra http.Header) (*SearchPage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptJSON)
	for k, vals := range extra {
		for _, v := range vals {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
		return nil, fmt.Errorf("search page %s: %w", url, &StatusError{Code: resp.StatusCode})
	}

	body, err := readAllLimit(resp.Body, 8<<20)
	if err != nil {
		return nil, err
	}
	var page SearchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode search page: %w", err)
	}
	return &page, nil
}

// StatusError reports a non-200 response from a vendor.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string { return fmt.Sprintf("status %d", e.Code) }

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
