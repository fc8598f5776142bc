package landcom

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/yourorg/land-api/internal/costar"
	"github.com/yourorg/land-api/internal/listing"
)

func TestTypeFilter(t *testing.T) {
	cases := []struct {
		name  string
		types []listing.PropertyType
		want  int
	}{
		{"empty set falls back to all types", nil, 3692},
		{"homesite plus waterfront", []listing.PropertyType{listing.TypeHomesite, listing.TypeWaterfront}, 3592},
		{"single type", []listing.PropertyType{listing.TypeUndeveloped}, 32},
		{"unrecognized tags contribute nothing", []listing.PropertyType{"castle"}, 3692},
		{"unrecognized mixed with known", []listing.PropertyType{"castle", listing.TypeCommercial}, 64},
	}
	for _, c := range cases {
		if got := TypeFilter(c.types); got != c.want {
			t.Errorf("%s: TypeFilter = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestNewClientThrottlesToOneRequestPerSecond(t *testing.T) {
	c := NewClient()
	if got := c.limiter.Limit(); got != rate.Every(time.Second) {
		t.Errorf("limiter rate = %v, want %v", got, rate.Every(time.Second))
	}
	if got := c.limiter.Burst(); got != 1 {
		t.Errorf("limiter burst = %d, want 1", got)
	}
}

func TestSearchURL(t *testing.T) {
	c := NewClient()

	q := listing.NewQuery("San Antonio", "TX")
	q.MaxPrice = 500_000
	q.MaxAcres = 50
	want := "https://www.land.com/api/property/search/0/san-antonio-TX/all-land/no-house/for-sale/under-500000/under-50-acres/is-active/type-3692/"
	if got := c.searchURL(q); got != want {
		t.Errorf("searchURL = %q, want %q", got, want)
	}

	q.MaxAcres = 5000
	if got := c.searchURL(q); got != "https://www.land.com/api/property/search/0/san-antonio-TX/all-land/no-house/for-sale/under-500000/any-size/is-active/type-3692/" {
		t.Errorf("searchURL with large acreage = %q, want any-size segment", got)
	}
}

func f64(v float64) *float64 { return &v }

func TestInclusionPolicy(t *testing.T) {
	q := listing.NewQuery("Austin", "TX")

	cases := []struct {
		name string
		l    listing.Listing
		want bool
	}{
		{
			"acres in range, price missing",
			listing.Listing{Latitude: f64(30), Longitude: f64(-97), Acres: f64(5)},
			true,
		},
		{
			"coordinates but neither price nor acres",
			listing.Listing{Latitude: f64(30), Longitude: f64(-97)},
			false,
		},
		{
			"price only, in range",
			listing.Listing{Latitude: f64(30), Longitude: f64(-97), Price: f64(50_000)},
			false,
		},
		{
			"both present, both in range",
			listing.Listing{Latitude: f64(30), Longitude: f64(-97), Acres: f64(10), Price: f64(250_000)},
			true,
		},
		{
			"both present, price out of range",
			listing.Listing{Latitude: f64(30), Longitude: f64(-97), Acres: f64(10), Price: f64(2_000_000)},
			false,
		},
		{
			"both present, acres out of range",
			listing.Listing{Latitude: f64(30), Longitude: f64(-97), Acres: f64(400), Price: f64(250_000)},
			false,
		},
		{
			"no coordinates",
			listing.Listing{Acres: f64(5), Price: f64(50_000)},
			false,
		},
	}
	for _, c := range cases {
		if got := include(c.l, q); got != c.want {
			t.Errorf("%s: include = %v, want %v", c.name, got, c.want)
		}
	}
}

func testClient(srvURL string) *Client {
	c := NewClient()
	c.origin = srvURL
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func propJSON(id int, acres float64) string {
	return fmt.Sprintf(`{"siteListingId": %d, "title": "Lot %d", "city": "Austin", "stateAbbreviation": "TX",
		"latitude": 30.2, "longitude": -97.7, "acres": %g, "canonicalUrl": "/property/%d/"}`, id, id, acres, id)
}

func TestSearchPaginatesAndNormalizes(t *testing.T) {
	var warmedUp bool
	searchPath := "/api/property/search/0/austin-TX/all-land/no-house/for-sale/under-1000000/under-100-acres/is-active/type-3692/"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			warmedUp = true
		case searchPath:
			fmt.Fprintf(w, `{"searchResults": {"totalCount": 4, "propertyResults": [%s, %s]}}`,
				propJSON(1, 5), propJSON(2, 10))
		case searchPath + "page-2/":
			if !warmedUp {
				t.Error("page fetched before warm-up request")
			}
			fmt.Fprintf(w, `{"searchResults": {"totalCount": 4, "propertyResults": [%s, %s]}}`,
				propJSON(3, 20), propJSON(4, 900)) // 900 acres is out of range
		default:
			t.Errorf("unexpected request path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	got, err := c.Search(context.Background(), listing.NewQuery("Austin", "TX"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !warmedUp {
		t.Error("warm-up request was never made")
	}
	if len(got) != 3 {
		t.Fatalf("got %d listings, want 3", len(got))
	}
	if got[0].ID != "landcom_1" || got[2].ID != "landcom_3" {
		t.Errorf("ids out of order: %q .. %q", got[0].ID, got[2].ID)
	}
	if got[0].Source != listing.SourceLandCom {
		t.Errorf("source = %q", got[0].Source)
	}
	if got[0].URL != srv.URL+"/property/1/" {
		t.Errorf("listing url = %q", got[0].URL)
	}
	if got[0].DistanceToCenter != nil {
		t.Error("adapter must not set distance")
	}
}

func TestSearchEmptyFirstPageIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			return
		}
		fmt.Fprint(w, `{"searchResults": {"totalCount": 0, "propertyResults": []}}`)
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Search(context.Background(), listing.NewQuery("Nowhere", "TX"))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d listings, want 0", len(got))
	}
}

func TestSearchFirstPageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	got, err := testClient(srv.URL).Search(context.Background(), listing.NewQuery("Austin", "TX"))
	if err == nil {
		t.Fatal("want error on first-page failure")
	}
	var se *costar.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusForbidden {
		t.Errorf("error = %v, want wrapped 403 status error", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d listings, want 0", len(got))
	}
}
