package aggregator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourorg/land-api/internal/listing"
)

type stubSearcher struct {
	listings []listing.Listing
	err      error
	delay    time.Duration
	calls    int
}

func (s *stubSearcher) Search(ctx context.Context, q listing.Query) ([]listing.Listing, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.listings, s.err
}

func f64(v float64) *float64 { return &v }

func mkListing(id string, src listing.Source, lat, lon float64) listing.Listing {
	return listing.Listing{ID: id, Source: src, Latitude: f64(lat), Longitude: f64(lon)}
}

func austinRef() listing.ReferenceLocation {
	return listing.ReferenceLocation{City: "Austin", State: "TX", Latitude: f64(30.2672), Longitude: f64(-97.7431)}
}

func TestAggregateOrdersLandComFirst(t *testing.T) {
	a := &Aggregator{
		LandCom: &stubSearcher{
			// LandCom is slower; ordering must still be deterministic.
			delay: 20 * time.Millisecond,
			listings: []listing.Listing{
				mkListing("landcom_1", listing.SourceLandCom, 30.1, -97.8),
				mkListing("landcom_2", listing.SourceLandCom, 30.2, -97.9),
			},
		},
		LandWatch: &stubSearcher{
			listings: []listing.Listing{
				mkListing("landwatch_9", listing.SourceLandWatch, 30.3, -97.6),
			},
		},
	}

	got := a.Aggregate(context.Background(), austinRef(), listing.NewQuery("Austin", "TX"))
	want := []string{"landcom_1", "landcom_2", "landwatch_9"}
	if len(got) != len(want) {
		t.Fatalf("got %d listings, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: id = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestAggregateToleratesFailingVendor(t *testing.T) {
	landCom := &stubSearcher{
		listings: []listing.Listing{mkListing("landcom_1", listing.SourceLandCom, 30.1, -97.8)},
	}
	a := &Aggregator{
		LandCom:   landCom,
		LandWatch: &stubSearcher{err: errors.New("timeout awaiting headers")},
	}

	got := a.Aggregate(context.Background(), austinRef(), listing.NewQuery("Austin", "TX"))
	if len(got) != 1 || got[0].ID != "landcom_1" {
		t.Fatalf("got %v, want only the landcom listing", got)
	}
}

func TestAggregateKeepsPartialResultsFromFailedVendor(t *testing.T) {
	a := &Aggregator{
		LandWatch: &stubSearcher{
			listings: []listing.Listing{mkListing("landwatch_1", listing.SourceLandWatch, 30.1, -97.8)},
			err:      errors.New("page 7 unreachable"),
		},
	}
	got := a.Aggregate(context.Background(), austinRef(), listing.NewQuery("Austin", "TX"))
	if len(got) != 1 {
		t.Fatalf("partial results dropped: got %d listings, want 1", len(got))
	}
}

func TestAggregateVendorSelection(t *testing.T) {
	landCom := &stubSearcher{}
	landWatch := &stubSearcher{}
	a := &Aggregator{LandCom: landCom, LandWatch: landWatch}

	q := listing.NewQuery("Austin", "TX")
	q.Sources = []string{listing.VendorLandWatch}
	a.Aggregate(context.Background(), austinRef(), q)
	if landCom.calls != 0 {
		t.Error("landcom searched despite not being selected")
	}
	if landWatch.calls != 1 {
		t.Error("landwatch not searched")
	}

	q.Sources = nil // empty means all
	a.Aggregate(context.Background(), austinRef(), q)
	if landCom.calls != 1 || landWatch.calls != 2 {
		t.Errorf("empty source set: calls = %d/%d, want 1/2", landCom.calls, landWatch.calls)
	}
}

func TestAggregateDistanceAnnotation(t *testing.T) {
	noCoords := listing.Listing{ID: "landcom_2", Source: listing.SourceLandCom}
	a := &Aggregator{
		LandCom: &stubSearcher{listings: []listing.Listing{
			mkListing("landcom_1", listing.SourceLandCom, 30.4, -97.9),
			noCoords,
		}},
	}

	got := a.Aggregate(context.Background(), austinRef(), listing.NewQuery("Austin", "TX"))
	if got[0].DistanceToCenter == nil {
		t.Fatal("listing with coordinates lacks distance")
	}
	if d := *got[0].DistanceToCenter; d < 0 {
		t.Errorf("distance = %v, want non-negative", d)
	}
	if got[1].DistanceToCenter != nil {
		t.Error("listing without coordinates must have null distance")
	}
}

func TestAggregateNoReferenceCoordinates(t *testing.T) {
	a := &Aggregator{
		LandCom: &stubSearcher{listings: []listing.Listing{
			mkListing("landcom_1", listing.SourceLandCom, 30.4, -97.9),
		}},
	}
	ref := listing.ReferenceLocation{City: "Austin", State: "TX"}

	got := a.Aggregate(context.Background(), ref, listing.NewQuery("Austin", "TX"))
	for _, l := range got {
		if l.DistanceToCenter != nil {
			t.Errorf("listing %s: distance = %v, want nil without reference coordinates", l.ID, *l.DistanceToCenter)
		}
	}
}
