package aggregator

import (
	"context"
	"log"
	"sync"

	"github.com/yourorg/land-api/internal/geo"
	"github.com/yourorg/land-api/internal/listing"
)

// Searcher is the adapter contract implemented by the vendor clients.
type Searcher interface {
	Search(ctx context.Context, q listing.Query) ([]listing.Listing, error)
}

// Aggregator fans a query out to the selected vendors and merges results.
type Aggregator struct {
	LandCom   Searcher
	LandWatch Searcher
}

// Aggregate runs the active vendor searches concurrently and returns the
// merged list: all Land.com listings first, then all LandWatch listings,
// each in upstream pagination order. A failing vendor contributes zero
// listings; the aggregate never fails as a whole. Distance to the reference
// location is annotated wherever both sides have coordinates.
func (a *Aggregator) Aggregate(ctx context.Context, ref listing.ReferenceLocation, q listing.Query) []listing.Listing {
	var (
		wg        sync.WaitGroup
		landCom   []listing.Listing
		landWatch []listing.Listing
	)
	run := func(tag string, s Searcher, dst *[]listing.Listing) {
		if s == nil || !q.WantsSource(tag) {
			return
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.Search(ctx, q)
			if err != nil {
				log.Printf("[WARN] %s search failed: %v", tag, err)
			}
			*dst = got
		}()
	}
	run(listing.VendorLandCom, a.LandCom, &landCom)
	run(listing.VendorLandWatch, a.LandWatch, &landWatch)
	wg.Wait()

	out := make([]listing.Listing, 0, len(landCom)+len(landWatch))
	out = append(out, landCom...)
	out = append(out, landWatch...)
	annotate(ref, out)
	return out
}

func annotate(ref listing.ReferenceLocation, ls []listing.Listing) {
	for i := range ls {
		if ref.HasCoords() && ls[i].HasCoords() {
			d := geo.Miles(*ref.Longitude, *ref.Latitude, *ls[i].Longitude, *ls[i].Latitude)
			ls[i].DistanceToCenter = &d
		} else {
			ls[i].DistanceToCenter = nil
		}
	}
}
