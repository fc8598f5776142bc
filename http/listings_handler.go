package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/land-api/internal/listing"
	"github.com/yourorg/land-api/internal/store"
)

// ReferenceStore is the read-only contract the handlers need from the
// reference datastore.
type ReferenceStore interface {
	GetCityByID(ctx context.Context, id int64) (store.City, error)
	ListCities(ctx context.Context) ([]store.City, error)
	ListBuilders(ctx context.Context, city, state string) ([]store.Builder, error)
	GetStats(ctx context.Context) (store.Stats, error)
}

// ListingSearcher runs one vendor aggregation.
type ListingSearcher interface {
	Aggregate(ctx context.Context, ref listing.ReferenceLocation, q listing.Query) []listing.Listing
}

type ListingsDeps struct {
	Cities     ReferenceStore
	Aggregator ListingSearcher
}

func RegisterListings(r chi.Router, d ListingsDeps) {
	r.Get("/api/listings", func(w http.ResponseWriter, req *http.Request) {
		qs := req.URL.Query()

		cityID, err := strconv.ParseInt(qs.Get("city_id"), 10, 64)
		if err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "city_id_required"})
			return
		}

		city, err := d.Cities.GetCityByID(req.Context(), cityID)
		if errors.Is(err, store.ErrNotFound) {
			render.Status(req, http.StatusNotFound)
			render.JSON(w, req, map[string]any{"error": "city_not_found"})
			return
		}
		if err != nil {
			log.Printf("[WARN] city lookup failed for id %d: %v", cityID, err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "store_error", "detail": err.Error()})
			return
		}

		q := listing.NewQuery(city.City, city.State)
		if v := qs.Get("min_price"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				q.MinPrice = i
			}
		}
		if v := qs.Get("max_price"); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				q.MaxPrice = i
			}
		}
		if v := qs.Get("min_acres"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				q.MinAcres = f
			}
		}
		if v := qs.Get("max_acres"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				q.MaxAcres = f
			}
		}
		q.Sources = append(q.Sources, qs["sources"]...)
		for _, t := range qs["property_types"] {
			q.PropertyTypes = append(q.PropertyTypes, listing.PropertyType(t))
		}

		log.Printf("[INFO] searching land in %s, %s (price %d-%d, acres %g-%g)",
			city.City, city.State, q.MinPrice, q.MaxPrice, q.MinAcres, q.MaxAcres)

		results := d.Aggregator.Aggregate(req.Context(), city.Reference(), q)

		log.Printf("[INFO] served %d listings for city %d", len(results), cityID)
		render.JSON(w, req, results)
	})
}
