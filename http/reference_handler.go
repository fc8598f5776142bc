package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/yourorg/land-api/internal/store"
)

type ReferenceDeps struct {
	Store ReferenceStore
}

// RegisterReference wires the reference-data reads: cities, builders, stats.
func RegisterReference(r chi.Router, d ReferenceDeps) {
	r.Get("/api/cities", func(w http.ResponseWriter, req *http.Request) {
		cities, err := d.Store.ListCities(req.Context())
		if err != nil {
			log.Printf("[WARN] list cities failed: %v", err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "store_error", "detail": err.Error()})
			return
		}
		if cities == nil {
			cities = []store.City{}
		}
		render.JSON(w, req, cities)
	})

	// Missing or unknown city_id yields an empty list, not an error.
	r.Get("/api/builders", func(w http.ResponseWriter, req *http.Request) {
		cityID, err := strconv.ParseInt(req.URL.Query().Get("city_id"), 10, 64)
		if err != nil {
			render.JSON(w, req, []store.Builder{})
			return
		}
		city, err := d.Store.GetCityByID(req.Context(), cityID)
		if errors.Is(err, store.ErrNotFound) {
			render.JSON(w, req, []store.Builder{})
			return
		}
		if err != nil {
			log.Printf("[WARN] city lookup failed for id %d: %v", cityID, err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "store_error", "detail": err.Error()})
			return
		}
		builders, err := d.Store.ListBuilders(req.Context(), city.City, city.State)
		if err != nil {
			log.Printf("[WARN] list builders failed for city %d: %v", cityID, err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "store_error", "detail": err.Error()})
			return
		}
		if builders == nil {
			builders = []store.Builder{}
		}
		render.JSON(w, req, builders)
	})

	r.Get("/api/stats", func(w http.ResponseWriter, req *http.Request) {
		stats, err := d.Store.GetStats(req.Context())
		if err != nil {
			log.Printf("[WARN] stats query failed: %v", err)
			render.Status(req, http.StatusInternalServerError)
			render.JSON(w, req, map[string]any{"error": "store_error", "detail": err.Error()})
			return
		}
		render.JSON(w, req, map[string]any{
			"cities":   map[string]any{"total": stats.Cities},
			"builders": map[string]any{"total": stats.Builders, "states": stats.BuilderStates},
			"note":     "Land data fetched in real-time from APIs",
		})
	})
}
