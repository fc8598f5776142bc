package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/yourorg/land-api/http"
)

func BuildRouter(st httpapi.ReferenceStore, agg httpapi.ListingSearcher) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(30, 1*time.Minute)) // each request fans out to rate-limited vendors
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterListings(r, httpapi.ListingsDeps{Cities: st, Aggregator: agg})
	httpapi.RegisterReference(r, httpapi.ReferenceDeps{Store: st})

	return r
}
