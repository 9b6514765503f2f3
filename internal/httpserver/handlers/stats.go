package handlers

import (
	"net/http"

	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

// Stats handles GET /stats: registry totals plus a live snapshot of
// authority health.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tc := trustgate.FromContext(r.Context())

		if decision := d.Gate.Authorize(tc, trustgate.Request{Operation: trustgate.OpStats}); !decision.Authorized {
			denied(w, decision)
			return
		}

		stats, err := d.Catalog.GetRegistryStats(r.Context())
		if err != nil {
			respondError(w, d, err)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}
