package handlers

import (
	"net/http"
	"time"

	"github.com/chittyos/chittyregistry/internal/canonical"
	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

// Bootstrap handles POST /bootstrap: re-run the canonical seed pass.
// Idempotent, so operators can call it any time; names already in the
// catalog are skipped.
func Bootstrap(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tc := trustgate.FromContext(r.Context())

		if decision := d.Gate.Authorize(tc, trustgate.Request{Operation: trustgate.OpBootstrap}); !decision.Authorized {
			denied(w, decision)
			return
		}

		seeds, err := canonical.Records(d.SeedFile, time.Now())
		if err != nil {
			respondError(w, d, err)
			return
		}

		res, err := d.Catalog.Bootstrap(r.Context(), seeds)
		recordAudit(d, tc, r, trustgate.OpBootstrap,
			map[string]interface{}{"added": res.Added, "skipped": res.Skipped}, start, err == nil)

		if err != nil {
			// Partial failure: the summary still tells the operator
			// which seeds went through.
			respondJSON(w, http.StatusInternalServerError, res)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}
