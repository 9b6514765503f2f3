package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

// Check handles POST /services/{name}/check: an immediate probe that
// bypasses the scheduled cycle, typically after registration.
func Check(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tc := trustgate.FromContext(r.Context())
		name := chi.URLParam(r, "name")

		if decision := d.Gate.Authorize(tc, trustgate.Request{Operation: trustgate.OpCheck}); !decision.Authorized {
			denied(w, decision)
			return
		}

		health, err := d.Monitor.CheckService(r.Context(), name)
		if err != nil {
			respondError(w, d, err)
			return
		}

		recordAudit(d, tc, r, trustgate.OpCheck,
			map[string]interface{}{"serviceName": name, "status": string(health.Status)}, start, true)

		respondJSON(w, http.StatusOK, health)
	}
}
