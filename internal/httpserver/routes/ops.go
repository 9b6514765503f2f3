package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/httpserver/handlers"
	"github.com/chittyos/chittyregistry/internal/httpserver/mw"
)

func init() { Register(registerOps) }

// Operational probes. /healthz stays open for load balancers; the
// detailed views are limited to allowed networks.
func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))

	restricted := r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
	restricted.Get("/readyz", handlers.Readyz(d))
	restricted.Get("/infra", handlers.Infra(d))
}
