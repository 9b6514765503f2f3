package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/httpserver/handlers"
	"github.com/chittyos/chittyregistry/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

// Operator surface, reachable only from allowed networks.
func registerAdmin(r chi.Router, d deps.Deps) {
	admin := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	)
	admin.Post("/bootstrap", handlers.Bootstrap(d))
	admin.Post("/reconcile", handlers.Reconcile(d))
	admin.Post("/tokens/service", handlers.ServiceToken(d))
}
