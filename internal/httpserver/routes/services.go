package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/httpserver/handlers"
	"github.com/chittyos/chittyregistry/internal/httpserver/mw"
)

func init() { Register(registerServices) }

// Catalog surface. Reads are open to any caller the gate lets through;
// mutations additionally require an allowed Host header.
func registerServices(r chi.Router, d deps.Deps) {
	r.Get("/services", handlers.Discover(d))
	r.Get("/services/{name}", handlers.GetService(d))
	r.Get("/search", handlers.Search(d))
	r.Get("/stats", handlers.Stats(d))

	mutating := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	mutating.Post("/services", handlers.Register(d))
	mutating.Delete("/services/{name}", handlers.Deregister(d))
	mutating.Post("/services/{name}/check", handlers.Check(d))
}
