package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

// Discover handles GET /services. Filters arrive as query parameters;
// the gate narrows the result set to what the caller may see.
func Discover(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tc := trustgate.FromContext(r.Context())

		q, includeSecure, errs := parseDiscoveryQuery(r)
		if len(errs) > 0 {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid query", Errors: errs})
			return
		}

		decision := d.Gate.Authorize(tc, trustgate.Request{
			Operation:     trustgate.OpDiscover,
			IncludeSecure: includeSecure,
		})
		if !decision.Authorized {
			denied(w, decision)
			return
		}

		services, err := d.Catalog.DiscoverServices(r.Context(), q)
		if err != nil {
			respondError(w, d, err)
			return
		}

		res := d.Gate.FilterCatalog(tc, services)
		recordAudit(d, tc, r, trustgate.OpDiscover,
			map[string]interface{}{"returned": len(res.Services), "filtered": res.Filtered}, start, true)

		respondJSON(w, http.StatusOK, res)
	}
}

// GetService handles GET /services/{name}. Entries hidden from the
// caller by trust filtering answer 404, indistinguishable from absent.
func GetService(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tc := trustgate.FromContext(r.Context())
		name := chi.URLParam(r, "name")

		if decision := d.Gate.Authorize(tc, trustgate.Request{Operation: trustgate.OpGet}); !decision.Authorized {
			denied(w, decision)
			return
		}

		svc, err := d.Catalog.GetService(r.Context(), name)
		if err != nil {
			respondError(w, d, err)
			return
		}

		// A trust-filtered entry answers exactly like an absent one.
		visible := d.Gate.FilterCatalog(tc, []domain.DiscoveredService{*svc})
		if len(visible.Services) == 0 {
			respondJSON(w, http.StatusNotFound, errorBody{Error: "service not found: " + name})
			return
		}

		recordAudit(d, tc, r, trustgate.OpGet,
			map[string]interface{}{"serviceName": name}, start, true)

		respondJSON(w, http.StatusOK, visible.Services[0])
	}
}

// Search handles GET /search?q=. Relevance orders the results; trust
// filtering applies exactly as in discovery.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tc := trustgate.FromContext(r.Context())

		if decision := d.Gate.Authorize(tc, trustgate.Request{Operation: trustgate.OpSearch}); !decision.Authorized {
			denied(w, decision)
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		services, err := d.Catalog.SearchServices(r.Context(), query)
		if err != nil {
			respondError(w, d, err)
			return
		}

		res := d.Gate.FilterCatalog(tc, services)
		recordAudit(d, tc, r, trustgate.OpSearch,
			map[string]interface{}{"q": query, "returned": len(res.Services)}, start, true)

		respondJSON(w, http.StatusOK, res)
	}
}

// parseDiscoveryQuery maps query parameters onto a DiscoveryQuery,
// itemizing every invalid value instead of stopping at the first.
func parseDiscoveryQuery(r *http.Request) (domain.DiscoveryQuery, bool, []string) {
	params := r.URL.Query()
	var errs []string

	q := domain.DiscoveryQuery{
		ServiceName: params.Get("name"),
		Capability:  params.Get("capability"),
	}

	if v := params.Get("category"); v != "" {
		c := domain.Category(v)
		if !domain.ValidCategory(c) {
			errs = append(errs, "unknown category: "+v)
		}
		q.Category = c
	}
	if v := params.Get("healthStatus"); v != "" {
		s := domain.HealthState(strings.ToUpper(v))
		if !domain.ValidHealthState(s) {
			errs = append(errs, "unknown health status: "+v)
		}
		q.HealthStatus = s
	}
	if v := params.Get("certificationLevel"); v != "" {
		c := domain.CertificationLevel(strings.ToUpper(v))
		if !domain.ValidCertificationLevel(c) {
			errs = append(errs, "unknown certification level: "+v)
		}
		q.CertificationLevel = c
	}
	if v := params.Get("includeUnhealthy"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, "includeUnhealthy must be a boolean")
		}
		q.IncludeUnhealthy = b
	}

	includeSecure := false
	if v := params.Get("includeSecure"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, "includeSecure must be a boolean")
		}
		includeSecure = b
	}

	return q, includeSecure, errs
}
