package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
)

type componentStatus struct {
	OK     bool   `json:"ok"`
	Status string `json:"status,omitempty"`
	Impact string `json:"impact,omitempty"`
	Error  string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the operational posture of the registry's own
// dependencies: the keyed store and the four platform authorities.
//
// Modes: "optimal" (everything up), "degraded" (an authority is down,
// fail-open paths take over), "critical" (the store is down, the
// registry cannot serve).
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"store": checkStore(ctx, d),
		}
		for name, health := range d.Authorities.CheckAuthorityHealth(ctx) {
			components["authority:"+name] = componentStatus{
				OK:     health.IsHealthy(),
				Status: string(health.Status),
				Impact: authorityImpact(name),
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if store, exists := components["store"]; exists && !store.OK {
		return "critical"
	}
	for name, c := range components {
		if name != "store" && !c.OK {
			return "degraded"
		}
	}
	return "optimal"
}

// authorityImpact names what degrades when an authority is down,
// mirroring the fail-open/fail-closed split of the catalog.
func authorityImpact(name string) string {
	switch name {
	case "identity":
		return "registration-blocked"
	case "schema":
		return "registration-blocked"
	case "canonical":
		return "conformance-checks-skipped"
	case "trust":
		return "callers-degraded-to-unverified"
	default:
		return ""
	}
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Status: string(domain.HealthUnhealthy),
			Impact: "registry-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Status: string(domain.HealthHealthy)}
}
