package registry

import (
	"context"
	"fmt"

	"github.com/chittyos/chittyregistry/internal/domain"
)

// Stats is an operational snapshot of the registry.
type Stats struct {
	TotalServices   int `json:"totalServices"`
	HealthyServices int `json:"healthyServices"`

	// Categories counts registrations per category, only categories
	// with at least one member appear.
	Categories map[domain.Category]int `json:"categories"`

	// Authorities reports the live health of each upstream authority.
	Authorities map[string]*domain.HealthStatus `json:"authorities"`
}

// GetRegistryStats aggregates counts over the full registry and probes
// the platform authorities. Authority probes run concurrently and a
// down authority shows as UNHEALTHY rather than failing the call.
func (c *Catalog) GetRegistryStats(ctx context.Context) (*Stats, error) {
	names, err := c.store.ListServiceNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	stats := &Stats{
		Categories: make(map[domain.Category]int),
	}

	if len(names) > 0 {
		records, err := c.store.GetServices(ctx, names)
		if err != nil {
			return nil, fmt.Errorf("failed to load services: %w", err)
		}
		healths, err := c.store.GetHealths(ctx, names)
		if err != nil {
			return nil, fmt.Errorf("failed to load health snapshots: %w", err)
		}

		stats.TotalServices = len(records)
		for _, rec := range records {
			stats.Categories[rec.Category]++
			if healths[rec.ServiceName].IsHealthy() {
				stats.HealthyServices++
			}
		}
	}

	stats.Authorities = c.authorities.CheckAuthorityHealth(ctx)
	return stats, nil
}
