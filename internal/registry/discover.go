package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/store"
)

// DiscoverServices resolves candidates for the query and applies its
// filters in order: capability, certification, explicit health state,
// and finally the healthy-only default. An empty result is a valid
// answer, never an error.
func (c *Catalog) DiscoverServices(ctx context.Context, q domain.DiscoveryQuery) ([]domain.DiscoveredService, error) {
	records, err := c.resolveCandidates(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []domain.DiscoveredService{}, nil
	}

	discovered, err := c.hydrateHealth(ctx, records)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DiscoveredService, 0, len(discovered))
	for _, d := range discovered {
		if q.Capability != "" && !d.Service.HasCapability(q.Capability) {
			continue
		}
		if q.CertificationLevel != "" && d.Service.CertificationLevel != q.CertificationLevel {
			continue
		}
		if q.HealthStatus != "" && d.CurrentHealth.Status != q.HealthStatus {
			continue
		}
		if !q.IncludeUnhealthy && !d.CurrentHealth.IsHealthy() {
			continue
		}
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Service.ServiceName < out[j].Service.ServiceName
	})
	return out, nil
}

// resolveCandidates picks the cheapest candidate set the query allows:
// a direct name lookup, a category index, or the full registry.
func (c *Catalog) resolveCandidates(ctx context.Context, q domain.DiscoveryQuery) ([]*domain.ServiceRecord, error) {
	if q.ServiceName != "" {
		rec, err := c.store.GetService(ctx, q.ServiceName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to load service: %w", err)
		}
		return []*domain.ServiceRecord{rec}, nil
	}

	var names []string
	var err error
	if q.Category != "" {
		names, err = c.store.ListCategory(ctx, q.Category)
	} else {
		names, err = c.store.ListServiceNames(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	if len(names) == 0 {
		return nil, nil
	}

	records, err := c.store.GetServices(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	return records, nil
}

// hydrateHealth pairs each record with its current health snapshot.
// Records with no snapshot, typically because the TTL lapsed, get a
// synthetic UNKNOWN with a zero LastCheck so callers can tell it was
// never observed.
func (c *Catalog) hydrateHealth(ctx context.Context, records []*domain.ServiceRecord) ([]domain.DiscoveredService, error) {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		names = append(names, rec.ServiceName)
	}

	healths, err := c.store.GetHealths(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to load health snapshots: %w", err)
	}

	out := make([]domain.DiscoveredService, 0, len(records))
	for _, rec := range records {
		h, ok := healths[rec.ServiceName]
		if !ok || h == nil {
			h = domain.UnknownHealth(rec.ServiceName, time.Time{})
		}
		out = append(out, domain.DiscoveredService{Service: rec, CurrentHealth: h})
	}
	return out, nil
}

// GetService returns a single registration with its health snapshot.
func (c *Catalog) GetService(ctx context.Context, name string) (*domain.DiscoveredService, error) {
	rec, err := c.store.GetService(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &domain.NotFoundError{Kind: "service", Name: name}
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	discovered, err := c.hydrateHealth(ctx, []*domain.ServiceRecord{rec})
	if err != nil {
		return nil, err
	}
	return &discovered[0], nil
}

// SearchServices ranks every registration against a free-text query.
// Unlike discovery it does not exclude unhealthy services; relevance
// decides the order and health rides along for display.
func (c *Catalog) SearchServices(ctx context.Context, rawQuery string) ([]domain.DiscoveredService, error) {
	q := domain.ParseSearchQuery(rawQuery)
	if len(q.Fragments) == 0 {
		return []domain.DiscoveredService{}, nil
	}

	names, err := c.store.ListServiceNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	if len(names) == 0 {
		return []domain.DiscoveredService{}, nil
	}

	records, err := c.store.GetServices(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}

	ranked := domain.RankRecords(q, records)
	if len(ranked) == 0 {
		return []domain.DiscoveredService{}, nil
	}

	ordered := make([]*domain.ServiceRecord, 0, len(ranked))
	for _, cand := range ranked {
		ordered = append(ordered, cand.Record)
	}
	return c.hydrateHealth(ctx, ordered)
}
