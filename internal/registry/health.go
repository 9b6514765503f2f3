package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/store"
)

// UpdateHealthStatus records a fresh health observation. The snapshot
// always overwrites the previous one; history belongs to the trust
// authority, which is fed asynchronously and best-effort.
func (c *Catalog) UpdateHealthStatus(ctx context.Context, health *domain.HealthStatus) error {
	if health == nil || health.ServiceID == "" {
		return fmt.Errorf("health status requires a service id")
	}
	if !domain.ValidHealthState(health.Status) {
		return fmt.Errorf("unknown health state %q", health.Status)
	}

	if err := c.store.SaveHealth(ctx, health, c.healthTTL); err != nil {
		return fmt.Errorf("failed to save health: %w", err)
	}

	go c.feedTrustAuthority(health.Clone())
	return nil
}

// feedTrustAuthority forwards an observation to the trust authority.
// Runs detached from the request: a slow or dead authority must never
// delay a health write, and its errors are only logged.
func (c *Catalog) feedTrustAuthority(health *domain.HealthStatus) {
	ctx, cancel := context.WithTimeout(context.Background(), c.probeTimeout)
	defer cancel()

	err := c.authorities.UpdateScore(ctx, health.ServiceID, authority.ScoreMetrics{
		Uptime:         health.UptimePercent,
		ResponseTimeMs: health.ResponseTimeMs,
		ErrorCount:     len(health.Details.Errors),
	})
	if err != nil {
		c.log.Debug("trust authority feed skipped",
			logger.String("service", health.ServiceID),
			logger.Error(err))
	}
}

// GetHealthStatus returns the current snapshot for a registered
// service. A registered service whose snapshot expired reports
// UNKNOWN rather than not-found.
func (c *Catalog) GetHealthStatus(ctx context.Context, name string) (*domain.HealthStatus, error) {
	if _, err := c.store.GetService(ctx, name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &domain.NotFoundError{Kind: "service", Name: name}
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	health, err := c.store.GetHealth(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UnknownHealth(name, c.now()), nil
		}
		return nil, fmt.Errorf("failed to load health: %w", err)
	}
	return health, nil
}
