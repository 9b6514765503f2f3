package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/store"
)

// BootstrapResult summarizes one bootstrap pass.
type BootstrapResult struct {
	Added   int      `json:"added"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
}

// Bootstrap seeds the registry with canonical platform services.
// Safe to run on every startup: names that already exist are left
// untouched, including any live-registered record that happens to
// shadow a seed. Failures on individual seeds do not stop the pass.
func (c *Catalog) Bootstrap(ctx context.Context, seeds []*domain.ServiceRecord) (*BootstrapResult, error) {
	res := &BootstrapResult{}

	for _, rec := range seeds {
		_, err := c.store.GetService(ctx, rec.ServiceName)
		if err == nil {
			res.Skipped++
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", rec.ServiceName, err))
			continue
		}

		if err := c.seedService(ctx, rec); err != nil {
			c.log.Warn("failed to seed canonical service",
				logger.String("service", rec.ServiceName),
				logger.Error(err))
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", rec.ServiceName, err))
			continue
		}
		res.Added++
	}

	c.log.Info("bootstrap complete",
		logger.Int("added", res.Added),
		logger.Int("skipped", res.Skipped),
		logger.Int("failed", len(res.Errors)))

	if len(res.Errors) > 0 {
		return res, fmt.Errorf("bootstrap finished with errors: %s", strings.Join(res.Errors, "; "))
	}
	return res, nil
}

// seedService persists one canonical record. Seeds bypass the token,
// schema and trust gates: their provenance and scores are fixed by
// the canonical definition, not earned.
func (c *Catalog) seedService(ctx context.Context, rec *domain.ServiceRecord) error {
	rec.HealthCheck.Normalize(c.probeTimeout.Milliseconds())

	if err := c.store.SaveService(ctx, rec); err != nil {
		return fmt.Errorf("failed to persist seed: %w", err)
	}
	if err := c.store.SaveHealth(ctx, domain.UnknownHealth(rec.ServiceName, c.now()), c.healthTTL); err != nil {
		return fmt.Errorf("failed to initialize health: %w", err)
	}
	if err := c.store.AddServiceName(ctx, rec.ServiceName); err != nil {
		return fmt.Errorf("failed to index service name: %w", err)
	}
	if err := c.store.AddToCategory(ctx, rec.Category, rec.ServiceName); err != nil {
		return fmt.Errorf("failed to index category: %w", err)
	}
	return nil
}
