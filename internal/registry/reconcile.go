package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/store"
)

// ReconcileIndexes sweeps both indexes and drops entries whose record
// no longer exists. Such orphans appear when a multi-key write was cut
// short between the record delete and the index updates.
//
// The sweep only removes, it never resurrects records, so running it
// concurrently with normal traffic is safe.
func (c *Catalog) ReconcileIndexes(ctx context.Context) (int, error) {
	removed := 0

	names, err := c.store.ListServiceNames(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list name index: %w", err)
	}
	for _, name := range names {
		orphan, err := c.isOrphan(ctx, name)
		if err != nil {
			return removed, err
		}
		if !orphan {
			continue
		}
		if err := c.store.RemoveServiceName(ctx, name); err != nil {
			return removed, fmt.Errorf("failed to drop orphaned name entry: %w", err)
		}
		// The record is gone so its category is unknown, sweep all sets.
		for _, cat := range domain.Categories() {
			if err := c.store.RemoveFromCategory(ctx, cat, name); err != nil {
				return removed, fmt.Errorf("failed to drop orphaned category entry: %w", err)
			}
		}
		removed++
		c.log.Info("removed orphaned index entry", logger.String("service", name))
	}

	for _, cat := range domain.Categories() {
		members, err := c.store.ListCategory(ctx, cat)
		if err != nil {
			return removed, fmt.Errorf("failed to list category index: %w", err)
		}
		for _, name := range members {
			orphan, err := c.isOrphan(ctx, name)
			if err != nil {
				return removed, err
			}
			if !orphan {
				continue
			}
			if err := c.store.RemoveFromCategory(ctx, cat, name); err != nil {
				return removed, fmt.Errorf("failed to drop orphaned category entry: %w", err)
			}
			removed++
			c.log.Info("removed orphaned category entry",
				logger.String("service", name),
				logger.String("category", string(cat)))
		}
	}

	return removed, nil
}

func (c *Catalog) isOrphan(ctx context.Context, name string) (bool, error) {
	_, err := c.store.GetService(ctx, name)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, store.ErrNotFound) {
		return true, nil
	}
	return false, fmt.Errorf("failed to check record: %w", err)
}
