package redis

import (
	"context"
	"fmt"

	"github.com/chittyos/chittyregistry/internal/domain"
)

// AddServiceName adds a name to the global name-set index.
func (s *Store) AddServiceName(ctx context.Context, name string) error {
	if err := s.client.SAdd(ctx, AllServicesKey(), name).Err(); err != nil {
		return fmt.Errorf("failed to add service to name index: %w", err)
	}
	return nil
}

// RemoveServiceName removes a name from the global name-set index.
func (s *Store) RemoveServiceName(ctx context.Context, name string) error {
	if err := s.client.SRem(ctx, AllServicesKey(), name).Err(); err != nil {
		return fmt.Errorf("failed to remove service from name index: %w", err)
	}
	return nil
}

// ListServiceNames returns every name in the global index.
func (s *Store) ListServiceNames(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, AllServicesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list service names: %w", err)
	}
	return names, nil
}

// AddToCategory adds a name to a per-category index set.
func (s *Store) AddToCategory(ctx context.Context, category domain.Category, name string) error {
	if err := s.client.SAdd(ctx, CategoryKey(string(category)), name).Err(); err != nil {
		return fmt.Errorf("failed to add service to category index: %w", err)
	}
	return nil
}

// RemoveFromCategory removes a name from a per-category index set.
func (s *Store) RemoveFromCategory(ctx context.Context, category domain.Category, name string) error {
	if err := s.client.SRem(ctx, CategoryKey(string(category)), name).Err(); err != nil {
		return fmt.Errorf("failed to remove service from category index: %w", err)
	}
	return nil
}

// ListCategory returns every name in one category index.
func (s *Store) ListCategory(ctx context.Context, category domain.Category) ([]string, error) {
	names, err := s.client.SMembers(ctx, CategoryKey(string(category))).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list category members: %w", err)
	}
	return names, nil
}
