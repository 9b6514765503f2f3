package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/store"
	"github.com/redis/go-redis/v9"
)

// SaveHealth overwrites the health snapshot for a service.
// The TTL lets snapshots expire on their own when probing stops.
func (s *Store) SaveHealth(ctx context.Context, health *domain.HealthStatus, ttl time.Duration) error {
	data, err := json.Marshal(health)
	if err != nil {
		return fmt.Errorf("failed to marshal health: %w", err)
	}

	if err := s.client.Set(ctx, HealthKey(health.ServiceID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save health: %w", err)
	}

	return nil
}

// GetHealth retrieves the current snapshot for one service.
func (s *Store) GetHealth(ctx context.Context, name string) (*domain.HealthStatus, error) {
	data, err := s.client.Get(ctx, HealthKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("health %q: %w", name, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get health: %w", err)
	}

	var health domain.HealthStatus
	if err := json.Unmarshal(data, &health); err != nil {
		return nil, fmt.Errorf("failed to unmarshal health: %w", err)
	}

	return &health, nil
}

// GetHealths retrieves snapshots for many services in one round trip.
// Expired or absent snapshots are simply missing from the result map.
func (s *Store) GetHealths(ctx context.Context, names []string) (map[string]*domain.HealthStatus, error) {
	result := make(map[string]*domain.HealthStatus, len(names))
	if len(names) == 0 {
		return result, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.Get(ctx, HealthKey(name))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get healths: %w", err)
	}

	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}
		var health domain.HealthStatus
		if err := json.Unmarshal(data, &health); err != nil {
			continue
		}
		result[names[i]] = &health
	}

	return result, nil
}

// DeleteHealth removes the snapshot for one service.
func (s *Store) DeleteHealth(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, HealthKey(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete health: %w", err)
	}
	return nil
}
