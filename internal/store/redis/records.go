package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/store"
	"github.com/redis/go-redis/v9"
)

// Store persists registry state in Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a Redis-backed store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

var _ store.Store = (*Store)(nil)

// SaveService writes a service record. Records carry no TTL:
// they exist until deregistration deletes them.
func (s *Store) SaveService(ctx context.Context, rec *domain.ServiceRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal service: %w", err)
	}

	if err := s.client.Set(ctx, ServiceKey(rec.ServiceName), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save service: %w", err)
	}

	return nil
}

// GetService retrieves one service record by name.
func (s *Store) GetService(ctx context.Context, name string) (*domain.ServiceRecord, error) {
	data, err := s.client.Get(ctx, ServiceKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("service %q: %w", name, store.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	var rec domain.ServiceRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal service: %w", err)
	}

	return &rec, nil
}

// GetServices retrieves many records in one round trip. Missing or
// unreadable entries are skipped, not errors: the index may briefly
// reference names whose record was already deleted.
func (s *Store) GetServices(ctx context.Context, names []string) ([]*domain.ServiceRecord, error) {
	if len(names) == 0 {
		return []*domain.ServiceRecord{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(names))
	for i, name := range names {
		cmds[i] = pipe.Get(ctx, ServiceKey(name))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}

	records := make([]*domain.ServiceRecord, 0, len(names))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}
		var rec domain.ServiceRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, &rec)
	}

	return records, nil
}

// DeleteService removes one service record.
func (s *Store) DeleteService(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, ServiceKey(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

// Ping reports whether Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
