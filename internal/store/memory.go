package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
)

// healthEntry pairs a snapshot with its expiry.
type healthEntry struct {
	health    *domain.HealthStatus
	expiresAt time.Time
}

// Memory is an in-process Store used by tests and local development.
// Health TTLs are enforced lazily on read.
type Memory struct {
	mu         sync.RWMutex
	services   map[string]*domain.ServiceRecord
	health     map[string]healthEntry
	names      map[string]bool
	categories map[domain.Category]map[string]bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		services:   make(map[string]*domain.ServiceRecord),
		health:     make(map[string]healthEntry),
		names:      make(map[string]bool),
		categories: make(map[domain.Category]map[string]bool),
	}
}

var _ Store = (*Memory)(nil)

func (m *Memory) SaveService(_ context.Context, rec *domain.ServiceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *rec
	m.services[rec.ServiceName] = &cp
	return nil
}

func (m *Memory) GetService(_ context.Context, name string) (*domain.ServiceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.services[name]
	if !ok {
		return nil, fmt.Errorf("service %q: %w", name, ErrNotFound)
	}
	cp := *rec
	return &cp, nil
}

func (m *Memory) GetServices(_ context.Context, names []string) ([]*domain.ServiceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*domain.ServiceRecord, 0, len(names))
	for _, name := range names {
		if rec, ok := m.services[name]; ok {
			cp := *rec
			records = append(records, &cp)
		}
	}
	return records, nil
}

func (m *Memory) DeleteService(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.services, name)
	return nil
}

func (m *Memory) SaveHealth(_ context.Context, health *domain.HealthStatus, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *health
	entry := healthEntry{health: &cp}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.health[health.ServiceID] = entry
	return nil
}

func (m *Memory) GetHealth(_ context.Context, name string) (*domain.HealthStatus, error) {
	m.mu.RLock()
	entry, ok := m.health[name]
	m.mu.RUnlock()

	if !ok || expired(entry) {
		return nil, fmt.Errorf("health %q: %w", name, ErrNotFound)
	}
	cp := *entry.health
	return &cp, nil
}

func (m *Memory) GetHealths(_ context.Context, names []string) (map[string]*domain.HealthStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]*domain.HealthStatus, len(names))
	for _, name := range names {
		if entry, ok := m.health[name]; ok && !expired(entry) {
			cp := *entry.health
			result[name] = &cp
		}
	}
	return result, nil
}

func (m *Memory) DeleteHealth(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.health, name)
	return nil
}

func (m *Memory) AddServiceName(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.names[name] = true
	return nil
}

func (m *Memory) RemoveServiceName(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.names, name)
	return nil
}

func (m *Memory) ListServiceNames(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.names))
	for name := range m.names {
		names = append(names, name)
	}
	return names, nil
}

func (m *Memory) AddToCategory(_ context.Context, category domain.Category, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.categories[category] == nil {
		m.categories[category] = make(map[string]bool)
	}
	m.categories[category][name] = true
	return nil
}

func (m *Memory) RemoveFromCategory(_ context.Context, category domain.Category, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.categories[category], name)
	return nil
}

func (m *Memory) ListCategory(_ context.Context, category domain.Category) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	members := m.categories[category]
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	return names, nil
}

func (m *Memory) Ping(_ context.Context) error { return nil }

func expired(entry healthEntry) bool {
	return !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)
}
