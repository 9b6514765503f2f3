package store

import (
	"context"
	"errors"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
)

// ErrNotFound is returned when a record or health snapshot does not exist.
var ErrNotFound = errors.New("not found")

// Store is the keyed persistence contract of the registry.
//
// Records, health snapshots and index sets live under distinct keys;
// every method touches exactly one key. Multi-key flows (register,
// deregister) are sequenced by the caller and are NOT transactional:
// a crash between calls can leave an index entry without its record,
// which the reconciliation sweep later removes.
type Store interface {
	// Service records. Records persist until deleted.
	SaveService(ctx context.Context, rec *domain.ServiceRecord) error
	GetService(ctx context.Context, name string) (*domain.ServiceRecord, error)
	GetServices(ctx context.Context, names []string) ([]*domain.ServiceRecord, error)
	DeleteService(ctx context.Context, name string) error

	// Health snapshots. Overwrite-only, expire after ttl.
	SaveHealth(ctx context.Context, health *domain.HealthStatus, ttl time.Duration) error
	GetHealth(ctx context.Context, name string) (*domain.HealthStatus, error)
	GetHealths(ctx context.Context, names []string) (map[string]*domain.HealthStatus, error)
	DeleteHealth(ctx context.Context, name string) error

	// Name and category membership indexes.
	AddServiceName(ctx context.Context, name string) error
	RemoveServiceName(ctx context.Context, name string) error
	ListServiceNames(ctx context.Context) ([]string, error)
	AddToCategory(ctx context.Context, category domain.Category, name string) error
	RemoveFromCategory(ctx context.Context, category domain.Category, name string) error
	ListCategory(ctx context.Context, category domain.Category) ([]string, error)

	// Ping reports backend liveness.
	Ping(ctx context.Context) error
}
