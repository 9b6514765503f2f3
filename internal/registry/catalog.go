package registry

import (
	"time"

	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/store"
)

// Token validation scopes understood by the identity authority.
const (
	ActionRegister   = "service-registration"
	ActionDeregister = "service-deregistration"
)

// Catalog owns the registry state: registration, discovery,
// deregistration, canonical bootstrap and aggregate statistics.
//
// All persistence goes through the keyed store; all external
// verdicts go through the authority client. Multi-key writes are
// sequential, not transactional: the reconciliation sweep cleans up
// index entries orphaned by a crash mid-flow.
type Catalog struct {
	store       store.Store
	authorities *authority.Client
	log         logger.Logger

	healthTTL    time.Duration
	probeTimeout time.Duration

	now func() time.Time
}

// New creates a Catalog.
//
// healthTTL bounds the lifetime of health snapshots; probeTimeout is
// the default probe timeout stamped onto records that declare none.
func New(st store.Store, authorities *authority.Client, log logger.Logger, healthTTL, probeTimeout time.Duration) *Catalog {
	if healthTTL <= 0 {
		healthTTL = 5 * time.Minute
	}
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &Catalog{
		store:        st,
		authorities:  authorities,
		log:          log.Named("catalog"),
		healthTTL:    healthTTL,
		probeTimeout: probeTimeout,
		now:          time.Now,
	}
}

// HealthTTL exposes the snapshot TTL for collaborating components.
func (c *Catalog) HealthTTL() time.Duration {
	return c.healthTTL
}
