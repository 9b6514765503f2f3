package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
)

// Registry is the catalog surface the monitor drives.
type Registry interface {
	DiscoverServices(ctx context.Context, q domain.DiscoveryQuery) ([]domain.DiscoveredService, error)
	GetService(ctx context.Context, name string) (*domain.DiscoveredService, error)
	UpdateHealthStatus(ctx context.Context, health *domain.HealthStatus) error
}

// Config tunes the probe machinery.
type Config struct {
	// Timeout is the per-attempt budget for records that declare none.
	Timeout time.Duration

	// Retries is the number of extra attempts after a failed one.
	Retries int

	// Concurrency caps in-flight probes per cycle.
	Concurrency int
}

// Monitor probes every cataloged service on a fixed cycle and keeps
// their health snapshots current. Probes within a cycle run
// concurrently under a semaphore; one probe's failure never affects
// its siblings.
type Monitor struct {
	registry Registry
	prober   *Prober
	log      logger.Logger

	// seeds is the canonical service list, probed by SweepCanonical
	// independently of the catalog.
	seeds []*domain.ServiceRecord

	concurrency int
}

// New creates a monitor. seeds may be empty when no canonical sweep
// is wanted.
func New(reg Registry, seeds []*domain.ServiceRecord, cfg Config, log logger.Logger) *Monitor {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 16
	}
	return &Monitor{
		registry:    reg,
		prober:      NewProber(cfg.Timeout, cfg.Retries),
		log:         log.Named("monitor"),
		seeds:       seeds,
		concurrency: concurrency,
	}
}

// RunCycle probes every cataloged service once.
func (m *Monitor) RunCycle(ctx context.Context) error {
	discovered, err := m.registry.DiscoverServices(ctx, domain.DiscoveryQuery{IncludeUnhealthy: true})
	if err != nil {
		return fmt.Errorf("failed to enumerate services: %w", err)
	}
	if len(discovered) == 0 {
		m.log.Debug("no services to probe")
		return nil
	}

	start := time.Now()
	records := make([]*domain.ServiceRecord, 0, len(discovered))
	for _, d := range discovered {
		records = append(records, d.Service)
	}

	results := m.probeAll(ctx, records)

	healthy := 0
	for _, h := range results {
		if h.IsHealthy() {
			healthy++
		}
	}
	m.log.Info("health cycle complete",
		logger.Int("probed", len(results)),
		logger.Int("healthy", healthy),
		logger.Duration("elapsed", time.Since(start)))

	return nil
}

// probeAll fans probes out under the semaphore and stores each result.
func (m *Monitor) probeAll(ctx context.Context, records []*domain.ServiceRecord) []*domain.HealthStatus {
	sem := make(chan struct{}, m.concurrency)
	results := make([]*domain.HealthStatus, len(records))

	var wg sync.WaitGroup
	for i, rec := range records {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, rec *domain.ServiceRecord) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = m.probeAndStore(ctx, rec)
		}(i, rec)
	}
	wg.Wait()

	return results
}

// probeAndStore probes one service and persists the snapshot.
// Always returns the snapshot, even when persisting failed.
func (m *Monitor) probeAndStore(ctx context.Context, rec *domain.ServiceRecord) *domain.HealthStatus {
	health := m.prober.Probe(ctx, rec)

	if !health.IsHealthy() {
		m.log.Debug("probe not healthy",
			logger.String("service", rec.ServiceName),
			logger.String("status", string(health.Status)),
			logger.Strings("errors", health.Details.Errors))
	}

	if err := m.registry.UpdateHealthStatus(ctx, health); err != nil {
		m.log.Warn("failed to store health snapshot",
			logger.String("service", rec.ServiceName),
			logger.Error(err))
	}
	return health
}

// CheckService probes one service immediately, bypassing the cycle.
func (m *Monitor) CheckService(ctx context.Context, name string) (*domain.HealthStatus, error) {
	d, err := m.registry.GetService(ctx, name)
	if err != nil {
		return nil, err
	}
	return m.probeAndStore(ctx, d.Service), nil
}

// CheckServiceAsync schedules an immediate probe without holding up
// the caller, typically for post-registration verification.
func (m *Monitor) CheckServiceAsync(name string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.prober.Budget(nil)+5*time.Second)
		defer cancel()

		if _, err := m.CheckService(ctx, name); err != nil {
			m.log.Warn("async check failed",
				logger.String("service", name),
				logger.Error(err))
		}
	}()
}

// SweepCanonical probes the canonical seed list without consulting
// the catalog, so platform health stays observable even when the
// registry store itself is degraded.
func (m *Monitor) SweepCanonical(ctx context.Context) error {
	if len(m.seeds) == 0 {
		return nil
	}

	results := m.probeAll(ctx, m.seeds)

	unhealthy := 0
	for _, h := range results {
		if !h.IsHealthy() {
			unhealthy++
		}
	}
	if unhealthy > 0 {
		m.log.Warn("canonical sweep found unhealthy platform services",
			logger.Int("unhealthy", unhealthy),
			logger.Int("swept", len(results)))
	} else {
		m.log.Debug("canonical sweep clean", logger.Int("swept", len(results)))
	}

	return nil
}
