package authority

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/utils"
)

// CheckAuthorityHealth probes every authority's /health endpoint and
// reports each in the registry's own HealthStatus shape. Probes run
// concurrently; an unreachable authority shows as UNHEALTHY, never
// as an error.
func (c *Client) CheckAuthorityHealth(ctx context.Context) map[string]*domain.HealthStatus {
	targets := map[string]string{
		AuthorityIdentity:  c.cfg.IdentityURL,
		AuthoritySchema:    c.cfg.SchemaURL,
		AuthorityCanonical: c.cfg.CanonicalURL,
		AuthorityTrust:     c.cfg.TrustURL,
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = make(map[string]*domain.HealthStatus, len(targets))
	)

	for name, base := range targets {
		wg.Add(1)
		go func(name, base string) {
			defer wg.Done()
			status := c.probeAuthority(ctx, name, base)
			mu.Lock()
			result[name] = status
			mu.Unlock()
		}(name, base)
	}

	wg.Wait()
	return result
}

func (c *Client) probeAuthority(ctx context.Context, name, base string) *domain.HealthStatus {
	start := time.Now()

	fail := func(err error) *domain.HealthStatus {
		return &domain.HealthStatus{
			ServiceID:      name,
			Status:         domain.HealthUnhealthy,
			LastCheck:      time.Now(),
			ResponseTimeMs: time.Since(start).Milliseconds(),
			UptimePercent:  domain.UptimeForState(domain.HealthUnhealthy),
			Details:        domain.HealthDetails{Errors: []string{err.Error()}},
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(base, "/health"), nil)
	if err != nil {
		return fail(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(err)
	}
	defer utils.Close(resp.Body)
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return &domain.HealthStatus{
		ServiceID:      name,
		Status:         domain.HealthHealthy,
		LastCheck:      time.Now(),
		ResponseTimeMs: time.Since(start).Milliseconds(),
		UptimePercent:  domain.UptimeForState(domain.HealthHealthy),
	}
}
