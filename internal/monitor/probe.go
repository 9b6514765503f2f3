package monitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/utils"
)

// maxProbeBody caps how much of a health response is read for
// classification.
const maxProbeBody = 64 << 10

// Prober runs the retrying probe sequence against one service.
//
// Each attempt goes PENDING and ends in SUCCESS, RETRYING, or FAILED:
// a non-matching status code or transport error retries with a
// linearly growing backoff (backoffUnit × attemptNumber) until the
// retry ceiling, after which the probe is FAILED and the service
// reports UNHEALTHY.
type Prober struct {
	client *http.Client

	// timeout is the per-attempt budget for records that declare none.
	timeout time.Duration

	// retries is the number of extra attempts after the first failure.
	retries int

	backoffUnit time.Duration
	now         func() time.Time
}

// NewProber creates a prober with its own HTTP client. Per-attempt
// deadlines come from the request context, not the client.
func NewProber(timeout time.Duration, retries int) *Prober {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if retries < 0 {
		retries = 0
	}
	return &Prober{
		client:      &http.Client{},
		timeout:     timeout,
		retries:     retries,
		backoffUnit: time.Second,
		now:         time.Now,
	}
}

// Budget is the worst-case wall time of one full probe sequence:
// every attempt at full timeout plus every backoff pause.
func (p *Prober) Budget(rec *domain.ServiceRecord) time.Duration {
	attempt := p.attemptTimeout(rec)
	attempts := time.Duration(p.retries + 1)
	backoff := p.backoffUnit * time.Duration(p.retries*(p.retries+1)/2)
	return attempt*attempts + backoff + time.Second
}

func (p *Prober) attemptTimeout(rec *domain.ServiceRecord) time.Duration {
	if rec != nil && rec.HealthCheck.TimeoutMs > 0 {
		return time.Duration(rec.HealthCheck.TimeoutMs) * time.Millisecond
	}
	return p.timeout
}

// Probe runs the full attempt sequence and always returns a snapshot;
// probe failures are a health verdict, not an error.
func (p *Prober) Probe(ctx context.Context, rec *domain.ServiceRecord) *domain.HealthStatus {
	spec := rec.HealthCheck
	spec.Normalize(p.timeout.Milliseconds())
	timeout := time.Duration(spec.TimeoutMs) * time.Millisecond

	var attemptErrors []string
	var lastLatency time.Duration

	for attempt := 1; attempt <= p.retries+1; attempt++ {
		state, latency, err := p.attempt(ctx, rec.BaseURL, spec, timeout)
		lastLatency = latency

		if err == nil {
			return &domain.HealthStatus{
				ServiceID:      rec.ServiceName,
				Status:         state,
				LastCheck:      p.now(),
				ResponseTimeMs: latency.Milliseconds(),
				UptimePercent:  domain.UptimeForState(state),
			}
		}

		attemptErrors = append(attemptErrors, fmt.Sprintf("attempt %d: %v", attempt, err))

		if attempt <= p.retries {
			if !p.wait(ctx, p.backoffUnit*time.Duration(attempt)) {
				break
			}
		}
	}

	return &domain.HealthStatus{
		ServiceID:      rec.ServiceName,
		Status:         domain.HealthUnhealthy,
		LastCheck:      p.now(),
		ResponseTimeMs: lastLatency.Milliseconds(),
		UptimePercent:  domain.UptimeForState(domain.HealthUnhealthy),
		Details:        domain.HealthDetails{Errors: attemptErrors},
	}
}

// attempt issues one probe request. A nil error means the attempt
// succeeded and state carries its classification.
func (p *Prober) attempt(ctx context.Context, baseURL string, spec domain.HealthCheckSpec, timeout time.Duration) (domain.HealthState, time.Duration, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, spec.Method, baseURL+spec.Path, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to build probe request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "chittyregistry-monitor/1.0")

	start := p.now()
	resp, err := p.client.Do(req)
	latency := p.now().Sub(start)
	if err != nil {
		return "", latency, err
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != spec.ExpectedStatusCode {
		return "", latency, fmt.Errorf("unexpected status %d, want %d", resp.StatusCode, spec.ExpectedStatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
	if err != nil {
		// The status code already matched: classify on latency alone.
		body = nil
	}

	return classify(body, latency, timeout), latency, nil
}

// wait sleeps for the backoff, returning false when the context ends
// first.
func (p *Prober) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
