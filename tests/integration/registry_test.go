package integration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/canonical"
	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/monitor"
	"github.com/chittyos/chittyregistry/internal/registry"
	"github.com/chittyos/chittyregistry/internal/store"
)

const testIssuer = "CHITTY-SVC-OCR-1"

// fixture wires a Catalog and Monitor to an in-memory store and fake
// authorities: tokens accepted for testIssuer, schema valid, no
// canonical definitions, trust score 85.
type fixture struct {
	catalog *registry.Catalog
	monitor *monitor.Monitor
	mem     *store.Memory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Token == "valid-token" {
			_ = json.NewEncoder(w).Encode(authority.TokenValidation{Valid: true, IssuerID: testIssuer})
			return
		}
		_ = json.NewEncoder(w).Encode(authority.TokenValidation{Valid: false})
	}))
	t.Cleanup(identity.Close)

	schema := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(authority.SchemaResult{Valid: true})
	}))
	t.Cleanup(schema.Close)

	notFound := httptest.NewServer(http.HandlerFunc(http.NotFound))
	t.Cleanup(notFound.Close)

	trust := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]float64{"score": 85})
	}))
	t.Cleanup(trust.Close)

	log := logger.New("error", false)
	client := authority.New(authority.Config{
		IdentityURL:  identity.URL,
		SchemaURL:    schema.URL,
		CanonicalURL: notFound.URL,
		TrustURL:     trust.URL,
		Timeout:      2 * time.Second,
	}, log)

	f := &fixture{mem: store.NewMemory()}
	f.catalog = registry.New(f.mem, client, log, time.Minute, 2*time.Second)
	f.monitor = monitor.New(f.catalog, nil, monitor.Config{
		Timeout:     time.Second,
		Retries:     0,
		Concurrency: 4,
	}, log)
	return f
}

// TestRegisterProbeDiscover walks the whole lifecycle: a fresh
// registration is invisible to default discovery until a probe marks
// it HEALTHY, and deregistration with the wrong token changes nothing.
func TestRegisterProbeDiscover(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}))
	t.Cleanup(target.Close)

	res, err := f.catalog.RegisterService(ctx, "valid-token", &domain.ServiceRecord{
		ChittyID:     testIssuer,
		ServiceName:  "svc-a",
		DisplayName:  "Service A",
		Version:      "1.0.0",
		BaseURL:      target.URL,
		Category:     domain.CategoryAIIntelligence,
		Capabilities: []string{"ocr"},
	})
	if err != nil {
		t.Fatalf("RegisterService failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("Expected success, got errors: %v", res.Errors)
	}

	health, err := f.catalog.GetHealthStatus(ctx, "svc-a")
	if err != nil {
		t.Fatalf("GetHealthStatus failed: %v", err)
	}
	if health.Status != domain.HealthUnknown {
		t.Fatalf("Expected initial UNKNOWN, got %s", health.Status)
	}

	// UNKNOWN is excluded by default discovery.
	found, err := f.catalog.DiscoverServices(ctx, domain.DiscoveryQuery{Capability: "ocr"})
	if err != nil {
		t.Fatalf("DiscoverServices failed: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("Expected empty result before any probe, got %d entries", len(found))
	}

	// But visible under includeUnhealthy with status UNKNOWN.
	all, err := f.catalog.DiscoverServices(ctx, domain.DiscoveryQuery{Capability: "ocr", IncludeUnhealthy: true})
	if err != nil {
		t.Fatalf("DiscoverServices failed: %v", err)
	}
	if len(all) != 1 || all[0].CurrentHealth.Status != domain.HealthUnknown {
		t.Fatalf("Expected one UNKNOWN entry under includeUnhealthy, got %+v", all)
	}

	// A successful probe flips it to HEALTHY and into default discovery.
	probed, err := f.monitor.CheckService(ctx, "svc-a")
	if err != nil {
		t.Fatalf("CheckService failed: %v", err)
	}
	if probed.Status != domain.HealthHealthy {
		t.Fatalf("Expected HEALTHY after probe, got %s (%v)", probed.Status, probed.Details.Errors)
	}

	found, err = f.catalog.DiscoverServices(ctx, domain.DiscoveryQuery{Capability: "ocr"})
	if err != nil {
		t.Fatalf("DiscoverServices failed: %v", err)
	}
	if len(found) != 1 || found[0].Service.ServiceName != "svc-a" {
		t.Fatalf("Expected svc-a after HEALTHY probe, got %+v", found)
	}

	// Wrong token: rejection, record survives.
	err = f.catalog.DeregisterService(ctx, "svc-a", "wrong-token")
	var ae *domain.AuthorizationError
	if !errors.As(err, &ae) {
		t.Fatalf("Expected AuthorizationError, got %v", err)
	}
	if ae.Reason != "Invalid deregistration token" {
		t.Errorf("Unexpected rejection reason: %q", ae.Reason)
	}
	if _, err := f.catalog.GetService(ctx, "svc-a"); err != nil {
		t.Errorf("Record should survive a rejected deregistration: %v", err)
	}

	// Right token: everything is gone.
	if err := f.catalog.DeregisterService(ctx, "svc-a", "valid-token"); err != nil {
		t.Fatalf("DeregisterService failed: %v", err)
	}
	if _, err := f.catalog.GetService(ctx, "svc-a"); !domain.IsNotFound(err) {
		t.Errorf("Expected not-found after deregistration, got %v", err)
	}
}

// TestProbeFailureCycle registers a service whose endpoint is down and
// checks the full-cycle path records it UNHEALTHY without touching the
// healthy sibling.
func TestProbeFailureCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(up.Close)

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()

	for name, base := range map[string]string{"svc-up": up.URL, "svc-down": down.URL} {
		res, err := f.catalog.RegisterService(ctx, "valid-token", &domain.ServiceRecord{
			ChittyID:    testIssuer,
			ServiceName: name,
			DisplayName: name,
			Version:     "1.0.0",
			BaseURL:     base,
			Category:    domain.CategoryBusinessOperations,
		})
		if err != nil || !res.Success {
			t.Fatalf("RegisterService(%s) failed: %v %v", name, err, res)
		}
	}

	if err := f.monitor.RunCycle(ctx); err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}

	upHealth, _ := f.catalog.GetHealthStatus(ctx, "svc-up")
	if upHealth.Status != domain.HealthHealthy {
		t.Errorf("Expected svc-up HEALTHY, got %s", upHealth.Status)
	}

	downHealth, _ := f.catalog.GetHealthStatus(ctx, "svc-down")
	if downHealth.Status != domain.HealthUnhealthy {
		t.Errorf("Expected svc-down UNHEALTHY, got %s", downHealth.Status)
	}
	if downHealth.UptimePercent != 0 || len(downHealth.Details.Errors) == 0 {
		t.Errorf("Expected zero uptime and recorded errors, got %+v", downHealth)
	}
}

// TestBootstrapIdempotent seeds the built-in canonical list twice and
// expects the second pass to change nothing.
func TestBootstrapIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seeds, err := canonical.Records("", time.Now())
	if err != nil {
		t.Fatalf("Failed to build seed records: %v", err)
	}

	first, err := f.catalog.Bootstrap(ctx, seeds)
	if err != nil {
		t.Fatalf("First bootstrap failed: %v", err)
	}
	if first.Added != len(seeds) || first.Skipped != 0 {
		t.Fatalf("Expected %d added on first pass, got %+v", len(seeds), first)
	}

	second, err := f.catalog.Bootstrap(ctx, seeds)
	if err != nil {
		t.Fatalf("Second bootstrap failed: %v", err)
	}
	if second.Added != 0 || second.Skipped != len(seeds) {
		t.Errorf("Expected all skipped on second pass, got %+v", second)
	}

	names, _ := f.mem.ListServiceNames(ctx)
	if len(names) != len(seeds) {
		t.Errorf("Expected %d catalog entries, got %d", len(seeds), len(names))
	}

	rec, err := f.mem.GetService(ctx, "chittyid")
	if err != nil {
		t.Fatalf("Seeded record missing: %v", err)
	}
	if rec.TrustScore != 100 || rec.TrustLevel != domain.TrustPlatinum || !rec.IsCanonical() {
		t.Errorf("Seed should carry full trust and the canonical flag, got %+v", rec)
	}
}
