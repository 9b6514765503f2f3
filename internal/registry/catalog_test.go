package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/store"
)

const testIssuer = "CHITTY-SVC-TRUST-1"

// authorityStub is one fake upstream authority. Its handler can be
// swapped mid-test and down() simulates a full outage.
type authorityStub struct {
	mu     sync.Mutex
	handle http.HandlerFunc
	srv    *httptest.Server
}

func newAuthorityStub(t *testing.T) *authorityStub {
	t.Helper()
	s := &authorityStub{
		handle: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) },
	}
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		h := s.handle
		s.mu.Unlock()
		h(w, r)
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *authorityStub) respond(h http.HandlerFunc) {
	s.mu.Lock()
	s.handle = h
	s.mu.Unlock()
}

func (s *authorityStub) down() {
	s.srv.Close()
}

// catalogFixture wires a Catalog to an in-memory store and four stub
// authorities preloaded with happy-path behavior: tokens accepted for
// testIssuer, schema valid, no canonical definition, trust score 85.
type catalogFixture struct {
	*Catalog
	mem       *store.Memory
	identity  *authorityStub
	schema    *authorityStub
	canonical *authorityStub
	trust     *authorityStub
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	f := &catalogFixture{
		mem:       store.NewMemory(),
		identity:  newAuthorityStub(t),
		schema:    newAuthorityStub(t),
		canonical: newAuthorityStub(t),
		trust:     newAuthorityStub(t),
	}

	f.identity.respond(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(authority.TokenValidation{Valid: true, IssuerID: testIssuer})
	})
	f.schema.respond(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(authority.SchemaResult{Valid: true})
	})
	f.canonical.respond(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	f.trust.respond(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]float64{"score": 85})
	})

	client := authority.New(authority.Config{
		IdentityURL:  f.identity.srv.URL,
		SchemaURL:    f.schema.srv.URL,
		CanonicalURL: f.canonical.srv.URL,
		TrustURL:     f.trust.srv.URL,
		Timeout:      2 * time.Second,
	}, logger.New("error", false))

	f.Catalog = New(f.mem, client, logger.New("error", false), time.Minute, 2*time.Second)
	return f
}

// testRecord builds a registration payload that passes local
// validation. ChittyID matches testIssuer so the default identity
// stub also authorizes deregistration.
func testRecord(name string) *domain.ServiceRecord {
	return &domain.ServiceRecord{
		ChittyID:     testIssuer,
		ServiceName:  name,
		DisplayName:  "Chitty Trust",
		Version:      "1.2.0",
		BaseURL:      "https://" + name + ".chitty.cc",
		Category:     domain.CategorySecurityVerification,
		Capabilities: []string{"trust-scoring"},
	}
}

func mustRegister(t *testing.T, f *catalogFixture, name string) *domain.ServiceRecord {
	t.Helper()
	res, err := f.RegisterService(context.Background(), "tok", testRecord(name))
	if err != nil {
		t.Fatalf("RegisterService(%s) failed: %v", name, err)
	}
	if !res.Success {
		t.Fatalf("RegisterService(%s) rejected: %v", name, res.Errors)
	}
	return res.Service
}

func mustSetHealth(t *testing.T, f *catalogFixture, name string, state domain.HealthState) {
	t.Helper()
	err := f.mem.SaveHealth(context.Background(), &domain.HealthStatus{
		ServiceID:     name,
		Status:        state,
		LastCheck:     time.Now(),
		UptimePercent: domain.UptimeForState(state),
	}, time.Minute)
	if err != nil {
		t.Fatalf("SaveHealth(%s) failed: %v", name, err)
	}
}
