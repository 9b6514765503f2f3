package registry

import (
	"context"
	"testing"

	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/domain"
)

func TestGetRegistryStats(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	mustRegister(t, f, "chittytrust")
	mustRegister(t, f, "chittyverify")

	rec := testRecord("chittychain")
	rec.Category = domain.CategoryBlockchainInfrastructure
	if res, err := f.RegisterService(ctx, "tok", rec); err != nil || !res.Success {
		t.Fatalf("RegisterService failed: %v %v", err, res)
	}

	mustSetHealth(t, f, "chittytrust", domain.HealthHealthy)
	mustSetHealth(t, f, "chittyverify", domain.HealthUnhealthy)
	// chittychain stays UNKNOWN.

	stats, err := f.GetRegistryStats(ctx)
	if err != nil {
		t.Fatalf("GetRegistryStats failed: %v", err)
	}

	if stats.TotalServices != 3 {
		t.Errorf("Expected 3 total, got %d", stats.TotalServices)
	}
	if stats.HealthyServices != 1 {
		t.Errorf("Expected 1 healthy, got %d", stats.HealthyServices)
	}
	if stats.Categories[domain.CategorySecurityVerification] != 2 {
		t.Errorf("Expected 2 security-verification services, got %d", stats.Categories[domain.CategorySecurityVerification])
	}
	if stats.Categories[domain.CategoryBlockchainInfrastructure] != 1 {
		t.Errorf("Expected 1 blockchain service, got %d", stats.Categories[domain.CategoryBlockchainInfrastructure])
	}
	if _, ok := stats.Categories[domain.CategoryAIIntelligence]; ok {
		t.Error("Empty categories must not appear")
	}

	if len(stats.Authorities) != 4 {
		t.Fatalf("Expected 4 authority entries, got %d", len(stats.Authorities))
	}
	for _, name := range []string{authority.AuthorityIdentity, authority.AuthoritySchema, authority.AuthorityCanonical, authority.AuthorityTrust} {
		if stats.Authorities[name] == nil {
			t.Errorf("Expected an entry for the %s authority", name)
		}
	}
}

func TestGetRegistryStats_Empty(t *testing.T) {
	f := newCatalogFixture(t)

	stats, err := f.GetRegistryStats(context.Background())
	if err != nil {
		t.Fatalf("GetRegistryStats failed: %v", err)
	}
	if stats.TotalServices != 0 || stats.HealthyServices != 0 {
		t.Errorf("Expected zero counts, got %+v", stats)
	}
	if len(stats.Categories) != 0 {
		t.Errorf("Expected no categories, got %v", stats.Categories)
	}
}

func TestGetRegistryStats_AuthorityOutageVisible(t *testing.T) {
	f := newCatalogFixture(t)
	f.trust.down()

	stats, err := f.GetRegistryStats(context.Background())
	if err != nil {
		t.Fatalf("A down authority must not fail the call: %v", err)
	}
	if stats.Authorities[authority.AuthorityTrust].Status != domain.HealthUnhealthy {
		t.Errorf("Expected the trust authority UNHEALTHY, got %s", stats.Authorities[authority.AuthorityTrust].Status)
	}
	if stats.Authorities[authority.AuthorityIdentity].Status != domain.HealthHealthy {
		t.Errorf("Expected the identity authority HEALTHY, got %s", stats.Authorities[authority.AuthorityIdentity].Status)
	}
}
