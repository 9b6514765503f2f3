package registry

import (
	"context"
	"testing"

	"github.com/chittyos/chittyregistry/internal/domain"
)

func TestReconcileIndexes(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	mustRegister(t, f, "chittytrust")

	// Orphans, as left behind by a crash between record delete and
	// index cleanup.
	if err := f.mem.AddServiceName(ctx, "ghost"); err != nil {
		t.Fatalf("AddServiceName failed: %v", err)
	}
	if err := f.mem.AddToCategory(ctx, domain.CategoryAIIntelligence, "phantom"); err != nil {
		t.Fatalf("AddToCategory failed: %v", err)
	}

	removed, err := f.ReconcileIndexes(ctx)
	if err != nil {
		t.Fatalf("ReconcileIndexes failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 orphans removed, got %d", removed)
	}

	names, _ := f.mem.ListServiceNames(ctx)
	if len(names) != 1 || names[0] != "chittytrust" {
		t.Errorf("Expected only the live service in the name index, got %v", names)
	}
	members, _ := f.mem.ListCategory(ctx, domain.CategoryAIIntelligence)
	if len(members) != 0 {
		t.Errorf("Expected the phantom category entry removed, got %v", members)
	}
	members, _ = f.mem.ListCategory(ctx, domain.CategorySecurityVerification)
	if len(members) != 1 || members[0] != "chittytrust" {
		t.Errorf("Expected the live category entry kept, got %v", members)
	}
}

func TestReconcileIndexes_CleanRegistry(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	mustRegister(t, f, "chittytrust")
	mustRegister(t, f, "chittyverify")

	removed, err := f.ReconcileIndexes(ctx)
	if err != nil {
		t.Fatalf("ReconcileIndexes failed: %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected nothing removed from a clean registry, got %d", removed)
	}
}
