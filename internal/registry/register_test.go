package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/domain"
)

func TestRegisterService(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	res, err := f.RegisterService(ctx, "tok", testRecord("chittytrust"))
	if err != nil {
		t.Fatalf("RegisterService failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("Expected success, got errors: %v", res.Errors)
	}

	svc := res.Service
	if svc.TrustScore != 85 || svc.TrustLevel != domain.TrustGold {
		t.Errorf("Expected trust 85/GOLD, got %v/%s", svc.TrustScore, svc.TrustLevel)
	}
	if svc.RegisteredBy != testIssuer {
		t.Errorf("Expected RegisteredBy %s, got %s", testIssuer, svc.RegisteredBy)
	}
	if svc.RegisteredAt.IsZero() || svc.LastUpdated.IsZero() {
		t.Error("Expected provenance timestamps to be stamped")
	}
	if svc.HealthCheck.Path != "/health" || svc.HealthCheck.Method != "GET" || svc.HealthCheck.ExpectedStatusCode != 200 {
		t.Errorf("Expected probe defaults filled, got %+v", svc.HealthCheck)
	}

	stored, err := f.mem.GetService(ctx, "chittytrust")
	if err != nil {
		t.Fatalf("Record not persisted: %v", err)
	}
	if stored.ServiceName != "chittytrust" {
		t.Errorf("Unexpected stored record: %+v", stored)
	}

	health, err := f.mem.GetHealth(ctx, "chittytrust")
	if err != nil {
		t.Fatalf("Initial health not persisted: %v", err)
	}
	if health.Status != domain.HealthUnknown {
		t.Errorf("Expected initial UNKNOWN health, got %s", health.Status)
	}

	names, _ := f.mem.ListServiceNames(ctx)
	if len(names) != 1 || names[0] != "chittytrust" {
		t.Errorf("Expected name index entry, got %v", names)
	}
	members, _ := f.mem.ListCategory(ctx, domain.CategorySecurityVerification)
	if len(members) != 1 || members[0] != "chittytrust" {
		t.Errorf("Expected category index entry, got %v", members)
	}
}

func TestRegisterService_InvalidToken(t *testing.T) {
	f := newCatalogFixture(t)
	f.identity.respond(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(authority.TokenValidation{Valid: false})
	})

	res, err := f.RegisterService(context.Background(), "bad-tok", testRecord("chittytrust"))
	if err != nil {
		t.Fatalf("RegisterService failed: %v", err)
	}
	if res.Success {
		t.Fatal("Expected rejection")
	}
	if len(res.Errors) != 1 || res.Errors[0] != "Invalid registration token" {
		t.Errorf("Expected the token rejection message, got %v", res.Errors)
	}

	if _, err := f.mem.GetService(context.Background(), "chittytrust"); err == nil {
		t.Error("Nothing should be persisted after a token rejection")
	}
}

func TestRegisterService_IdentityAuthorityDown(t *testing.T) {
	f := newCatalogFixture(t)
	f.identity.down()

	res, err := f.RegisterService(context.Background(), "tok", testRecord("chittytrust"))
	if err != nil {
		t.Fatalf("RegisterService failed: %v", err)
	}
	if res.Success {
		t.Fatal("Expected fail-closed rejection when the identity authority is down")
	}
	if len(res.Errors) != 1 || res.Errors[0] != "Invalid registration token" {
		t.Errorf("Expected the token rejection message, got %v", res.Errors)
	}
}

func TestRegisterService_PayloadErrorsItemized(t *testing.T) {
	f := newCatalogFixture(t)

	rec := testRecord("chittytrust")
	rec.Version = "not-semver"
	rec.BaseURL = "ftp://trust.chitty.cc"

	res, err := f.RegisterService(context.Background(), "tok", rec)
	if err != nil {
		t.Fatalf("RegisterService failed: %v", err)
	}
	if res.Success {
		t.Fatal("Expected rejection")
	}
	if len(res.Errors) < 2 {
		t.Errorf("Expected both payload errors itemized, got %v", res.Errors)
	}
}

func TestRegisterService_SchemaAuthority(t *testing.T) {
	t.Run("invalid verdict passes errors through", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.schema.respond(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(authority.SchemaResult{
				Valid:  false,
				Errors: []string{"endpoints[0].method: unknown verb"},
			})
		})

		res, err := f.RegisterService(context.Background(), "tok", testRecord("chittytrust"))
		if err != nil {
			t.Fatalf("RegisterService failed: %v", err)
		}
		if res.Success {
			t.Fatal("Expected rejection")
		}
		if len(res.Errors) != 1 || res.Errors[0] != "endpoints[0].method: unknown verb" {
			t.Errorf("Expected authority errors passed through, got %v", res.Errors)
		}
	})

	t.Run("outage blocks registration", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.schema.down()

		res, err := f.RegisterService(context.Background(), "tok", testRecord("chittytrust"))
		if err != nil {
			t.Fatalf("RegisterService failed: %v", err)
		}
		if res.Success {
			t.Fatal("Expected fail-closed rejection when the schema authority is down")
		}
		if len(res.Errors) != 1 || res.Errors[0] != "Schema validation unavailable" {
			t.Errorf("Expected the unavailability message, got %v", res.Errors)
		}
	})
}

func TestRegisterService_CanonicalNonConformanceDoesNotBlock(t *testing.T) {
	f := newCatalogFixture(t)
	f.canonical.respond(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/v1/canon/"):
			_ = json.NewEncoder(w).Encode(authority.CanonicalRecord{
				ServiceName: "chittytrust",
				BaseURL:     "https://trust.chitty.cc",
				Category:    domain.CategorySecurityVerification,
			})
		default:
			_ = json.NewEncoder(w).Encode(authority.ComplianceResult{
				Compliant: false,
				Issues:    []string{"baseUrl differs from canon"},
			})
		}
	})

	res, err := f.RegisterService(context.Background(), "tok", testRecord("chittytrust"))
	if err != nil {
		t.Fatalf("RegisterService failed: %v", err)
	}
	if !res.Success {
		t.Fatalf("Canonical non-conformance must not block, got errors: %v", res.Errors)
	}
}

func TestRegisterService_TrustAuthority(t *testing.T) {
	t.Run("outage falls back to UNVERIFIED", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.trust.down()

		res, err := f.RegisterService(context.Background(), "tok", testRecord("chittytrust"))
		if err != nil {
			t.Fatalf("RegisterService failed: %v", err)
		}
		if !res.Success {
			t.Fatalf("Trust outage must not block, got errors: %v", res.Errors)
		}
		if res.Service.TrustScore != 0 || res.Service.TrustLevel != domain.TrustUnverified {
			t.Errorf("Expected 0/UNVERIFIED, got %v/%s", res.Service.TrustScore, res.Service.TrustLevel)
		}
	})

	t.Run("unscored subject falls back to UNVERIFIED", func(t *testing.T) {
		f := newCatalogFixture(t)
		f.trust.respond(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		res, err := f.RegisterService(context.Background(), "tok", testRecord("chittytrust"))
		if err != nil {
			t.Fatalf("RegisterService failed: %v", err)
		}
		if !res.Success {
			t.Fatalf("Expected success, got errors: %v", res.Errors)
		}
		if res.Service.TrustScore != 0 || res.Service.TrustLevel != domain.TrustUnverified {
			t.Errorf("Expected 0/UNVERIFIED, got %v/%s", res.Service.TrustScore, res.Service.TrustLevel)
		}
	})
}

func TestRegisterService_ReRegistrationProvenance(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	t1 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(48 * time.Hour)

	f.now = func() time.Time { return t1 }
	first := mustRegister(t, f, "chittytrust")
	if !first.RegisteredAt.Equal(t1) {
		t.Fatalf("Expected RegisteredAt %v, got %v", t1, first.RegisteredAt)
	}

	t.Run("same identity keeps RegisteredAt", func(t *testing.T) {
		f.now = func() time.Time { return t2 }
		res, err := f.RegisterService(ctx, "tok", testRecord("chittytrust"))
		if err != nil || !res.Success {
			t.Fatalf("Re-registration failed: %v %v", err, res)
		}
		if !res.Service.RegisteredAt.Equal(t1) {
			t.Errorf("Expected RegisteredAt preserved at %v, got %v", t1, res.Service.RegisteredAt)
		}
		if !res.Service.LastUpdated.Equal(t2) {
			t.Errorf("Expected LastUpdated bumped to %v, got %v", t2, res.Service.LastUpdated)
		}
	})

	t.Run("different identity resets RegisteredAt", func(t *testing.T) {
		f.identity.respond(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(authority.TokenValidation{Valid: true, IssuerID: "CHITTY-OTHER-9"})
		})

		t3 := t2.Add(time.Hour)
		f.now = func() time.Time { return t3 }

		res, err := f.RegisterService(ctx, "tok", testRecord("chittytrust"))
		if err != nil || !res.Success {
			t.Fatalf("Re-registration failed: %v %v", err, res)
		}
		if !res.Service.RegisteredAt.Equal(t3) {
			t.Errorf("Expected RegisteredAt reset to %v, got %v", t3, res.Service.RegisteredAt)
		}
		if res.Service.RegisteredBy != "CHITTY-OTHER-9" {
			t.Errorf("Expected new RegisteredBy, got %s", res.Service.RegisteredBy)
		}
	})
}

func TestDeregisterService(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	mustRegister(t, f, "chittytrust")

	if err := f.DeregisterService(ctx, "chittytrust", "tok"); err != nil {
		t.Fatalf("DeregisterService failed: %v", err)
	}

	if _, err := f.mem.GetService(ctx, "chittytrust"); err == nil {
		t.Error("Expected record removed")
	}
	if _, err := f.mem.GetHealth(ctx, "chittytrust"); err == nil {
		t.Error("Expected health removed")
	}
	names, _ := f.mem.ListServiceNames(ctx)
	if len(names) != 0 {
		t.Errorf("Expected empty name index, got %v", names)
	}
	members, _ := f.mem.ListCategory(ctx, domain.CategorySecurityVerification)
	if len(members) != 0 {
		t.Errorf("Expected empty category index, got %v", members)
	}
}

func TestDeregisterService_Unknown(t *testing.T) {
	f := newCatalogFixture(t)

	err := f.DeregisterService(context.Background(), "nothere", "tok")
	if !domain.IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestDeregisterService_Unauthorized(t *testing.T) {
	tests := []struct {
		name    string
		verdict authority.TokenValidation
	}{
		{"invalid token", authority.TokenValidation{Valid: false}},
		{"issuer is not the record identity", authority.TokenValidation{Valid: true, IssuerID: "CHITTY-IMPOSTOR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture(t)
			ctx := context.Background()
			mustRegister(t, f, "chittytrust")

			f.identity.respond(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(tt.verdict)
			})

			err := f.DeregisterService(ctx, "chittytrust", "tok")
			var authz *domain.AuthorizationError
			if !errors.As(err, &authz) {
				t.Fatalf("Expected AuthorizationError, got %v", err)
			}
			if authz.Reason != "Invalid deregistration token" {
				t.Errorf("Expected the deregistration rejection message, got %q", authz.Reason)
			}

			if _, err := f.mem.GetService(ctx, "chittytrust"); err != nil {
				t.Error("Record must survive a rejected deregistration")
			}
		})
	}
}
