package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/store"
)

// RegisterResult is the caller-visible outcome of a registration.
type RegisterResult struct {
	Success bool                  `json:"success"`
	Errors  []string              `json:"errors,omitempty"`
	Service *domain.ServiceRecord `json:"service,omitempty"`
}

func rejected(errs ...string) *RegisterResult {
	return &RegisterResult{Success: false, Errors: errs}
}

// RegisterService runs the full registration protocol for rec.
//
// Gate order: identity token (fail closed), local payload sanity,
// schema authority (fail closed), canonical conformance (warn only),
// trust score (fail open to UNVERIFIED), then persistence. Nothing
// is written before every fail-closed gate has passed.
//
// Business rejections come back inside RegisterResult; the error
// return is reserved for persistence faults.
func (c *Catalog) RegisterService(ctx context.Context, token string, rec *domain.ServiceRecord) (*RegisterResult, error) {
	// Step 1: the token must authorize registration of this exact name.
	validation, err := c.authorities.ValidateToken(ctx, token, authority.ValidationScope{
		Action:     ActionRegister,
		ResourceID: rec.ServiceName,
	})
	if err != nil {
		c.log.Warn("identity authority unavailable, registration blocked",
			logger.String("service", rec.ServiceName),
			logger.Error(err))
		return rejected("Invalid registration token"), nil
	}
	if !validation.Valid {
		return rejected("Invalid registration token"), nil
	}
	issuer := validation.IssuerID

	// Step 2: local payload sanity before any further round trip.
	if errs := domain.ValidateRecord(rec); len(errs) > 0 {
		return rejected(errs...), nil
	}

	// Step 3: the schema authority has the final word on shape.
	schemaRes, err := c.authorities.ValidateSchema(ctx, "service-registration", rec)
	if err != nil {
		c.log.Warn("schema authority unavailable, registration blocked",
			logger.String("service", rec.ServiceName),
			logger.Error(err))
		return rejected("Schema validation unavailable"), nil
	}
	if !schemaRes.Valid {
		if len(schemaRes.Errors) == 0 {
			return rejected("Schema validation failed"), nil
		}
		return rejected(schemaRes.Errors...), nil
	}

	// Step 4: canonical conformance is advisory.
	c.checkCanonicalConformance(ctx, rec)

	// Step 5: trust score, defaulting to UNVERIFIED when unavailable.
	rec.TrustScore, rec.TrustLevel = c.resolveTrust(ctx, issuer, rec.ChittyID)

	// Step 6: persist record, initial health, and both indexes.
	if err := c.persistRegistration(ctx, rec, issuer); err != nil {
		return nil, err
	}

	c.log.Info("service registered",
		logger.String("service", rec.ServiceName),
		logger.String("category", string(rec.Category)),
		logger.String("issuer", issuer),
		logger.String("trust_level", string(rec.TrustLevel)))

	return &RegisterResult{Success: true, Service: rec}, nil
}

// checkCanonicalConformance compares rec against its canonical
// definition when one exists. Non-conformance and authority outages
// are logged, never blocking.
func (c *Catalog) checkCanonicalConformance(ctx context.Context, rec *domain.ServiceRecord) {
	canonical, err := c.authorities.GetCanonical(ctx, rec.ServiceName)
	if err != nil {
		c.log.Warn("canonical authority unavailable, conformance check skipped",
			logger.String("service", rec.ServiceName),
			logger.Error(err))
		return
	}
	if canonical == nil {
		return
	}

	res, err := c.authorities.ValidateData(ctx, "service-definition", rec)
	if err != nil {
		c.log.Warn("canonical conformance check failed, proceeding",
			logger.String("service", rec.ServiceName),
			logger.Error(err))
		return
	}
	if !res.Compliant {
		c.log.Warn("registration does not conform to canonical definition",
			logger.String("service", rec.ServiceName),
			logger.Strings("issues", res.Issues))
	}
}

// resolveTrust fetches the issuer's trust score, falling back to the
// record identity, and to score 0 / UNVERIFIED when the authority
// cannot answer.
func (c *Catalog) resolveTrust(ctx context.Context, issuer, chittyID string) (float64, domain.TrustLevel) {
	subject := issuer
	if subject == "" {
		subject = chittyID
	}

	score, err := c.authorities.GetTrustScore(ctx, subject)
	if err != nil {
		c.log.Warn("trust authority unavailable, defaulting to UNVERIFIED",
			logger.String("subject", subject),
			logger.Error(err))
		return 0, domain.TrustUnverified
	}
	if score == nil {
		return 0, domain.TrustUnverified
	}
	return score.Score, score.Level
}

func (c *Catalog) persistRegistration(ctx context.Context, rec *domain.ServiceRecord, issuer string) error {
	now := c.now()

	rec.HealthCheck.Normalize(c.probeTimeout.Milliseconds())
	rec.RegisteredAt = now
	rec.LastUpdated = now
	rec.RegisteredBy = issuer

	// Re-registration keeps the original provenance only when the
	// caller is the identity that registered it first.
	existing, err := c.store.GetService(ctx, rec.ServiceName)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check existing registration: %w", err)
	}
	if existing != nil && issuer != "" && existing.RegisteredBy == issuer {
		rec.RegisteredAt = existing.RegisteredAt
	}

	if err := c.store.SaveService(ctx, rec); err != nil {
		return fmt.Errorf("failed to persist registration: %w", err)
	}
	if err := c.store.SaveHealth(ctx, domain.UnknownHealth(rec.ServiceName, now), c.healthTTL); err != nil {
		return fmt.Errorf("failed to initialize health: %w", err)
	}
	if err := c.store.AddServiceName(ctx, rec.ServiceName); err != nil {
		return fmt.Errorf("failed to index service name: %w", err)
	}
	if err := c.store.AddToCategory(ctx, rec.Category, rec.ServiceName); err != nil {
		return fmt.Errorf("failed to index category: %w", err)
	}

	return nil
}

// DeregisterService removes a service after the token proves the
// caller is the record's identity. The record, its health snapshot
// and both index entries are removed sequentially.
func (c *Catalog) DeregisterService(ctx context.Context, name, token string) error {
	rec, err := c.store.GetService(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &domain.NotFoundError{Kind: "service", Name: name}
		}
		return fmt.Errorf("failed to load service: %w", err)
	}

	validation, err := c.authorities.ValidateToken(ctx, token, authority.ValidationScope{
		Action:     ActionDeregister,
		ResourceID: name,
	})
	if err != nil {
		c.log.Warn("identity authority unavailable, deregistration blocked",
			logger.String("service", name),
			logger.Error(err))
		return &domain.AuthorizationError{Reason: "Invalid deregistration token"}
	}
	if !validation.Valid || validation.IssuerID != rec.ChittyID {
		return &domain.AuthorizationError{Reason: "Invalid deregistration token"}
	}

	if err := c.store.DeleteService(ctx, name); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	if err := c.store.DeleteHealth(ctx, name); err != nil {
		return fmt.Errorf("failed to delete health: %w", err)
	}
	if err := c.store.RemoveServiceName(ctx, name); err != nil {
		return fmt.Errorf("failed to remove name index entry: %w", err)
	}
	if err := c.store.RemoveFromCategory(ctx, rec.Category, name); err != nil {
		return fmt.Errorf("failed to remove category index entry: %w", err)
	}

	c.log.Info("service deregistered", logger.String("service", name))
	return nil
}
