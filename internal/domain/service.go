package domain

import "time"

// Category classifies a service within the federation.
// The set is fixed; registration rejects anything else.
type Category string

const (
	CategoryCoreInfrastructure       Category = "core-infrastructure"
	CategorySecurityVerification     Category = "security-verification"
	CategoryBlockchainInfrastructure Category = "blockchain-infrastructure"
	CategoryAIIntelligence           Category = "ai-intelligence"
	CategoryDocumentEvidence         Category = "document-evidence"
	CategoryBusinessOperations       Category = "business-operations"
	CategoryFoundationGovernance     Category = "foundation-governance"
)

// Categories returns every valid category, in declaration order.
func Categories() []Category {
	return []Category{
		CategoryCoreInfrastructure,
		CategorySecurityVerification,
		CategoryBlockchainInfrastructure,
		CategoryAIIntelligence,
		CategoryDocumentEvidence,
		CategoryBusinessOperations,
		CategoryFoundationGovernance,
	}
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// CertificationLevel is an optional badge assigned by a certification
// authority. Distinct from TrustLevel, which is derived from the score.
type CertificationLevel string

const (
	CertBronze   CertificationLevel = "BRONZE"
	CertSilver   CertificationLevel = "SILVER"
	CertGold     CertificationLevel = "GOLD"
	CertPlatinum CertificationLevel = "PLATINUM"
)

var certRank = map[CertificationLevel]int{
	CertBronze:   1,
	CertSilver:   2,
	CertGold:     3,
	CertPlatinum: 4,
}

// ValidCertificationLevel reports whether c is a known badge.
// The empty string is valid: certification is optional.
func ValidCertificationLevel(c CertificationLevel) bool {
	if c == "" {
		return true
	}
	_, ok := certRank[c]
	return ok
}

// Endpoint describes one routable operation a service exposes.
type Endpoint struct {
	Path          string `json:"path"`
	Method        string `json:"method"`
	Authenticated bool   `json:"authenticated"`
	RateLimit     string `json:"rateLimit,omitempty"` // ex: "100/min", informational
}

// HealthCheckSpec tells the monitor how to probe a service.
type HealthCheckSpec struct {
	Path               string `json:"path"`
	Method             string `json:"method"`
	ExpectedStatusCode int    `json:"expectedStatusCode"`
	TimeoutMs          int64  `json:"timeoutMs"`
}

// Normalize fills the probe defaults on an empty or partial spec.
// defaultTimeoutMs applies only when the record carries no timeout.
func (h *HealthCheckSpec) Normalize(defaultTimeoutMs int64) {
	if h.Path == "" {
		h.Path = "/health"
	}
	if h.Method == "" {
		h.Method = "GET"
	}
	if h.ExpectedStatusCode == 0 {
		h.ExpectedStatusCode = 200
	}
	if h.TimeoutMs <= 0 {
		h.TimeoutMs = defaultTimeoutMs
	}
}

// ServiceRecord is one catalog entry for a registered service.
//
// A record is uniquely identified by its ServiceName. Re-registration
// with the same name overwrites in place.
type ServiceRecord struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ChittyID is the issuer-assigned opaque identity of the service.
	ChittyID string `json:"chittyId"`

	// ServiceName is the globally unique primary key.
	// Example: chittytrust
	ServiceName string `json:"serviceName"`

	// ─────────────────────────────
	// Functional description
	// (overwritten wholesale on re-registration)
	// ─────────────────────────────

	DisplayName string `json:"displayName"`
	Description string `json:"description,omitempty"`

	// Version is a semantic-version string. Example: 1.4.0
	Version string `json:"version"`

	// BaseURL is the absolute URL the service answers on.
	BaseURL string `json:"baseUrl"`

	// Endpoints lists the operations the service exposes, in the
	// order the registrant declared them.
	Endpoints []Endpoint `json:"endpoints,omitempty"`

	// HealthCheck tells the monitor how to probe this service.
	HealthCheck HealthCheckSpec `json:"healthCheck"`

	Category Category `json:"category"`

	// Dependencies holds serviceName references. Weak references:
	// a dependency may be absent from the catalog.
	Dependencies []string `json:"dependencies,omitempty"`

	// Capabilities are free-text tags used by discovery filters.
	Capabilities []string `json:"capabilities,omitempty"`

	CertificationLevel CertificationLevel `json:"certificationLevel,omitempty"`

	// ─────────────────────────────
	// Trust
	// ─────────────────────────────

	// TrustScore is the 0-100 reputation value fetched from the
	// trust authority at registration time. 0 when unscored.
	TrustScore float64 `json:"trustScore"`

	// TrustLevel is derived from TrustScore, UNVERIFIED when unscored.
	TrustLevel TrustLevel `json:"trustLevel"`

	// Metadata is an open string map. Known keys: canonical,
	// securityLevel, complianceRequired.
	Metadata map[string]string `json:"metadata,omitempty"`

	// ─────────────────────────────
	// Provenance
	// ─────────────────────────────

	// RegisteredAt is the first registration time. Preserved across
	// re-registration only when the caller identity matches.
	RegisteredAt time.Time `json:"registeredAt"`

	// LastUpdated is bumped on every successful registration write.
	LastUpdated time.Time `json:"lastUpdated"`

	// RegisteredBy is the issuer identity the token validated to.
	RegisteredBy string `json:"registeredBy,omitempty"`
}

// Metadata keys with catalog-level meaning.
const (
	MetaCanonical          = "canonical"
	MetaSecurityLevel      = "securityLevel"
	MetaComplianceRequired = "complianceRequired"
)

// IsCanonical reports whether the record came from the seed list.
func (s *ServiceRecord) IsCanonical() bool {
	return s.Metadata[MetaCanonical] == "true"
}

// HasCapability reports whether the record carries the given tag.
func (s *ServiceRecord) HasCapability(tag string) bool {
	for _, c := range s.Capabilities {
		if c == tag {
			return true
		}
	}
	return false
}
