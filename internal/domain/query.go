package domain

// DiscoveryQuery filters a catalog lookup. Zero value matches everything
// that is currently HEALTHY (the default-exclude rule).
type DiscoveryQuery struct {
	// ServiceName short-circuits to a direct lookup when set.
	ServiceName string `json:"serviceName,omitempty"`

	// Category narrows candidates via the per-category index.
	Category Category `json:"category,omitempty"`

	// Capability keeps only records carrying the tag.
	Capability string `json:"capability,omitempty"`

	// HealthStatus keeps only entries whose current status matches exactly.
	HealthStatus HealthState `json:"healthStatus,omitempty"`

	// CertificationLevel keeps only records with the exact badge.
	CertificationLevel CertificationLevel `json:"certificationLevel,omitempty"`

	// IncludeUnhealthy disables the default HEALTHY-only rule.
	// Never-probed services surface with status UNKNOWN under it.
	IncludeUnhealthy bool `json:"includeUnhealthy,omitempty"`
}

// DiscoveredService pairs a catalog record with its current health.
type DiscoveredService struct {
	Service *ServiceRecord `json:"service"`

	// CurrentHealth is never nil in results: services without a live
	// snapshot carry an UNKNOWN placeholder.
	CurrentHealth *HealthStatus `json:"currentHealth"`
}
