package domain

// TrustLevel is the tier derived from a 0-100 trust score.
//
// Levels are totally ordered: UNVERIFIED < BRONZE < SILVER < GOLD < PLATINUM.
// UNVERIFIED is never derived from a score; it marks the absence of one
// (trust authority unreachable or the subject unknown to it).
type TrustLevel string

const (
	TrustUnverified TrustLevel = "UNVERIFIED"
	TrustBronze     TrustLevel = "BRONZE"
	TrustSilver     TrustLevel = "SILVER"
	TrustGold       TrustLevel = "GOLD"
	TrustPlatinum   TrustLevel = "PLATINUM"
)

var trustRank = map[TrustLevel]int{
	TrustUnverified: 0,
	TrustBronze:     1,
	TrustSilver:     2,
	TrustGold:       3,
	TrustPlatinum:   4,
}

// LevelForScore maps a trust score onto its tier.
// Thresholds: <60 BRONZE, 60-79 SILVER, 80-94 GOLD, >=95 PLATINUM.
func LevelForScore(score float64) TrustLevel {
	switch {
	case score >= 95:
		return TrustPlatinum
	case score >= 80:
		return TrustGold
	case score >= 60:
		return TrustSilver
	default:
		return TrustBronze
	}
}

// AtLeast reports whether l sits at or above other in the tier order.
// Unknown levels rank below UNVERIFIED.
func (l TrustLevel) AtLeast(other TrustLevel) bool {
	return trustRank[l] >= trustRank[other]
}

// ComplianceLevel is the data-sensitivity clearance of a caller.
type ComplianceLevel string

const (
	CompliancePublic       ComplianceLevel = "PUBLIC"
	ComplianceInternal     ComplianceLevel = "INTERNAL"
	ComplianceConfidential ComplianceLevel = "CONFIDENTIAL"
)

// TrustContext carries the caller identity and clearances for one request.
//
// It is built by the authentication layer before any gated operation runs
// and is never mutated afterwards.
type TrustContext struct {
	ChittyID        string          `json:"chittyId"`
	TrustScore      float64         `json:"trustScore"`
	TrustLevel      TrustLevel      `json:"trustLevel"`
	Permissions     []string        `json:"permissions,omitempty"`
	ProjectAccess   []string        `json:"projectAccess,omitempty"`
	ComplianceLevel ComplianceLevel `json:"complianceLevel"`
}

// AnonymousContext is the context of an unauthenticated caller:
// no identity, no score, public clearance only.
func AnonymousContext() *TrustContext {
	return &TrustContext{
		TrustScore:      0,
		TrustLevel:      TrustUnverified,
		ComplianceLevel: CompliancePublic,
	}
}

// HasPermission reports whether the caller holds the named permission.
func (t *TrustContext) HasPermission(perm string) bool {
	for _, p := range t.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// HasProject reports whether the caller has access to the named project.
func (t *TrustContext) HasProject(project string) bool {
	for _, p := range t.ProjectAccess {
		if p == project {
			return true
		}
	}
	return false
}
