package trustgate

import (
	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
)

// Visibility thresholds for flagged catalog entries.
const (
	securityLevelHigh      = "HIGH"
	complianceConfidential = "CONFIDENTIAL"
	minScoreForHighSec     = 80
)

// FilterResult is a narrowed discovery result set. Filtered counts the
// entries hidden from this caller.
type FilterResult struct {
	Services []domain.DiscoveredService `json:"services"`
	Filtered int                        `json:"filtered"`
}

// FilterCatalog removes entries the caller's trust context may not
// see. Narrowing is silent: the result reports only how many entries
// were hidden, never which.
func (g *Gate) FilterCatalog(tc *domain.TrustContext, services []domain.DiscoveredService) FilterResult {
	if tc == nil {
		tc = domain.AnonymousContext()
	}

	visible := make([]domain.DiscoveredService, 0, len(services))
	for _, d := range services {
		if !g.visibleTo(tc, d.Service) {
			continue
		}
		visible = append(visible, d)
	}

	filtered := len(services) - len(visible)
	if filtered > 0 {
		g.log.Debug("narrowed discovery result",
			logger.String("caller", tc.ChittyID),
			logger.Int("filtered", filtered))
	}

	return FilterResult{Services: visible, Filtered: filtered}
}

func (g *Gate) visibleTo(tc *domain.TrustContext, rec *domain.ServiceRecord) bool {
	if rec.Metadata[domain.MetaSecurityLevel] == securityLevelHigh && tc.TrustScore < minScoreForHighSec {
		return false
	}
	if rec.Metadata[domain.MetaComplianceRequired] == complianceConfidential &&
		tc.ComplianceLevel != domain.ComplianceConfidential {
		return false
	}
	return true
}
