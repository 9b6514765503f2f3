package trustgate

import (
	"fmt"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
)

// Request is one gated call to decide on.
type Request struct {
	Operation string

	// IncludeSecure marks requests asking for sensitive data, which
	// PUBLIC-clearance callers may not see.
	IncludeSecure bool
}

// Decision is the gate's verdict on a request.
type Decision struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason,omitempty"`

	// RequiresElevation is true when a higher trust score or an extra
	// permission would flip the verdict. Project scoping is not
	// elevatable, so project denials leave it false.
	RequiresElevation bool `json:"requiresElevation,omitempty"`

	// RequiredTrustLevel names the tier the caller would need, set
	// only on score denials.
	RequiredTrustLevel domain.TrustLevel `json:"requiredTrustLevel,omitempty"`
}

func deny(reason string, elevation bool) Decision {
	return Decision{Reason: reason, RequiresElevation: elevation}
}

// Gate decides operation access from a caller's trust context and the
// static rule table.
type Gate struct {
	log logger.Logger
}

// New creates a Gate.
func New(log logger.Logger) *Gate {
	return &Gate{log: log.Named("trustgate")}
}

// Authorize runs the decision procedure for tc against req.
// A nil context is treated as anonymous.
func (g *Gate) Authorize(tc *domain.TrustContext, req Request) Decision {
	if tc == nil {
		tc = domain.AnonymousContext()
	}

	rule, known := RuleFor(req.Operation)
	if !known {
		g.log.Warn("denied unknown operation",
			logger.String("operation", req.Operation),
			logger.String("caller", tc.ChittyID))
		return deny("Unknown operation", false)
	}

	if tc.TrustScore < rule.MinTrustScore {
		d := deny(fmt.Sprintf("Trust score %.0f is below the required %.0f", tc.TrustScore, rule.MinTrustScore), true)
		d.RequiredTrustLevel = domain.LevelForScore(rule.MinTrustScore)
		return d
	}

	for _, perm := range rule.RequiredPermissions {
		if !tc.HasPermission(perm) {
			return deny(fmt.Sprintf("Missing permission %s", perm), true)
		}
	}

	for _, project := range rule.RequiredProjects {
		if !tc.HasProject(project) {
			return deny(fmt.Sprintf("No access to project %s", project), false)
		}
	}

	if req.IncludeSecure && tc.ComplianceLevel == domain.CompliancePublic {
		return deny("Secure data requires more than PUBLIC clearance", true)
	}

	return Decision{Authorized: true}
}

// AuthorizationError converts a denial into the error taxonomy.
// Panics on an authorized decision, which is a programming error.
func (d Decision) AuthorizationError() *domain.AuthorizationError {
	if d.Authorized {
		panic("trustgate: no error for an authorized decision")
	}
	return &domain.AuthorizationError{
		Reason:             d.Reason,
		RequiresElevation:  d.RequiresElevation,
		RequiredTrustLevel: d.RequiredTrustLevel,
	}
}
