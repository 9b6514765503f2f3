package authority

import (
	"context"
	"net/http"

	"github.com/chittyos/chittyregistry/internal/domain"
)

// CanonicalRecord is the authoritative definition of a seed service.
type CanonicalRecord struct {
	ServiceName  string          `json:"serviceName"`
	BaseURL      string          `json:"baseUrl"`
	Category     domain.Category `json:"category"`
	Capabilities []string        `json:"capabilities,omitempty"`
}

// GetCanonical fetches the canonical definition for a serviceName.
// Returns (nil, nil) when none exists; other failures propagate.
func (c *Client) GetCanonical(ctx context.Context, serviceName string) (*CanonicalRecord, error) {
	var out CanonicalRecord
	status, err := c.doJSON(ctx, AuthorityCanonical, http.MethodGet,
		joinURL(c.cfg.CanonicalURL, "/api/v1/canon/"+serviceName), nil, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	return &out, nil
}

// ComplianceResult is the canonical-data authority's conformance verdict.
type ComplianceResult struct {
	Compliant bool     `json:"compliant"`
	Issues    []string `json:"issues,omitempty"`
}

type validateDataRequest struct {
	StandardType string      `json:"standardType"`
	Payload      interface{} `json:"payload"`
}

// ValidateData checks payload against a canonical data standard.
// Conformance is advisory for registration: callers log issues and
// proceed.
func (c *Client) ValidateData(ctx context.Context, standardType string, payload interface{}) (*ComplianceResult, error) {
	req := validateDataRequest{StandardType: standardType, Payload: payload}

	var out ComplianceResult
	status, err := c.doJSON(ctx, AuthorityCanonical, http.MethodPost,
		joinURL(c.cfg.CanonicalURL, "/api/v1/validate"), req, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return &ComplianceResult{Compliant: false, Issues: []string{"unknown standard: " + standardType}}, nil
	}

	return &out, nil
}
