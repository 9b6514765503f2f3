package authority

import (
	"context"
	"fmt"
	"net/http"
)

// ValidationScope narrows a token check to one action on one resource.
type ValidationScope struct {
	Action     string `json:"action"`
	ResourceID string `json:"resourceId"`
}

// TokenValidation is the identity authority's verdict on a token.
type TokenValidation struct {
	Valid    bool   `json:"valid"`
	IssuerID string `json:"issuerId,omitempty"`
}

type validateTokenRequest struct {
	Token      string `json:"token"`
	Action     string `json:"action"`
	ResourceID string `json:"resourceId"`
}

// ValidateToken asks the identity authority whether token authorizes
// the scoped action. Transport failures surface as UpstreamError so
// call sites can apply their fail-closed policy.
func (c *Client) ValidateToken(ctx context.Context, token string, scope ValidationScope) (*TokenValidation, error) {
	req := validateTokenRequest{
		Token:      token,
		Action:     scope.Action,
		ResourceID: scope.ResourceID,
	}

	var out TokenValidation
	status, err := c.doJSON(ctx, AuthorityIdentity, http.MethodPost,
		joinURL(c.cfg.IdentityURL, "/api/v1/tokens/validate"), req, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		// Unknown token: a verdict, not an outage.
		return &TokenValidation{Valid: false}, nil
	}

	return &out, nil
}

type generateTokenRequest struct {
	IssuerID    string `json:"issuerId"`
	ServiceName string `json:"serviceName"`
}

type generateTokenResponse struct {
	Token string `json:"token"`
}

// GenerateServiceToken requests a registration token for a service on
// behalf of issuerID. Returns "" when the authority declines.
func (c *Client) GenerateServiceToken(ctx context.Context, issuerID, serviceName string) (string, error) {
	req := generateTokenRequest{IssuerID: issuerID, ServiceName: serviceName}

	var out generateTokenResponse
	status, err := c.doJSON(ctx, AuthorityIdentity, http.MethodPost,
		joinURL(c.cfg.IdentityURL, "/api/v1/tokens/service"), req, &out)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", nil
	}
	if out.Token == "" {
		return "", fmt.Errorf("identity authority returned an empty token")
	}

	return out.Token, nil
}
