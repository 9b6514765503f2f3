package authority

import (
	"context"
	"net/http"
)

// SchemaResult is the schema authority's verdict on a payload.
type SchemaResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

type validateSchemaRequest struct {
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
}

// ValidateSchema submits payload for shape validation against the
// named schema kind (ex: "service-registration"). The authority's
// verdict is final; callers treat transport failures as fail-closed.
func (c *Client) ValidateSchema(ctx context.Context, kind string, payload interface{}) (*SchemaResult, error) {
	req := validateSchemaRequest{Kind: kind, Payload: payload}

	var out SchemaResult
	status, err := c.doJSON(ctx, AuthoritySchema, http.MethodPost,
		joinURL(c.cfg.SchemaURL, "/api/v1/validate"), req, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return &SchemaResult{Valid: false, Errors: []string{"unknown schema kind: " + kind}}, nil
	}

	return &out, nil
}
