package authority

import (
	"context"
	"net/http"

	"github.com/chittyos/chittyregistry/internal/domain"
)

// TrustScore is the trust authority's current rating of a chittyId.
type TrustScore struct {
	Score float64          `json:"score"`
	Level domain.TrustLevel `json:"level"`
}

// GetTrustScore fetches the score for a chittyId.
// Returns (nil, nil) when the subject is unknown to the authority;
// callers fall back to UNVERIFIED.
func (c *Client) GetTrustScore(ctx context.Context, chittyID string) (*TrustScore, error) {
	var out TrustScore
	status, err := c.doJSON(ctx, AuthorityTrust, http.MethodGet,
		joinURL(c.cfg.TrustURL, "/api/v1/scores/"+chittyID), nil, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}

	if out.Level == "" {
		out.Level = domain.LevelForScore(out.Score)
	}

	return &out, nil
}

// ScoreMetrics feeds operational signals back into the trust authority.
type ScoreMetrics struct {
	Uptime         float64 `json:"uptime"`
	ResponseTimeMs int64   `json:"responseTimeMs"`
	ErrorCount     int     `json:"errorCount"`
}

// UpdateScore submits health-derived metrics for a chittyId.
// Best-effort: callers log failures and move on.
func (c *Client) UpdateScore(ctx context.Context, chittyID string, metrics ScoreMetrics) error {
	_, err := c.doJSON(ctx, AuthorityTrust, http.MethodPost,
		joinURL(c.cfg.TrustURL, "/api/v1/scores/"+chittyID+"/metrics"), metrics, nil)
	return err
}
