package authority

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/utils"
)

// Authority names used in errors, logs and health reports.
const (
	AuthorityIdentity  = "identity"
	AuthoritySchema    = "schema"
	AuthorityCanonical = "canonical"
	AuthorityTrust     = "trust"
)

// Config holds the base URL of each authority and the shared
// per-call timeout.
type Config struct {
	IdentityURL  string
	SchemaURL    string
	CanonicalURL string
	TrustURL     string
	Timeout      time.Duration
}

// Client wraps the four external authorities behind typed calls.
// Pure I/O: no registry policy lives here beyond error translation.
type Client struct {
	http *http.Client
	cfg  Config
	log  logger.Logger
}

// New creates an authority client.
func New(cfg Config, log logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		log:  log,
	}
}

// doJSON performs one authority round trip. in (when non-nil) is sent
// as a JSON body; out (when non-nil) is decoded from a 2xx response.
// The HTTP status is returned so callers can map 404 to absence.
// Transport failures come back as domain.UpstreamError.
func (c *Client) doJSON(ctx context.Context, authority, method, url string, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal %s request: %w", authority, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, fmt.Errorf("failed to build %s request: %w", authority, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &domain.UpstreamError{Authority: authority, Err: err}
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return resp.StatusCode, &domain.UpstreamError{
			Authority: authority,
			Err:       fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, &domain.UpstreamError{
				Authority: authority,
				Err:       fmt.Errorf("invalid response body: %w", err),
			}
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	return resp.StatusCode, nil
}

func joinURL(base, path string) string {
	return strings.TrimRight(base, "/") + path
}
