package mw

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chittyos/chittyregistry/internal/authority"
	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

// ActionAccess is the token validation scope for plain registry access.
const ActionAccess = "registry-access"

// sessionClaims are the clearance fields carried inside a registry
// session token. Signature verification is the identity authority's
// job; the claims are only read after it has vouched for the token.
type sessionClaims struct {
	jwt.RegisteredClaims
	ChittyID        string   `json:"chittyId,omitempty"`
	Permissions     []string `json:"permissions,omitempty"`
	ProjectAccess   []string `json:"projectAccess,omitempty"`
	ComplianceLevel string   `json:"complianceLevel,omitempty"`
}

// Authenticate resolves the caller's trust context.
//
// No Authorization header means an anonymous caller: the request
// proceeds with a zero-trust context and the gate decides what it may
// do. A presented token, however, must validate against the identity
// authority — an invalid or unverifiable token is rejected outright
// (fail closed), including when the authority is unreachable.
//
// The trust score lookup is fail-open: an unreachable trust authority
// degrades the caller to UNVERIFIED instead of blocking the request.
func Authenticate(authorities *authority.Client, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				ctx := trustgate.WithContext(r.Context(), domain.AnonymousContext())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			validation, err := authorities.ValidateToken(r.Context(), token, authority.ValidationScope{
				Action: ActionAccess,
			})
			if err != nil {
				log.Warn("identity authority unavailable, request rejected",
					logger.String("path", r.URL.Path),
					logger.Error(err))
				unauthorized(w, "Token validation unavailable")
				return
			}
			if !validation.Valid {
				unauthorized(w, "Invalid session token")
				return
			}

			tc := contextFromToken(token, validation.IssuerID)
			tc.TrustScore, tc.TrustLevel = resolveTrust(r, authorities, tc.ChittyID, log)

			ctx := trustgate.WithContext(r.Context(), tc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// contextFromToken decodes the clearance claims. A token the identity
// authority accepted but whose payload does not parse still yields a
// usable context carrying only the validated issuer identity.
func contextFromToken(token, issuerID string) *domain.TrustContext {
	tc := domain.AnonymousContext()
	tc.ChittyID = issuerID

	claims := &sessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return tc
	}

	if claims.ChittyID != "" && tc.ChittyID == "" {
		tc.ChittyID = claims.ChittyID
	}
	tc.Permissions = claims.Permissions
	tc.ProjectAccess = claims.ProjectAccess

	switch domain.ComplianceLevel(claims.ComplianceLevel) {
	case domain.ComplianceInternal:
		tc.ComplianceLevel = domain.ComplianceInternal
	case domain.ComplianceConfidential:
		tc.ComplianceLevel = domain.ComplianceConfidential
	default:
		tc.ComplianceLevel = domain.CompliancePublic
	}

	return tc
}

func resolveTrust(r *http.Request, authorities *authority.Client, chittyID string, log logger.Logger) (float64, domain.TrustLevel) {
	if chittyID == "" {
		return 0, domain.TrustUnverified
	}

	score, err := authorities.GetTrustScore(r.Context(), chittyID)
	if err != nil {
		log.Warn("trust authority unavailable, caller degraded to UNVERIFIED",
			logger.String("chitty_id", chittyID),
			logger.Error(err))
		return 0, domain.TrustUnverified
	}
	if score == nil {
		return 0, domain.TrustUnverified
	}
	return score.Score, score.Level
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": reason})
}
