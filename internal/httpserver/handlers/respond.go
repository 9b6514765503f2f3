package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/chittyos/chittyregistry/internal/audit"
	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the uniform error payload. Elevation fields appear only
// on authorization denials that a higher trust score could flip.
type errorBody struct {
	Error              string            `json:"error"`
	Errors             []string          `json:"errors,omitempty"`
	RequiresElevation  bool              `json:"requiresElevation,omitempty"`
	RequiredTrustLevel domain.TrustLevel `json:"requiredTrustLevel,omitempty"`
}

// respondError maps the error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal fault and carries no detail.
func respondError(w http.ResponseWriter, d deps.Deps, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Errors: ve.Errors})
		return
	}

	var ae *domain.AuthorizationError
	if errors.As(err, &ae) {
		respondJSON(w, http.StatusForbidden, errorBody{
			Error:              ae.Reason,
			RequiresElevation:  ae.RequiresElevation,
			RequiredTrustLevel: ae.RequiredTrustLevel,
		})
		return
	}

	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		respondJSON(w, http.StatusNotFound, errorBody{Error: nf.Error()})
		return
	}

	d.Logger.Errorf("request failed: %v", err)
	respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
}

// denied writes a gate denial. The decision payload doubles as the
// elevation hint the caller acts on.
func denied(w http.ResponseWriter, decision trustgate.Decision) {
	respondJSON(w, http.StatusForbidden, errorBody{
		Error:              decision.Reason,
		RequiresElevation:  decision.RequiresElevation,
		RequiredTrustLevel: decision.RequiredTrustLevel,
	})
}

// recordAudit emits one best-effort audit entry for a gated operation.
func recordAudit(d deps.Deps, tc *domain.TrustContext, r *http.Request, op string, params map[string]interface{}, start time.Time, success bool) {
	callerID := ""
	if tc != nil {
		callerID = tc.ChittyID
	}
	d.Audit.Record(audit.Entry{
		CallerID:  callerID,
		SessionID: middleware.GetReqID(r.Context()),
		Operation: op,
		Params:    params,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   success,
	})
}
