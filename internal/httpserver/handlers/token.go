package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

type tokenRequest struct {
	IssuerID    string `json:"issuerId"`
	ServiceName string `json:"serviceName"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// ServiceToken handles POST /tokens/service: a pass-through to the
// identity authority minting a registration token for a service.
// Gated like registration, since the token is what registration costs.
func ServiceToken(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tc := trustgate.FromContext(r.Context())

		if decision := d.Gate.Authorize(tc, trustgate.Request{Operation: trustgate.OpRegister}); !decision.Authorized {
			denied(w, decision)
			return
		}

		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IssuerID == "" || req.ServiceName == "" {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "issuerId and serviceName are required"})
			return
		}

		token, err := d.Authorities.GenerateServiceToken(r.Context(), req.IssuerID, req.ServiceName)
		if err != nil {
			respondError(w, d, err)
			return
		}

		recordAudit(d, tc, r, trustgate.OpRegister,
			map[string]interface{}{"serviceName": req.ServiceName, "tokenIssued": token != ""}, start, token != "")

		if token == "" {
			respondJSON(w, http.StatusNotFound, errorBody{Error: "identity authority declined the token request"})
			return
		}
		respondJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
