package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chittyos/chittyregistry/internal/domain"
	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/chittyos/chittyregistry/internal/trustgate"
)

// registerRequest is the registration envelope: the scoped token the
// identity authority issued plus the service payload itself.
type registerRequest struct {
	Token   string                `json:"token"`
	Service *domain.ServiceRecord `json:"service"`
}

// Register handles POST /services. The catalog owns every gate of the
// registration protocol; this handler only decodes, authorizes the
// operation itself, and kicks off the post-registration probe.
func Register(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tc := trustgate.FromContext(r.Context())

		if decision := d.Gate.Authorize(tc, trustgate.Request{Operation: trustgate.OpRegister}); !decision.Authorized {
			denied(w, decision)
			return
		}

		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Service == nil {
			respondJSON(w, http.StatusBadRequest, errorBody{Error: "malformed registration payload"})
			return
		}

		res, err := d.Catalog.RegisterService(r.Context(), req.Token, req.Service)
		if err != nil {
			respondError(w, d, err)
			return
		}

		recordAudit(d, tc, r, trustgate.OpRegister,
			map[string]interface{}{"serviceName": req.Service.ServiceName}, start, res.Success)

		if !res.Success {
			respondJSON(w, http.StatusBadRequest, res)
			return
		}

		// Verify the newcomer without holding up the response.
		d.Monitor.CheckServiceAsync(req.Service.ServiceName)

		respondJSON(w, http.StatusCreated, res)
	}
}

// deregisterResponse matches the caller-visible contract: failures name
// the reason, never an internal detail.
type deregisterResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Deregister handles DELETE /services/{name}. The deregistration token
// travels in the X-Registration-Token header.
func Deregister(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		tc := trustgate.FromContext(r.Context())
		name := chi.URLParam(r, "name")

		if decision := d.Gate.Authorize(tc, trustgate.Request{Operation: trustgate.OpDeregister}); !decision.Authorized {
			denied(w, decision)
			return
		}

		token := r.Header.Get("X-Registration-Token")
		err := d.Catalog.DeregisterService(r.Context(), name, token)

		recordAudit(d, tc, r, trustgate.OpDeregister,
			map[string]interface{}{"serviceName": name}, start, err == nil)

		if err != nil {
			var ae *domain.AuthorizationError
			if errors.As(err, &ae) {
				respondJSON(w, http.StatusBadRequest, deregisterResponse{Success: false, Error: ae.Reason})
				return
			}
			respondError(w, d, err)
			return
		}

		d.Logger.Info("service deregistered via API",
			logger.String("service", name),
			logger.String("caller", tc.ChittyID))
		respondJSON(w, http.StatusOK, deregisterResponse{Success: true})
	}
}
