package handlers

import (
	"net/http"

	"github.com/chittyos/chittyregistry/internal/httpserver/deps"
	"github.com/chittyos/chittyregistry/internal/logger"
)

// Reconcile handles POST /reconcile: force an index reconciliation
// sweep between scheduled runs. The trigger channel holds one pending
// request; a second call while a sweep is queued answers 429.
func Reconcile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReconcileTrigger <- struct{}{}:
			d.Logger.Info("manual index reconcile triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("reconcile triggered\n"))
		default:
			d.Logger.Warn("index reconcile already queued",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte("reconcile already in progress\n"))
		}
	}
}
