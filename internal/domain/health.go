package domain

import "time"

// HealthState classifies the current condition of a service.
type HealthState string

const (
	HealthHealthy   HealthState = "HEALTHY"
	HealthDegraded  HealthState = "DEGRADED"
	HealthUnhealthy HealthState = "UNHEALTHY"
	HealthUnknown   HealthState = "UNKNOWN"
)

// ValidHealthState reports whether s is a known classification.
func ValidHealthState(s HealthState) bool {
	switch s {
	case HealthHealthy, HealthDegraded, HealthUnhealthy, HealthUnknown:
		return true
	}
	return false
}

// UptimeForState maps a classification onto the coarse uptime heuristic.
// The value reflects the current classification only, not a rolling average.
func UptimeForState(s HealthState) float64 {
	switch s {
	case HealthHealthy:
		return 100
	case HealthDegraded:
		return 80
	case HealthUnhealthy:
		return 0
	default:
		return 50
	}
}

// HealthDetails carries diagnostics from the most recent probe.
type HealthDetails struct {
	// Errors lists the error strings of the most recent failed probe.
	// Empty after a successful probe.
	Errors []string `json:"errors,omitempty"`
}

// HealthStatus is the current health snapshot of one service.
//
// At most one entry exists per serviceName. Snapshots are overwritten
// wholesale on every probe and expire via TTL when probing stops.
type HealthStatus struct {
	// ServiceID equals the serviceName of the record it describes.
	ServiceID string `json:"serviceId"`

	Status HealthState `json:"status"`

	LastCheck time.Time `json:"lastCheck"`

	// ResponseTimeMs is the latency of the most recent probe attempt.
	ResponseTimeMs int64 `json:"responseTimeMs"`

	// UptimePercent is the heuristic value for Status, see UptimeForState.
	UptimePercent float64 `json:"uptimePercent"`

	Details HealthDetails `json:"details"`
}

// UnknownHealth is the snapshot written at registration time,
// before any probe has run.
func UnknownHealth(serviceID string, now time.Time) *HealthStatus {
	return &HealthStatus{
		ServiceID:     serviceID,
		Status:        HealthUnknown,
		LastCheck:     now,
		UptimePercent: UptimeForState(HealthUnknown),
	}
}

// IsHealthy reports whether the snapshot classifies as HEALTHY.
// A nil snapshot (never probed, or expired) is not healthy.
func (h *HealthStatus) IsHealthy() bool {
	return h != nil && h.Status == HealthHealthy
}

// Clone returns a deep copy, safe to hand to another goroutine.
func (h *HealthStatus) Clone() *HealthStatus {
	if h == nil {
		return nil
	}
	cp := *h
	if h.Details.Errors != nil {
		cp.Details.Errors = append([]string(nil), h.Details.Errors...)
	}
	return &cp
}
