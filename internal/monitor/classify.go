package monitor

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/chittyos/chittyregistry/internal/domain"
)

// statusBody is the optional shape a probe target may answer with.
type statusBody struct {
	Status string `json:"status"`
}

// classifyBody maps a recognized body status value onto a health state.
// The second return is false when the body carries no recognizable
// signal (absent, unparseable, or an unknown vocabulary word).
func classifyBody(body []byte) (domain.HealthState, bool) {
	if len(body) == 0 {
		return "", false
	}

	var sb statusBody
	if err := json.Unmarshal(body, &sb); err != nil {
		return "", false
	}

	switch strings.ToLower(strings.TrimSpace(sb.Status)) {
	case "healthy", "ok", "up":
		return domain.HealthHealthy, true
	case "degraded", "warning":
		return domain.HealthDegraded, true
	case "unhealthy", "down", "error":
		return domain.HealthUnhealthy, true
	}
	return "", false
}

// classify decides the health state of a successful probe.
//
// An explicit body status wins outright. Without one, a response
// slower than 80% of the budget counts as DEGRADED, everything else
// as HEALTHY.
func classify(body []byte, latency, timeout time.Duration) domain.HealthState {
	if state, ok := classifyBody(body); ok {
		return state
	}
	if timeout > 0 && latency > timeout*8/10 {
		return domain.HealthDegraded
	}
	return domain.HealthHealthy
}
