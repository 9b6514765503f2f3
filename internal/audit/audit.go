package audit

import (
	"time"

	"github.com/chittyos/chittyregistry/internal/logger"
	"github.com/google/uuid"
)

// Entry captures one invocation of a gated registry operation.
type Entry struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	CallerID  string                 `json:"callerId"`
	SessionID string                 `json:"sessionId,omitempty"`
	Operation string                 `json:"operation"`
	Params    map[string]interface{} `json:"params,omitempty"`
	LatencyMs int64                  `json:"latencyMs"`
	Success   bool                   `json:"success"`
}

// Recorder accepts audit entries.
type Recorder interface {
	Record(entry Entry)
}

// LogSink writes audit entries to the structured log.
type LogSink struct {
	log logger.Logger
}

// NewLogSink creates a sink on the given logger.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{log: log.Named("audit")}
}

func (s *LogSink) Record(e Entry) {
	s.log.Info("audit",
		logger.String("id", e.ID),
		logger.Time("timestamp", e.Timestamp),
		logger.String("caller_id", e.CallerID),
		logger.String("session_id", e.SessionID),
		logger.String("operation", e.Operation),
		logger.Any("params", e.Params),
		logger.Int64("latency_ms", e.LatencyMs),
		logger.Bool("success", e.Success),
	)
}

// Nop discards every entry. Used in tests.
type Nop struct{}

func (Nop) Record(Entry) {}

// stamp fills the generated fields of an entry.
func stamp(e *Entry) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
}
