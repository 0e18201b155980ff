package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log levels stored on entries.
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Audit trail page sizes.
const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 200
)

// LogEntry is a persisted access-log line or audit event. Audit events carry
// an Action such as "allocate" or "transfer".
type LogEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Level     string             `bson:"level" json:"level"`
	Message   string             `bson:"message" json:"message"`
	Action    string             `bson:"action,omitempty" json:"action,omitempty"`
	Error     string             `bson:"error,omitempty" json:"error,omitempty"`

	RequestID  string `bson:"request_id,omitempty" json:"requestId,omitempty"`
	Method     string `bson:"method,omitempty" json:"method,omitempty"`
	Path       string `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int    `bson:"status_code,omitempty" json:"statusCode,omitempty"`
	DurationMS int64  `bson:"duration_ms,omitempty" json:"durationMs,omitempty"`
	IP         string `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string `bson:"user_agent,omitempty" json:"userAgent,omitempty"`

	UserID    string `bson:"user_id,omitempty" json:"userId,omitempty"`
	UserEmail string `bson:"user_email,omitempty" json:"userEmail,omitempty"`
	FarmID    string `bson:"farm_id,omitempty" json:"farmId,omitempty"`

	Fields map[string]any `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithFields merges fields into the entry, overwriting existing keys.
func (e *LogEntry) WithFields(fields map[string]any) *LogEntry {
	if len(fields) == 0 {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(map[string]any, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// AuditFilter selects a farm's audit events, newest first.
type AuditFilter struct {
	Action string
	Since  time.Time
	Until  time.Time
	Limit  int
}

// PageSize clamps Limit to [1, MaxAuditLimit], defaulting to DefaultAuditLimit.
func (f AuditFilter) PageSize() int {
	switch {
	case f.Limit <= 0:
		return DefaultAuditLimit
	case f.Limit > MaxAuditLimit:
		return MaxAuditLimit
	default:
		return f.Limit
	}
}
