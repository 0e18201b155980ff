package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit records a user action such as a login or an allocation through the
// request's log sink. Without a sink it does nothing.
func Audit(c *gin.Context, action, message string, fields map[string]interface{}) {
	writeAudit(c, "info", action, message, nil, fields)
}

// AuditError records a failed user action.
func AuditError(c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	writeAudit(c, "error", action, message, err, fields)
}

func writeAudit(c *gin.Context, level, action, message string, err error, fields map[string]interface{}) {
	sink := LogSinkFrom(c)
	if sink == nil {
		return
	}

	entry := requestEntry(c, level, message)
	entry.Action = action
	if len(fields) > 0 {
		entry.WithFields(fields)
	}
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Write(entry)
}

// requestEntry builds a log entry describing the current request and caller.
func requestEntry(c *gin.Context, level, message string) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		FarmID:    GetFarmID(c),
		UserEmail: strings.TrimSpace(c.GetString("user_email")),
	}
	if id, ok := c.Value("user_id").(primitive.ObjectID); ok {
		entry.UserID = id.Hex()
	}
	return entry
}
