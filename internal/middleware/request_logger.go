package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/logger"
	"github.com/rs/zerolog"
)

// quietPaths are polled constantly and would drown the access log.
var quietPaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
	"/metrics": true,
}

// RequestLogger writes one structured line per request and, when sink is
// non-nil, persists the same entry. Probe and scrape paths are skipped.
func RequestLogger(sink *LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		if quietPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		level := levelForStatus(status)
		entry := requestEntry(c, level.String(), "HTTP request")
		entry.StatusCode = status
		entry.DurationMS = latency.Milliseconds()
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}

		log := logger.Logger()
		event := log.WithLevel(level).
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", status).
			Int64("duration_ms", entry.DurationMS).
			Str("ip", entry.IP)
		if entry.FarmID != "" {
			event = event.Str("farm_id", entry.FarmID)
		}
		if entry.Error != "" {
			event = event.Str("error", entry.Error)
		}
		event.Msg(entry.Message)

		sink.Write(entry)
	}
}

func levelForStatus(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
