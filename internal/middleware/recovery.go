package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/logger"
)

// Recovery turns a handler panic into a 500 response and logs the stack.
func Recovery() gin.HandlerFunc {
	log := logger.Component("recovery")

	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			log.Error().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request.Method).
				Str("path", c.FullPath()).
				Interface("panic", recovered).
				Bytes("stack", debug.Stack()).
				Msg("Handler panicked")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			abortWithKey(c, http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError)
		}()
		c.Next()
	}
}
