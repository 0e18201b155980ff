package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/logger"
)

// ErrorHandler logs errors attached with c.Error and answers for handlers
// that returned without writing. Bind errors become 400, anything else 500.
func ErrorHandler() gin.HandlerFunc {
	log := logger.Component("http")

	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		log.Error().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Strs("errors", c.Errors.Errors()).
			Msg("Request failed")

		if c.Writer.Written() {
			return
		}
		if c.Errors.Last().IsType(gin.ErrorTypeBind) {
			abortWithKey(c, http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}
		abortWithKey(c, http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError)
	}
}
