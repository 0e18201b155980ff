package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
)

// Timeout puts a deadline on the request context. Handlers run on the
// request goroutine and are expected to honor ctx; one that returns after
// the deadline without choosing a status gets a 504.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		if !c.Writer.Written() && c.Writer.Status() == http.StatusOK {
			abortWithKey(c, http.StatusGatewayTimeout, dto.ErrCodeTimeout, i18n.ErrKeyTimeout)
		}
	}
}
