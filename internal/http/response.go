package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/flock-service/internal/domain/dto"
	"github.com/guttosm/flock-service/internal/i18n"
	"github.com/guttosm/flock-service/internal/middleware"
)

// Envelopes are pooled; gin serializes synchronously so they can be reused
// as soon as the write returns.
var (
	successPool = sync.Pool{New: func() interface{} { return new(dto.SuccessResponse) }}
	errorPool   = sync.Pool{New: func() interface{} { return new(dto.ErrorResponse) }}
)

// ResponseBuilder writes the API's success and error envelopes.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder returns a builder for c.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success wraps data in the success envelope.
func (b *ResponseBuilder) Success(status int, data interface{}) {
	resp := successPool.Get().(*dto.SuccessResponse)
	*resp = dto.SuccessResponse{
		Data:      data,
		RequestID: middleware.GetRequestID(b.c),
		Timestamp: time.Now().UTC(),
	}

	b.c.JSON(status, resp)

	*resp = dto.SuccessResponse{}
	successPool.Put(resp)
}

func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// NoContent sends a 204 with an empty body.
func (b *ResponseBuilder) NoContent() {
	b.c.Status(http.StatusNoContent)
}

// Error aborts with status and the message for messageKey in the caller's locale.
func (b *ResponseBuilder) Error(status int, messageKey string, err error) {
	message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	b.ErrorWithMessage(status, message, err)
}

// ErrorWithMessage aborts with status and a literal message. err, when set,
// is attached to the context for the error and request loggers.
func (b *ResponseBuilder) ErrorWithMessage(status int, message string, err error) {
	b.abort(status, message, nil, err)
}

func (b *ResponseBuilder) abort(status int, message string, details map[string]string, err error) {
	if err != nil {
		_ = b.c.Error(err)
	}

	resp := errorPool.Get().(*dto.ErrorResponse)
	*resp = dto.NewError(dto.ErrCodeFromStatus(status), message).
		WithRequestID(middleware.GetRequestID(b.c)).
		WithDetails(details)

	b.c.AbortWithStatusJSON(status, resp)

	*resp = dto.ErrorResponse{}
	errorPool.Put(resp)
}
