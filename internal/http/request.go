package http

import (
	"github.com/gin-gonic/gin"
)

// Validator is implemented by request bodies with rules beyond binding tags.
type Validator interface {
	Validate() error
}

// DecodeRequest binds the JSON body into a new T and runs its Validate
// method when it has one.
func DecodeRequest[T any](c *gin.Context) (*T, error) {
	req := new(T)
	if err := c.ShouldBindJSON(req); err != nil {
		return nil, err
	}
	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}
