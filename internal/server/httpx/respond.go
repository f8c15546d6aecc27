// Package httpx maps application errors onto HTTP/JSON responses.
package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"bikemarket/backend/internal/apperr"
)

// Message is the error body sent to clients: a safe message, nothing else.
type Message struct {
	Message string `json:"message"`
}

// Error writes err as a JSON error response. The status code comes from the
// error kind; untagged errors fail closed as 500 with a generic message.
// Internal causes are logged via the request-scoped logger, never sent.
func Error(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindInternal {
		zerolog.Ctx(c.Request.Context()).Error().Err(e.Cause).
			Str("path", c.FullPath()).Msg(e.Message)
	}
	c.AbortWithStatusJSON(apperr.HTTPStatus(e.Kind), Message{Message: e.Message})
}
