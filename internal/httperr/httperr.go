package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// FromError writes a business error with its mapped status. Anything else is
// logged and reported as a storage failure.
func FromError(c *gin.Context, err error) {
	if be, ok := AsBusiness(err); ok {
		Write(c, StatusFor(be.Code), be.Code, MessageFor(be))
		return
	}

	log.Error().
		Err(err).
		Str("path", c.FullPath()).
		Str("request_id", c.GetString("requestID")).
		Msg("request failed")

	Internal(c, CodeStorage, defaultMessages[CodeStorage])
}
