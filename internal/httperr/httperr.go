package httperr

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Kind    Kind   `json:"kind,omitempty"`
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

var kindMessages = map[Kind]string{
	KindNotFound:     "Referenced entity does not exist.",
	KindForbidden:    "Not allowed for this actor.",
	KindConflict:     "Request conflicts with the current state.",
	KindInvalidState: "Entity is in a terminal state.",
	KindValidation:   "Invalid request.",
}

// FromError writes a business error as a 400 carrying its kind and code.
// Anything else is logged and answered as a 500.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    be.Code,
			Kind:    be.Kind,
			Message: kindMessages[be.Kind],
		})
		return
	}

	log.Printf("request %s %s failed: %v", c.Request.Method, c.FullPath(), err)
	Internal(c, "internal_error", "Unexpected server error.")
}
