package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the wire shape every endpoint responds with. Success is
// derived from the status code, never set independently.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func Success(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < http.StatusBadRequest,
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Envelope{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}

// AbortError is Error for middleware, stopping the handler chain.
func AbortError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}
