package response

import "github.com/gin-gonic/gin"

// Envelope is the wire shape every endpoint answers with: either data or an
// error, never both.
type Envelope struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError pairs a stable machine-readable code with a human message.
// Details holds per-field validation problems when there are any.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, Envelope{Error: &APIError{Code: code, Message: message}})
}

func ErrorWithDetails(c *gin.Context, status int, code, message string, details any) {
	c.JSON(status, Envelope{Error: &APIError{Code: code, Message: message, Details: details}})
}
