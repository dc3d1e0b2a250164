// Package response defines the uniform HTTP response envelope.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Body is the envelope every handler writes.
type Body struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Success writes a 200 with data.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Code: 0, Data: data})
}

// Error writes a 500 with a message.
func Error(c *gin.Context, message string) {
	ErrorWithStatus(c, http.StatusInternalServerError, message)
}

// ErrorWithStatus writes the given HTTP status with a message.
func ErrorWithStatus(c *gin.Context, status int, message string) {
	c.JSON(status, Body{Code: status, Message: message})
}
