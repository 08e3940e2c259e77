package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Data      any       `json:"data,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	ErrorWithData(c, code, message, nil)
}

// ErrorWithData writes the standard error body and aborts the handler chain.
func ErrorWithData(c *gin.Context, code int, message string, data any) {
	c.AbortWithStatusJSON(code, ErrorBody{
		Timestamp: time.Now().UTC(),
		Status:    code,
		Error:     http.StatusText(code),
		Message:   message,
		Path:      c.Request.URL.Path,
		Data:      data,
	})
}
