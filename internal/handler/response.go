package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/alumnitrack/alumni-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// JSON writes the success envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, NewSuccessResponse(data))
}

// Error writes the error envelope, honoring AppError status codes even when
// the error arrives wrapped. The error is also attached to the context so the
// error middleware can log it with the trace id.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	status := http.StatusInternalServerError
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		status = appErr.StatusCode()
	}
	c.JSON(status, NewErrorResponse(err.Error()))
}
