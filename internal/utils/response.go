package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/partnerhub/internal/types"
)

// MsgInvalidInput is the message of every field validation failure.
const MsgInvalidInput = "입력값 오류"

func SendSuccess(c *gin.Context, message string, data interface{}) {
	SendStatus(c, http.StatusOK, message, data)
}

func SendCreated(c *gin.Context, message string, data interface{}) {
	SendStatus(c, http.StatusCreated, message, data)
}

func SendStatus(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, types.Envelope[interface{}]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, types.Envelope[interface{}]{
		Success: false,
		Message: message,
	})
}

// SendFieldErrors answers 400 with the field map under data.
func SendFieldErrors(c *gin.Context, fields types.FieldErrors) {
	c.JSON(http.StatusBadRequest, types.Envelope[types.FieldErrors]{
		Success: false,
		Message: MsgInvalidInput,
		Data:    fields,
	})
}

// SendDetail answers with the shape of a framework-level failure: the
// message repeated under data.detail.
func SendDetail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, types.Envelope[gin.H]{
		Success: false,
		Message: detail,
		Data:    gin.H{"detail": detail},
	})
}

func SendValidationError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendUnauthorized(c *gin.Context, message string) {
	SendDetail(c, http.StatusUnauthorized, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendDetail(c, http.StatusNotFound, message)
}

func SendInternalError(c *gin.Context, message string, err error) {
	c.Error(err)
	SendError(c, http.StatusInternalServerError, message)
}
