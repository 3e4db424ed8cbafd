package response

import "github.com/gin-gonic/gin"

// Machine-readable short codes carried next to the human message.
const (
	CodeValidation      = "validation"
	CodeNotFound        = "not-found"
	CodePaymentRequired = "payment-required"
	CodeAlreadyPaid     = "already-paid"
	CodeGenerationError = "generation-error"
	CodeStorageError    = "storage-error"
	CodeInternal        = "internal"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Success: true,
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus int, code, message string) {
	c.JSON(httpStatus, APIResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}
