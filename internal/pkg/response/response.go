// Package response renders the JSON envelope every endpoint speaks:
// {"success": true, "data": ...} on the happy path and
// {"success": false, "error": {"code", "message"}} otherwise. Error
// codes are stable UPPER_SNAKE strings the frontend switches on.
package response

import "github.com/gin-gonic/gin"

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, envelope{
		Success: true,
		Data:    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, envelope{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	})
}

// ErrorWithDetails carries a structured payload alongside the code, used
// for per-field validation errors.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details interface{}) {
	c.JSON(statusCode, envelope{
		Success: false,
		Error:   &apiError{Code: code, Message: message, Details: details},
	})
}
