package response

import (
	"github.com/gin-gonic/gin"
)

// Every response body carries a top-level "success" boolean; failures add
// a human-readable "message". Success payload fields are flattened into
// the same object rather than nested under a data key.

// OK sends a successful JSON response, merging payload fields into the
// envelope alongside success:true.
func OK(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// Fail sends an error response using the canned message for code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": GetMessage(code),
	})
}

// FailMessage sends an error response with an explicit message. Used where
// the message carries request-specific detail (validation failures).
func FailMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"message": GetMessage(code),
	})
}
