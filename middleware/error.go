package middleware

import (
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors attached to the gin context into JSON
// responses when no handler has written one yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			utils.HandleError(c, err.Err)
			return
		}
	}
}
