package middleware

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
)

// Mutating methods are audited.
var loggedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// Paths whose payloads must not be persisted.
var excludedPaths = map[string]bool{
	"/api/auth/login":    true,
	"/api/auth/register": true,
	"/api/auth/validate": true,
	"/api/health":        true,
	"/api/db-status":     true,
}

// OperationLoggerMiddleware persists every mutating API call to the
// operation log collection. Failures to write the log never fail the
// request itself.
func OperationLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldLogOperation(c) {
			c.Next()
			return
		}

		startTime := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		var requestBodyBytes []byte
		if c.Request.Body != nil {
			requestBodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBodyBytes))
		}

		c.Next()

		entry := models.OperationLog{
			Method:     method,
			Path:       path,
			StatusCode: c.Writer.Status(),
			DurationMs: time.Since(startTime).Milliseconds(),
			Request:    truncate(string(requestBodyBytes), 4096),
			CreatedAt:  time.Now(),
		}
		if user, err := utils.GetUser(c); err == nil {
			entry.UserID = user.ID
			entry.Username = user.Username
		}

		go func() {
			collection := repository.Collection(repository.ApiOperationLogsCollection)
			if _, err := collection.InsertOne(repository.GetContext(), entry); err != nil {
				utils.Logger.Error().Err(err).Str("path", path).Msg("failed to write operation log")
			}
		}()
	}
}

// shouldLogOperation filters which requests get audited.
func shouldLogOperation(c *gin.Context) bool {
	if !loggedMethods[c.Request.Method] {
		return false
	}
	return !excludedPaths[c.Request.URL.Path]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
