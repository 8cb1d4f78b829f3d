package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiError is an error that maps directly onto an HTTP response.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError creates an ApiError.
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError reports that a resource does not exist.
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" not found", http.StatusNotFound, "RESOURCE_NOT_FOUND")
}

// CreateUnauthorizedError reports a missing or invalid credential.
func CreateUnauthorizedError() *ApiError {
	return NewApiError("unauthorized", http.StatusUnauthorized, "UNAUTHORIZED")
}

// CreateForbiddenError reports that the actor lacks the required role.
func CreateForbiddenError() *ApiError {
	return NewApiError("insufficient permissions", http.StatusForbidden, "FORBIDDEN")
}

// CreateBadRequestError reports invalid request input.
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, "BAD_REQUEST")
}

// CreateValidationError reports missing or malformed transition input, such
// as an empty rejection reason. Distinct from a state conflict.
func CreateValidationError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, "VALIDATION_ERROR")
}

// CreateStateConflictError reports a transition requested from a status that
// does not allow it.
func CreateStateConflictError(message string) *ApiError {
	return NewApiError(message, http.StatusConflict, "STATE_CONFLICT")
}

// CreateUncertainOperationError reports that an operation finished in an
// unknown state and the client should reload.
func CreateUncertainOperationError() *ApiError {
	return NewApiError(
		"operation outcome uncertain, reload to see the latest state",
		http.StatusInternalServerError,
		"UNCERTAIN_OPERATION",
	)
}

// HandleError logs err and writes the matching JSON response.
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	errorMessage := err.Error()
	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, errorMessage)

	if apiErr, ok := err.(*ApiError); ok {
		response := gin.H{"success": false, "error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   errorMessage,
	})
}

// SuccessResponse writes the standard success envelope.
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse writes the standard error envelope.
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
