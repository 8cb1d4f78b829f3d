package utils

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global structured logger.
var Logger zerolog.Logger

// InitLogger configures the global logger. Debug level is enabled when the
// server runs in debug mode.
func InitLogger() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	Logger = zerolog.New(output).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(zerolog.InfoLevel)

	if os.Getenv("GIN_MODE") == "debug" {
		Logger = Logger.Level(zerolog.DebugLevel)
	}

	Logger.Info().Msg("logger initialized")
}

// LogApiRequest records an incoming API request. The Authorization header is
// truncated so tokens never land in the logs.
func LogApiRequest(method, url string, params, body interface{}, headers map[string]string) {
	if headers != nil && headers["Authorization"] != "" {
		if len(headers["Authorization"]) > 15 {
			headers["Authorization"] = headers["Authorization"][:15] + "..."
		}
	}

	Logger.Info().
		Str("method", method).
		Str("url", url).
		Interface("params", params).
		Interface("body", body).
		Interface("headers", headers).
		Msg("api request")
}

// LogApiResponse records the outcome of an API request. Media payloads are
// skipped to keep the log readable.
func LogApiResponse(method, url string, statusCode int, responseTime time.Duration, responseBody interface{}) {
	event := Logger.Info()
	if statusCode >= 400 {
		event = Logger.Error()
	}
	if strings.Contains(url, "/api/media/") {
		return
	}
	event.
		Str("method", method).
		Str("url", url).
		Int("statusCode", statusCode).
		Dur("responseTime", responseTime).
		Interface("body", responseBody).
		Msg("api response")
}

// LogInfo records an informational message with context fields.
func LogInfo(context map[string]interface{}, message string) {
	Logger.Info().
		Interface("context", context).
		Msg(message)
}

// LogError records an error with context fields.
func LogError(err error, context map[string]interface{}, message string) {
	Logger.Error().
		Err(err).
		Interface("context", context).
		Msg(message)
}

// LogDbOperation records a database operation at debug level.
func LogDbOperation(operation string, collection string, query interface{}, result interface{}) {
	Logger.Debug().
		Str("operation", operation).
		Str("collection", collection).
		Interface("query", query).
		Interface("result", result).
		Msg("db operation")
}
