package mcp

import "encoding/json"

// LoggingLevel is a syslog severity per RFC 5424.
type LoggingLevel string

const (
	LevelDebug     LoggingLevel = "debug"
	LevelInfo      LoggingLevel = "info"
	LevelNotice    LoggingLevel = "notice"
	LevelWarning   LoggingLevel = "warning"
	LevelError     LoggingLevel = "error"
	LevelCritical  LoggingLevel = "critical"
	LevelAlert     LoggingLevel = "alert"
	LevelEmergency LoggingLevel = "emergency"
)

// SetLevelParams asks the server to send log notifications at the
// given level and above.
type SetLevelParams struct {
	Meta  *RequestMeta `json:"_meta,omitempty"`
	Level LoggingLevel `json:"level"`
}

// LoggingMessageParams is the payload of a notifications/message log
// event from the server.
type LoggingMessageParams struct {
	Meta   Meta         `json:"_meta,omitempty"`
	Level  LoggingLevel `json:"level"`
	Logger string       `json:"logger,omitempty"`

	// Data is the logged value: a string or any JSON-serializable
	// shape.
	Data json.RawMessage `json:"data"`
}
