package mcp

import (
	"errors"
	"fmt"
)

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// ErrNotAnObject is returned when an inbound frame is valid JSON but
// not a JSON object, so it cannot be any message variant.
var ErrNotAnObject = errors.New("mcp: message is not a JSON object")

// InvalidStructureError is returned when an object matches none of the
// four message variants (no result, error, or method key).
type InvalidStructureError struct {
	Reason string
}

func (e *InvalidStructureError) Error() string {
	return "mcp: invalid message structure: " + e.Reason
}

// DecodeError wraps a JSON decoding failure, naming the shape that was
// being decoded.
type DecodeError struct {
	TypeName string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mcp: decode %s: %v", e.TypeName, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MismatchedError is returned when a message is interpreted as the
// wrong variant, for example treating an error reply as a response.
type MismatchedError struct {
	Actual string
	Target string
}

func (e *MismatchedError) Error() string {
	return fmt.Sprintf("mcp: message is %s, not %s", e.Actual, e.Target)
}
