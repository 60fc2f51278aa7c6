package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when an operation is attempted
	// before Connect.
	ErrNotConnected = errors.New("client: not connected")

	// ErrAlreadyConnected is returned from a second Connect;
	// reconnect is not supported, start a new client instead.
	ErrAlreadyConnected = errors.New("client: already connected (reconnect is not supported)")

	// ErrTransportClosed is returned to waiters when the transport
	// terminates while their request is still pending, and from any
	// operation on a closed client.
	ErrTransportClosed = errors.New("client: transport closed")
)

// ProtocolError is a JSON-RPC error reply from the server to a request
// this client sent.
type ProtocolError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("client: server error %d: %s", e.Code, e.Message)
}
