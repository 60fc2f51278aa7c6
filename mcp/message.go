// Package mcp defines the Model Context Protocol wire model: the
// JSON-RPC 2.0 message variants, the typed method catalog, and the
// parameter/result shapes exchanged between client and server.
package mcp

import (
	"bytes"
	"encoding/json"
)

// JSONRPCVersion is the version stamped on every outbound frame.
const JSONRPCVersion = "2.0"

// Message is one of the four protocol message variants: *Request,
// *Notification, *Response, or *ErrorReply.
type Message interface {
	message()
}

// Request is a message that expects a reply, correlated by id.
type Request struct {
	ID     RequestID
	Method string
	Params json.RawMessage
}

// Notification is a method invocation with no reply expected.
type Notification struct {
	Method string
	Params json.RawMessage
}

// Response is a successful reply to a request.
type Response struct {
	ID     RequestID
	Result json.RawMessage
}

// ErrorReply is an error reply to a request.
type ErrorReply struct {
	ID  RequestID
	Err ErrorObject
}

// ErrorObject is the JSON-RPC error payload.
type ErrorObject struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *ErrorObject) Error() string {
	return e.Message
}

func (*Request) message()      {}
func (*Notification) message() {}
func (*Response) message()     {}
func (*ErrorReply) message()   {}

// wireMessage is the generic object form used for encoding. Params are
// omitted when absent (never emitted as null).
type wireMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *RequestID      `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r *Request) MarshalJSON() ([]byte, error) {
	id := r.ID
	return json.Marshal(wireMessage{
		JSONRPC: JSONRPCVersion,
		ID:      &id,
		Method:  r.Method,
		Params:  r.Params,
	})
}

// MarshalJSON implements json.Marshaler.
func (n *Notification) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMessage{
		JSONRPC: JSONRPCVersion,
		Method:  n.Method,
		Params:  n.Params,
	})
}

// MarshalJSON implements json.Marshaler. A nil result marshals as an
// empty object so the result key is always present on success replies.
func (r *Response) MarshalJSON() ([]byte, error) {
	result := r.Result
	if result == nil {
		result = json.RawMessage("{}")
	}
	id := r.ID
	return json.Marshal(wireMessage{
		JSONRPC: JSONRPCVersion,
		ID:      &id,
		Result:  result,
	})
}

// MarshalJSON implements json.Marshaler.
func (e *ErrorReply) MarshalJSON() ([]byte, error) {
	id := e.ID
	errObj := e.Err
	return json.Marshal(wireMessage{
		JSONRPC: JSONRPCVersion,
		ID:      &id,
		Error:   &errObj,
	})
}

// EncodeMessage serializes any message variant to a single-line JSON
// frame suitable for newline-delimited transports.
func EncodeMessage(m Message) ([]byte, error) {
	return json.Marshal(m)
}

// ParseMessage decodes an inbound JSON frame into the matching message
// variant. The variant is chosen by key presence, in order:
//
//  1. not an object -> ErrNotAnObject
//  2. has "result"  -> Response (rejected if "error" is also present)
//  3. has "error"   -> ErrorReply
//  4. has "method"  -> Request when a non-null "id" is present,
//     Notification otherwise
//  5. none of these -> InvalidStructureError
func ParseMessage(data []byte) (Message, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		var probe any
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return nil, &DecodeError{TypeName: "Message", Err: err}
		}
		return nil, ErrNotAnObject
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, &DecodeError{TypeName: "Message", Err: err}
	}

	_, hasResult := obj["result"]
	_, hasError := obj["error"]
	_, hasMethod := obj["method"]

	switch {
	case hasResult:
		if hasError {
			return nil, &DecodeError{
				TypeName: "Response",
				Err:      &InvalidStructureError{Reason: "message carries both result and error"},
			}
		}
		return parseResponse(obj)

	case hasError:
		return parseErrorReply(obj)

	case hasMethod:
		return parseRequestOrNotification(obj)

	default:
		return nil, &InvalidStructureError{Reason: "missing result, error, or method field"}
	}
}

func parseResponse(obj map[string]json.RawMessage) (Message, error) {
	var id RequestID
	if raw, ok := obj["id"]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, &DecodeError{TypeName: "Response", Err: err}
		}
	}
	return &Response{ID: id, Result: obj["result"]}, nil
}

func parseErrorReply(obj map[string]json.RawMessage) (Message, error) {
	var id RequestID
	if raw, ok := obj["id"]; ok {
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, &DecodeError{TypeName: "ErrorReply", Err: err}
		}
	}
	var errObj ErrorObject
	if err := json.Unmarshal(obj["error"], &errObj); err != nil {
		return nil, &DecodeError{TypeName: "ErrorReply", Err: err}
	}
	return &ErrorReply{ID: id, Err: errObj}, nil
}

func parseRequestOrNotification(obj map[string]json.RawMessage) (Message, error) {
	var method string
	if err := json.Unmarshal(obj["method"], &method); err != nil {
		return nil, &DecodeError{TypeName: "Request", Err: err}
	}

	params := obj["params"]

	// A request must carry a non-null id; a null or absent id makes
	// this a notification.
	if raw, ok := obj["id"]; ok && string(bytes.TrimSpace(raw)) != "null" {
		var id RequestID
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, &DecodeError{TypeName: "Request", Err: err}
		}
		return &Request{ID: id, Method: method, Params: params}, nil
	}
	return &Notification{Method: method, Params: params}, nil
}

// MessageID returns the id carried by the message, if any. Notifications
// have none.
func MessageID(m Message) (RequestID, bool) {
	switch v := m.(type) {
	case *Request:
		return v.ID, true
	case *Response:
		return v.ID, true
	case *ErrorReply:
		return v.ID, true
	default:
		return RequestID{}, false
	}
}

// VariantName names the message variant for diagnostics.
func VariantName(m Message) string {
	switch m.(type) {
	case *Request:
		return "Request"
	case *Notification:
		return "Notification"
	case *Response:
		return "Response"
	case *ErrorReply:
		return "ErrorReply"
	default:
		return "unknown"
	}
}
