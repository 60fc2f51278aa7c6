package mcp

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// RequestID is a JSON-RPC request identifier: a string or a signed
// 64-bit integer. The kind is preserved across marshal/unmarshal so a
// numeric id is never echoed back as a string (and vice versa).
//
// The zero value is invalid and marshals as null; notifications carry
// no id at all.
type RequestID struct {
	str   string
	num   int64
	isNum bool
	valid bool
}

// StringID returns a string-kinded request id.
func StringID(s string) RequestID {
	return RequestID{str: s, valid: true}
}

// NumberID returns a number-kinded request id.
func NumberID(n int64) RequestID {
	return RequestID{num: n, isNum: true, valid: true}
}

// NewRequestID generates a fresh client-originated id. UUIDv7 gives a
// time-ordered, sortable token that is unique within (and across)
// connections.
func NewRequestID() RequestID {
	return StringID(uuid.Must(uuid.NewV7()).String())
}

// IsValid reports whether the id carries a value.
func (id RequestID) IsValid() bool { return id.valid }

// IsNumber reports whether the id is number-kinded.
func (id RequestID) IsNumber() bool { return id.isNum }

// String renders the id for logs and error messages.
func (id RequestID) String() string {
	switch {
	case !id.valid:
		return "<none>"
	case id.isNum:
		return strconv.FormatInt(id.num, 10)
	default:
		return id.str
	}
}

// MarshalJSON implements json.Marshaler.
func (id RequestID) MarshalJSON() ([]byte, error) {
	switch {
	case !id.valid:
		return []byte("null"), nil
	case id.isNum:
		return strconv.AppendInt(nil, id.num, 10), nil
	default:
		return json.Marshal(id.str)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *RequestID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = RequestID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("request id must be a string or an integer: %w", err)
	}
	*id = NumberID(n)
	return nil
}
