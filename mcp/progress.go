package mcp

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ProgressToken associates progress notifications with the request
// that asked for them. Like RequestID it is a string-or-integer union
// with the kind preserved on the wire.
type ProgressToken struct {
	str   string
	num   int64
	isNum bool
}

// StringToken returns a string-kinded progress token.
func StringToken(s string) ProgressToken {
	return ProgressToken{str: s}
}

// NumberToken returns a number-kinded progress token.
func NumberToken(n int64) ProgressToken {
	return ProgressToken{num: n, isNum: true}
}

// String renders the token for logs.
func (t ProgressToken) String() string {
	if t.isNum {
		return strconv.FormatInt(t.num, 10)
	}
	return t.str
}

// MarshalJSON implements json.Marshaler.
func (t ProgressToken) MarshalJSON() ([]byte, error) {
	if t.isNum {
		return strconv.AppendInt(nil, t.num, 10), nil
	}
	return json.Marshal(t.str)
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *ProgressToken) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = StringToken(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("progress token must be a string or an integer: %w", err)
	}
	*t = NumberToken(n)
	return nil
}

// ProgressParams is the payload of notifications/progress, an
// out-of-band update for a long-running request.
type ProgressParams struct {
	Meta          Meta          `json:"_meta,omitempty"`
	ProgressToken ProgressToken `json:"progressToken"`

	// Progress so far; increases even when the total is unknown.
	Progress int64 `json:"progress"`

	// Total amount of work, if known.
	Total *int64 `json:"total,omitempty"`

	Message string `json:"message,omitempty"`
}

// CancelledParams is the payload of notifications/cancelled, referring
// to an earlier request by id.
type CancelledParams struct {
	Meta      Meta      `json:"_meta,omitempty"`
	RequestID RequestID `json:"requestId"`
	Reason    string    `json:"reason,omitempty"`
}
