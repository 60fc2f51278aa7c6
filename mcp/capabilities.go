package mcp

import (
	"bytes"
	"encoding/json"
)

// Capability flags use presence semantics on the wire: a supported
// capability appears as an empty object {}, an unsupported one is
// absent. The boolean fields below cannot use the default encoder, so
// both capability structs carry hand-written JSON codecs.

// ClientCapabilities advertises what the client supports.
type ClientCapabilities struct {
	// Experimental, non-standard capabilities.
	Experimental map[string]any

	// Present if the client supports listing roots.
	Roots *RootsCapability

	// True if the client supports LLM sampling; encoded as {}.
	Sampling bool
}

// RootsCapability describes the client's roots support.
type RootsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ServerCapabilities advertises what the server supports.
type ServerCapabilities struct {
	// Experimental, non-standard capabilities.
	Experimental map[string]any

	// True if the server can send log message notifications; encoded
	// as {}.
	Logging bool

	// True if the server supports argument autocompletion; encoded
	// as {}.
	Completions bool

	// Present if the server offers prompt templates.
	Prompts *PromptsCapability

	// Present if the server offers readable resources.
	Resources *ResourcesCapability

	// Present if the server offers callable tools.
	Tools *ToolsCapability
}

// PromptsCapability describes the server's prompt support.
type PromptsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// ResourcesCapability describes the server's resource support.
type ResourcesCapability struct {
	Subscribe   bool `json:"subscribe,omitempty"`
	ListChanged bool `json:"listChanged,omitempty"`
}

// ToolsCapability describes the server's tool support.
type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

var emptyObject = json.RawMessage("{}")

// isEmptyObject reports whether raw is the JSON object {} (ignoring
// whitespace).
func isEmptyObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) < 2 || trimmed[0] != '{' {
		return false
	}
	inner := bytes.TrimSpace(trimmed[1 : len(trimmed)-1])
	return trimmed[len(trimmed)-1] == '}' && len(inner) == 0
}

// MarshalJSON implements json.Marshaler.
func (c ClientCapabilities) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any)
	if c.Experimental != nil {
		obj["experimental"] = c.Experimental
	}
	if c.Roots != nil {
		obj["roots"] = c.Roots
	}
	if c.Sampling {
		obj["sampling"] = emptyObject
	}
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler. A sampling value that is
// anything but the empty object counts as unsupported.
func (c *ClientCapabilities) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = ClientCapabilities{}
	for key, raw := range obj {
		switch key {
		case "experimental":
			if err := json.Unmarshal(raw, &c.Experimental); err != nil {
				return err
			}
		case "roots":
			c.Roots = &RootsCapability{}
			if err := json.Unmarshal(raw, c.Roots); err != nil {
				return err
			}
		case "sampling":
			c.Sampling = isEmptyObject(raw)
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s ServerCapabilities) MarshalJSON() ([]byte, error) {
	obj := make(map[string]any)
	if s.Experimental != nil {
		obj["experimental"] = s.Experimental
	}
	if s.Logging {
		obj["logging"] = emptyObject
	}
	if s.Completions {
		obj["completions"] = emptyObject
	}
	if s.Prompts != nil {
		obj["prompts"] = s.Prompts
	}
	if s.Resources != nil {
		obj["resources"] = s.Resources
	}
	if s.Tools != nil {
		obj["tools"] = s.Tools
	}
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *ServerCapabilities) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*s = ServerCapabilities{}
	for key, raw := range obj {
		switch key {
		case "experimental":
			if err := json.Unmarshal(raw, &s.Experimental); err != nil {
				return err
			}
		case "logging":
			s.Logging = isEmptyObject(raw)
		case "completions":
			s.Completions = isEmptyObject(raw)
		case "prompts":
			s.Prompts = &PromptsCapability{}
			if err := json.Unmarshal(raw, s.Prompts); err != nil {
				return err
			}
		case "resources":
			s.Resources = &ResourcesCapability{}
			if err := json.Unmarshal(raw, s.Resources); err != nil {
				return err
			}
		case "tools":
			s.Tools = &ToolsCapability{}
			if err := json.Unmarshal(raw, s.Tools); err != nil {
				return err
			}
		}
	}
	return nil
}
