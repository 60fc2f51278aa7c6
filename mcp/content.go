package mcp

// Role is the sender or recipient of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Annotations inform the client how an object is used or displayed.
type Annotations struct {
	// Audience lists who the content is intended for; it can name
	// multiple roles.
	Audience []Role `json:"audience,omitempty"`

	// Priority ranges over [0, 1]: 1 means effectively required, 0
	// entirely optional.
	Priority *float64 `json:"priority,omitempty"`
}

// Content type discriminators.
const (
	ContentTypeText     = "text"
	ContentTypeImage    = "image"
	ContentTypeAudio    = "audio"
	ContentTypeResource = "resource"
)

// Content is one item of heterogeneous message content: text, image,
// audio, or an embedded resource. The Type field discriminates; only
// the fields belonging to that type are populated. Binary data is
// base64 on the wire (encoding/json does this for []byte).
type Content struct {
	Type string `json:"type"`

	// Text content.
	Text string `json:"text,omitempty"`

	// Image or audio content.
	Data     []byte `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`

	// Embedded resource content.
	Resource *ResourceContents `json:"resource,omitempty"`

	Annotations *Annotations `json:"annotations,omitempty"`
}

// TextContent returns a text content item.
func TextContent(text string) Content {
	return Content{Type: ContentTypeText, Text: text}
}

// ImageContent returns an image content item.
func ImageContent(data []byte, mimeType string) Content {
	return Content{Type: ContentTypeImage, Data: data, MimeType: mimeType}
}

// AudioContent returns an audio content item.
func AudioContent(data []byte, mimeType string) Content {
	return Content{Type: ContentTypeAudio, Data: data, MimeType: mimeType}
}

// ResourceContent returns an embedded resource content item.
func ResourceContent(resource ResourceContents) Content {
	return Content{Type: ContentTypeResource, Resource: &resource}
}

// AsText returns the text body when the item is text content.
func (c Content) AsText() (string, bool) {
	if c.Type != ContentTypeText {
		return "", false
	}
	return c.Text, true
}

// WithAnnotations returns a copy carrying the given annotations.
func (c Content) WithAnnotations(a Annotations) Content {
	c.Annotations = &a
	return c
}

// ResourceContents is the contents of a resource: either text or a
// binary blob, identified by URI. Exactly one of Text or Blob is set.
type ResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
	Blob     []byte `json:"blob,omitempty"`
}
