package mcp

// Resource describes something the server can read for the client.
type Resource struct {
	URI         string       `json:"uri"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	MimeType    string       `json:"mimeType,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`

	// Size of the raw contents in bytes, if known.
	Size int64 `json:"size,omitempty"`
}

// ResourceTemplate describes a parameterized resource via a URI
// template.
type ResourceTemplate struct {
	URITemplate string       `json:"uriTemplate"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	MimeType    string       `json:"mimeType,omitempty"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

// ListResourcesParams asks the server for its resource list.
type ListResourcesParams struct {
	Meta   *RequestMeta `json:"_meta,omitempty"`
	Cursor string       `json:"cursor,omitempty"`
}

// ListResourcesResult is the server's resource list reply.
type ListResourcesResult struct {
	Meta       Meta       `json:"_meta,omitempty"`
	NextCursor string     `json:"nextCursor,omitempty"`
	Resources  []Resource `json:"resources"`
}

// ListResourceTemplatesParams asks for the resource template list.
type ListResourceTemplatesParams struct {
	Meta   *RequestMeta `json:"_meta,omitempty"`
	Cursor string       `json:"cursor,omitempty"`
}

// ListResourceTemplatesResult is the template list reply.
type ListResourceTemplatesResult struct {
	Meta              Meta               `json:"_meta,omitempty"`
	NextCursor        string             `json:"nextCursor,omitempty"`
	ResourceTemplates []ResourceTemplate `json:"resourceTemplates"`
}

// ReadResourceParams reads one resource by URI. The URI can use any
// protocol; interpretation is up to the server.
type ReadResourceParams struct {
	Meta *RequestMeta `json:"_meta,omitempty"`
	URI  string       `json:"uri"`
}

// ReadResourceResult is the server's reply to resources/read.
type ReadResourceResult struct {
	Meta     Meta               `json:"_meta,omitempty"`
	Contents []ResourceContents `json:"contents"`
}

// SubscribeParams requests resources/updated notifications for a URI.
type SubscribeParams struct {
	Meta *RequestMeta `json:"_meta,omitempty"`
	URI  string       `json:"uri"`
}

// UnsubscribeParams cancels a previous subscription.
type UnsubscribeParams struct {
	Meta *RequestMeta `json:"_meta,omitempty"`
	URI  string       `json:"uri"`
}
