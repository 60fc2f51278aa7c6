package mcp

// Completion reference types.
const (
	RefTypePrompt   = "ref/prompt"
	RefTypeResource = "ref/resource"
)

// CompletionReference identifies the prompt or resource template the
// completion is for. Name is set for prompt refs, URI for resource
// refs.
type CompletionReference struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	URI  string `json:"uri,omitempty"`
}

// PromptRef references a prompt by name.
func PromptRef(name string) CompletionReference {
	return CompletionReference{Type: RefTypePrompt, Name: name}
}

// ResourceRef references a resource or template by URI.
func ResourceRef(uri string) CompletionReference {
	return CompletionReference{Type: RefTypeResource, URI: uri}
}

// CompletionArgument is the argument being completed and the partial
// value to match against.
type CompletionArgument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CompleteParams asks the server for completion options.
type CompleteParams struct {
	Meta     *RequestMeta        `json:"_meta,omitempty"`
	Ref      CompletionReference `json:"ref"`
	Argument CompletionArgument  `json:"argument"`
}

// CompleteResult is the server's completion reply.
type CompleteResult struct {
	Meta       Meta           `json:"_meta,omitempty"`
	Completion CompletionData `json:"completion"`
}

// CompletionData holds the completion values. Values must not exceed
// 100 items; Total may exceed what was actually sent.
type CompletionData struct {
	Values  []string `json:"values"`
	Total   *int64   `json:"total,omitempty"`
	HasMore bool     `json:"hasMore,omitempty"`
}
