package mcp

// Prompt is a prompt or prompt template the server offers.
type Prompt struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Arguments   []PromptArgument `json:"arguments,omitempty"`
}

// PromptArgument describes an argument a prompt template accepts.
type PromptArgument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// PromptMessage is a message returned as part of a prompt. Unlike
// sampling messages it may embed resources from the server.
type PromptMessage struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// ListPromptsParams asks the server for its prompt list.
type ListPromptsParams struct {
	Meta   *RequestMeta `json:"_meta,omitempty"`
	Cursor string       `json:"cursor,omitempty"`
}

// ListPromptsResult is the server's prompt list reply.
type ListPromptsResult struct {
	Meta       Meta     `json:"_meta,omitempty"`
	NextCursor string   `json:"nextCursor,omitempty"`
	Prompts    []Prompt `json:"prompts"`
}

// GetPromptParams fetches one prompt, optionally templated with
// arguments.
type GetPromptParams struct {
	Meta      *RequestMeta      `json:"_meta,omitempty"`
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

// NewGetPromptParams returns params for fetching the named prompt.
func NewGetPromptParams(name string) GetPromptParams {
	return GetPromptParams{Name: name}
}

// GetPromptResult is the server's reply to prompts/get.
type GetPromptResult struct {
	Meta        Meta            `json:"_meta,omitempty"`
	Description string          `json:"description,omitempty"`
	Messages    []PromptMessage `json:"messages"`
}
