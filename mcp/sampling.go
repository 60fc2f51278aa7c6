package mcp

import "encoding/json"

// ModelHint is a hint for model selection. Interpretation of the name
// is up to the client.
type ModelHint struct {
	Name string `json:"name,omitempty"`
}

// ModelPreferences are the server's advisory preferences for model
// selection during sampling. The client may ignore them. Priorities
// range over [0, 1].
type ModelPreferences struct {
	Hints                []ModelHint `json:"hints,omitempty"`
	CostPriority         *float64    `json:"costPriority,omitempty"`
	SpeedPriority        *float64    `json:"speedPriority,omitempty"`
	IntelligencePriority *float64    `json:"intelligencePriority,omitempty"`
}

// IncludeContext selects which servers' context to attach to the
// prompt.
type IncludeContext string

const (
	IncludeContextNone       IncludeContext = "none"
	IncludeContextThisServer IncludeContext = "thisServer"
	IncludeContextAllServers IncludeContext = "allServers"
)

// SamplingMessage is one message issued to or received from an LLM.
// Content is text, image, or audio (never an embedded resource).
type SamplingMessage struct {
	Role    Role    `json:"role"`
	Content Content `json:"content"`
}

// CreateMessageParams is the server's request for the client to sample
// an LLM.
type CreateMessageParams struct {
	Meta             *RequestMeta      `json:"_meta,omitempty"`
	Messages         []SamplingMessage `json:"messages"`
	ModelPreferences *ModelPreferences `json:"modelPreferences,omitempty"`
	SystemPrompt     string            `json:"systemPrompt,omitempty"`
	IncludeContext   IncludeContext    `json:"includeContext,omitempty"`
	Temperature      *float64          `json:"temperature,omitempty"`
	MaxTokens        int64             `json:"maxTokens"`
	StopSequences    []string          `json:"stopSequences,omitempty"`

	// Provider-specific metadata passed through to the LLM.
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// CreateMessageResult is the client's reply to sampling/createMessage:
// the produced message plus the model that produced it.
type CreateMessageResult struct {
	Meta       Meta    `json:"_meta,omitempty"`
	Role       Role    `json:"role"`
	Content    Content `json:"content"`
	Model      string  `json:"model"`
	StopReason string  `json:"stopReason,omitempty"`
}

// NewAssistantText returns an assistant text result attributed to the
// given model.
func NewAssistantText(text, model string) *CreateMessageResult {
	return &CreateMessageResult{
		Role:    RoleAssistant,
		Content: TextContent(text),
		Model:   model,
	}
}
