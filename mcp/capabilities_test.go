package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCapabilities_SamplingEncodesAsEmptyObject(t *testing.T) {
	data, err := json.Marshal(ClientCapabilities{Sampling: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sampling":{}}`, string(data))
}

func TestClientCapabilities_FalseFlagsAreAbsent(t *testing.T) {
	data, err := json.Marshal(ClientCapabilities{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}

func TestClientCapabilities_RoundTrip(t *testing.T) {
	original := ClientCapabilities{
		Roots:    &RootsCapability{ListChanged: true},
		Sampling: true,
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var parsed ClientCapabilities
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, original, parsed)
}

func TestClientCapabilities_SamplingAbsentMeansFalse(t *testing.T) {
	var caps ClientCapabilities
	require.NoError(t, json.Unmarshal([]byte(`{"roots":{"listChanged":true}}`), &caps))
	assert.False(t, caps.Sampling)
	require.NotNil(t, caps.Roots)
	assert.True(t, caps.Roots.ListChanged)
}

func TestClientCapabilities_NonEmptySamplingObjectIsFalse(t *testing.T) {
	var caps ClientCapabilities
	require.NoError(t, json.Unmarshal([]byte(`{"sampling":{"extra":1}}`), &caps))
	assert.False(t, caps.Sampling)
}

func TestServerCapabilities_RoundTrip(t *testing.T) {
	original := ServerCapabilities{
		Logging:     true,
		Completions: true,
		Prompts:     &PromptsCapability{ListChanged: true},
		Resources:   &ResourcesCapability{Subscribe: true},
		Tools:       &ToolsCapability{},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var parsed ServerCapabilities
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, original, parsed)
}

func TestServerCapabilities_WireShape(t *testing.T) {
	data, err := json.Marshal(ServerCapabilities{Logging: true, Tools: &ToolsCapability{ListChanged: true}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"logging":{},"tools":{"listChanged":true}}`, string(data))
}

func TestServerCapabilities_ParsesEverythingServerShape(t *testing.T) {
	wire := `{"logging":{},"prompts":{"listChanged":true},"resources":{"subscribe":true,"listChanged":true},"tools":{"listChanged":true}}`

	var caps ServerCapabilities
	require.NoError(t, json.Unmarshal([]byte(wire), &caps))
	assert.True(t, caps.Logging)
	assert.False(t, caps.Completions)
	require.NotNil(t, caps.Resources)
	assert.True(t, caps.Resources.Subscribe)
	require.NotNil(t, caps.Tools)
	assert.True(t, caps.Tools.ListChanged)
}
