package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent_TextWireShape(t *testing.T) {
	data, err := json.Marshal(TextContent("hello"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"text","text":"hello"}`, string(data))
}

func TestContent_ImageBase64(t *testing.T) {
	data, err := json.Marshal(ImageContent([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png"))
	require.NoError(t, err)
	// encoding/json base64-encodes []byte.
	assert.JSONEq(t, `{"type":"image","data":"iVBORw==","mimeType":"image/png"}`, string(data))

	var parsed Content
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, parsed.Data)
}

func TestContent_AsText(t *testing.T) {
	text, ok := TextContent("body").AsText()
	assert.True(t, ok)
	assert.Equal(t, "body", text)

	_, ok = AudioContent(nil, "audio/wav").AsText()
	assert.False(t, ok)
}

func TestContent_EmbeddedResourceRoundTrip(t *testing.T) {
	original := ResourceContent(ResourceContents{
		URI:      "file:///notes.txt",
		MimeType: "text/plain",
		Text:     "contents",
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var parsed Content
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, original, parsed)
}

func TestContent_AnnotationsRoundTrip(t *testing.T) {
	priority := 0.8
	original := TextContent("important").WithAnnotations(Annotations{
		Audience: []Role{RoleUser, RoleAssistant},
		Priority: &priority,
	})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var parsed Content
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, original, parsed)
}

func TestCallToolParams_Builder(t *testing.T) {
	params := NewCallToolParams("add").
		WithArgument("a", 1).
		WithArgument("b", 2.5)

	data, err := json.Marshal(params)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"add","arguments":{"a":1,"b":2.5}}`, string(data))
}

func TestCreateMessageResult_NewAssistantText(t *testing.T) {
	result := NewAssistantText("answer", "mock-model-xp")

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"role":"assistant","content":{"type":"text","text":"answer"},"model":"mock-model-xp"}`,
		string(data))
}

func TestProgressToken_KindPreserved(t *testing.T) {
	numData, err := json.Marshal(NumberToken(5))
	require.NoError(t, err)
	assert.Equal(t, "5", string(numData))

	strData, err := json.Marshal(StringToken("prog-abc"))
	require.NoError(t, err)
	assert.Equal(t, `"prog-abc"`, string(strData))

	var token ProgressToken
	require.NoError(t, json.Unmarshal([]byte(`"prog-abc"`), &token))
	assert.Equal(t, StringToken("prog-abc"), token)
}
