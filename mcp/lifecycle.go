package mcp

// LatestProtocolVersion is the protocol revision this library speaks.
// There is no negotiation fallback: a server that wants a different
// version is not supported.
const LatestProtocolVersion = "2025-03-26"

// Implementation names an MCP implementation, exchanged during the
// initialize handshake.
type Implementation struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeParams is sent by the client when it first connects.
type InitializeParams struct {
	Meta            *RequestMeta       `json:"_meta,omitempty"`
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ClientCapabilities `json:"capabilities"`
	ClientInfo      Implementation     `json:"clientInfo"`
}

// InitializeResult is the server's reply to initialize. If the client
// cannot support the returned protocol version it must disconnect.
type InitializeResult struct {
	Meta            Meta               `json:"_meta,omitempty"`
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      Implementation     `json:"serverInfo"`

	// Instructions describing how to use the server, suitable for a
	// system prompt.
	Instructions string `json:"instructions,omitempty"`
}

// InitializedParams is the (empty) payload of
// notifications/initialized, sent by the client after the handshake.
type InitializedParams struct {
	Meta Meta `json:"_meta,omitempty"`
}

// PingParams is the (empty) payload of ping, issued by either side to
// check the other is alive.
type PingParams struct {
	Meta *RequestMeta `json:"_meta,omitempty"`
}
