package mcp

// Root is a client-declared workspace entry exposed to the server.
// The URI must use the file scheme.
type Root struct {
	URI  string `json:"uri"`
	Name string `json:"name,omitempty"`
}

// ListRootsParams is the server's request for the client's roots.
type ListRootsParams struct {
	Meta *RequestMeta `json:"_meta,omitempty"`
}

// ListRootsResult is the client's roots reply.
type ListRootsResult struct {
	Meta  Meta   `json:"_meta,omitempty"`
	Roots []Root `json:"roots"`
}

// ListChangedParams is the (empty) payload shared by the list-changed
// notifications for prompts, resources, tools, and roots.
type ListChangedParams struct {
	Meta Meta `json:"_meta,omitempty"`
}

// ResourceUpdatedParams is the payload of
// notifications/resources/updated. The URI may be a sub-resource of
// the subscribed one.
type ResourceUpdatedParams struct {
	Meta Meta   `json:"_meta,omitempty"`
	URI  string `json:"uri"`
}
