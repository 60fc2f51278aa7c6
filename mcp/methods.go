package mcp

// Method binds a method name to its parameter shape P and result
// shape R. The binding is consumed at encoding time (stamping the
// method on the outbound frame) and at decoding time (parsing the
// correlated result into R), so a typed send needs no reflection.
type Method[P, R any] struct {
	name string
}

// NewMethod declares a binding for a method outside the built-in
// catalog.
func NewMethod[P, R any](name string) Method[P, R] {
	return Method[P, R]{name: name}
}

// Name returns the wire method string.
func (m Method[P, R]) Name() string { return m.name }

// NotificationMethod binds a notification name to its parameter shape.
// Notifications have no result.
type NotificationMethod[P any] struct {
	name string
}

// NewNotificationMethod declares a notification binding outside the
// built-in catalog.
func NewNotificationMethod[P any](name string) NotificationMethod[P] {
	return NotificationMethod[P]{name: name}
}

// Name returns the wire method string.
func (m NotificationMethod[P]) Name() string { return m.name }

// Client-to-server requests.
var (
	Initialize            = NewMethod[InitializeParams, InitializeResult]("initialize")
	Ping                  = NewMethod[PingParams, EmptyResult]("ping")
	Complete              = NewMethod[CompleteParams, CompleteResult]("completion/complete")
	SetLevel              = NewMethod[SetLevelParams, EmptyResult]("logging/setLevel")
	ListPrompts           = NewMethod[ListPromptsParams, ListPromptsResult]("prompts/list")
	GetPrompt             = NewMethod[GetPromptParams, GetPromptResult]("prompts/get")
	ListResources         = NewMethod[ListResourcesParams, ListResourcesResult]("resources/list")
	ListResourceTemplates = NewMethod[ListResourceTemplatesParams, ListResourceTemplatesResult]("resources/templates/list")
	ReadResource          = NewMethod[ReadResourceParams, ReadResourceResult]("resources/read")
	Subscribe             = NewMethod[SubscribeParams, EmptyResult]("resources/subscribe")
	Unsubscribe           = NewMethod[UnsubscribeParams, EmptyResult]("resources/unsubscribe")
	ListTools             = NewMethod[ListToolsParams, ListToolsResult]("tools/list")
	CallTool              = NewMethod[CallToolParams, CallToolResult]("tools/call")
)

// Server-to-client requests.
var (
	CreateMessage = NewMethod[CreateMessageParams, CreateMessageResult]("sampling/createMessage")
	ListRoots     = NewMethod[ListRootsParams, ListRootsResult]("roots/list")
)

// Notifications, either direction where applicable.
var (
	Initialized         = NewNotificationMethod[InitializedParams]("notifications/initialized")
	Cancelled           = NewNotificationMethod[CancelledParams]("notifications/cancelled")
	Progress            = NewNotificationMethod[ProgressParams]("notifications/progress")
	LoggingMessage      = NewNotificationMethod[LoggingMessageParams]("notifications/message")
	PromptListChanged   = NewNotificationMethod[ListChangedParams]("notifications/prompts/list_changed")
	ResourceListChanged = NewNotificationMethod[ListChangedParams]("notifications/resources/list_changed")
	ResourceUpdated     = NewNotificationMethod[ResourceUpdatedParams]("notifications/resources/updated")
	ToolListChanged     = NewNotificationMethod[ListChangedParams]("notifications/tools/list_changed")
	RootsListChanged    = NewNotificationMethod[ListChangedParams]("notifications/roots/list_changed")
)
