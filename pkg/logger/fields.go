package logger

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor, matches the key set by the auth middleware
	FieldUserID = "user_id"

	// Messaging
	FieldClientID  = "client_id"
	FieldRoomID    = "room_id"
	FieldEvent     = "event"
	FieldNamespace = "namespace"

	FieldService = "service"
)
