package logger

// Log Attribute Keys
const (
	AttrKeyRequestID = "request_id"
)
