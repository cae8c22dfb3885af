package types

// HTTP Header Constants
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
	HeaderRetryAfter  = "Retry-After"
)

// Content types
const (
	MIMEApplicationJSON = "application/json"
)
