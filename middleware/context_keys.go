package middleware

// Context keys used within the application middleware and handlers.
const (
	// UserIDKey is the gin context key for the authenticated moderator's ID.
	UserIDKey = "user_id"
	// RequestIDKey is the gin context key for the per-request ID.
	RequestIDKey = "request_id"
)
