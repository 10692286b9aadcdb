package constants

// Session and context keys
const (
	SessionCookieName = "respuestas_session"
	ContextKeyUserID  = "user_id"
	ContextKeyAnswer  = "answer"
)

// Account rules
const (
	MinPasswordLength = 8
	MaxUsernameLength = 255
	MaxEmailLength    = 254
)

// Tag rules
const (
	MaxTagNameLength = 100
	MaxTagsPerAnswer = 50
	MaxSuggestedTags = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
