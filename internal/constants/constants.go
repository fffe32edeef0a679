package constants

// ContextKeyUserID is the key under which the authenticated user ID is stored
// in both the session and the gin context.
const ContextKeyUserID = "user_id"

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "quadro_session"

// MinPasswordLength is the minimum accepted password length on signup.
const MinPasswordLength = 8

// Pagination limits for list endpoints.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DateLayout is the calendar-date prefix used for all deadline comparisons.
// Deadlines are stored as plain date strings and compared on this prefix,
// never as parsed timestamps.
const DateLayout = "2006-01-02"

// SubstringMatchMinLength is the minimum cleaned-title length before the
// resolver widens to substring matching.
const SubstringMatchMinLength = 3
