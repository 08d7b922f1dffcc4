package service

import "errors"

// Error kinds shared across services. Handlers match these with
// errors.Is and translate them into HTTP statuses; the raw text of
// wrapped dependency errors never reaches a response body.
var (
	// ErrNotFound marks an absent entity. The image handler maps it to
	// a placeholder redirect rather than an error status.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks missing or malformed input; safe to echo back
	// to the end user as a retryable message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials is returned for both unknown users and
	// wrong passwords so callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserExists marks a registration conflict on username or email.
	ErrUserExists = errors.New("user with this email or username already exists")

	// ErrWeakPassword marks a password below the minimum length.
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrForbidden marks an ownership or role check failure.
	ErrForbidden = errors.New("not authorized")

	// ErrUnavailable marks a dependency that is down or unconfigured,
	// surfaced as 503 with an actionable message.
	ErrUnavailable = errors.New("service unavailable")
)
