package ledger

import "errors"

// Business-rule violations returned to the API boundary. Each maps to a
// distinct HTTP status there; none is retried internally.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
	ErrNoOpenRecord      = errors.New("no clock-in record found for today")
	ErrValidation        = errors.New("invalid clock data")
)
