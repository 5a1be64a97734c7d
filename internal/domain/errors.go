package domain

import "errors"

var (
	// ErrNoChecklist is returned when no checklist has been created or loaded
	ErrNoChecklist = errors.New("no checklist loaded")

	// ErrItemNotFound is returned when a checklist key does not exist
	ErrItemNotFound = errors.New("checklist item not found")

	// ErrSourceUnreadable is returned when a script or inventory source cannot be read
	ErrSourceUnreadable = errors.New("source unreadable")

	// ErrMalformedRow is returned when an inventory row is missing a required
	// field or a required numeric field does not parse
	ErrMalformedRow = errors.New("malformed inventory row")

	// ErrInvalidState is returned when an imported checklist document is missing
	// required keys
	ErrInvalidState = errors.New("invalid checklist state document")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
