package models

import "errors"

// Sentinel errors surfaced to controllers, which map them onto HTTP responses.
var (
	// ErrInvalidTransition rejects the one forbidden status change, published -> draft.
	ErrInvalidTransition = errors.New("published articles cannot go back to draft")

	// ErrAlreadySent guards against double-sending a newsletter campaign.
	ErrAlreadySent = errors.New("campaign has already been sent")

	// ErrNoSubscribers is returned when a campaign has no qualifying recipients.
	ErrNoSubscribers = errors.New("no active confirmed subscribers found")

	// ErrDuplicateEmail is returned when subscribing an email twice.
	ErrDuplicateEmail = errors.New("this email is already subscribed")

	// ErrEmptyQuery rejects a global search without a query string.
	ErrEmptyQuery = errors.New("search query is required")
)
