package domain

import "errors"

var (
	// ErrMissingFields: the inbound event has no sender identifier or no text.
	ErrMissingFields = errors.New("missing sender or message text")
	// ErrUpstreamStatus: the generation service answered with a non-200 status.
	ErrUpstreamStatus = errors.New("generation service returned non-200 status")
	// ErrEmptyContent: the generation service answered 200 without text.
	ErrEmptyContent = errors.New("generation service returned no content")
	// ErrRateLimited: the sender exceeded the configured message rate.
	ErrRateLimited = errors.New("rate limit exceeded")
)
