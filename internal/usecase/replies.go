package usecase

import (
	"errors"

	"chat-relay/internal/domain"
	"chat-relay/internal/domain/model"
)

// User-visible texts. The generation service is still called "Flask" here
// because gateway operators match on these bodies.
const (
	ReplyMissingTelegram = "No username or message provided"
	ReplyMissingWhatsApp = "No phone number or message provided"
	ReplyUpstreamStatus  = "Failed to get response from Flask"
	ReplyEmptyContent    = "No generated content received from Flask"
	ReplyProcessingError = "Error processing message"
	ReplyRateLimited     = "Rate limit exceeded. Please try again later."
)

// ReplyFor maps a relay error to the text shown to the user on channel.
func ReplyFor(channel model.Channel, err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		if channel == model.ChannelWhatsApp {
			return ReplyMissingWhatsApp
		}
		return ReplyMissingTelegram
	case errors.Is(err, domain.ErrUpstreamStatus):
		return ReplyUpstreamStatus
	case errors.Is(err, domain.ErrEmptyContent):
		return ReplyEmptyContent
	case errors.Is(err, domain.ErrRateLimited):
		return ReplyRateLimited
	default:
		return ReplyProcessingError
	}
}

// Outcome is the metrics label for err.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrMissingFields):
		return "invalid"
	case errors.Is(err, domain.ErrUpstreamStatus):
		return "upstream_status"
	case errors.Is(err, domain.ErrEmptyContent):
		return "empty_content"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	default:
		return "transport"
	}
}
