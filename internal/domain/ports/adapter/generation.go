package adapter

import (
	"context"

	"chat-relay/internal/domain/model"
)

// GenerationService is the port for the external text-generation endpoint.
// Implementations return domain.ErrUpstreamStatus for a non-200 answer and
// domain.ErrEmptyContent for a 200 answer without text.
type GenerationService interface {
	Generate(ctx context.Context, req model.GenerationRequest) (model.GenerationResponse, error)
}
