// File: internal/usecase/relay_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"chat-relay/internal/domain"
	"chat-relay/internal/domain/model"
	"chat-relay/internal/domain/ports/adapter"
	"chat-relay/internal/format"
	"chat-relay/internal/infra/logging"
	"chat-relay/internal/infra/metrics"
)

// Compile-time check
var _ RelayUseCase = (*relayUC)(nil)

// RelayUseCase is the part of a relay cycle shared by both channels:
// validate, generate, format. Delivery stays with the channel adapter.
type RelayUseCase interface {
	Relay(ctx context.Context, in model.InboundMessage) (model.OutboundMessage, error)
}

type relayUC struct {
	gen     adapter.GenerationService
	log     *zerolog.Logger
	devMode bool
}

func NewRelayUseCase(gen adapter.GenerationService, logger *zerolog.Logger, devMode bool) *relayUC {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &relayUC{gen: gen, log: logger, devMode: devMode}
}

func (r *relayUC) Relay(ctx context.Context, in model.InboundMessage) (model.OutboundMessage, error) {
	l := logging.With(ctx, r.log)
	defer logging.TraceDuration(l, "RelayUC.Relay")()

	ev := l.Info().
		Str("sender", logging.Redact(in.SenderID, r.devMode)).
		Int("text_len", len(in.Text))
	if r.devMode {
		ev = ev.Str("text", in.Text)
	}
	ev.Msg("received message")

	if err := in.Validate(); err != nil {
		metrics.IncRelayOutcome(string(in.Channel), Outcome(err))
		l.Error().Msg("no sender or message provided")
		return model.OutboundMessage{}, err
	}

	start := time.Now()
	resp, err := r.gen.Generate(ctx, model.NewGenerationRequest(in))
	if err == nil && resp.Text == "" {
		err = domain.ErrEmptyContent
	}
	metrics.ObserveGeneration(time.Since(start), err == nil)
	if err != nil {
		metrics.IncRelayOutcome(string(in.Channel), Outcome(err))
		switch {
		case errors.Is(err, domain.ErrUpstreamStatus):
			l.Error().Err(err).Msg("failed to get response from generation service")
		case errors.Is(err, domain.ErrEmptyContent):
			l.Error().Msg("no generated content received from generation service")
		default:
			l.Error().Err(err).Msg("error processing message")
		}
		return model.OutboundMessage{}, err
	}

	out := model.NewOutboundMessage(in, format.Text(resp.Text))
	metrics.IncRelayOutcome(string(in.Channel), Outcome(nil))
	l.Debug().Int("reply_len", len(out.Text)).Dur("generation", time.Since(start)).Msg("reply generated")
	return out, nil
}
