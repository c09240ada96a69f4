package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"chat-relay/internal/config"
	"chat-relay/internal/domain"
	"chat-relay/internal/domain/model"
	"chat-relay/internal/domain/ports/adapter"
	"chat-relay/internal/infra/logging"
	"chat-relay/internal/infra/metrics"
	red "chat-relay/internal/infra/redis"
	"chat-relay/internal/usecase"
)

const maxWebhookBody = 1 << 20

// Server is the relay HTTP surface: /health and /metrics always, and
// POST /webhook when both a relay use case and a delivery gateway are set.
type Server struct {
	relay   usecase.RelayUseCase
	gateway adapter.DeliveryGateway
	limiter adapter.RateLimiter

	limit  int
	window time.Duration
	log    *zerolog.Logger
	dev    bool
}

// NewServer wires the handlers. relay, gateway and limiter may be nil.
func NewServer(cfg *config.Config, relay usecase.RelayUseCase, gateway adapter.DeliveryGateway, limiter adapter.RateLimiter, logger *zerolog.Logger) *Server {
	logger = orNop(logger)
	return &Server{
		relay:   relay,
		gateway: gateway,
		limiter: limiter,
		limit:   cfg.Redis.Limit,
		window:  cfg.Redis.Window,
		log:     logger,
		dev:     cfg.Runtime.Dev,
	}
}

// Routes builds the chi router with trace, request-log and recover middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), RequestLog(s.log), Recover(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeText(w, http.StatusOK, "OK")
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	if s.relay != nil && s.gateway != nil {
		r.Post("/webhook", s.handleWebhook)
	}
	return r
}

// webhookRequest is the gateway's inbound call. notelp arrives as a string
// or a bare number depending on the gateway build.
type webhookRequest struct {
	Notelp flexString `json:"notelp"`
	Text   string     `json:"text"`
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	body := http.MaxBytesReader(w, r.Body, maxWebhookBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		l := logging.With(r.Context(), s.log)
		l.Warn().Err(err).Msg("invalid webhook body")
		req = webhookRequest{}
	}

	in := model.NewInboundMessage(model.ChannelWhatsApp, string(req.Notelp), req.Text)
	ctx := logging.WithChannel(logging.WithMessageID(r.Context(), in.ID), string(model.ChannelWhatsApp))
	l := logging.With(ctx, s.log)

	// Invalid messages are rejected by Relay and never count against the quota.
	if s.limiter != nil && in.Validate() == nil {
		allowed, err := s.limiter.Allow(ctx, red.SenderKey(string(model.ChannelWhatsApp), in.SenderID), s.limit, s.window)
		if err != nil {
			l.Warn().Err(err).Msg("rate limit check failed")
		} else if !allowed {
			metrics.IncRateLimited(string(model.ChannelWhatsApp))
			s.fail(w, domain.ErrRateLimited)
			return
		}
	}

	out, err := s.relay.Relay(ctx, in)
	if err != nil {
		s.fail(w, err)
		return
	}

	delivered, err := s.gateway.Push(ctx, out)
	if err != nil {
		l.Error().Err(err).Msg("error processing message")
		s.fail(w, err)
		return
	}
	metrics.IncGatewayPush(delivered)
	if delivered {
		l.Info().Str("to", logging.Redact(out.Destination, s.dev)).Msg("generated content sent to whatsapp")
	} else {
		// Acknowledged anyway: the gateway owns delivery once it has answered.
		l.Warn().Str("to", logging.Redact(out.Destination, s.dev)).Msg("could not send whatsapp message")
	}
	writeText(w, http.StatusOK, "OK")
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	writeText(w, statusFor(err), usecase.ReplyFor(model.ChannelWhatsApp, err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}
