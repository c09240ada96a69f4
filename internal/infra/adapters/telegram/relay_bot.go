package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"chat-relay/internal/config"
	"chat-relay/internal/domain"
	"chat-relay/internal/domain/model"
	"chat-relay/internal/domain/ports/adapter"
	"chat-relay/internal/infra/logging"
	"chat-relay/internal/infra/metrics"
	red "chat-relay/internal/infra/redis"
	"chat-relay/internal/infra/worker"
	"chat-relay/internal/usecase"
)

var _ adapter.TelegramReplier = (*RelayBot)(nil)

// botAPI is the subset of *tgbotapi.BotAPI the relay needs.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// RelayBot polls text messages, relays each one through the generation
// service on its own goroutine and replies in the originating chat.
type RelayBot struct {
	bot     botAPI
	relay   usecase.RelayUseCase
	tasks   *worker.Group
	limiter adapter.RateLimiter

	limit       int
	window      time.Duration
	pollTimeout int
	log         *zerolog.Logger
	dev         bool
}

// NewRelayBot connects to Telegram with cfg.Bot.Token. limiter may be nil.
func NewRelayBot(cfg *config.Config, relay usecase.RelayUseCase, limiter adapter.RateLimiter, logger *zerolog.Logger) (*RelayBot, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if relay == nil {
		return nil, errors.New("relay use case is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	if logger != nil {
		logger.Info().Str("username", bot.Self.UserName).Int64("id", bot.Self.ID).Msg("telegram bot connected")
	}
	return newRelayBot(bot, cfg, relay, limiter, logger), nil
}

func newRelayBot(bot botAPI, cfg *config.Config, relay usecase.RelayUseCase, limiter adapter.RateLimiter, logger *zerolog.Logger) *RelayBot {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &RelayBot{
		bot:         bot,
		relay:       relay,
		tasks:       worker.NewGroup(logger),
		limiter:     limiter,
		limit:       cfg.Redis.Limit,
		window:      cfg.Redis.Window,
		pollTimeout: cfg.Bot.Timeout,
		log:         logger,
		dev:         cfg.Runtime.Dev,
	}
}

// StartPolling runs until ctx is canceled or the update channel closes.
func (r *RelayBot) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = r.pollTimeout
	updates := r.bot.GetUpdatesChan(u)

	defer r.tasks.Stop()
	r.log.Info().Msg("telegram bot is running")

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				return nil
			}
			if err := r.tasks.Go(ctx, func(ctx context.Context) error {
				return r.handleUpdate(ctx, up)
			}); err != nil {
				r.log.Warn().Err(err).Int("update_id", up.UpdateID).Msg("update dropped")
			}
		}
	}
}

// Reply sends plain text to chatID.
func (r *RelayBot) Reply(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (r *RelayBot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		metrics.IncTelegramUpdate("other")
		return nil
	}
	metrics.IncTelegramUpdate("text")

	var username string
	if msg.From != nil {
		username = msg.From.UserName
	}
	in := model.NewInboundMessage(model.ChannelTelegram, username, msg.Text)
	in.ChatID = msg.Chat.ID

	ctx = logging.WithChannel(logging.WithMessageID(ctx, in.ID), string(model.ChannelTelegram))
	l := logging.With(ctx, r.log)

	if r.limiter != nil && in.Validate() == nil {
		allowed, err := r.limiter.Allow(ctx, red.SenderKey(string(model.ChannelTelegram), username), r.limit, r.window)
		if err != nil {
			l.Warn().Err(err).Msg("rate limit check failed")
		} else if !allowed {
			metrics.IncRateLimited(string(model.ChannelTelegram))
			return r.Reply(ctx, in.ChatID, usecase.ReplyFor(model.ChannelTelegram, domain.ErrRateLimited))
		}
	}

	out, err := r.relay.Relay(ctx, in)
	if err != nil {
		return r.Reply(ctx, in.ChatID, usecase.ReplyFor(model.ChannelTelegram, err))
	}

	if err := r.Reply(ctx, out.ChatID, out.Text); err != nil {
		l.Error().Err(err).Msg("error processing message")
		return fmt.Errorf("send reply: %w", err)
	}
	l.Info().Str("sender", logging.Redact(username, r.dev)).Msg("generated content sent to telegram")
	return nil
}
