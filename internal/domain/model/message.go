package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"chat-relay/internal/domain"
)

type Channel string

const (
	ChannelTelegram Channel = "telegram"
	ChannelWhatsApp Channel = "whatsapp"
)

// InboundMessage is one user message received from a chat channel.
// It lives for a single relay cycle.
type InboundMessage struct {
	ID         string
	Channel    Channel
	SenderID   string // telegram username or whatsapp phone number
	ChatID     int64  // telegram chat to reply to; zero for whatsapp
	Text       string
	ReceivedAt time.Time
}

func NewInboundMessage(channel Channel, senderID, text string) InboundMessage {
	now := time.Now()
	return InboundMessage{
		ID:         ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Channel:    channel,
		SenderID:   senderID,
		Text:       text,
		ReceivedAt: now,
	}
}

// Validate reports domain.ErrMissingFields when the sender or the text is absent.
func (m InboundMessage) Validate() error {
	if m.SenderID == "" || m.Text == "" {
		return domain.ErrMissingFields
	}
	return nil
}

// GenerationRequest is the body posted to the generation service.
type GenerationRequest struct {
	Text     string `json:"response_text"`
	SenderID string `json:"id"`
}

func NewGenerationRequest(in InboundMessage) GenerationRequest {
	return GenerationRequest{Text: in.Text, SenderID: in.SenderID}
}

// GenerationResponse is the generation service reply. Text may be empty.
type GenerationResponse struct {
	Text string `json:"response_text"`
}

// OutboundMessage is the formatted reply addressed back to the sender.
type OutboundMessage struct {
	Destination string
	ChatID      int64
	Text        string
}

func NewOutboundMessage(in InboundMessage, text string) OutboundMessage {
	return OutboundMessage{Destination: in.SenderID, ChatID: in.ChatID, Text: text}
}

// GatewayPush is the body posted to the delivery gateway.
type GatewayPush struct {
	Token       string `json:"token"`
	Destination string `json:"notelp"`
	Text        string `json:"text"`
}
