package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"chat-relay/internal/domain/model"
	"chat-relay/internal/domain/ports/adapter"
)

var _ adapter.DeliveryGateway = (*WAConnect)(nil)

// WAConnect pushes text to a phone number through the WAConnect kirim-text API.
type WAConnect struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewWAConnect(endpoint, token string, timeout time.Duration) (*WAConnect, error) {
	if token == "" {
		return nil, errors.New("waconnect token empty")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid waconnect url: %w", err)
	}
	return &WAConnect{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (g *WAConnect) Name() string { return "waconnect" }

// Push reports delivered=false for a non-2xx answer and an error only when
// no answer was received at all.
func (g *WAConnect) Push(ctx context.Context, msg model.OutboundMessage) (bool, error) {
	b, err := json.Marshal(model.GatewayPush{
		Token:       g.token,
		Destination: msg.Destination,
		Text:        msg.Text,
	})
	if err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(b))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("waconnect push: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}
