// File: internal/infra/adapters/generation/client.go
package generation

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

	"chat-relay/internal/domain"
	"chat-relay/internal/domain/model"
	"chat-relay/internal/domain/ports/adapter"
)

var _ adapter.GenerationService = (*Client)(nil)

// Client calls the local generation endpoint (POST {response_text, id}).
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient builds a client for endpoint. A zero timeout leaves requests
// bounded only by the caller's context.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("generation endpoint empty")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid generation endpoint: %w", err)
	}
	return &Client{endpoint: endpoint, client: &http.Client{Timeout: timeout}}, nil
}

func (c *Client) Generate(ctx context.Context, req model.GenerationRequest) (model.GenerationResponse, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return model.GenerationResponse{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(b))
	if err != nil {
		return model.GenerationResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return model.GenerationResponse{}, fmt.Errorf("generation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return model.GenerationResponse{}, fmt.Errorf("%w: status %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	// response_text may be null when the model server failed behind the proxy.
	var out struct {
		Text *string `json:"response_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.GenerationResponse{}, fmt.Errorf("decode generation response: %w", err)
	}
	if out.Text == nil || *out.Text == "" {
		return model.GenerationResponse{}, domain.ErrEmptyContent
	}
	return model.GenerationResponse{Text: *out.Text}, nil
}
