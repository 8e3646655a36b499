// Package chatbot is an HTTP client for the downstream conversational
// backend. The dispatch step of the pipeline is currently gated off by
// configuration, but the wire contract is kept live here.
package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wahabridge/internal/errors"
	"wahabridge/internal/models"
)

const questionEndpoint = "/v1/llm/question"

// Client is the chatbot API surface the pipeline depends on.
type Client interface {
	Ask(ctx context.Context, req models.ChatbotRequest) (*models.ChatbotResponse, error)
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a chatbot backend client.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask posts a question payload and validates the response envelope. A
// non-2xx status or a body with status != "OK" is returned as an error
// carrying the raw response for diagnostics.
func (c *client) Ask(ctx context.Context, payload models.ChatbotRequest) (*models.ChatbotResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+questionEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError("chatbot dispatch", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError("chatbot dispatch", err)
	}

	var result models.ChatbotResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.NewChatbotError(resp.StatusCode, "unparseable",
			fmt.Errorf("failed to decode response: %w", err))
	}
	result.Raw = json.RawMessage(body)

	if resp.StatusCode != http.StatusOK || !result.OK() {
		return &result, errors.NewChatbotError(resp.StatusCode, result.Status,
			fmt.Errorf("chatbot rejected the question"))
	}

	return &result, nil
}
