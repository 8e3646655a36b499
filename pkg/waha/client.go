// Package waha is an HTTP client for the WAHA WhatsApp gateway. It
// covers the two endpoints the bridge needs: sendText and media
// download. Every call is best-effort single-attempt; there is no
// retry layer.
package waha

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

const sendTextEndpoint = "/api/sendText"

// Client is the gateway API surface the pipeline depends on.
type Client interface {
	SendText(ctx context.Context, req models.SendTextRequest) (*models.SendTextResponse, error)
	DownloadMedia(ctx context.Context, url string) ([]byte, error)
}

type client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	downloadClient *http.Client
}

// NewClient creates a gateway client. The timeout bounds sendText only;
// downloads use a client without a fixed timeout so the caller's
// context sets the bound (media fetches get a longer budget than API
// calls).
func NewClient(baseURL, apiKey string, timeout time.Duration) Client {
	return &client{
		baseURL:        baseURL,
		apiKey:         apiKey,
		httpClient:     &http.Client{Timeout: timeout},
		downloadClient: &http.Client{},
	}
}

func (c *client) SendText(ctx context.Context, payload models.SendTextRequest) (*models.SendTextResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendTextEndpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewGatewayError(sendTextEndpoint, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.NewGatewayError(sendTextEndpoint, resp.StatusCode,
			fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body)))
	}

	var result models.SendTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// DownloadMedia fetches a media resource by its full, already
// rewritten URL. A timeout or non-2xx response is an error value,
// never a panic.
func (c *client) DownloadMedia(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, errors.NewDownloadError(url, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewDownloadError(url, resp.StatusCode,
			fmt.Errorf("download failed with status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewDownloadError(url, resp.StatusCode, err)
	}
	return data, nil
}
