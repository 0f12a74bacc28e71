package base

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"intentpay/internal/provider"

	"github.com/rs/zerolog/log"
)

// HTTPClient provides common HTTP functionality for providers
type HTTPClient struct {
	client  *http.Client
	baseURL string
	name    string // provider name for logging
}

// NewHTTPClient creates a new HTTP client with default settings
func NewHTTPClient(providerName string, timeoutSec int) *HTTPClient {
	if timeoutSec == 0 {
		timeoutSec = 30 // default timeout
	}

	return &HTTPClient{
		client: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		name: providerName,
	}
}

// SetBaseURL sets the base URL for all requests
func (c *HTTPClient) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// Post sends an already serialized body. The raw response body is returned for
// 2xx, 400 and 404 replies; providers report business failures with those.
// Any other status is a *ResponseError.
func (c *HTTPClient) Post(ctx context.Context, endpoint string, body []byte, headers map[string]string) ([]byte, error) {
	url := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("IntentPay/%s", c.name))

	// Add custom headers
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	log.Debug().
		Str("provider", c.name).
		Str("method", http.MethodPost).
		Str("url", url).
		Msg("making HTTP request")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().
			Str("provider", c.name).
			Str("url", url).
			Err(err).
			Msg("HTTP request failed")
		return nil, &provider.ProviderError{
			Code:        provider.ErrRequestFailed,
			Message:     "HTTP request failed",
			ProviderErr: err.Error(),
		}
	}

	return c.handleResponse(resp)
}

// handleResponse processes the HTTP response
func (c *HTTPClient) handleResponse(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	log.Debug().
		Str("provider", c.name).
		Int("status_code", resp.StatusCode).
		Int("body_length", len(body)).
		Msg("received HTTP response")

	if !Tolerated(resp.StatusCode) {
		return nil, &ResponseError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}
	return body, nil
}

// Tolerated reports whether a status code carries a body the provider layer
// should interpret rather than fail on.
func Tolerated(statusCode int) bool {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return true
	case statusCode == http.StatusBadRequest, statusCode == http.StatusNotFound:
		return true
	default:
		return false
	}
}

// ResponseError is returned when the provider answers with an unexpected HTTP status
type ResponseError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected provider response: %s", e.Status)
}
