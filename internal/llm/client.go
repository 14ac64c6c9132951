// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package llm talks to an OpenAI-compatible chat-completions endpoint and
// turns its free-form answers into typed classification results.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lease-lens/internal/observability"
	"lease-lens/internal/resilience"
)

const completionsPath = "/chat/completions"

// Client calls a chat-completions API. It is single-attempt: failures come
// back classified (see resilience) and the caller decides what to do.
type Client struct {
	apiKey   string
	model    string
	baseURL  string
	httpc    *http.Client
	observer *observability.Observer
}

// Options configures a Client.
type Options struct {
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
	Observer *observability.Observer
}

// NewClient builds a chat-completions client. BaseURL is the API root
// (e.g. https://api.mistral.ai/v1); the completions path is appended.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:   opts.APIKey,
		model:    opts.Model,
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/"),
		httpc:    &http.Client{Timeout: timeout},
		observer: opts.Observer,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete sends a single user prompt and returns the assistant's reply,
// trimmed. The context bounds the whole round trip.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	stop := c.observer.StartTiming("llm", "complete")

	if c.apiKey == "" {
		stop(false, nil)
		return "", resilience.NewPermanentError("llm: API key is not configured", nil)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    []message{{Role: "user", Content: prompt}},
		Temperature: 0,
	})
	if err != nil {
		stop(false, nil)
		return "", fmt.Errorf("llm: marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		stop(false, nil)
		return "", fmt.Errorf("llm: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		stop(false, nil)
		return "", resilience.Classify(fmt.Errorf("llm: request failed: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		stop(false, nil)
		return "", resilience.Classify(fmt.Errorf("llm: reading response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		stop(false, map[string]any{"status": resp.StatusCode})
		return "", resilience.ClassifyHTTPStatus(resp.StatusCode,
			fmt.Errorf("llm: status %d: %s", resp.StatusCode, apiErrorMessage(raw)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		stop(false, nil)
		return "", resilience.NewPermanentError("llm: malformed API response", err)
	}
	if parsed.Error != nil {
		stop(false, nil)
		return "", resilience.NewPermanentError("llm: API error: "+parsed.Error.Message, nil)
	}
	if len(parsed.Choices) == 0 {
		stop(false, nil)
		return "", resilience.NewPermanentError("llm: API returned no choices", nil)
	}

	stop(true, map[string]any{"tokens": parsed.Usage.TotalTokens})
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// apiErrorMessage pulls the error message out of an error-status body,
// falling back to the raw body when it is not the usual JSON shape.
func apiErrorMessage(body []byte) string {
	var wrapper struct {
		Error apiError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Error.Message != "" {
		return wrapper.Error.Message
	}
	const limit = 200
	s := string(body)
	if len(s) > limit {
		s = s[:limit]
	}
	return s
}
