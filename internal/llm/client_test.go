// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"lease-lens/internal/resilience"
)

func newFakeServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(Options{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: baseURL + "/v1",
	})
}

func TestComplete_Success(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK,
		`{"choices": [{"message": {"role": "assistant", "content": "  hello  "}}], "usage": {"total_tokens": 12}}`)

	got, err := newTestClient(srv.URL).Complete(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("Complete = %q, want trimmed %q", got, "hello")
	}
}

func TestComplete_MissingAPIKey(t *testing.T) {
	c := NewClient(Options{Model: "m", BaseURL: "http://localhost"})
	_, err := c.Complete(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	var classified *resilience.ClassifiedError
	if !errors.As(err, &classified) || classified.IsRetryable() {
		t.Errorf("missing key should be a permanent classified error, got %v", err)
	}
}

func TestComplete_RateLimited(t *testing.T) {
	srv := newFakeServer(t, http.StatusTooManyRequests, `{"error": {"message": "slow down"}}`)

	_, err := newTestClient(srv.URL).Complete(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for 429")
	}
	var classified *resilience.ClassifiedError
	if !errors.As(err, &classified) {
		t.Fatalf("error type = %T, want classified", err)
	}
	if classified.Type != resilience.ErrorTypeRateLimit || !classified.IsRetryable() {
		t.Errorf("429 should classify as retryable rate limit, got type=%v", classified.Type)
	}
}

func TestComplete_ServerError(t *testing.T) {
	srv := newFakeServer(t, http.StatusBadGateway, "upstream down")

	_, err := newTestClient(srv.URL).Complete(context.Background(), "x")
	var classified *resilience.ClassifiedError
	if !errors.As(err, &classified) || !classified.IsRetryable() {
		t.Errorf("5xx should classify as retryable, got %v", err)
	}
}

func TestComplete_NoChoices(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK, `{"choices": []}`)

	_, err := newTestClient(srv.URL).Complete(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestComplete_APIErrorInBody(t *testing.T) {
	srv := newFakeServer(t, http.StatusOK,
		`{"choices": [], "error": {"message": "model overloaded"}}`)

	_, err := newTestClient(srv.URL).Complete(context.Background(), "x")
	if err == nil || !errors.As(err, new(*resilience.ClassifiedError)) {
		t.Fatalf("expected classified error, got %v", err)
	}
}
