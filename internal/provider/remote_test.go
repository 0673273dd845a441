package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sumarena/internal/domain"
)

func TestRemoteAdapterSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("expected chat completions path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header: got %q", got)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "llama-3.1-8b-instant" {
			t.Errorf("model: got %q", req.Model)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Fatalf("expected one user message, got %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[0].Content, "approximately 120 words") {
			t.Errorf("prompt does not carry the word budget: %q", req.Messages[0].Content)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": " Remote summary. "}}],
			"usage": {"prompt_tokens": 30, "completion_tokens": 12, "total_tokens": 42}
		}`))
	}))
	defer srv.Close()

	a := NewRemote(
		RemoteConfig{APIKey: "test-key", BaseURL: srv.URL},
		[]string{"llama-3.1-8b-instant"},
		testLogger(),
	)

	res := a.Summarize(context.Background(), domain.SummarizationRequest{
		Text:     "document to summarize",
		ModelID:  "llama-3.1-8b-instant",
		MaxWords: 120,
	})

	if !res.Success {
		t.Fatalf("expected success, got %s: %s", res.ErrKind, res.ErrMessage)
	}
	if res.Summary != "Remote summary." {
		t.Errorf("summary: got %q, want %q", res.Summary, "Remote summary.")
	}
	if res.Family != domain.FamilyRemote {
		t.Errorf("family: got %q, want %q", res.Family, domain.FamilyRemote)
	}
	if res.InputTokensEstimate != 30 || res.OutputTokensEstimate != 12 {
		t.Errorf("token counts: got %d/%d, want 30/12",
			res.InputTokensEstimate, res.OutputTokensEstimate)
	}
}

func TestRemoteAdapterSummarizeUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid API key", "type": "invalid_request_error"}}`))
	}))
	defer srv.Close()

	a := NewRemote(RemoteConfig{APIKey: "bad-key", BaseURL: srv.URL}, nil, testLogger())

	res := a.Summarize(context.Background(), domain.SummarizationRequest{
		Text:     "text",
		ModelID:  "llama-3.1-8b-instant",
		MaxWords: 50,
	})

	if res.Success {
		t.Fatal("expected failure on 401 response")
	}
	if res.ErrKind != domain.ErrorUnauthorized {
		t.Errorf("error kind: got %q, want %q", res.ErrKind, domain.ErrorUnauthorized)
	}
}

func TestRemoteAdapterSummarizeRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit reached", "type": "rate_limit_error"}}`))
	}))
	defer srv.Close()

	a := NewRemote(RemoteConfig{APIKey: "key", BaseURL: srv.URL}, nil, testLogger())

	res := a.Summarize(context.Background(), domain.SummarizationRequest{
		Text:     "text",
		ModelID:  "llama-3.1-8b-instant",
		MaxWords: 50,
	})

	if res.Success {
		t.Fatal("expected failure on 429 response")
	}
	if res.ErrKind != domain.ErrorRateLimited {
		t.Errorf("error kind: got %q, want %q", res.ErrKind, domain.ErrorRateLimited)
	}
}

func TestRemoteAdapterSummarizeMissingKey(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := NewRemote(RemoteConfig{BaseURL: srv.URL}, nil, testLogger())

	if a.IsConfigured() {
		t.Error("expected not configured without an API key")
	}

	res := a.Summarize(context.Background(), domain.SummarizationRequest{
		Text:     "text",
		ModelID:  "llama-3.1-8b-instant",
		MaxWords: 50,
	})

	if res.Success {
		t.Fatal("expected failure without an API key")
	}
	if res.ErrKind != domain.ErrorUnauthorized {
		t.Errorf("error kind: got %q, want %q", res.ErrKind, domain.ErrorUnauthorized)
	}
	if called {
		t.Error("adapter must not contact the backend without a credential")
	}
}

func TestRemoteAdapterSummarizeEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
	}))
	defer srv.Close()

	a := NewRemote(RemoteConfig{APIKey: "key", BaseURL: srv.URL}, nil, testLogger())

	res := a.Summarize(context.Background(), domain.SummarizationRequest{
		Text:     "text",
		ModelID:  "llama-3.1-8b-instant",
		MaxWords: 50,
	})

	if res.Success {
		t.Fatal("expected failure on empty choices")
	}
	if res.ErrKind != domain.ErrorMalformedResponse {
		t.Errorf("error kind: got %q, want %q", res.ErrKind, domain.ErrorMalformedResponse)
	}
}

func TestRemoteAdapterCheckAvailability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models") {
			t.Errorf("expected models path, got %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"data": [
				{"id": "llama-3.1-8b-instant", "object": "model"},
				{"id": "whisper-large-v3", "object": "model"}
			]
		}`))
	}))
	defer srv.Close()

	a := NewRemote(
		RemoteConfig{APIKey: "key", BaseURL: srv.URL},
		[]string{"llama-3.1-8b-instant", "gemma2-9b-it"},
		testLogger(),
	)

	status := a.CheckAvailability(context.Background())

	if !status.Reachable {
		t.Fatalf("expected reachable, diagnostic: %s", status.Diagnostic)
	}
	if len(status.Models) != 1 || status.Models[0] != "llama-3.1-8b-instant" {
		t.Errorf("models: got %v, want [llama-3.1-8b-instant]", status.Models)
	}
}

func TestRemoteAdapterCheckAvailabilityMissingKey(t *testing.T) {
	a := NewRemote(RemoteConfig{}, nil, testLogger())

	status := a.CheckAvailability(context.Background())

	if status.Reachable {
		t.Fatal("expected unreachable without an API key")
	}
	if status.Diagnostic == "" {
		t.Error("expected a diagnostic message")
	}
}
