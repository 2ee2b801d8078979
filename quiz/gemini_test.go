package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func geminiTestClient(url string) *GeminiClient {
	return &GeminiClient{
		APIKey:     "test-key",
		URL:        url,
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func TestGeminiClientGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query: %s", r.URL.RawQuery)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Fatalf("expected exactly one prompt part, got %+v", req)
		}
		if req.Contents[0].Parts[0].Text != "the prompt" {
			t.Errorf("unexpected prompt %q", req.Contents[0].Parts[0].Text)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "generated text"}]}}]}`))
	}))
	defer server.Close()

	raw, err := geminiTestClient(server.URL).Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if raw != "generated text" {
		t.Errorf("expected %q, got %q", "generated text", raw)
	}
}

func TestGeminiClientMissingKey(t *testing.T) {
	client := NewGeminiClient("")
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrConfigMissing) {
		t.Errorf("expected ErrConfigMissing, got %v", err)
	}
}

func TestGeminiClientServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := geminiTestClient(server.URL).Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrServiceError) {
		t.Errorf("expected ErrServiceError, got %v", err)
	}
}

func TestGeminiClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	_, err := geminiTestClient(server.URL).Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrServiceUnreachable) {
		t.Errorf("expected ErrServiceUnreachable, got %v", err)
	}
}

func TestGeminiClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := &GeminiClient{
		APIKey:     "test-key",
		URL:        server.URL,
		HTTPClient: &http.Client{Timeout: 50 * time.Millisecond},
	}
	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrServiceUnreachable) {
		t.Errorf("expected ErrServiceUnreachable on timeout, got %v", err)
	}
}

func TestGeminiClientMissingCandidatePath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	raw, err := geminiTestClient(server.URL).Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if raw != "" {
		t.Errorf("expected empty text for missing candidate path, got %q", raw)
	}
}
