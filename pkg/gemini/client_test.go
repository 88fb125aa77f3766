package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"private-chat-go/internal/config"
)

func TestGenerateContent_JoinsCandidateParts(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"first"},{"text":"second"}]}}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.GeminiConfig{BaseURL: srv.URL, Model: "gemini-2.5-flash"})
	reply, err := client.GenerateContent(context.Background(), "sk-test", []Content{
		NewTextContent("user", "hi"),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply != "first\nsecond" {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotKey != "sk-test" {
		t.Fatalf("key must travel in x-goog-api-key, got %q", gotKey)
	}
	if gotReq.Model != "gemini-2.5-flash" || len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "hi" {
		t.Fatalf("unexpected request body: %+v", gotReq)
	}
}

func TestGenerateContent_UpstreamErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	client := NewClient(config.GeminiConfig{BaseURL: srv.URL, Model: "gemini-2.5-flash"})
	_, err := client.GenerateContent(context.Background(), "bad-key", []Content{
		NewTextContent("user", "hi"),
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if apiErr.Body != `{"error":{"message":"API key not valid"}}` {
		t.Fatalf("upstream body must be carried verbatim, got %q", apiErr.Body)
	}
}

func TestGenerateContent_NoCandidatesIsEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewClient(config.GeminiConfig{BaseURL: srv.URL, Model: "gemini-2.5-flash"})
	reply, err := client.GenerateContent(context.Background(), "sk-test", nil)
	if err != nil {
		t.Fatalf("no candidates must not be an error: %v", err)
	}
	if reply != "" {
		t.Fatalf("expected empty reply, got %q", reply)
	}
}
