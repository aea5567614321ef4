package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient("", "gemini-2.5-flash", "http://example.invalid"); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestGenerateText(t *testing.T) {
	var gotPath, gotKey string
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "A concise summary."}}}},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient("test-key", "gemini-2.5-flash", srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	text, err := c.GenerateText(context.Background(), "summarise this")
	if err != nil {
		t.Fatal(err)
	}
	if text != "A concise summary." {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %s", gotKey)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "summarise this" {
		t.Errorf("request payload = %+v", gotReq)
	}
}

func TestGenerateText_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c, _ := NewClient("test-key", "gemini-2.5-flash", srv.URL)
	if _, err := c.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestGenerateText_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c, _ := NewClient("test-key", "gemini-2.5-flash", srv.URL)
	if _, err := c.GenerateText(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
