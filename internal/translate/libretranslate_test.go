package translate_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-news/internal/translate"
)

func TestClientTranslateSuccess(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected json content type got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"translatedText": "Hallo"})
	}))
	defer server.Close()

	client := translate.NewClient(server.URL)
	got, err := client.Translate(context.Background(), "Hello", "en", "de")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != "Hallo" {
		t.Fatalf("expected Hallo got %q", got)
	}

	if captured["q"] != "Hello" || captured["source"] != "en" || captured["target"] != "de" {
		t.Fatalf("unexpected payload %v", captured)
	}
	if captured["format"] != "text" {
		t.Fatalf("expected text format got %v", captured["format"])
	}
}

func TestClientTranslateUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "unsupported language pair"})
	}))
	defer server.Close()

	client := translate.NewClient(server.URL)
	if _, err := client.Translate(context.Background(), "Hello", "en", "xx"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestClientTranslateEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := translate.NewClient(server.URL)
	if _, err := client.Translate(context.Background(), "Hello", "en", "de"); err == nil {
		t.Fatal("expected error for empty translation")
	}
}

func TestClientDefaultEndpoint(t *testing.T) {
	client := translate.NewClient("")
	if client == nil {
		t.Fatal("expected client")
	}
}
