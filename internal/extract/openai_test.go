package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIClientInvoke(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"text\":\"hi\"}"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL, "")
	got, err := client.Invoke(context.Background(), "structure this")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != `{"text":"hi"}` {
		t.Errorf("response = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestOpenAIClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL, "")
	_, err := client.Invoke(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if !strings.Contains(err.Error(), "bad key") {
		t.Errorf("error should carry the API message, got %v", err)
	}
}

func TestOpenAIClientRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("test-key", srv.URL, "")
	got, err := client.Invoke(context.Background(), "x")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got != "ok" || attempts != 2 {
		t.Errorf("got %q after %d attempts", got, attempts)
	}
}

func TestOpenAIClientRequiresKey(t *testing.T) {
	client := NewOpenAIClient("", "", "")
	if _, err := client.Invoke(context.Background(), "x"); err == nil {
		t.Fatal("expected error with no API key")
	}
}
