package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/slashexp/experiences/internal/adapters/notify"
)

func TestSendGiftEmail(t *testing.T) {
	var got struct {
		From    string `json:"from"`
		To      string `json:"to"`
		Subject string `json:"subject"`
		Text    string `json:"text"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer key-123" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(202)
	}))
	defer srv.Close()

	c := notify.New(srv.URL, "key-123", "gifts@example.in")
	err := c.SendGiftEmail(context.Background(), "friend@example.com", "A gift for you", "Enjoy!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.From != "gifts@example.in" || got.To != "friend@example.com" || got.Subject != "A gift for you" {
		t.Errorf("unexpected message payload: %+v", got)
	}
}

func TestSendGiftEmail_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", 429)
	}))
	defer srv.Close()

	c := notify.New(srv.URL, "key-123", "gifts@example.in")
	if err := c.SendGiftEmail(context.Background(), "friend@example.com", "s", "b"); err == nil {
		t.Error("expected error on non-2xx response")
	}
}

func TestSendGiftEmail_EmptyRecipient(t *testing.T) {
	c := notify.New("http://mail.invalid", "k", "gifts@example.in")
	if err := c.SendGiftEmail(context.Background(), "", "s", "b"); err == nil {
		t.Error("expected error for empty recipient")
	}
}
