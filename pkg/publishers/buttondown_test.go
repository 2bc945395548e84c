package publishers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestButtondown(t *testing.T, url string) *buttondownPublisher {
	t.Helper()
	t.Setenv("BUTTONDOWN_API_KEY", "bd-test-key")

	pub, err := newButtondownPublisher(context.Background(), PublisherConfig{
		ID:         "email",
		Type:       TypeButtondown,
		Buttondown: &ButtondownPublisherConfig{APIKeyEnv: "BUTTONDOWN_API_KEY", TimeoutSeconds: 2},
	}, nil)
	if err != nil {
		t.Fatalf("newButtondownPublisher: %v", err)
	}
	bd := pub.(*buttondownPublisher)
	bd.url = url
	return bd
}

func TestButtondownPublisherSendsEmail(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token bd-test-key" {
			t.Fatalf("Authorization = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	pub := newTestButtondown(t, srv.URL)
	evt := Event{
		Date:     "2026-08-30",
		Title:    "OpenClaw Newsletter - 2026-08-30",
		BodyHTML: "<h1>Issue</h1>",
	}
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if payload["subject"] != "OpenClaw Newsletter - 2026-08-30" {
		t.Errorf("subject = %q", payload["subject"])
	}
	if payload["body"] != "<h1>Issue</h1>" {
		t.Errorf("body = %q", payload["body"])
	}
	if payload["status"] != "about_to_send" {
		t.Errorf("status = %q", payload["status"])
	}
}

func TestButtondownPublisherRejectsEmptyBody(t *testing.T) {
	pub := newTestButtondown(t, "https://unused.example")
	if err := pub.Publish(context.Background(), Event{Date: "2026-08-30"}); err == nil {
		t.Fatalf("expected error for missing body")
	}
}

func TestButtondownPublisherRequiresAPIKey(t *testing.T) {
	t.Setenv("BUTTONDOWN_API_KEY", "")
	_, err := newButtondownPublisher(context.Background(), PublisherConfig{
		ID:         "email",
		Type:       TypeButtondown,
		Buttondown: &ButtondownPublisherConfig{APIKeyEnv: "BUTTONDOWN_API_KEY"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error when API key env is empty")
	}
}
