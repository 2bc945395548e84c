package publishers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/openclaw-hq/claw-digest/pkg/httpclient"
)

const buttondownEmailsURL = "https://api.buttondown.com/v1/emails"

// buttondownPublisher sends the issue as an email broadcast via Buttondown.
type buttondownPublisher struct {
	id     string
	typ    string
	apiKey string
	url    string
	client *resty.Client
	log    Logger
}

func newButtondownPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.Buttondown == nil {
		return nil, fmt.Errorf("publisher %q missing buttondown configuration", cfg.ID)
	}

	apiKey := os.Getenv(cfg.Buttondown.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("publisher %q: %s is not set", cfg.ID, cfg.Buttondown.APIKeyEnv)
	}

	client := httpclient.NewRestyHTTPClient(time.Duration(cfg.Buttondown.TimeoutSeconds) * time.Second)

	return &buttondownPublisher{
		id:     cfg.ID,
		typ:    TypeButtondown,
		apiKey: apiKey,
		url:    buttondownEmailsURL,
		client: client,
		log:    ensureLogger(log),
	}, nil
}

func (b *buttondownPublisher) ID() string   { return b.id }
func (b *buttondownPublisher) Type() string { return b.typ }

// Publish creates and sends a Buttondown email for the issue. Events without
// a rendered body are refused; a broken email beats no signal, but an empty
// one does not.
func (b *buttondownPublisher) Publish(ctx context.Context, evt Event) error {
	if evt.BodyHTML == "" {
		return fmt.Errorf("event for %s has no email body", evt.Date)
	}

	payload := map[string]string{
		"subject": evt.Title,
		"body":    evt.BodyHTML,
		"status":  "about_to_send",
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Token "+b.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(b.url)
	if err != nil {
		return fmt.Errorf("buttondown request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("buttondown response status %d: %s", resp.StatusCode(), readBodySnippet(resp.Body()))
	}

	b.log.InfoObj("email broadcast queued", "publisher_buttondown_delivery", map[string]any{
		"publisher_id": b.id,
		"issue_date":   evt.Date,
	})
	return nil
}
