package collectors

import (
	"context"
	"crypto/md5" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/openclaw-hq/claw-digest/internal/config"
)

// base carries the shared configuration and HTTP client every collector embeds.
type base struct {
	cfg    *config.Config
	client HTTPClient
}

func (b base) getBody(ctx context.Context, url string, headers, query map[string]string) ([]byte, error) {
	resp, err := b.client.Get(ctx, url, headers, query)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	body := resp.Body()
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("%s returned status %d body: %s", url, resp.StatusCode(), responseSnippet(body))
	}
	return body, nil
}

func (b base) getJSON(ctx context.Context, url string, headers, query map[string]string, out any) error {
	body, err := b.getBody(ctx, url, headers, query)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", url, err)
	}
	return nil
}

func (b base) postJSON(ctx context.Context, url string, headers map[string]string, payload, out any) error {
	resp, err := b.client.Post(ctx, url, headers, payload)
	if err != nil {
		return fmt.Errorf("post %s: %w", url, err)
	}
	body := resp.Body()
	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("%s returned status %d body: %s", url, resp.StatusCode(), responseSnippet(body))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", url, err)
	}
	return nil
}

// githubHeaders returns auth headers when a token is configured.
// Most GitHub endpoints work unauthenticated at a lower rate limit.
func (b base) githubHeaders() map[string]string {
	if b.cfg.GitHubToken == "" {
		return nil
	}
	return map[string]string{"Authorization": "token " + b.cfg.GitHubToken}
}

// graphql executes a GitHub GraphQL query and unmarshals the data envelope.
func (b base) graphql(ctx context.Context, query string, out any) error {
	headers := map[string]string{"Authorization": "Bearer " + b.cfg.GitHubToken}
	payload := map[string]any{"query": query}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := b.postJSON(ctx, githubGraphQL, headers, payload, &envelope); err != nil {
		return err
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("graphql errors: %s", strings.Join(msgs, "; "))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

// fetchFeed retrieves a URL through the retrying client and parses it as RSS/Atom.
func (b base) fetchFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	body, err := b.getBody(ctx, url, nil, nil)
	if err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return feed, nil
}

// hashID derives a short stable id fragment from a URL or title.
func hashID(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec
	return hex.EncodeToString(sum[:])[:12]
}

// matchesKeywords reports whether any search keyword appears in the given texts.
func matchesKeywords(keywords []string, texts ...string) bool {
	combined := strings.ToLower(strings.Join(texts, " "))
	for _, kw := range keywords {
		if strings.Contains(combined, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// clip bounds a string to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// firstLine splits a commit-style message into subject and body.
func firstLine(message string) (subject, body string) {
	subject, body, found := strings.Cut(message, "\n")
	if !found {
		return message, ""
	}
	return subject, strings.TrimSpace(body)
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
