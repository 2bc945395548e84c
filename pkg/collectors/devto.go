package collectors

import (
	"context"
	"encoding/json"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// devTo fetches articles carrying the project tag from the Dev.to API.
type devTo struct{ base }

func newDevTo(b base) *devTo { return &devTo{base: b} }

func (c *devTo) Name() string    { return "devto" }
func (c *devTo) Available() bool { return true }

func (c *devTo) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	query := map[string]string{"tag": "openclaw", "per_page": "20"}

	var articles []struct {
		ID          json.Number `json:"id"`
		Title       string      `json:"title"`
		URL         string      `json:"url"`
		Description string      `json:"description"`
		PublishedAt string      `json:"published_at"`
		User        struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	if err := c.getJSON(ctx, devtoAPIURL, nil, query, &articles); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, article := range articles {
		id := "devto:" + article.ID.String()
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       article.Title,
			URL:         article.URL,
			Description: article.Description,
			Author:      article.User.Username,
			PublishedAt: article.PublishedAt,
			ContentType: "devto_article",
		})
	}
	return items, nil
}
