package collectors

import (
	"context"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// hackerNews fetches stories from the Algolia search API.
type hackerNews struct{ base }

func newHackerNews(b base) *hackerNews { return &hackerNews{base: b} }

func (c *hackerNews) Name() string    { return "hackernews" }
func (c *hackerNews) Available() bool { return true }

func (c *hackerNews) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	query := map[string]string{
		"query":       "openclaw",
		"tags":        "story",
		"hitsPerPage": "20",
	}

	var result struct {
		Hits []struct {
			ObjectID    string `json:"objectID"`
			Title       string `json:"title"`
			URL         string `json:"url"`
			Author      string `json:"author"`
			CreatedAt   string `json:"created_at"`
			Points      int    `json:"points"`
			NumComments int    `json:"num_comments"`
		} `json:"hits"`
	}
	if err := c.getJSON(ctx, hackerNewsAPIURL, nil, query, &result); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, hit := range result.Hits {
		id := "hn:" + hit.ObjectID
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       hit.Title,
			URL:         hit.URL,
			Author:      hit.Author,
			PublishedAt: hit.CreatedAt,
			ContentType: "hackernews_story",
			Metadata: map[string]any{
				"points":       hit.Points,
				"num_comments": hit.NumComments,
				"hn_url":       "https://news.ycombinator.com/item?id=" + hit.ObjectID,
			},
		})
	}
	return items, nil
}
