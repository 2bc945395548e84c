package collectors

import (
	"context"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// twitter fetches recent mentions via the v2 search API.
type twitter struct{ base }

func newTwitter(b base) *twitter { return &twitter{base: b} }

func (c *twitter) Name() string    { return "twitter" }
func (c *twitter) Available() bool { return c.cfg.TwitterBearerToken != "" }

func (c *twitter) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.TwitterBearerToken}
	query := map[string]string{
		"query":        "openclaw",
		"max_results":  "20",
		"tweet.fields": "created_at,public_metrics,author_id",
	}

	var result struct {
		Data []struct {
			ID            string `json:"id"`
			Text          string `json:"text"`
			AuthorID      string `json:"author_id"`
			CreatedAt     string `json:"created_at"`
			PublicMetrics struct {
				LikeCount    int `json:"like_count"`
				RetweetCount int `json:"retweet_count"`
				ReplyCount   int `json:"reply_count"`
				QuoteCount   int `json:"quote_count"`
			} `json:"public_metrics"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, twitterAPIURL+"/tweets/search/recent", headers, query, &result); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, tweet := range result.Data {
		id := "tweet:" + tweet.ID
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       clip(tweet.Text, 120),
			URL:         "https://twitter.com/i/web/status/" + tweet.ID,
			Description: tweet.Text,
			Author:      tweet.AuthorID,
			PublishedAt: tweet.CreatedAt,
			ContentType: "tweet",
			Metadata: map[string]any{
				"like_count":    tweet.PublicMetrics.LikeCount,
				"retweet_count": tweet.PublicMetrics.RetweetCount,
				"reply_count":   tweet.PublicMetrics.ReplyCount,
				"quote_count":   tweet.PublicMetrics.QuoteCount,
			},
		})
	}
	return items, nil
}
