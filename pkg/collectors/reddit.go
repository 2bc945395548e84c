package collectors

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// reddit searches configured subreddits using an app-only OAuth token.
type reddit struct{ base }

func newReddit(b base) *reddit { return &reddit{base: b} }

func (c *reddit) Name() string { return "reddit" }

func (c *reddit) Available() bool {
	return c.cfg.RedditClientID != "" && c.cfg.RedditClientSecret != ""
}

func (c *reddit) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	token, err := c.appToken(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization": "Bearer " + token,
		"User-Agent":    c.cfg.RedditUserAgent,
	}

	var items []domain.Item
	for _, subreddit := range redditSubreddits {
		posts, err := c.searchSubreddit(ctx, headers, subreddit, st)
		if err != nil {
			// One unreachable subreddit must not sink the rest.
			logger.WarnObj("subreddit search failed", "collector_warn", map[string]any{
				"collector": c.Name(),
				"subreddit": subreddit,
				"error":     err.Error(),
			})
			continue
		}
		items = append(items, posts...)
	}
	return items, nil
}

// appToken obtains a client-credentials token for the script app.
func (c *reddit) appToken(ctx context.Context) (string, error) {
	basic := base64.StdEncoding.EncodeToString(
		[]byte(c.cfg.RedditClientID + ":" + c.cfg.RedditClientSecret))
	headers := map[string]string{
		"Authorization": "Basic " + basic,
		"User-Agent":    c.cfg.RedditUserAgent,
	}
	form := map[string]string{"grant_type": "client_credentials"}

	resp, err := c.client.PostForm(ctx, redditTokenURL, headers, form)
	if err != nil {
		return "", fmt.Errorf("reddit token request: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return "", fmt.Errorf("reddit token request returned status %d", resp.StatusCode())
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return "", fmt.Errorf("decode reddit token: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("reddit token response missing access_token")
	}
	return token.AccessToken, nil
}

func (c *reddit) searchSubreddit(ctx context.Context, headers map[string]string, subreddit string, st state.Store) ([]domain.Item, error) {
	url := fmt.Sprintf("%s/r/%s/search", redditOAuthBase, subreddit)
	query := map[string]string{
		"q":           "openclaw",
		"limit":       "10",
		"restrict_sr": "1",
	}

	var listing struct {
		Data struct {
			Children []struct {
				Data struct {
					ID          string  `json:"id"`
					Title       string  `json:"title"`
					Permalink   string  `json:"permalink"`
					Selftext    string  `json:"selftext"`
					Author      string  `json:"author"`
					Score       int     `json:"score"`
					NumComments int     `json:"num_comments"`
					UpvoteRatio float64 `json:"upvote_ratio"`
				} `json:"data"`
			} `json:"children"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, url, headers, query, &listing); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, child := range listing.Data.Children {
		post := child.Data
		id := "reddit:" + post.ID
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       post.Title,
			URL:         "https://reddit.com" + post.Permalink,
			Description: clip(post.Selftext, 500),
			Author:      post.Author,
			ContentType: "reddit_post",
			Metadata: map[string]any{
				"subreddit":    subreddit,
				"score":        post.Score,
				"num_comments": post.NumComments,
				"upvote_ratio": post.UpvoteRatio,
			},
		})
	}
	return items, nil
}
