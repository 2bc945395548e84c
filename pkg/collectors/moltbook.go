package collectors

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// moltbook fetches tagged posts from the Moltbook API.
type moltbook struct{ base }

func newMoltbook(b base) *moltbook { return &moltbook{base: b} }

func (c *moltbook) Name() string    { return "moltbook" }
func (c *moltbook) Available() bool { return c.cfg.MoltbookToken != "" }

type moltbookPost struct {
	ID          json.Number     `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Content     string          `json:"content"`
	Author      json.RawMessage `json:"author"`
	CreatedAt   string          `json:"created_at"`
	PublishedAt string          `json:"published_at"`
	Tags        []string        `json:"tags"`
	Likes       int             `json:"likes"`
	Shares      int             `json:"shares"`
}

// authorName handles both string and object author payloads.
func (p moltbookPost) authorName() string {
	if len(p.Author) == 0 {
		return ""
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(p.Author, &obj); err == nil && obj.Name != "" {
		return obj.Name
	}
	var s string
	if err := json.Unmarshal(p.Author, &s); err == nil {
		return s
	}
	return ""
}

func (c *moltbook) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.MoltbookToken}
	query := map[string]string{"tag": "openclaw", "limit": "20"}

	body, err := c.getBody(ctx, moltbookAPIURL+"/posts", headers, query)
	if err != nil {
		return nil, err
	}

	// The endpoint returns either a bare array or an object with a posts key.
	var posts []moltbookPost
	if err := json.Unmarshal(body, &posts); err != nil {
		var wrapped struct {
			Posts []moltbookPost `json:"posts"`
		}
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("decode moltbook response: %w", err)
		}
		posts = wrapped.Posts
	}

	var items []domain.Item
	for _, post := range posts {
		id := "moltbook:" + post.ID.String()
		if st.IsCovered(id) {
			continue
		}

		title := post.Title
		if title == "" {
			title = clip(post.Content, 120)
		}
		publishedAt := post.CreatedAt
		if publishedAt == "" {
			publishedAt = post.PublishedAt
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       title,
			URL:         post.URL,
			Description: post.Content,
			Author:      post.authorName(),
			PublishedAt: publishedAt,
			ContentType: "moltbook_post",
			Metadata: map[string]any{
				"tags":   post.Tags,
				"likes":  post.Likes,
				"shares": post.Shares,
			},
		})
	}
	return items, nil
}
