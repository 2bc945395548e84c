package collectors

import (
	"context"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

type newsAPIArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
}

func (b base) searchNewsAPI(ctx context.Context, query map[string]string) ([]newsAPIArticle, error) {
	query["apiKey"] = b.cfg.NewsAPIKey
	query["sortBy"] = "publishedAt"

	var result struct {
		Articles []newsAPIArticle `json:"articles"`
	}
	if err := b.getJSON(ctx, newsAPIURL, nil, query, &result); err != nil {
		return nil, err
	}
	return result.Articles, nil
}

// techNews fetches coverage from major tech outlets via NewsAPI.
type techNews struct{ base }

func newTechNews(b base) *techNews { return &techNews{base: b} }

func (c *techNews) Name() string    { return "tech_news" }
func (c *techNews) Available() bool { return c.cfg.NewsAPIKey != "" }

func (c *techNews) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	articles, err := c.searchNewsAPI(ctx, map[string]string{
		"q":        "openclaw",
		"domains":  newsAPIDomains,
		"pageSize": "20",
	})
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, article := range articles {
		id := "news:" + hashID(article.URL)
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       article.Title,
			URL:         article.URL,
			Description: article.Description,
			Author:      article.Author,
			PublishedAt: article.PublishedAt,
			ContentType: "tech_news",
			Metadata: map[string]any{
				"source_name": article.Source.Name,
				"source_id":   article.Source.ID,
			},
		})
	}
	return items, nil
}

// linkedInNews fetches LinkedIn-related coverage via NewsAPI.
type linkedInNews struct{ base }

func newLinkedInNews(b base) *linkedInNews { return &linkedInNews{base: b} }

func (c *linkedInNews) Name() string    { return "linkedin_news" }
func (c *linkedInNews) Available() bool { return c.cfg.NewsAPIKey != "" }

func (c *linkedInNews) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	articles, err := c.searchNewsAPI(ctx, map[string]string{
		"q":        "openclaw linkedin",
		"pageSize": "10",
	})
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, article := range articles {
		id := "linkedin:" + hashID(article.URL)
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       article.Title,
			URL:         article.URL,
			Description: article.Description,
			Author:      article.Author,
			PublishedAt: article.PublishedAt,
			ContentType: "linkedin_article",
			Metadata: map[string]any{
				"source_name": article.Source.Name,
			},
		})
	}
	return items, nil
}
