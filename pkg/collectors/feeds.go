package collectors

import (
	"context"

	"github.com/mmcdole/gofeed"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

func feedItemAuthor(entry *gofeed.Item) string {
	if len(entry.Authors) > 0 && entry.Authors[0] != nil {
		return entry.Authors[0].Name
	}
	if entry.DublinCoreExt != nil && len(entry.DublinCoreExt.Creator) > 0 {
		return entry.DublinCoreExt.Creator[0]
	}
	return ""
}

// blogFeed parses the official blog RSS feed for new posts.
type blogFeed struct{ base }

func newBlogFeed(b base) *blogFeed { return &blogFeed{base: b} }

func (c *blogFeed) Name() string    { return "blog_feed" }
func (c *blogFeed) Available() bool { return true }

func (c *blogFeed) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	feed, err := c.fetchFeed(ctx, officialBlogRSS)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, entry := range feed.Items {
		id := "blog:" + entry.Link
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       entry.Title,
			URL:         entry.Link,
			Description: entry.Description,
			PublishedAt: entry.Published,
			ContentType: "blog_post",
		})
	}
	return items, nil
}

// medium parses the tag feed for new articles.
type medium struct{ base }

func newMedium(b base) *medium { return &medium{base: b} }

func (c *medium) Name() string    { return "medium" }
func (c *medium) Available() bool { return true }

func (c *medium) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	feed, err := c.fetchFeed(ctx, mediumRSSURL)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, entry := range feed.Items {
		id := "medium:" + entry.Link
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       entry.Title,
			URL:         entry.Link,
			Description: entry.Description,
			Author:      feedItemAuthor(entry),
			PublishedAt: entry.Published,
			ContentType: "medium_article",
		})
	}
	return items, nil
}

// lobsters filters the front-page feed down to project mentions.
type lobsters struct{ base }

func newLobsters(b base) *lobsters { return &lobsters{base: b} }

func (c *lobsters) Name() string    { return "lobsters" }
func (c *lobsters) Available() bool { return true }

func (c *lobsters) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	feed, err := c.fetchFeed(ctx, lobstersRSSURL)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, entry := range feed.Items {
		if !matchesKeywords(searchKeywords, entry.Title, entry.Description) {
			continue
		}
		id := "lobsters:" + entry.Link
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       entry.Title,
			URL:         entry.Link,
			Description: entry.Description,
			PublishedAt: entry.Published,
			ContentType: "lobsters_story",
		})
	}
	return items, nil
}

// substack scans a fixed list of AI newsletter feeds for project mentions.
type substack struct{ base }

func newSubstack(b base) *substack { return &substack{base: b} }

func (c *substack) Name() string    { return "substack" }
func (c *substack) Available() bool { return true }

func (c *substack) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var items []domain.Item
	for _, feedURL := range substackFeeds {
		feed, err := c.fetchFeed(ctx, feedURL)
		if err != nil {
			// Dead feeds happen; collect what the rest give us.
			logger.WarnObj("newsletter feed failed", "collector_warn", map[string]any{
				"collector": c.Name(),
				"feed":      feedURL,
				"error":     err.Error(),
			})
			continue
		}

		for _, entry := range feed.Items {
			if !matchesKeywords(searchKeywords, entry.Title, entry.Description) {
				continue
			}
			id := "substack:" + entry.Link
			if st.IsCovered(id) {
				continue
			}
			items = append(items, domain.Item{
				ID:          id,
				Source:      c.Name(),
				Title:       entry.Title,
				URL:         entry.Link,
				Description: entry.Description,
				Author:      feedItemAuthor(entry),
				PublishedAt: entry.Published,
				ContentType: "newsletter_article",
				Metadata:    map[string]any{"feed_url": feedURL},
			})
		}
	}
	return items, nil
}

// academicKeywords widen the net for research-adjacent coverage.
var academicKeywords = append(append([]string{}, searchKeywords...), "AI assistant")

// academicNews scans CACM and Scientific American feeds for relevant articles.
type academicNews struct{ base }

func newAcademicNews(b base) *academicNews { return &academicNews{base: b} }

func (c *academicNews) Name() string    { return "academic_news" }
func (c *academicNews) Available() bool { return true }

func (c *academicNews) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var items []domain.Item
	for _, feedURL := range []string{cacmRSSURL, sciAmRSSURL} {
		feed, err := c.fetchFeed(ctx, feedURL)
		if err != nil {
			logger.WarnObj("academic feed failed", "collector_warn", map[string]any{
				"collector": c.Name(),
				"feed":      feedURL,
				"error":     err.Error(),
			})
			continue
		}

		for _, entry := range feed.Items {
			if !matchesKeywords(academicKeywords, entry.Title, entry.Description) {
				continue
			}
			id := "academic:" + entry.Link
			if st.IsCovered(id) {
				continue
			}
			items = append(items, domain.Item{
				ID:          id,
				Source:      c.Name(),
				Title:       entry.Title,
				URL:         entry.Link,
				Description: entry.Description,
				Author:      feedItemAuthor(entry),
				PublishedAt: entry.Published,
				ContentType: "academic_article",
				Metadata:    map[string]any{"feed_url": feedURL},
			})
		}
	}
	return items, nil
}

// g2Learning filters the G2 Learning Hub feed down to project mentions.
type g2Learning struct{ base }

func newG2Learning(b base) *g2Learning { return &g2Learning{base: b} }

func (c *g2Learning) Name() string    { return "g2_learning" }
func (c *g2Learning) Available() bool { return true }

func (c *g2Learning) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	feed, err := c.fetchFeed(ctx, g2LearningURL)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, entry := range feed.Items {
		if !matchesKeywords(searchKeywords, entry.Title, entry.Description) {
			continue
		}
		id := "g2:" + entry.Link
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       entry.Title,
			URL:         entry.Link,
			Description: entry.Description,
			Author:      feedItemAuthor(entry),
			PublishedAt: entry.Published,
			ContentType: "article",
		})
	}
	return items, nil
}

var securityKeywords = []string{"openclaw", "ai agent security", "ai assistant"}

// securityFeeds scans security vendor feeds for agent-relevant advisories.
type securityFeeds struct{ base }

func newSecurityFeeds(b base) *securityFeeds { return &securityFeeds{base: b} }

func (c *securityFeeds) Name() string    { return "security_feeds" }
func (c *securityFeeds) Available() bool { return true }

func (c *securityFeeds) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var items []domain.Item
	for _, feedURL := range securityRSSFeeds {
		feed, err := c.fetchFeed(ctx, feedURL)
		if err != nil {
			logger.WarnObj("security feed failed", "collector_warn", map[string]any{
				"collector": c.Name(),
				"feed":      feedURL,
				"error":     err.Error(),
			})
			continue
		}

		for _, entry := range feed.Items {
			if !matchesKeywords(securityKeywords, entry.Title, entry.Description) {
				continue
			}
			id := "security:" + entry.Link
			if st.IsCovered(id) {
				continue
			}
			items = append(items, domain.Item{
				ID:          id,
				Source:      c.Name(),
				Title:       entry.Title,
				URL:         entry.Link,
				Description: entry.Description,
				Author:      feedItemAuthor(entry),
				PublishedAt: entry.Published,
				ContentType: "security_article",
				Metadata:    map[string]any{"feed": feedURL},
			})
		}
	}
	return items, nil
}
