package collectors

import (
	"context"
	"fmt"
	"strconv"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// wikipedia fetches recent revisions of the project's article.
type wikipedia struct{ base }

func newWikipedia(b base) *wikipedia { return &wikipedia{base: b} }

func (c *wikipedia) Name() string    { return "wikipedia" }
func (c *wikipedia) Available() bool { return true }

func (c *wikipedia) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	query := map[string]string{
		"action":  "query",
		"titles":  wikipediaArticle,
		"prop":    "revisions",
		"rvlimit": "10",
		"rvprop":  "ids|timestamp|user|comment",
		"format":  "json",
	}

	var result struct {
		Query struct {
			Pages map[string]struct {
				Revisions []struct {
					RevID     int64  `json:"revid"`
					User      string `json:"user"`
					Timestamp string `json:"timestamp"`
					Comment   string `json:"comment"`
				} `json:"revisions"`
			} `json:"pages"`
		} `json:"query"`
	}
	if err := c.getJSON(ctx, wikipediaAPIURL, nil, query, &result); err != nil {
		return nil, err
	}

	var items []domain.Item
	for pageID, page := range result.Query.Pages {
		// Page id -1 means the article does not exist.
		if pageID == "-1" {
			logger.InfoObj("wikipedia article not found", "collector_info", map[string]any{
				"collector": c.Name(),
				"article":   wikipediaArticle,
			})
			continue
		}

		for _, rev := range page.Revisions {
			revID := strconv.FormatInt(rev.RevID, 10)
			id := "wiki:" + revID
			if st.IsCovered(id) {
				continue
			}

			summary := rev.Comment
			if summary == "" {
				summary = "No summary"
			}

			items = append(items, domain.Item{
				ID:          id,
				Source:      c.Name(),
				Title:       fmt.Sprintf("Wikipedia edit: %s", summary),
				URL:         "https://en.wikipedia.org/w/index.php?oldid=" + revID,
				Description: rev.Comment,
				Author:      rev.User,
				PublishedAt: rev.Timestamp,
				ContentType: "wiki_revision",
				Metadata:    map[string]any{"revid": rev.RevID},
			})
		}
	}
	return items, nil
}
