package collectors

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// arxivPapers fetches recent papers from the ArXiv Atom API.
type arxivPapers struct{ base }

func newArxivPapers(b base) *arxivPapers { return &arxivPapers{base: b} }

func (c *arxivPapers) Name() string    { return "arxiv_papers" }
func (c *arxivPapers) Available() bool { return true }

type arxivFeed struct {
	Entries []struct {
		ID        string `xml:"id"`
		Title     string `xml:"title"`
		Summary   string `xml:"summary"`
		Published string `xml:"published"`
		Authors   []struct {
			Name string `xml:"name"`
		} `xml:"author"`
	} `xml:"entry"`
}

func (c *arxivPapers) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	query := map[string]string{
		"search_query": "all:openclaw+OR+all:AI+personal+assistant",
		"start":        "0",
		"max_results":  "10",
		"sortBy":       "submittedDate",
		"sortOrder":    "descending",
	}

	body, err := c.getBody(ctx, arxivAPIURL, nil, query)
	if err != nil {
		return nil, err
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decode arxiv feed: %w", err)
	}

	var items []domain.Item
	for _, entry := range feed.Entries {
		entryURL := strings.TrimSpace(entry.ID)
		if entryURL == "" {
			continue
		}

		// Entry ids look like http://arxiv.org/abs/2401.12345v1.
		trimmed := strings.TrimRight(entryURL, "/")
		arxivID := trimmed[strings.LastIndex(trimmed, "/")+1:]

		id := "arxiv:" + arxivID
		if st.IsCovered(id) {
			continue
		}

		author := ""
		if len(entry.Authors) > 0 {
			author = strings.TrimSpace(entry.Authors[0].Name)
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       strings.TrimSpace(entry.Title),
			URL:         entryURL,
			Description: clip(strings.TrimSpace(entry.Summary), 500),
			Author:      author,
			PublishedAt: strings.TrimSpace(entry.Published),
			ContentType: "research_paper",
			Metadata:    map[string]any{"arxiv_id": arxivID},
		})
	}
	return items, nil
}
