package collectors

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

func (b base) fetchDoc(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := b.getBody(ctx, url, nil, nil)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// cardText extracts the trimmed text of the first match within a selection.
func cardText(card *goquery.Selection, selector string) string {
	return strings.TrimSpace(card.Find(selector).First().Text())
}

func cardLink(card *goquery.Selection) string {
	href, _ := card.Find("a[href]").First().Attr("href")
	return href
}

// showcase scrapes the showcase and shoutouts pages for featured projects.
type showcase struct{ base }

func newShowcase(b base) *showcase { return &showcase{base: b} }

func (c *showcase) Name() string    { return "showcase" }
func (c *showcase) Available() bool { return true }

func (c *showcase) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var items []domain.Item
	for _, pageURL := range []string{showcaseURL, shoutoutsURL} {
		pageItems, err := c.scrapePage(ctx, pageURL, st)
		if err != nil {
			return nil, err
		}
		items = append(items, pageItems...)
	}
	return items, nil
}

func (c *showcase) scrapePage(ctx context.Context, pageURL string, st state.Store) ([]domain.Item, error) {
	doc, err := c.fetchDoc(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	cards := doc.Find("article[class*=card], div[class*=card]")
	if cards.Length() == 0 {
		cards = doc.Find("article")
	}

	var items []domain.Item
	cards.Each(func(_ int, card *goquery.Selection) {
		title := cardText(card, "h2, h3, h4, a")
		if title == "" {
			return
		}
		link := cardLink(card)

		key := link
		if key == "" {
			key = title
		}
		id := "showcase:" + hashID(key)
		if st.IsCovered(id) {
			return
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       title,
			URL:         link,
			Description: cardText(card, "p"),
			ContentType: "showcase",
			Metadata:    map[string]any{"page": pageURL},
		})
	})
	return items, nil
}

// navHeadings are boilerplate headings to ignore when scraping docs pages.
var navHeadings = map[string]struct{}{
	"docs": {}, "blog": {}, "search": {}, "start": {}, "contact": {},
	"cookie": {}, "privacy": {}, "terms": {}, "faq": {}, "changelog": {},
	"help": {}, "about": {}, "home": {}, "login": {}, "sign up": {},
	"integrations": {}, "troubleshooting": {},
}

// docsUpdates scrapes the docs changelog for new entries.
type docsUpdates struct{ base }

func newDocsUpdates(b base) *docsUpdates { return &docsUpdates{base: b} }

func (c *docsUpdates) Name() string    { return "docs_updates" }
func (c *docsUpdates) Available() bool { return true }

func (c *docsUpdates) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	// Only dedicated changelog paths are scraped, never the homepage.
	for _, path := range []string{"/changelog", "/updates"} {
		url := docsURL + path
		items, err := c.scrapeChangelog(ctx, url, st)
		if err != nil {
			logger.DebugObj("no docs content at path", "collector_debug", map[string]any{
				"collector": c.Name(),
				"url":       url,
			})
			continue
		}
		if len(items) > 0 {
			return items, nil
		}
	}
	return nil, nil
}

func (c *docsUpdates) scrapeChangelog(ctx context.Context, url string, st state.Store) ([]domain.Item, error) {
	doc, err := c.fetchDoc(ctx, url)
	if err != nil {
		return nil, err
	}

	main := doc.Find("main").First()
	if main.Length() == 0 {
		main = doc.Find("article").First()
	}
	if main.Length() == 0 {
		main = doc.Selection
	}

	var items []domain.Item
	main.Find("h2, h3").Each(func(_ int, heading *goquery.Selection) {
		title := strings.TrimSpace(heading.Text())
		if len(title) < 5 || len(title) > 200 {
			return
		}
		if _, skip := navHeadings[strings.Trim(strings.ToLower(title), "# ")]; skip {
			return
		}

		id := "docs:" + hashID(title)
		if st.IsCovered(id) {
			return
		}

		description := ""
		next := heading.Next()
		if next.Length() > 0 && next.Is("p, ul, ol, div") {
			description = clip(strings.TrimSpace(next.Text()), 500)
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       title,
			URL:         url,
			Description: description,
			ContentType: "docs_update",
		})
	})
	return items, nil
}

// learnClawSkipTitles are nav and section headings, not changelog entries.
var learnClawSkipTitles = map[string]struct{}{
	"added": {}, "changed": {}, "fixed": {}, "removed": {}, "deprecated": {},
	"security": {}, "start": {}, "docs": {}, "blog": {}, "faq": {},
	"contact": {}, "search": {}, "home": {}, "start here": {},
	"learning paths": {}, "labs": {}, "core concepts": {}, "integrations": {},
	"troubleshooting": {}, "changelog": {}, "cookie policy": {},
	"privacy policy": {}, "terms of service": {},
}

// learnClaw scrapes the LearnClaw changelog for release entries.
type learnClaw struct{ base }

func newLearnClaw(b base) *learnClaw { return &learnClaw{base: b} }

func (c *learnClaw) Name() string    { return "learnclaw" }
func (c *learnClaw) Available() bool { return true }

func (c *learnClaw) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	doc, err := c.fetchDoc(ctx, learnClawURL)
	if err != nil {
		return nil, err
	}

	main := doc.Find("main").First()
	if main.Length() == 0 {
		main = doc.Find("article").First()
	}
	if main.Length() == 0 {
		main = doc.Selection
	}

	var items []domain.Item
	// Each h2 is a release heading; body runs until the next h2.
	main.Find("h2").Each(func(_ int, heading *goquery.Selection) {
		title := strings.TrimSpace(heading.Text())
		if len(title) < 5 || len(title) > 200 {
			return
		}
		if _, skip := learnClawSkipTitles[strings.Trim(strings.ToLower(title), "# ")]; skip {
			return
		}

		id := "learnclaw:" + hashID(title)
		if st.IsCovered(id) {
			return
		}

		link := learnClawURL
		if href, ok := heading.Find("a[href]").First().Attr("href"); ok {
			link = href
		}

		var parts []string
		for sibling := heading.Next(); sibling.Length() > 0 && !sibling.Is("h2"); sibling = sibling.Next() {
			if text := strings.TrimSpace(sibling.Text()); text != "" {
				parts = append(parts, text)
			}
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       title,
			URL:         link,
			Description: clip(strings.Join(parts, " "), 500),
			ContentType: "changelog",
		})
	})
	return items, nil
}

// tldrNews scrapes TLDR newsletter pages for project mentions.
type tldrNews struct{ base }

func newTldrNews(b base) *tldrNews { return &tldrNews{base: b} }

func (c *tldrNews) Name() string    { return "tldr_news" }
func (c *tldrNews) Available() bool { return true }

func (c *tldrNews) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	doc, err := c.fetchDoc(ctx, tldrURL)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return
		}

		title := strings.TrimSpace(link.Text())
		block := strings.TrimSpace(link.Parent().Text())
		if !matchesKeywords(searchKeywords, title, block) {
			return
		}

		id := "tldr:" + hashID(href)
		if st.IsCovered(id) {
			return
		}

		if title == "" {
			title = href
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       title,
			URL:         href,
			Description: clip(block, 500),
			ContentType: "tldr_mention",
		})
	})
	return items, nil
}
