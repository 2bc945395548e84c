package collectors

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// scrapeListingCards pulls title/link/description cards off a directory-style
// page and converts them into items under the given id prefix.
func scrapeListingCards(doc *goquery.Document, baseURL, selector, prefix, source, contentType string, st state.Store, metadata map[string]any) []domain.Item {
	var items []domain.Item
	doc.Find(selector).Each(func(_ int, card *goquery.Selection) {
		title := cardText(card, "h2, h3, h4, .title, .name")
		if title == "" {
			return
		}

		url := cardLink(card)
		if url != "" && strings.HasPrefix(url, "/") {
			url = baseURL + url
		}

		id := prefix + ":" + hashID(title)
		if st.IsCovered(id) {
			return
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      source,
			Title:       title,
			URL:         url,
			Description: cardText(card, "p, .description, .summary"),
			ContentType: contentType,
			Metadata:    metadata,
		})
	})
	return items
}

// claw360 scrapes the CLAW360 directory for service listings.
type claw360 struct{ base }

func newClaw360(b base) *claw360 { return &claw360{base: b} }

func (c *claw360) Name() string    { return "claw360" }
func (c *claw360) Available() bool { return true }

func (c *claw360) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	doc, err := c.fetchDoc(ctx, claw360URL)
	if err != nil {
		return nil, err
	}
	return scrapeListingCards(doc, claw360URL,
		"article, .card, .service, .listing, .integration",
		"claw360", c.Name(), "service_listing", st, nil), nil
}

// clawhunt scrapes both ClawHunt sites for product and bounty listings.
type clawhunt struct{ base }

func newClawhunt(b base) *clawhunt { return &clawhunt{base: b} }

func (c *clawhunt) Name() string    { return "clawhunt" }
func (c *clawhunt) Available() bool { return true }

func (c *clawhunt) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var items []domain.Item
	for _, baseURL := range []string{clawhuntSpaceURL, clawhuntShURL} {
		doc, err := c.fetchDoc(ctx, baseURL)
		if err != nil {
			logger.WarnObj("clawhunt site unreachable", "collector_warn", map[string]any{
				"collector": c.Name(),
				"site":      baseURL,
				"error":     err.Error(),
			})
			continue
		}
		items = append(items, scrapeListingCards(doc, baseURL,
			"article, .card, .product, .bounty, .listing, .item",
			"clawhunt", c.Name(), "product_listing", st,
			map[string]any{"site": baseURL})...)
	}
	return items, nil
}

// alternativeTo scrapes listings plus user reviews from AlternativeTo.
type alternativeTo struct{ base }

func newAlternativeTo(b base) *alternativeTo { return &alternativeTo{base: b} }

func (c *alternativeTo) Name() string    { return "alternativeto" }
func (c *alternativeTo) Available() bool { return true }

func (c *alternativeTo) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	doc, err := c.fetchDoc(ctx, alternativeToURL)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	doc.Find(".app-listing, .alternative-item, article, .card, .listing-item").Each(func(_ int, card *goquery.Selection) {
		title := cardText(card, "h2, h3, h4, .title, .name, a.app-name")
		if title == "" {
			return
		}

		url := cardLink(card)
		if url != "" && strings.HasPrefix(url, "/") {
			url = "https://alternativeto.net" + url
		}

		id := "altto:" + hashID(title)
		if st.IsCovered(id) {
			return
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       title,
			URL:         url,
			Description: cardText(card, "p, .description, .text"),
			ContentType: "alternative",
		})
	})

	doc.Find(".comment, .review, .user-review").Each(func(_ int, comment *goquery.Selection) {
		text := cardText(comment, "p, .text, .body, .content")
		if text == "" {
			return
		}

		id := "altto:" + hashID(text)
		if st.IsCovered(id) {
			return
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       "Review on AlternativeTo",
			URL:         alternativeToURL,
			Description: clip(text, 500),
			Author:      cardText(comment, ".user, .author, .username"),
			ContentType: "review",
		})
	})

	return items, nil
}

// productHunt scrapes the product page for info, upvotes, and reviews.
type productHunt struct{ base }

func newProductHunt(b base) *productHunt { return &productHunt{base: b} }

func (c *productHunt) Name() string    { return "product_hunt" }
func (c *productHunt) Available() bool { return true }

func (c *productHunt) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	doc, err := c.fetchDoc(ctx, productHuntURL)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	title := strings.TrimSpace(doc.Find("h1, .product-name, [data-test='product-name']").First().Text())
	if title != "" {
		tagline := strings.TrimSpace(doc.Find(".tagline, .product-tagline, [data-test='product-tagline']").First().Text())
		upvotes := strings.TrimSpace(doc.Find(".upvote-count, [data-test='vote-count'], .vote-count").First().Text())

		id := "ph:" + hashID(title)
		if !st.IsCovered(id) {
			items = append(items, domain.Item{
				ID:          id,
				Source:      c.Name(),
				Title:       "Product Hunt: " + title,
				URL:         productHuntURL,
				Description: tagline,
				ContentType: "product_listing",
				Metadata:    map[string]any{"upvotes": upvotes},
			})
		}
	}

	doc.Find(".review, .comment, [data-test='review']").Each(func(_ int, review *goquery.Selection) {
		text := cardText(review, "p, .text, .body, .content")
		if text == "" {
			return
		}

		id := "ph:" + hashID(text)
		if st.IsCovered(id) {
			return
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       "Product Hunt review",
			URL:         productHuntURL,
			Description: clip(text, 500),
			Author:      cardText(review, ".user, .author, .username"),
			ContentType: "review",
		})
	})

	return items, nil
}

// digitalOcean snapshots the marketplace listing page once per day.
type digitalOcean struct {
	base
	now func() time.Time
}

func newDigitalOcean(b base) *digitalOcean { return &digitalOcean{base: b, now: time.Now} }

func (c *digitalOcean) Name() string    { return "digitalocean" }
func (c *digitalOcean) Available() bool { return true }

func (c *digitalOcean) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	today := c.now().UTC().Format("2006-01-02")
	id := "do:" + today
	if st.IsCovered(id) {
		return nil, nil
	}

	doc, err := c.fetchDoc(ctx, digitalOceanURL)
	if err != nil {
		logger.WarnObj("marketplace page unavailable", "collector_warn", map[string]any{
			"collector": c.Name(),
			"error":     err.Error(),
		})
		return nil, nil
	}

	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = "OpenClaw on DigitalOcean"
	}

	description, _ := doc.Find("meta[name=description]").First().Attr("content")
	if description == "" {
		description = strings.TrimSpace(doc.Find("p").First().Text())
	}

	stats := map[string]any{}
	doc.Find("[class*=stat], [class*=Stat]").Each(func(_ int, el *goquery.Selection) {
		if text := strings.TrimSpace(el.Text()); text != "" {
			stats["stat_"+strconv.Itoa(len(stats))] = text
		}
	})

	return []domain.Item{{
		ID:          id,
		Source:      c.Name(),
		Title:       title,
		URL:         digitalOceanURL,
		Description: clip(description, 500),
		ContentType: "marketplace",
		Metadata:    stats,
	}}, nil
}
