package assemble

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/openclaw-hq/claw-digest/internal/config"
	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
)

const maxSectionTokens = 2500

// Generator produces the HTML body of one digest section.
type Generator interface {
	Available() bool
	GenerateSection(ctx context.Context, sectionID string, items []domain.Item) string
}

// Writer generates section HTML with Claude, degrading to a plain linked
// list whenever the API is not configured or a call fails.
type Writer struct {
	client            anthropic.Client
	available         bool
	model             string
	trendingThreshold int
	hotThreshold      int
}

// NewWriter builds a Writer from configuration. A missing API key is not an
// error; the writer simply reports unavailable and uses fallback rendering.
func NewWriter(cfg *config.Config) *Writer {
	w := &Writer{
		model:             cfg.ClaudeModel,
		trendingThreshold: cfg.TrendingThreshold,
		hotThreshold:      cfg.HotThreshold,
	}
	if w.trendingThreshold <= 0 {
		w.trendingThreshold = DefaultTrendingThreshold
	}
	if w.hotThreshold <= 0 {
		w.hotThreshold = DefaultHotThreshold
	}
	if cfg.AnthropicAPIKey != "" {
		w.client = anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
		w.available = true
		logger.InfoObj("anthropic client initialized", "writer_init", map[string]any{
			"model": w.model,
		})
	}
	return w
}

func (w *Writer) Available() bool { return w.available }

// GenerateSection returns HTML for a section. Fallback rendering is always
// produced on any failure path, so the digest never loses a section to an
// upstream model error.
func (w *Writer) GenerateSection(ctx context.Context, sectionID string, items []domain.Item) string {
	if len(items) == 0 {
		return ""
	}

	prompt, ok := sectionPrompts[sectionID]
	if !ok {
		logger.WarnObj("no prompt template for section", "writer_fallback", map[string]any{
			"section": sectionID,
		})
		return w.fallbackHTML(items)
	}
	if !w.available {
		logger.InfoObj("ai unavailable; rendering fallback list", "writer_fallback", map[string]any{
			"section": sectionID,
		})
		return w.fallbackHTML(items)
	}

	userPrompt := strings.Replace(prompt, "{data}", w.formatItems(items), 1)

	msg, err := w.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(w.model),
		MaxTokens: maxSectionTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		logger.ErrorObj("claude call failed; rendering fallback list", "writer_error", map[string]any{
			"section": sectionID,
			"error":   err.Error(),
		})
		return w.fallbackHTML(items)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(tb.Text)
		}
	}
	content := fixTruncatedHTML(sb.String())
	if strings.TrimSpace(content) == "" {
		return w.fallbackHTML(items)
	}

	logger.InfoObj("generated section content", "writer_done", map[string]any{
		"section": sectionID,
		"chars":   len(content),
	})
	return content
}

// rankItems orders items by engagement, highest first, preserving input
// order between equals.
func rankItems(items []domain.Item) []domain.Item {
	ranked := make([]domain.Item, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i]) > Score(ranked[j])
	})
	return ranked
}

// formatItems renders the ranked items as the prompt data block.
func (w *Writer) formatItems(items []domain.Item) string {
	ranked := rankItems(items)

	parts := make([]string, 0, len(ranked))
	for _, item := range ranked {
		eng := Score(item)
		label := ""
		if tier := TierFor(eng, w.trendingThreshold, w.hotThreshold); tier != "" {
			label = " [" + tier + "]"
		}

		lines := []string{fmt.Sprintf("- Title: %s%s", item.Title, label)}
		if item.URL != "" {
			lines = append(lines, "  URL: "+item.URL)
		}
		if item.Description != "" {
			if desc := Clean(item.Description); desc != "" {
				lines = append(lines, "  Description: "+desc)
			}
		}
		if item.Author != "" {
			lines = append(lines, "  Author: "+item.Author)
		}
		if item.PublishedAt != "" {
			lines = append(lines, "  Published: "+item.PublishedAt)
		}
		if eng > 0 {
			lines = append(lines, fmt.Sprintf("  Engagement: %d", eng))
		}
		for key, value := range item.Metadata {
			lines = append(lines, fmt.Sprintf("  %s: %v", key, value))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// fallbackHTML renders a plain linked list when AI generation is off.
func (w *Writer) fallbackHTML(items []domain.Item) string {
	if len(items) == 0 {
		return ""
	}
	parts := []string{"<ul>"}
	for _, item := range items {
		title := html.EscapeString(item.Title)
		link := title
		if item.URL != "" {
			link = fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(item.URL), title)
		}

		desc := ""
		if cleaned := Clean(item.Description); cleaned != "" {
			// Suppress descriptions that just repeat the title.
			if !strings.HasPrefix(item.Title, clipPrefix(cleaned, 40)) {
				desc = " &mdash; " + html.EscapeString(cleaned)
			}
		}
		parts = append(parts, "  <li>"+link+desc+"</li>")
	}
	parts = append(parts, "</ul>")
	return strings.Join(parts, "\n")
}

func clipPrefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// closableTags are balanced in model output; truncated generations can leave
// them open.
var closableTags = []string{"strong", "a", "li", "ul"}

var (
	openTagRes  = map[string]*regexp.Regexp{}
	closeTagRes = map[string]*regexp.Regexp{}
)

func init() {
	for _, tag := range closableTags {
		openTagRes[tag] = regexp.MustCompile(`<` + tag + `[\s>]`)
		closeTagRes[tag] = regexp.MustCompile(`</` + tag + `>`)
	}
}

// fixTruncatedHTML appends closing tags for any left unclosed.
func fixTruncatedHTML(content string) string {
	for _, tag := range closableTags {
		open := len(openTagRes[tag].FindAllString(content, -1))
		closed := len(closeTagRes[tag].FindAllString(content, -1))
		for i := 0; i < open-closed; i++ {
			content += "</" + tag + ">"
		}
	}
	return content
}
