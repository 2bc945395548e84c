package assemble

import (
	"context"
	"strings"
	"testing"

	"github.com/openclaw-hq/claw-digest/internal/config"
	"github.com/openclaw-hq/claw-digest/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		ClaudeModel:       "claude-sonnet-4-20250514",
		TrendingThreshold: DefaultTrendingThreshold,
		HotThreshold:      DefaultHotThreshold,
	}
}

func TestWriterUnavailableWithoutKey(t *testing.T) {
	w := NewWriter(testConfig())
	if w.Available() {
		t.Fatal("writer should be unavailable without an API key")
	}
}

func TestGenerateSectionFallsBackWithoutKey(t *testing.T) {
	w := NewWriter(testConfig())
	items := []domain.Item{
		{Title: "Claws Out v2.1.0", URL: "https://github.com/openclaw/openclaw/releases/v2.1.0"},
		{Title: "No link item"},
	}
	got := w.GenerateSection(context.Background(), "releases", items)
	if !strings.HasPrefix(got, "<ul>") || !strings.HasSuffix(got, "</ul>") {
		t.Fatalf("fallback should be a list, got %q", got)
	}
	if !strings.Contains(got, `<a href="https://github.com/openclaw/openclaw/releases/v2.1.0">Claws Out v2.1.0</a>`) {
		t.Errorf("linked item missing: %q", got)
	}
	if !strings.Contains(got, "<li>No link item</li>") {
		t.Errorf("unlinked item missing: %q", got)
	}
}

func TestGenerateSectionEmptyItems(t *testing.T) {
	w := NewWriter(testConfig())
	if got := w.GenerateSection(context.Background(), "news", nil); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestFallbackHTMLEscapes(t *testing.T) {
	w := NewWriter(testConfig())
	items := []domain.Item{{
		Title:       `<script>alert("x")</script>`,
		URL:         `https://x.test/?a=1&b=2`,
		Description: "Totally <b>safe</b> & sound",
	}}
	got := w.fallbackHTML(items)
	if strings.Contains(got, "<script>") {
		t.Fatalf("title not escaped: %q", got)
	}
	if !strings.Contains(got, "a=1&amp;b=2") {
		t.Errorf("URL not escaped: %q", got)
	}
	if !strings.Contains(got, "safe &amp; sound") {
		t.Errorf("description not escaped: %q", got)
	}
}

func TestFallbackHTMLSuppressesRedundantDescription(t *testing.T) {
	w := NewWriter(testConfig())
	items := []domain.Item{{
		Title:       "OpenClaw ships multi-agent workflows in nightly builds",
		Description: "OpenClaw ships multi-agent workflows in nightly builds today.",
	}}
	got := w.fallbackHTML(items)
	if strings.Contains(got, "&mdash;") {
		t.Fatalf("redundant description should be suppressed: %q", got)
	}
}

func TestFormatItemsRankedWithTiers(t *testing.T) {
	w := NewWriter(testConfig())
	items := []domain.Item{
		{Title: "quiet", Metadata: map[string]any{"likes": 5}},
		{Title: "viral", URL: "https://x.test/1", Metadata: map[string]any{"like_count": 150, "retweet_count": 50}},
		{Title: "warm", Metadata: map[string]any{"points": 50, "num_comments": 10}},
	}
	got := w.formatItems(items)

	viral := strings.Index(got, "viral")
	warm := strings.Index(got, "warm")
	quiet := strings.Index(got, "quiet")
	if !(viral < warm && warm < quiet) {
		t.Fatalf("items not ranked by engagement:\n%s", got)
	}
	if !strings.Contains(got, "- Title: viral [TRENDING]") {
		t.Errorf("missing TRENDING label:\n%s", got)
	}
	if !strings.Contains(got, "- Title: warm [HOT]") {
		t.Errorf("missing HOT label:\n%s", got)
	}
	if strings.Contains(got, "quiet [") {
		t.Errorf("quiet item should carry no label:\n%s", got)
	}
	if !strings.Contains(got, "Engagement: 250") {
		t.Errorf("missing engagement line:\n%s", got)
	}
	if !strings.Contains(got, "URL: https://x.test/1") {
		t.Errorf("missing URL line:\n%s", got)
	}
}

func TestRankItemsStableOnEqualScores(t *testing.T) {
	items := []domain.Item{
		{Title: "first", Metadata: map[string]any{"likes": 10}},
		{Title: "second", Metadata: map[string]any{"upvotes": 10}},
		{Title: "third", Metadata: map[string]any{"score": 10}},
		{Title: "top", Metadata: map[string]any{"likes": 50}},
		{Title: "fourth", Metadata: map[string]any{"points": 10}},
	}
	ranked := rankItems(items)

	if ranked[0].Title != "top" {
		t.Fatalf("ranked[0] = %q, want %q", ranked[0].Title, "top")
	}
	// Equal scores keep their input order.
	wantOrder := []string{"first", "second", "third", "fourth"}
	for i, want := range wantOrder {
		if got := ranked[i+1].Title; got != want {
			t.Errorf("ranked[%d] = %q, want %q (equal-score order must match input)", i+1, got, want)
		}
	}

	// Input slice is not reordered.
	if items[0].Title != "first" || items[3].Title != "top" {
		t.Errorf("rankItems mutated its input: %+v", items)
	}
}

func TestFixTruncatedHTML(t *testing.T) {
	cases := []struct{ in, want string }{
		{"<p>fine</p>", "<p>fine</p>"},
		{"<ul><li><strong>cut off", "<ul><li><strong>cut off</strong></li></ul>"},
		{`<a href="https://x.test">dangling`, `<a href="https://x.test">dangling</a>`},
		{"<ul><li>a</li><li>b</li></ul>", "<ul><li>a</li><li>b</li></ul>"},
	}
	for _, tc := range cases {
		if got := fixTruncatedHTML(tc.in); got != tc.want {
			t.Errorf("fixTruncatedHTML(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
