package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openclaw-hq/claw-digest/internal/config"
	"github.com/openclaw-hq/claw-digest/internal/domain"
)

func testRenderer(t *testing.T) (*Renderer, *config.Config) {
	t.Helper()
	docs := t.TempDir()
	cfg := &config.Config{
		TemplatesDir: "../../templates",
		DocsDir:      docs,
		IssuesDir:    filepath.Join(docs, "issues"),
		SiteURL:      "https://news.openclaw.dev",
	}
	r, err := NewRenderer(cfg)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r, cfg
}

func testIssue(date string) domain.Issue {
	return domain.NewIssue(date, []domain.Section{
		{
			ID:      "releases",
			Title:   "Releases",
			Content: "<ul>\n  <li><a href=\"https://github.com/openclaw/openclaw\">v2.1.0</a></li>\n</ul>",
			Items:   []domain.Item{{ID: "release:v2.1.0", Title: "v2.1.0"}},
		},
		{
			ID:      "news",
			Title:   "News",
			Content: "<p>Coverage roundup.</p>",
			Items:   []domain.Item{{ID: "hn:1", Title: "Show HN"}},
		},
	})
}

func TestRenderIssueWritesFile(t *testing.T) {
	r, cfg := testRenderer(t)

	filename, err := r.RenderIssue(testIssue("2026-08-30"))
	if err != nil {
		t.Fatalf("RenderIssue: %v", err)
	}
	if filename != "2026-08-30.html" {
		t.Fatalf("filename = %q", filename)
	}

	raw, err := os.ReadFile(filepath.Join(cfg.IssuesDir, filename))
	if err != nil {
		t.Fatal(err)
	}
	got := string(raw)

	if !strings.Contains(got, "August 30, 2026") {
		t.Errorf("display date missing:\n%s", got)
	}
	// Section content is pre-generated HTML and must land unescaped.
	if !strings.Contains(got, `<a href="https://github.com/openclaw/openclaw">v2.1.0</a>`) {
		t.Errorf("section HTML escaped or missing:\n%s", got)
	}
	if strings.Count(got, `class="section"`) != 2 {
		t.Errorf("expected 2 section markers:\n%s", got)
	}
}

func TestRenderIndexRedirectsToLatest(t *testing.T) {
	r, cfg := testRenderer(t)
	if err := r.RenderIndex("2026-08-30.html"); err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(cfg.DocsDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "url=issues/2026-08-30.html") {
		t.Errorf("redirect missing:\n%s", raw)
	}
}

func TestRenderIndexWithoutIssues(t *testing.T) {
	r, cfg := testRenderer(t)
	if err := r.RenderIndex(""); err != nil {
		t.Fatalf("RenderIndex: %v", err)
	}
	raw, _ := os.ReadFile(filepath.Join(cfg.DocsDir, "index.html"))
	if strings.Contains(string(raw), "http-equiv") {
		t.Errorf("empty archive should not redirect:\n%s", raw)
	}
}

func TestScanIssuesNewestFirst(t *testing.T) {
	r, _ := testRenderer(t)
	for _, date := range []string{"2026-08-28", "2026-08-30", "2026-08-29"} {
		if _, err := r.RenderIssue(testIssue(date)); err != nil {
			t.Fatal(err)
		}
	}
	// Non-issue files are ignored.
	if err := os.WriteFile(filepath.Join(r.cfg.IssuesDir, "notes.html"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := r.ScanIssues()
	if err != nil {
		t.Fatalf("ScanIssues: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Date != "2026-08-30" || entries[2].Date != "2026-08-28" {
		t.Fatalf("wrong order: %+v", entries)
	}
	if entries[0].SectionCount != 2 || entries[0].TotalItems != 1 {
		t.Fatalf("counts = %d sections, %d items", entries[0].SectionCount, entries[0].TotalItems)
	}

	latest, err := r.LatestIssue()
	if err != nil || latest != "2026-08-30.html" {
		t.Fatalf("LatestIssue = %q, %v", latest, err)
	}
}

func TestScanIssuesMissingDir(t *testing.T) {
	r, _ := testRenderer(t)
	entries, err := r.ScanIssues()
	if err != nil {
		t.Fatalf("ScanIssues: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries = %d, want 0", len(entries))
	}
}

func TestBuildArchiveAndRSS(t *testing.T) {
	r, cfg := testRenderer(t)
	for _, date := range []string{"2026-08-29", "2026-08-30"} {
		if _, err := r.RenderIssue(testIssue(date)); err != nil {
			t.Fatal(err)
		}
	}

	if err := r.BuildArchive(); err != nil {
		t.Fatalf("BuildArchive: %v", err)
	}
	archive, err := os.ReadFile(filepath.Join(cfg.DocsDir, "archive.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(archive), "2026-08-30.html") || !strings.Contains(string(archive), "August 29, 2026") {
		t.Errorf("archive listing incomplete:\n%s", archive)
	}

	if err := r.BuildRSS(); err != nil {
		t.Fatalf("BuildRSS: %v", err)
	}
	rss, err := os.ReadFile(filepath.Join(cfg.DocsDir, "rss.xml"))
	if err != nil {
		t.Fatal(err)
	}
	feed := string(rss)
	if !strings.Contains(feed, "<rss version=\"2.0\">") {
		t.Errorf("not an RSS 2.0 feed:\n%s", feed)
	}
	if !strings.Contains(feed, "https://news.openclaw.dev/issues/2026-08-30.html") {
		t.Errorf("item link missing:\n%s", feed)
	}
	if !strings.Contains(feed, "Sun, 30 Aug 2026 00:00:00 +0000") {
		t.Errorf("pub date missing:\n%s", feed)
	}
}

func TestRenderEmail(t *testing.T) {
	r, _ := testRenderer(t)
	body, err := r.RenderEmail(testIssue("2026-08-30"))
	if err != nil {
		t.Fatalf("RenderEmail: %v", err)
	}
	if !strings.Contains(body, "Sunday, August 30, 2026") {
		t.Errorf("long display date missing:\n%s", body)
	}
	if !strings.Contains(body, "<p>Coverage roundup.</p>") {
		t.Errorf("section content missing:\n%s", body)
	}
	if !strings.Contains(body, "https://news.openclaw.dev/issues/2026-08-30.html") {
		t.Errorf("web link missing:\n%s", body)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := DisplayDate("2026-02-07"); got != "February 7, 2026" {
		t.Errorf("DisplayDate = %q", got)
	}
	if got := LongDisplayDate("2026-02-07"); got != "Saturday, February 7, 2026" {
		t.Errorf("LongDisplayDate = %q", got)
	}
	if got := DisplayDate("not-a-date"); got != "not-a-date" {
		t.Errorf("passthrough = %q", got)
	}
}
