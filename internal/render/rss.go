package render

import (
	"fmt"
	"os"
	"path/filepath"
	texttemplate "text/template"
	"time"

	"github.com/openclaw-hq/claw-digest/internal/logger"
)

// rssMaxItems bounds the feed to the most recent issues.
const rssMaxItems = 20

type rssEntry struct {
	Filename string
	Date     string
	PubDate  string
}

// rssTemplate is compiled in; the feed shape never varies per deployment.
var rssTemplate = texttemplate.Must(texttemplate.New("rss").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>OpenClaw Newsletter</title>
    <link>{{.SiteURL}}</link>
    <description>Daily digest of releases, community activity, and news from the OpenClaw ecosystem</description>
    <language>en-us</language>
{{- range .Issues}}
    <item>
      <title>OpenClaw Newsletter - {{.Date}}</title>
      <link>{{$.SiteURL}}/issues/{{.Filename}}</link>
      <guid>{{$.SiteURL}}/issues/{{.Filename}}</guid>
      <pubDate>{{.PubDate}}</pubDate>
    </item>
{{- end}}
  </channel>
</rss>
`))

// BuildRSS renders the RSS 2.0 feed from the newest published issues.
func (r *Renderer) BuildRSS() error {
	entries, err := r.ScanIssues()
	if err != nil {
		return err
	}
	if len(entries) > rssMaxItems {
		entries = entries[:rssMaxItems]
	}

	items := make([]rssEntry, 0, len(entries))
	for _, e := range entries {
		dt, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		items = append(items, rssEntry{
			Filename: e.Filename,
			Date:     e.Date,
			PubDate:  dt.Format("Mon, 02 Jan 2006 00:00:00 +0000"),
		})
	}

	if err := os.MkdirAll(r.cfg.DocsDir, 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}

	path := filepath.Join(r.cfg.DocsDir, "rss.xml")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	data := struct {
		Issues  []rssEntry
		SiteURL string
	}{Issues: items, SiteURL: r.cfg.SiteURL}

	if err := rssTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render rss feed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write rss feed: %w", err)
	}

	logger.InfoObj("rss feed rendered", "render_rss", map[string]any{
		"path":   path,
		"issues": len(items),
	})
	return nil
}
