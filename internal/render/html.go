package render

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/openclaw-hq/claw-digest/internal/config"
	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
)

// Renderer writes newsletter issues and the site index as static HTML.
type Renderer struct {
	cfg *config.Config
	tpl *template.Template
}

// issueView adapts a domain issue for templates. Section content is model or
// fallback generated HTML and renders unescaped.
type issueView struct {
	Date        string
	DisplayDate string
	TotalItems  int
	Sections    []sectionView
	SiteURL     string
	GeneratedAt string
}

type sectionView struct {
	ID      string
	Title   string
	Content template.HTML
}

// NewRenderer parses all HTML templates from the configured directory.
func NewRenderer(cfg *config.Config) (*Renderer, error) {
	tpl, err := template.ParseGlob(filepath.Join(cfg.TemplatesDir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{cfg: cfg, tpl: tpl}, nil
}

func (r *Renderer) view(issue domain.Issue) issueView {
	sections := issue.ActiveSections()
	views := make([]sectionView, 0, len(sections))
	for _, s := range sections {
		views = append(views, sectionView{
			ID:      s.ID,
			Title:   s.Title,
			Content: template.HTML(s.Content),
		})
	}
	return issueView{
		Date:        issue.Date,
		DisplayDate: DisplayDate(issue.Date),
		TotalItems:  issue.TotalItems,
		Sections:    views,
		SiteURL:     r.cfg.SiteURL,
		GeneratedAt: issue.GeneratedAt.Format(time.RFC3339),
	}
}

// RenderIssue writes the issue page into the issues directory and returns
// its filename.
func (r *Renderer) RenderIssue(issue domain.Issue) (string, error) {
	if err := os.MkdirAll(r.cfg.IssuesDir, 0o755); err != nil {
		return "", fmt.Errorf("create issues dir: %w", err)
	}

	filename := issue.Date + ".html"
	path := filepath.Join(r.cfg.IssuesDir, filename)
	if err := r.renderTo(path, "newsletter.html", r.view(issue)); err != nil {
		return "", err
	}

	logger.InfoObj("issue rendered", "render_issue", map[string]any{
		"path":     path,
		"sections": len(issue.ActiveSections()),
	})
	return filename, nil
}

// RenderIndex writes the site index pointing at the latest issue. An empty
// filename renders the empty-archive landing page.
func (r *Renderer) RenderIndex(latestFilename string) error {
	if err := os.MkdirAll(r.cfg.DocsDir, 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}

	data := struct {
		LatestIssue string
		SiteURL     string
	}{LatestIssue: latestFilename, SiteURL: r.cfg.SiteURL}

	path := filepath.Join(r.cfg.DocsDir, "index.html")
	if err := r.renderTo(path, "index.html", data); err != nil {
		return err
	}
	logger.InfoObj("index rendered", "render_index", map[string]any{
		"path":   path,
		"latest": latestFilename,
	})
	return nil
}

// RenderEmail returns the email body for an issue with inline-friendly markup.
func (r *Renderer) RenderEmail(issue domain.Issue) (string, error) {
	view := r.view(issue)
	view.DisplayDate = LongDisplayDate(issue.Date)

	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "email.html", view); err != nil {
		return "", fmt.Errorf("render email.html: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) renderTo(path, name string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := r.tpl.ExecuteTemplate(f, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return f.Close()
}

// DisplayDate converts "2026-02-07" to "February 7, 2026"; unparseable input
// passes through unchanged.
func DisplayDate(isoDate string) string {
	dt, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return dt.Format("January 2, 2006")
}

// LongDisplayDate converts "2026-02-07" to "Saturday, February 7, 2026".
func LongDisplayDate(isoDate string) string {
	dt, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return dt.Format("Monday, January 2, 2006")
}
