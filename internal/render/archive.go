package render

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/openclaw-hq/claw-digest/internal/logger"
)

var issueFileRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\.html$`)

// ArchiveEntry describes one published issue file.
type ArchiveEntry struct {
	Filename     string
	Date         string
	DisplayDate  string
	SectionCount int
	TotalItems   int
}

// BuildArchive scans the issues directory and renders the archive listing
// into the docs directory.
func (r *Renderer) BuildArchive() error {
	entries, err := r.ScanIssues()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.cfg.DocsDir, 0o755); err != nil {
		return fmt.Errorf("create docs dir: %w", err)
	}

	data := struct {
		Issues  []ArchiveEntry
		SiteURL string
	}{Issues: entries, SiteURL: r.cfg.SiteURL}

	path := filepath.Join(r.cfg.DocsDir, "archive.html")
	if err := r.renderTo(path, "archive.html", data); err != nil {
		return err
	}
	logger.InfoObj("archive rendered", "render_archive", map[string]any{
		"path":   path,
		"issues": len(entries),
	})
	return nil
}

// ScanIssues lists published issues newest first. A missing issues directory
// is an empty archive, not an error.
func (r *Renderer) ScanIssues() ([]ArchiveEntry, error) {
	files, err := os.ReadDir(r.cfg.IssuesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan issues dir: %w", err)
	}

	entries := make([]ArchiveEntry, 0, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		m := issueFileRe.FindStringSubmatch(f.Name())
		if m == nil {
			continue
		}

		sections, items := countIssueContent(filepath.Join(r.cfg.IssuesDir, f.Name()))
		entries = append(entries, ArchiveEntry{
			Filename:     f.Name(),
			Date:         m[1],
			DisplayDate:  DisplayDate(m[1]),
			SectionCount: sections,
			TotalItems:   items,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	return entries, nil
}

// LatestIssue returns the filename of the newest issue, or "" when none exist.
func (r *Renderer) LatestIssue() (string, error) {
	entries, err := r.ScanIssues()
	if err != nil || len(entries) == 0 {
		return "", err
	}
	return entries[0].Filename, nil
}

// countIssueContent counts rendered sections and list items by marker scan.
// Unreadable files report zero rather than failing the whole archive.
func countIssueContent(path string) (sections, items int) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0
	}
	content := string(raw)
	return strings.Count(content, `class="section"`), strings.Count(content, "<li>")
}
