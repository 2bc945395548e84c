package domain

import "time"

// Domain contains the core data model shared by collectors, the pipeline,
// the assembler, and the renderers.

// Item is one piece of content collected from one source.
//
// ID is globally unique across sources: every collector namespaces its local
// key with a short source tag ("hn:12345", "release:v2.1.0"). The ID must be
// stable across runs for the same underlying content, since it is the only
// thing the dedup store ever persists.
type Item struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Title       string         `json:"title"`
	URL         string         `json:"url"`
	Description string         `json:"description"`
	Author      string         `json:"author"`
	PublishedAt string         `json:"published_at"`
	ContentType string         `json:"content_type"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// CollectorResult is the outcome of running one collector once.
// Exactly one of Skipped, Error, or a normal Items result describes it.
type CollectorResult struct {
	Name    string
	Items   []Item
	Error   string
	Skipped bool
}

// Section is a named output bucket of the digest.
type Section struct {
	ID      string
	Title   string
	Content string
	Items   []Item
}

// HasContent reports whether the section is worth rendering.
func (s Section) HasContent() bool {
	return s.Content != "" || len(s.Items) > 0
}

// Issue is the full aggregate for one run.
type Issue struct {
	Date        string
	Sections    []Section
	GeneratedAt time.Time
	TotalItems  int
}

// NewIssue builds an issue, counting items across sections.
func NewIssue(date string, sections []Section) Issue {
	total := 0
	for _, s := range sections {
		total += len(s.Items)
	}
	return Issue{
		Date:        date,
		Sections:    sections,
		GeneratedAt: time.Now().UTC(),
		TotalItems:  total,
	}
}

// ActiveSections returns the sections worth rendering.
func (i Issue) ActiveSections() []Section {
	out := make([]Section, 0, len(i.Sections))
	for _, s := range i.Sections {
		if s.HasContent() {
			out = append(out, s)
		}
	}
	return out
}
