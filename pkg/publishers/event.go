package publishers

import (
	"time"

	"github.com/openclaw-hq/claw-digest/internal/domain"
)

// Event is the payload published downstream when an issue goes out.
// BodyHTML carries the email rendering; feed-style sinks can ignore it.
type Event struct {
	Date        string    `json:"date"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	TotalItems  int       `json:"total_items"`
	Sections    []string  `json:"sections"`
	BodyHTML    string    `json:"body_html,omitempty"`
	PublishedAt time.Time `json:"published_at"`
}

// NewEvent builds the publish payload for an assembled issue.
func NewEvent(issue domain.Issue, siteURL, bodyHTML string) Event {
	active := issue.ActiveSections()
	sections := make([]string, 0, len(active))
	for _, s := range active {
		sections = append(sections, s.ID)
	}

	url := ""
	if siteURL != "" {
		url = siteURL + "/issues/" + issue.Date + ".html"
	}

	return Event{
		Date:        issue.Date,
		Title:       "OpenClaw Newsletter - " + issue.Date,
		URL:         url,
		TotalItems:  issue.TotalItems,
		Sections:    sections,
		BodyHTML:    bodyHTML,
		PublishedAt: time.Now().UTC(),
	}
}
