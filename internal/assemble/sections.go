package assemble

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SectionDef declares one digest section in display order.
type SectionDef struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

// Routing holds the ordered section definitions and the collector→section map.
type Routing struct {
	Sections []SectionDef      `yaml:"sections"`
	Map      map[string]string `yaml:"collector_sections"`
}

// defaultSections is the compiled-in digest layout.
var defaultSections = []SectionDef{
	{ID: "top_stories", Title: "Top Stories"},
	{ID: "trending_x", Title: "Trending on X"},
	{ID: "releases", Title: "Releases"},
	{ID: "community", Title: "Community"},
	{ID: "news", Title: "News"},
	{ID: "security", Title: "Security"},
}

// defaultSectionMap routes every collector to a section. All collectors run;
// output is consolidated into a handful of focused sections.
var defaultSectionMap = map[string]string{
	// Releases
	"github_releases":    "releases",
	"github_stats":       "releases",
	"npm_registry":       "releases",
	"homebrew_stats":     "releases",
	"docker_hub":         "releases",
	"vscode_marketplace": "releases",
	// Community
	"github_activity": "community",
	"github_sponsors": "community",
	"clawhub_skills":  "community",
	"awesome_skills":  "community",
	"showcase":        "community",
	"stackoverflow":   "community",
	"reddit":          "community",
	"discord_feed":    "community",
	"linkedin_news":   "community",
	"moltbook":        "community",
	"youtube":         "community",
	// Social spotlight
	"twitter": "trending_x",
	// News
	"hackernews":    "news",
	"devto":         "news",
	"medium":        "news",
	"lobsters":      "news",
	"substack":      "news",
	"tldr_news":     "news",
	"tech_news":     "news",
	"blog_feed":     "news",
	"docs_updates":  "news",
	"learnclaw":     "news",
	"academic_news": "news",
	"arxiv_papers":  "news",
	"claw360":       "news",
	"clawhunt":      "news",
	"alternativeto": "news",
	"wikipedia":     "news",
	"product_hunt":  "news",
	"g2_learning":   "news",
	"huggingface":   "news",
	"digitalocean":  "news",
	"events":        "news",
	// Security stands alone; advisories must not be buried.
	"security_feeds": "security",
}

// DefaultRouting returns the compiled-in sections and routing map.
func DefaultRouting() Routing {
	m := make(map[string]string, len(defaultSectionMap))
	for k, v := range defaultSectionMap {
		m[k] = v
	}
	sections := make([]SectionDef, len(defaultSections))
	copy(sections, defaultSections)
	return Routing{Sections: sections, Map: m}
}

// LoadRouting reads a routing override file; an empty path yields defaults.
// Either top-level key may be omitted to keep its default.
func LoadRouting(path string) (Routing, error) {
	routing := DefaultRouting()
	if path == "" {
		return routing, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Routing{}, fmt.Errorf("read sections file: %w", err)
	}

	var loaded Routing
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return Routing{}, fmt.Errorf("parse sections file %s: %w", path, err)
	}

	if len(loaded.Sections) > 0 {
		routing.Sections = loaded.Sections
	}
	if len(loaded.Map) > 0 {
		routing.Map = loaded.Map
	}

	for collector, sectionID := range routing.Map {
		if !routing.hasSection(sectionID) {
			return Routing{}, fmt.Errorf("collector %q routed to unknown section %q", collector, sectionID)
		}
	}
	return routing, nil
}

func (r Routing) hasSection(id string) bool {
	for _, s := range r.Sections {
		if s.ID == id {
			return true
		}
	}
	return false
}
