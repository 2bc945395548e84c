package collectors

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// npmRegistry reports new package versions plus weekly download stats.
type npmRegistry struct{ base }

func newNpmRegistry(b base) *npmRegistry { return &npmRegistry{base: b} }

func (c *npmRegistry) Name() string    { return "npm_registry" }
func (c *npmRegistry) Available() bool { return true }

func (c *npmRegistry) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var pkg struct {
		DistTags map[string]string `json:"dist-tags"`
		Time     map[string]string `json:"time"`
		Versions map[string]struct {
			Description string `json:"description"`
			License     string `json:"license"`
		} `json:"versions"`
	}
	if err := c.getJSON(ctx, npmPackageURL, nil, nil, &pkg); err != nil {
		return nil, err
	}

	latest := pkg.DistTags["latest"]
	if latest == "" {
		logger.WarnObj("could not determine latest npm version", "collector_warn", map[string]any{
			"collector": c.Name(),
		})
		return nil, nil
	}

	id := "npm:" + latest
	if st.IsCovered(id) {
		return nil, nil
	}

	// Download stats are best effort; the version item ships without them.
	downloads := 0
	var dl struct {
		Downloads int `json:"downloads"`
	}
	if err := c.getJSON(ctx, npmDownloadsURL, nil, nil, &dl); err != nil {
		logger.WarnObj("npm download stats unavailable", "collector_warn", map[string]any{
			"collector": c.Name(),
			"error":     err.Error(),
		})
	} else {
		downloads = dl.Downloads
	}

	info := pkg.Versions[latest]
	return []domain.Item{{
		ID:          id,
		Source:      c.Name(),
		Title:       fmt.Sprintf("openclaw v%s on npm", latest),
		URL:         "https://www.npmjs.com/package/openclaw",
		Description: info.Description,
		PublishedAt: pkg.Time[latest],
		ContentType: "package",
		Metadata: map[string]any{
			"version":          latest,
			"weekly_downloads": downloads,
			"license":          info.License,
		},
	}}, nil
}

// homebrewStats reports the stable formula version and 30-day install counts.
type homebrewStats struct{ base }

func newHomebrewStats(b base) *homebrewStats { return &homebrewStats{base: b} }

func (c *homebrewStats) Name() string    { return "homebrew_stats" }
func (c *homebrewStats) Available() bool { return true }

func (c *homebrewStats) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var formula struct {
		Desc     string `json:"desc"`
		Homepage string `json:"homepage"`
		License  string `json:"license"`
		Versions struct {
			Stable string `json:"stable"`
		} `json:"versions"`
		Analytics struct {
			Install struct {
				ThirtyDays map[string]int `json:"30d"`
			} `json:"install"`
		} `json:"analytics"`
	}
	if err := c.getJSON(ctx, homebrewAPIURL, nil, nil, &formula); err != nil {
		return nil, err
	}

	version := formula.Versions.Stable
	if version == "" {
		logger.WarnObj("could not determine stable homebrew version", "collector_warn", map[string]any{
			"collector": c.Name(),
		})
		return nil, nil
	}

	id := "homebrew:" + version
	if st.IsCovered(id) {
		return nil, nil
	}

	installs := 0
	for _, count := range formula.Analytics.Install.ThirtyDays {
		installs += count
	}

	return []domain.Item{{
		ID:          id,
		Source:      c.Name(),
		Title:       fmt.Sprintf("openclaw-cli %s on Homebrew", version),
		URL:         "https://formulae.brew.sh/formula/openclaw-cli",
		Description: formula.Desc,
		ContentType: "package",
		Metadata: map[string]any{
			"version":      version,
			"installs_30d": installs,
			"homepage":     formula.Homepage,
			"license":      formula.License,
		},
	}}, nil
}

// dockerHub reports pull counts, stars, and latest tags for the image.
type dockerHub struct {
	base
	now func() time.Time
}

func newDockerHub(b base) *dockerHub { return &dockerHub{base: b, now: time.Now} }

func (c *dockerHub) Name() string    { return "docker_hub" }
func (c *dockerHub) Available() bool { return true }

func (c *dockerHub) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var repo struct {
		Description     string `json:"description"`
		FullDescription string `json:"full_description"`
		LastUpdated     string `json:"last_updated"`
		PullCount       int64  `json:"pull_count"`
		StarCount       int    `json:"star_count"`
	}
	if err := c.getJSON(ctx, dockerHubURL, nil, nil, &repo); err != nil {
		return nil, err
	}

	updatedDate := c.now().UTC().Format("2006-01-02")
	if len(repo.LastUpdated) >= 10 {
		updatedDate = repo.LastUpdated[:10]
	}
	id := "docker:" + updatedDate
	if st.IsCovered(id) {
		return nil, nil
	}

	var tags []string
	var tagPage struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, dockerHubURL+"/tags", nil, map[string]string{"page_size": "5"}, &tagPage); err != nil {
		logger.WarnObj("docker hub tags unavailable", "collector_warn", map[string]any{
			"collector": c.Name(),
			"error":     err.Error(),
		})
	} else {
		for _, tag := range tagPage.Results {
			tags = append(tags, tag.Name)
		}
	}

	description := repo.Description
	if description == "" {
		description = repo.FullDescription
	}

	return []domain.Item{{
		ID:          id,
		Source:      c.Name(),
		Title:       "openclaw/openclaw on Docker Hub",
		URL:         "https://hub.docker.com/r/openclaw/openclaw",
		Description: description,
		PublishedAt: repo.LastUpdated,
		ContentType: "package",
		Metadata: map[string]any{
			"pull_count":  repo.PullCount,
			"star_count":  repo.StarCount,
			"latest_tags": tags,
		},
	}}, nil
}

// vscodeMarketplace reports install count, rating, and version of the extension.
type vscodeMarketplace struct{ base }

func newVSCodeMarketplace(b base) *vscodeMarketplace { return &vscodeMarketplace{base: b} }

func (c *vscodeMarketplace) Name() string    { return "vscode_marketplace" }
func (c *vscodeMarketplace) Available() bool { return true }

func (c *vscodeMarketplace) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	payload := map[string]any{
		"filters": []map[string]any{
			{"criteria": []map[string]any{{"filterType": 7, "value": vscodeExtensionID}}},
		},
		"flags": 914,
	}
	headers := map[string]string{
		"Accept": "application/json;api-version=6.0-preview.1",
	}

	var gallery struct {
		Results []struct {
			Extensions []struct {
				DisplayName      string `json:"displayName"`
				ShortDescription string `json:"shortDescription"`
				LastUpdated      string `json:"lastUpdated"`
				Publisher        struct {
					DisplayName string `json:"displayName"`
				} `json:"publisher"`
				Versions []struct {
					Version string `json:"version"`
				} `json:"versions"`
				Statistics []struct {
					StatisticName string  `json:"statisticName"`
					Value         float64 `json:"value"`
				} `json:"statistics"`
			} `json:"extensions"`
		} `json:"results"`
	}
	if err := c.postJSON(ctx, vscodeGalleryURL, headers, payload, &gallery); err != nil {
		return nil, err
	}

	if len(gallery.Results) == 0 || len(gallery.Results[0].Extensions) == 0 {
		logger.WarnObj("no marketplace extension found", "collector_warn", map[string]any{
			"collector": c.Name(),
		})
		return nil, nil
	}

	ext := gallery.Results[0].Extensions[0]
	version := "unknown"
	if len(ext.Versions) > 0 {
		version = ext.Versions[0].Version
	}

	id := "vscode:" + version
	if st.IsCovered(id) {
		return nil, nil
	}

	installs := 0
	rating := 0.0
	for _, stat := range ext.Statistics {
		switch stat.StatisticName {
		case "install":
			installs = int(stat.Value)
		case "averagerating":
			rating = math.Round(stat.Value*100) / 100
		}
	}

	displayName := ext.DisplayName
	if displayName == "" {
		displayName = vscodeExtensionID
	}

	return []domain.Item{{
		ID:          id,
		Source:      c.Name(),
		Title:       fmt.Sprintf("%s v%s on VS Code Marketplace", displayName, version),
		URL:         "https://marketplace.visualstudio.com/items?itemName=" + vscodeExtensionID,
		Description: ext.ShortDescription,
		PublishedAt: ext.LastUpdated,
		ContentType: "extension",
		Metadata: map[string]any{
			"version":        version,
			"install_count":  installs,
			"average_rating": rating,
			"publisher":      ext.Publisher.DisplayName,
		},
	}}, nil
}
