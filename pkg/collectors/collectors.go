package collectors

import (
	"context"
	"fmt"

	"github.com/openclaw-hq/claw-digest/internal/config"
	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// Run executes a single collector with full isolation: unavailable collectors
// are skipped, and an error or panic in one collector never aborts the run.
func Run(ctx context.Context, c Collector, st state.Store) (res domain.CollectorResult) {
	res = domain.CollectorResult{Name: c.Name()}

	if !c.Available() {
		res.Skipped = true
		logger.InfoObj("collector skipped", "collector_skip", map[string]any{
			"collector": c.Name(),
			"reason":    "missing credentials or unavailable",
		})
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			res.Items = nil
			res.Error = fmt.Sprintf("panic: %v", r)
			logger.ErrorObj("collector panicked", "collector_panic", map[string]any{
				"collector": c.Name(),
				"panic":     fmt.Sprintf("%v", r),
			})
		}
	}()

	items, err := c.Collect(ctx, st)
	if err != nil {
		res.Error = err.Error()
		logger.WarnObj("collector failed", "collector_error", map[string]any{
			"collector": c.Name(),
			"error":     err.Error(),
		})
		return res
	}

	res.Items = items
	logger.InfoObj("collector finished", "collector_done", map[string]any{
		"collector": c.Name(),
		"items":     len(items),
	})
	return res
}

// All builds the full collector roster in publication order.
func All(cfg *config.Config, client HTTPClient) []Collector {
	b := base{cfg: cfg, client: client}
	return []Collector{
		newGitHubReleases(b),
		newGitHubStats(b),
		newGitHubActivity(b),
		newGitHubSponsors(b),
		newClawHubSkills(b),
		newAwesomeSkills(b),
		newNpmRegistry(b),
		newHomebrewStats(b),
		newDockerHub(b),
		newVSCodeMarketplace(b),
		newHackerNews(b),
		newTwitter(b),
		newReddit(b),
		newStackOverflow(b),
		newDiscordFeed(b),
		newMoltbook(b),
		newLinkedInNews(b),
		newYouTube(b),
		newShowcase(b),
		newDevTo(b),
		newMedium(b),
		newLobsters(b),
		newSubstack(b),
		newTldrNews(b),
		newTechNews(b),
		newBlogFeed(b),
		newDocsUpdates(b),
		newLearnClaw(b),
		newAcademicNews(b),
		newArxivPapers(b),
		newClaw360(b),
		newClawhunt(b),
		newAlternativeTo(b),
		newWikipedia(b),
		newProductHunt(b),
		newG2Learning(b),
		newHuggingFace(b),
		newDigitalOcean(b),
		newEvents(b),
		newSecurityFeeds(b),
	}
}
