package collectors

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// githubReleases fetches recent releases of the main repository.
type githubReleases struct{ base }

func newGitHubReleases(b base) *githubReleases { return &githubReleases{base: b} }

func (c *githubReleases) Name() string    { return "github_releases" }
func (c *githubReleases) Available() bool { return true }

func (c *githubReleases) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases", githubAPIBase, githubOwner, githubRepo)

	var releases []struct {
		TagName     string `json:"tag_name"`
		Name        string `json:"name"`
		HTMLURL     string `json:"html_url"`
		Body        string `json:"body"`
		PublishedAt string `json:"published_at"`
		Prerelease  bool   `json:"prerelease"`
		Draft       bool   `json:"draft"`
		Author      struct {
			Login string `json:"login"`
		} `json:"author"`
	}
	if err := c.getJSON(ctx, url, c.githubHeaders(), nil, &releases); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, rel := range releases {
		id := "release:" + rel.TagName
		if st.IsCovered(id) {
			continue
		}
		title := rel.Name
		if title == "" {
			title = rel.TagName
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       title,
			URL:         rel.HTMLURL,
			Description: rel.Body,
			Author:      rel.Author.Login,
			PublishedAt: rel.PublishedAt,
			ContentType: "release",
			Metadata: map[string]any{
				"tag_name":   rel.TagName,
				"prerelease": rel.Prerelease,
				"draft":      rel.Draft,
			},
		})
	}
	return items, nil
}

// githubActivity fetches recently updated issues and pull requests.
type githubActivity struct{ base }

func newGitHubActivity(b base) *githubActivity { return &githubActivity{base: b} }

func (c *githubActivity) Name() string    { return "github_activity" }
func (c *githubActivity) Available() bool { return true }

func (c *githubActivity) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues", githubAPIBase, githubOwner, githubRepo)
	query := map[string]string{"state": "all", "sort": "updated", "per_page": "30"}

	var entries []struct {
		Number      int    `json:"number"`
		Title       string `json:"title"`
		HTMLURL     string `json:"html_url"`
		Body        string `json:"body"`
		State       string `json:"state"`
		Comments    int    `json:"comments"`
		CreatedAt   string `json:"created_at"`
		UpdatedAt   string `json:"updated_at"`
		PullRequest *struct {
			URL string `json:"url"`
		} `json:"pull_request"`
		User struct {
			Login string `json:"login"`
		} `json:"user"`
		Labels []struct {
			Name string `json:"name"`
		} `json:"labels"`
	}
	if err := c.getJSON(ctx, url, c.githubHeaders(), query, &entries); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, entry := range entries {
		isPR := entry.PullRequest != nil
		id := fmt.Sprintf("issue:%d", entry.Number)
		contentType := "issue"
		if isPR {
			id = fmt.Sprintf("pr:%d", entry.Number)
			contentType = "pull_request"
		}
		if st.IsCovered(id) {
			continue
		}

		labels := make([]string, 0, len(entry.Labels))
		for _, lbl := range entry.Labels {
			labels = append(labels, lbl.Name)
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       entry.Title,
			URL:         entry.HTMLURL,
			Description: clip(entry.Body, 500),
			Author:      entry.User.Login,
			PublishedAt: entry.CreatedAt,
			ContentType: contentType,
			Metadata: map[string]any{
				"number":     entry.Number,
				"state":      entry.State,
				"labels":     labels,
				"comments":   entry.Comments,
				"updated_at": entry.UpdatedAt,
			},
		})
	}
	return items, nil
}

// githubStats snapshots repository statistics once per day.
type githubStats struct {
	base
	now func() time.Time
}

func newGitHubStats(b base) *githubStats { return &githubStats{base: b, now: time.Now} }

func (c *githubStats) Name() string    { return "github_stats" }
func (c *githubStats) Available() bool { return true }

var lastPageRe = regexp.MustCompile(`[&?]page=(\d+)[^>]*>;\s*rel="last"`)

func (c *githubStats) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	today := c.now().UTC().Format("2006-01-02")
	id := "stats:" + today
	if st.IsCovered(id) {
		return nil, nil
	}

	repoURL := fmt.Sprintf("%s/repos/%s/%s", githubAPIBase, githubOwner, githubRepo)
	var repo struct {
		HTMLURL          string `json:"html_url"`
		StargazersCount  int    `json:"stargazers_count"`
		ForksCount       int    `json:"forks_count"`
		OpenIssuesCount  int    `json:"open_issues_count"`
		SubscribersCount int    `json:"subscribers_count"`
	}
	if err := c.getJSON(ctx, repoURL, c.githubHeaders(), nil, &repo); err != nil {
		return nil, err
	}

	contributors, err := c.contributorCount(ctx)
	if err != nil {
		return nil, err
	}

	return []domain.Item{{
		ID:     id,
		Source: c.Name(),
		Title:  fmt.Sprintf("OpenClaw repo stats for %s", today),
		URL:    repo.HTMLURL,
		Description: fmt.Sprintf("%d stars, %d forks, %d contributors",
			repo.StargazersCount, repo.ForksCount, contributors),
		PublishedAt: today,
		ContentType: "stats",
		Metadata: map[string]any{
			"stargazers_count":  repo.StargazersCount,
			"forks_count":       repo.ForksCount,
			"open_issues_count": repo.OpenIssuesCount,
			"subscribers_count": repo.SubscribersCount,
			"contributor_count": contributors,
		},
	}}, nil
}

// contributorCount derives the total from the Link header's last page number,
// using a single-result page so pages equal contributors.
func (c *githubStats) contributorCount(ctx context.Context) (int, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contributors", githubAPIBase, githubOwner, githubRepo)
	query := map[string]string{"per_page": "1", "anon": "true"}

	resp, err := c.client.Get(ctx, url, c.githubHeaders(), query)
	if err != nil {
		return 0, fmt.Errorf("fetch contributors: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return 0, fmt.Errorf("contributors returned status %d", resp.StatusCode())
	}

	if m := lastPageRe.FindStringSubmatch(resp.Header("Link")); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, nil
		}
	}
	// No Link header means the response itself is the only page.
	return 1, nil
}

const sponsorsQuery = `
{
  organization(login: "` + githubOwner + `") {
    sponsorshipsAsMaintainer(first: 10) {
      totalCount
      nodes {
        sponsorEntity {
          ... on User { login }
          ... on Organization { login }
        }
      }
    }
  }
}
`

// githubSponsors snapshots organization sponsorships once per day via GraphQL.
type githubSponsors struct {
	base
	now func() time.Time
}

func newGitHubSponsors(b base) *githubSponsors { return &githubSponsors{base: b, now: time.Now} }

func (c *githubSponsors) Name() string { return "github_sponsors" }

// Available requires a token: the GraphQL endpoint rejects anonymous queries.
func (c *githubSponsors) Available() bool { return c.cfg.GitHubToken != "" }

func (c *githubSponsors) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	today := c.now().UTC().Format("2006-01-02")
	id := "sponsors:" + today
	if st.IsCovered(id) {
		return nil, nil
	}

	var data struct {
		Organization struct {
			SponsorshipsAsMaintainer struct {
				TotalCount int `json:"totalCount"`
				Nodes      []struct {
					SponsorEntity struct {
						Login string `json:"login"`
					} `json:"sponsorEntity"`
				} `json:"nodes"`
			} `json:"sponsorshipsAsMaintainer"`
		} `json:"organization"`
	}
	if err := c.graphql(ctx, sponsorsQuery, &data); err != nil {
		return nil, err
	}

	sponsorships := data.Organization.SponsorshipsAsMaintainer
	logins := make([]string, 0, len(sponsorships.Nodes))
	for _, node := range sponsorships.Nodes {
		if node.SponsorEntity.Login != "" {
			logins = append(logins, node.SponsorEntity.Login)
		}
	}

	return []domain.Item{{
		ID:          id,
		Source:      c.Name(),
		Title:       fmt.Sprintf("OpenClaw sponsors (%d total)", sponsorships.TotalCount),
		URL:         "https://github.com/sponsors/" + githubOwner,
		Description: fmt.Sprintf("%d sponsors supporting OpenClaw", sponsorships.TotalCount),
		PublishedAt: today,
		ContentType: "sponsors",
		Metadata: map[string]any{
			"total_count":     sponsorships.TotalCount,
			"recent_sponsors": logins,
		},
	}}, nil
}

type githubCommit struct {
	SHA     string `json:"sha"`
	HTMLURL string `json:"html_url"`
	Commit  struct {
		Message string `json:"message"`
		Author  struct {
			Name string `json:"name"`
			Date string `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

func (b base) recentCommits(ctx context.Context, owner, repo string, perPage int) ([]githubCommit, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/commits", githubAPIBase, owner, repo)
	query := map[string]string{"per_page": strconv.Itoa(perPage)}

	var commits []githubCommit
	if err := b.getJSON(ctx, url, b.githubHeaders(), query, &commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// skipCommitRe matches housekeeping commit subjects that are not skill updates.
var skipCommitRe = regexp.MustCompile(`(?i)^(Merge |chore[:(]|Update README|fix lint|fix formatting|remove debug|new fix$)`)

// clawHubSkills watches the ClawHub repo commits for new skill publications.
type clawHubSkills struct{ base }

func newClawHubSkills(b base) *clawHubSkills { return &clawHubSkills{base: b} }

func (c *clawHubSkills) Name() string    { return "clawhub_skills" }
func (c *clawHubSkills) Available() bool { return true }

func (c *clawHubSkills) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	commits, err := c.recentCommits(ctx, clawhubOwner, clawhubRepo, 20)
	if err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, commit := range commits {
		sha := commit.SHA
		if len(sha) < 8 {
			continue
		}
		id := "clawhub:" + sha[:8]
		if st.IsCovered(id) {
			continue
		}

		subject, body := firstLine(commit.Commit.Message)
		if skipCommitRe.MatchString(subject) {
			continue
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       subject,
			URL:         commit.HTMLURL,
			Description: body,
			Author:      commit.Commit.Author.Name,
			PublishedAt: commit.Commit.Author.Date,
			ContentType: "clawhub_commit",
			Metadata: map[string]any{
				"sha":  sha,
				"repo": clawhubOwner + "/" + clawhubRepo,
			},
		})
	}
	return items, nil
}

// awesomeSkills watches community-curated skill list repos for new entries.
type awesomeSkills struct{ base }

func newAwesomeSkills(b base) *awesomeSkills { return &awesomeSkills{base: b} }

func (c *awesomeSkills) Name() string    { return "awesome_skills" }
func (c *awesomeSkills) Available() bool { return true }

func (c *awesomeSkills) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	var items []domain.Item
	for _, repo := range awesomeSkillsRepos {
		commits, err := c.recentCommits(ctx, repo.Owner, repo.Repo, 10)
		if err != nil {
			return nil, err
		}
		for _, commit := range commits {
			sha := commit.SHA
			if len(sha) < 8 {
				continue
			}
			id := fmt.Sprintf("awesome:%s:%s", repo.Owner, sha[:8])
			if st.IsCovered(id) {
				continue
			}

			subject, _ := firstLine(commit.Commit.Message)
			items = append(items, domain.Item{
				ID:          id,
				Source:      c.Name(),
				Title:       subject,
				URL:         commit.HTMLURL,
				Description: commit.Commit.Message,
				Author:      commit.Commit.Author.Name,
				PublishedAt: commit.Commit.Author.Date,
				ContentType: "awesome_commit",
				Metadata: map[string]any{
					"sha":  sha,
					"repo": repo.Owner + "/" + repo.Repo,
				},
			})
		}
	}
	return items, nil
}
