package collectors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openclaw-hq/claw-digest/internal/config"
	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
	"github.com/openclaw-hq/claw-digest/pkg/httpclient"
)

type fakeResponse struct {
	body    []byte
	status  int
	headers map[string]string
}

func (r fakeResponse) Body() []byte       { return r.body }
func (r fakeResponse) StatusCode() int    { return r.status }
func (r fakeResponse) Header(name string) string {
	return r.headers[name]
}

type fakeClient struct {
	responses map[string]fakeResponse
	err       error
}

func (c *fakeClient) lookup(url string) (httpclient.Response, error) {
	if c.err != nil {
		return nil, c.err
	}
	for prefix, resp := range c.responses {
		if strings.HasPrefix(url, prefix) {
			return resp, nil
		}
	}
	return fakeResponse{status: 404, body: []byte("not found")}, nil
}

func (c *fakeClient) Get(_ context.Context, url string, _, _ map[string]string) (httpclient.Response, error) {
	return c.lookup(url)
}

func (c *fakeClient) Post(_ context.Context, url string, _ map[string]string, _ any) (httpclient.Response, error) {
	return c.lookup(url)
}

func (c *fakeClient) PostForm(_ context.Context, url string, _, _ map[string]string) (httpclient.Response, error) {
	return c.lookup(url)
}

type memoryStore struct {
	covered map[string]struct{}
}

func newMemoryStore(ids ...string) *memoryStore {
	s := &memoryStore{covered: make(map[string]struct{})}
	for _, id := range ids {
		s.covered[id] = struct{}{}
	}
	return s
}

func (s *memoryStore) IsCovered(id string) bool {
	_, ok := s.covered[id]
	return ok
}
func (s *memoryStore) MarkCovered(id string) { s.covered[id] = struct{}{} }
func (s *memoryStore) MarkAllCovered(ids []string) {
	for _, id := range ids {
		s.covered[id] = struct{}{}
	}
}
func (s *memoryStore) LastRun() string { return "" }
func (s *memoryStore) Count() int      { return len(s.covered) }
func (s *memoryStore) Save() error     { return nil }
func (s *memoryStore) Close() error    { return nil }

var _ state.Store = (*memoryStore)(nil)

func testBase(client HTTPClient) base {
	return base{cfg: &config.Config{}, client: client}
}

type stubCollector struct {
	name      string
	available bool
	items     []domain.Item
	err       error
	panicMsg  string
}

func (c *stubCollector) Name() string    { return c.name }
func (c *stubCollector) Available() bool { return c.available }
func (c *stubCollector) Collect(context.Context, state.Store) ([]domain.Item, error) {
	if c.panicMsg != "" {
		panic(c.panicMsg)
	}
	return c.items, c.err
}

func TestRunSkipsUnavailableCollector(t *testing.T) {
	res := Run(context.Background(), &stubCollector{name: "gated", available: false}, newMemoryStore())

	if !res.Skipped {
		t.Fatalf("expected skipped result")
	}
	if res.Error != "" {
		t.Fatalf("skipped collector must not carry an error, got %q", res.Error)
	}
	if len(res.Items) != 0 {
		t.Fatalf("skipped collector must not return items")
	}
}

func TestRunCapturesCollectorError(t *testing.T) {
	res := Run(context.Background(), &stubCollector{
		name:      "broken",
		available: true,
		err:       errors.New("upstream exploded"),
	}, newMemoryStore())

	if res.Skipped {
		t.Fatalf("failed collector must not report skipped")
	}
	if res.Error == "" || !strings.Contains(res.Error, "upstream exploded") {
		t.Fatalf("expected captured error, got %q", res.Error)
	}
}

func TestRunRecoversFromPanic(t *testing.T) {
	res := Run(context.Background(), &stubCollector{
		name:      "panicky",
		available: true,
		panicMsg:  "nil deref",
	}, newMemoryStore())

	if res.Error == "" || !strings.Contains(res.Error, "nil deref") {
		t.Fatalf("expected panic converted to error, got %q", res.Error)
	}
	if len(res.Items) != 0 {
		t.Fatalf("panicked collector must not return items")
	}
}

func TestRunReturnsItems(t *testing.T) {
	want := []domain.Item{{ID: "hn:1", Source: "stub", Title: "hello"}}
	res := Run(context.Background(), &stubCollector{name: "stub", available: true, items: want}, newMemoryStore())

	if res.Error != "" || res.Skipped {
		t.Fatalf("unexpected failure: error=%q skipped=%v", res.Error, res.Skipped)
	}
	if len(res.Items) != 1 || res.Items[0].ID != "hn:1" {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
}

func TestAllBuildsFullRoster(t *testing.T) {
	cfg := &config.Config{}
	roster := All(cfg, &fakeClient{})

	if len(roster) != 40 {
		t.Fatalf("expected 40 collectors, got %d", len(roster))
	}

	seen := make(map[string]struct{}, len(roster))
	for _, c := range roster {
		name := c.Name()
		if name == "" {
			t.Fatalf("collector with empty name")
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("duplicate collector name %q", name)
		}
		seen[name] = struct{}{}
	}
}

func TestHackerNewsCollect(t *testing.T) {
	client := &fakeClient{responses: map[string]fakeResponse{
		hackerNewsAPIURL: {status: 200, body: []byte(`{
			"hits": [
				{"objectID": "101", "title": "OpenClaw hits 1.0", "url": "https://example.com/a",
				 "author": "pg", "created_at": "2026-08-29T10:00:00Z", "points": 250, "num_comments": 40},
				{"objectID": "102", "title": "Old story", "url": "https://example.com/b",
				 "author": "dang", "created_at": "2026-08-28T10:00:00Z", "points": 10, "num_comments": 2}
			]
		}`)},
	}}

	c := newHackerNews(testBase(client))
	st := newMemoryStore("hn:102")

	items, err := c.Collect(context.Background(), st)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected covered story filtered out, got %d items", len(items))
	}

	item := items[0]
	if item.ID != "hn:101" {
		t.Fatalf("unexpected id %q", item.ID)
	}
	if item.Source != "hackernews" || item.ContentType != "hackernews_story" {
		t.Fatalf("unexpected item classification: %+v", item)
	}
	if item.Metadata["points"] != 250 || item.Metadata["num_comments"] != 40 {
		t.Fatalf("unexpected metadata: %+v", item.Metadata)
	}
	if item.Metadata["hn_url"] != "https://news.ycombinator.com/item?id=101" {
		t.Fatalf("unexpected hn_url: %v", item.Metadata["hn_url"])
	}
}

func TestHackerNewsCollectSurfacesHTTPError(t *testing.T) {
	client := &fakeClient{responses: map[string]fakeResponse{
		hackerNewsAPIURL: {status: 503, body: []byte("unavailable")},
	}}

	c := newHackerNews(testBase(client))
	if _, err := c.Collect(context.Background(), newMemoryStore()); err == nil {
		t.Fatalf("expected error on 503 response")
	}
}

func TestTwitterAvailability(t *testing.T) {
	without := newTwitter(base{cfg: &config.Config{}, client: &fakeClient{}})
	if without.Available() {
		t.Fatalf("twitter must be unavailable without a bearer token")
	}

	with := newTwitter(base{cfg: &config.Config{TwitterBearerToken: "t"}, client: &fakeClient{}})
	if !with.Available() {
		t.Fatalf("twitter must be available with a bearer token")
	}
}

func TestTwitterCollect(t *testing.T) {
	client := &fakeClient{responses: map[string]fakeResponse{
		twitterAPIURL: {status: 200, body: []byte(`{
			"data": [
				{"id": "9001", "text": "openclaw is wild", "author_id": "42",
				 "created_at": "2026-08-29T08:00:00Z",
				 "public_metrics": {"like_count": 150, "retweet_count": 50, "reply_count": 3, "quote_count": 1}}
			]
		}`)},
	}}

	c := newTwitter(base{cfg: &config.Config{TwitterBearerToken: "t"}, client: client})
	items, err := c.Collect(context.Background(), newMemoryStore())
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.ID != "tweet:9001" {
		t.Fatalf("unexpected id %q", item.ID)
	}
	if item.URL != "https://twitter.com/i/web/status/9001" {
		t.Fatalf("unexpected url %q", item.URL)
	}
	if item.Metadata["like_count"] != 150 || item.Metadata["retweet_count"] != 50 {
		t.Fatalf("unexpected metrics: %+v", item.Metadata)
	}
}

func TestGitHubReleasesCollect(t *testing.T) {
	client := &fakeClient{responses: map[string]fakeResponse{
		githubAPIBase + "/repos/openclaw/openclaw/releases": {status: 200, body: []byte(`[
			{"tag_name": "v2.1.0", "name": "Claws Out", "html_url": "https://github.com/openclaw/openclaw/releases/v2.1.0",
			 "body": "Big release", "published_at": "2026-08-28T00:00:00Z", "prerelease": false, "draft": false,
			 "author": {"login": "maintainer"}},
			{"tag_name": "v2.0.0", "name": "", "html_url": "", "body": "", "published_at": "", "author": {"login": ""}}
		]`)},
	}}

	c := newGitHubReleases(testBase(client))
	st := newMemoryStore("release:v2.0.0")

	items, err := c.Collect(context.Background(), st)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected covered release filtered out, got %d", len(items))
	}
	if items[0].ID != "release:v2.1.0" || items[0].Title != "Claws Out" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestGitHubReleasesFallsBackToTagName(t *testing.T) {
	client := &fakeClient{responses: map[string]fakeResponse{
		githubAPIBase: {status: 200, body: []byte(`[
			{"tag_name": "v3.0.0", "name": "", "html_url": "u", "author": {"login": "x"}}
		]`)},
	}}

	c := newGitHubReleases(testBase(client))
	items, err := c.Collect(context.Background(), newMemoryStore())
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "v3.0.0" {
		t.Fatalf("expected tag fallback title, got %+v", items)
	}
}

func TestGitHubStatsSkipsWhenCoveredToday(t *testing.T) {
	c := newGitHubStats(testBase(&fakeClient{err: errors.New("must not be called")}))
	today := c.now().UTC().Format("2006-01-02")

	items, err := c.Collect(context.Background(), newMemoryStore("stats:"+today))
	if err != nil {
		t.Fatalf("covered stats day must not error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("covered stats day must produce no items")
	}
}

func TestLastPageRegexp(t *testing.T) {
	link := `<https://api.github.com/repos/openclaw/openclaw/contributors?per_page=1&page=2>; rel="next", ` +
		`<https://api.github.com/repos/openclaw/openclaw/contributors?per_page=1&page=347>; rel="last"`

	m := lastPageRe.FindStringSubmatch(link)
	if m == nil || m[1] != "347" {
		t.Fatalf("expected last page 347, got %v", m)
	}
}

func TestMatchesKeywords(t *testing.T) {
	if !matchesKeywords(searchKeywords, "Shipping OpenClaw to prod", "") {
		t.Fatalf("expected direct name match")
	}
	if !matchesKeywords(searchKeywords, "the Open Claw project", "") {
		t.Fatalf("expected spaced variant match")
	}
	if matchesKeywords(searchKeywords, "unrelated robotics post", "about crabs") {
		t.Fatalf("expected no match for unrelated text")
	}
}

func TestHashIDStableAndShort(t *testing.T) {
	a := hashID("https://example.com/story")
	b := hashID("https://example.com/story")
	if a != b {
		t.Fatalf("hash must be deterministic")
	}
	if len(a) != 12 {
		t.Fatalf("expected 12-char hash, got %d", len(a))
	}
	if a == hashID("https://example.com/other") {
		t.Fatalf("different inputs must hash differently")
	}
}

func TestClipBoundsRunes(t *testing.T) {
	if got := clip("short", 120); got != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
	long := strings.Repeat("x", 200)
	if got := clip(long, 120); len(got) != 120 {
		t.Fatalf("expected 120 runes, got %d", len(got))
	}
}

func TestSkipCommitRegexp(t *testing.T) {
	housekeeping := []string{
		"Merge pull request #12",
		"chore: bump deps",
		"Update README with badges",
		"fix lint",
	}
	for _, subject := range housekeeping {
		if !skipCommitRe.MatchString(subject) {
			t.Fatalf("expected %q to be skipped", subject)
		}
	}
	if skipCommitRe.MatchString("Add pdf-export skill") {
		t.Fatalf("real skill commits must not be skipped")
	}
}
