package collectors

// Source registry: endpoints and identifiers for every tracked surface.

const (
	githubOwner   = "openclaw"
	githubRepo    = "openclaw"
	githubAPIBase = "https://api.github.com"
	githubGraphQL = "https://api.github.com/graphql"

	clawhubOwner = "openclaw"
	clawhubRepo  = "clawhub"

	npmPackageURL      = "https://registry.npmjs.org/openclaw"
	npmDownloadsURL    = "https://api.npmjs.org/downloads/point/last-week/openclaw"
	homebrewAPIURL     = "https://formulae.brew.sh/api/formula/openclaw-cli.json"
	dockerHubURL       = "https://hub.docker.com/v2/repositories/openclaw/openclaw"
	vscodeGalleryURL   = "https://marketplace.visualstudio.com/_apis/public/gallery/extensionquery"
	vscodeExtensionID  = "openclaw.openclaw-vscode"
	huggingFaceAPIURL  = "https://huggingface.co/api"
	digitalOceanURL    = "https://marketplace.digitalocean.com/apps/openclaw"

	officialBlogRSS = "https://openclaw.ai/blog/rss.xml"
	showcaseURL     = "https://openclaw.ai/showcase"
	shoutoutsURL    = "https://openclaw.ai/shoutouts"
	docsURL         = "https://docs.openclaw.ai"
	learnClawURL    = "https://learnclaw.ai/changelog"

	hackerNewsAPIURL     = "https://hn.algolia.com/api/v1/search"
	devtoAPIURL          = "https://dev.to/api/articles"
	mediumRSSURL         = "https://medium.com/feed/tag/openclaw"
	lobstersRSSURL       = "https://lobste.rs/rss"
	cacmRSSURL           = "https://cacm.acm.org/feed"
	sciAmRSSURL          = "https://www.scientificamerican.com/feed/"
	tldrURL              = "https://tldr.tech"
	claw360URL           = "https://claw360.io"
	clawhuntSpaceURL     = "https://clawhunt.space"
	clawhuntShURL        = "https://clawhunt.sh"
	alternativeToURL     = "https://alternativeto.net/software/clawdbot"
	wikipediaAPIURL      = "https://en.wikipedia.org/w/api.php"
	wikipediaArticle     = "OpenClaw_(software)"
	productHuntURL       = "https://www.producthunt.com/products/openclaw"
	stackOverflowAPIURL  = "https://api.stackexchange.com/2.3"
	g2LearningURL        = "https://learn.g2.com/feed"
	arxivAPIURL          = "https://export.arxiv.org/api/query"
	twitterAPIURL        = "https://api.twitter.com/2"
	moltbookAPIURL       = "https://moltbook.com/api/v1"
	discordAPIBase       = "https://discord.com/api/v10"
	youtubeAPIURL        = "https://www.googleapis.com/youtube/v3"
	eventbriteAPIURL     = "https://www.eventbriteapi.com/v3"
	newsAPIURL           = "https://newsapi.org/v2/everything"
	newsAPIDomains       = "techcrunch.com,venturebeat.com,wired.com,theverge.com,arstechnica.com"
	redditTokenURL       = "https://www.reddit.com/api/v1/access_token"
	redditOAuthBase      = "https://oauth.reddit.com"
)

// awesomeSkillsRepos lists community-curated skill repositories to watch.
var awesomeSkillsRepos = []struct {
	Owner string
	Repo  string
}{
	{Owner: "VoltAgent", Repo: "awesome-openclaw-skills"},
	{Owner: "sundial-org", Repo: "awesome-openclaw-skills"},
}

var redditSubreddits = []string{"LocalLLM", "artificial", "programming"}

var substackFeeds = []string{
	"https://simonwillison.substack.com/feed",
	"https://thealgorithmicbridge.substack.com/feed",
	"https://aitidbits.substack.com/feed",
	"https://bensbites.beehiiv.com/feed",
	"https://thesequence.substack.com/feed",
	"https://importai.substack.com/feed",
	"https://lastweekinai.substack.com/feed",
	"https://theaiedge.substack.com/feed",
}

var securityRSSFeeds = []string{
	"https://www.crowdstrike.com/blog/feed",
	"https://www.bitdefender.com/blog/api/rss/labs/",
	"https://feeds.trendmicro.com/TrendMicroResearch",
}

// searchKeywords gate broad feeds down to project mentions.
var searchKeywords = []string{"openclaw", "open claw", "claw ai assistant"}
