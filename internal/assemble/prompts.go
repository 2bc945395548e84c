package assemble

// systemPrompt frames every section generation request.
const systemPrompt = "You are a newsletter writer for the OpenClaw project, an open-source personal " +
	"AI assistant with 170k+ GitHub stars. Write engaging, concise newsletter content " +
	"in clean HTML format. Use h3 for sub-headings, p for paragraphs, ul/li for lists, " +
	"and a tags for links. Do not include html/head/body tags. Keep the tone professional " +
	"but approachable."

// sectionPrompts holds the per-section instructions; {data} is replaced with
// the ranked item listing. Sections without a prompt fall back to list HTML.
var sectionPrompts = map[string]string{
	"editorial": "Write a brief, engaging editorial intro (2-3 paragraphs) summarizing the top " +
		"stories in the OpenClaw ecosystem today. Highlight the most significant " +
		"developments. Data: {data}",
	"top_stories": "Pick the 3-5 most significant stories across the OpenClaw ecosystem today and " +
		"summarize each in one or two sentences. Lead with the most impactful item and " +
		"link every story. Data: {data}",
	"trending_x": "Summarize what people are saying about OpenClaw on X today. Pull out the most " +
		"engaging posts, include key quotes, and link each post. Data: {data}",
	"releases": "Summarize the latest OpenClaw release updates, version changes, and package " +
		"statistics. Include version numbers, key changelog highlights, and " +
		"download/install trends. Data: {data}",
	"community": "Summarize community highlights including notable GitHub discussions, new skills, " +
		"Reddit threads, Discord conversations, and contributor spotlights. Data: {data}",
	"news": "Summarize press and ecosystem coverage of OpenClaw from tech media, blogs, " +
		"newsletters, research outlets, and marketplace listings. Group related items " +
		"and link each one. Data: {data}",
	"security": "Report on security advisories, best practices, and security-related analysis " +
		"relevant to OpenClaw and AI assistants. Data: {data}",
}
