package assemble

import (
	"regexp"
	"strings"
)

// MaxDescriptionLength bounds cleaned descriptions before the ellipsis.
const MaxDescriptionLength = 200

var (
	htmlCommentRe   = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlTagRe       = regexp.MustCompile(`<[^>]+>`)
	greptileLineRe  = regexp.MustCompile(`Greptile (?:Overview|Summary|Confidence Score)[^\n]*`)
	contextUsedRe   = regexp.MustCompile(`(?s)Context used:.*`)
	mdHeadingRe     = regexp.MustCompile(`#{1,6}\s+`)
	mdEmphasisRe    = regexp.MustCompile(`\*{1,2}([^*]+)\*{1,2}`)
	mdImageRe       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLinkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	codeFenceRe     = regexp.MustCompile("(?s)```[^`]*```")
	inlineCodeRe    = regexp.MustCompile("`([^`]*)`")
	horizontalRe    = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	tableRowRe      = regexp.MustCompile(`(?m)^\|.*\|$`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// Clean normalizes a raw description into plain display text: HTML and
// markdown markup is stripped, bot boilerplate removed, whitespace collapsed,
// and the result truncated on a word boundary with an ellipsis. Clean is
// total (any input yields a valid result) and idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	text = htmlCommentRe.ReplaceAllString(text, "")
	text = htmlTagRe.ReplaceAllString(text, "")
	text = greptileLineRe.ReplaceAllString(text, "")
	text = contextUsedRe.ReplaceAllString(text, "")
	text = mdHeadingRe.ReplaceAllString(text, "")
	text = mdEmphasisRe.ReplaceAllString(text, "$1")
	// Images go before links so image syntax is dropped whole, never
	// rewritten into a dangling link label.
	text = mdImageRe.ReplaceAllString(text, "")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = codeFenceRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "```", "")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "`", "")
	text = horizontalRe.ReplaceAllString(text, "")
	text = tableRowRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(text, " "))

	return truncateAtWord(text, MaxDescriptionLength)
}

// truncateAtWord cuts text at the last space before maxLen and appends an
// ellipsis. Text that already carries a truncation ellipsis and fits within
// maxLen plus the ellipsis passes through unchanged, so re-cleaning a cleaned
// description is a no-op.
func truncateAtWord(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if strings.HasSuffix(text, "...") && len(runes) <= maxLen+3 {
		return text
	}

	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
