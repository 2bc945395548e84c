package assemble

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanStripsMarkup(t *testing.T) {
	in := "<!-- bot note --><p>Hello **world**</p>\n## Heading\n" +
		"![screenshot](https://x.test/a.png) see [the docs](https://x.test/docs)\n" +
		"```go\nfunc main() {}\n```\nand `inline` code"
	got := Clean(in)

	for _, banned := range []string{"<", ">", "**", "![", "](", "```", "`", "#"} {
		if strings.Contains(got, banned) {
			t.Errorf("Clean left %q in output: %q", banned, got)
		}
	}
	if !strings.Contains(got, "Hello world") {
		t.Errorf("Clean lost text content: %q", got)
	}
	if !strings.Contains(got, "the docs") {
		t.Errorf("Clean lost link label: %q", got)
	}
	if strings.Contains(got, "func main") {
		t.Errorf("Clean kept fenced code: %q", got)
	}
}

func TestCleanDropsBotBoilerplate(t *testing.T) {
	in := "Fixes the bug.\nGreptile Overview: 4 files changed\nContext used: repo settings\nmore"
	got := Clean(in)
	if strings.Contains(got, "Greptile") {
		t.Errorf("Greptile line survived: %q", got)
	}
	if strings.Contains(got, "Context used") || strings.Contains(got, "more") {
		t.Errorf("context trailer survived: %q", got)
	}
}

func TestCleanTruncatesAtWordBoundary(t *testing.T) {
	in := strings.Repeat("verylongword ", 40)
	got := Clean(in)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if n := utf8.RuneCountInString(got); n > MaxDescriptionLength+3 {
		t.Fatalf("cleaned length = %d runes, want <= %d", n, MaxDescriptionLength+3)
	}
	if strings.Contains(strings.TrimSuffix(got, "..."), "verylongwor ") {
		t.Fatalf("cut mid-word: %q", got)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"short text",
		"<b>bold</b> and [link](https://x.test)",
		strings.Repeat("word ", 100),
		strings.Repeat("ünïcödé ", 60),
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %.30q: %q != %q", in, once, twice)
		}
	}
}

func TestCleanHandlesUnicode(t *testing.T) {
	in := strings.Repeat("héllo wörld ", 30)
	got := Clean(in)
	if !utf8.ValidString(got) {
		t.Fatalf("invalid UTF-8 output: %q", got)
	}
	if n := utf8.RuneCountInString(got); n > MaxDescriptionLength+3 {
		t.Fatalf("rune count = %d, want <= %d", n, MaxDescriptionLength+3)
	}
}
