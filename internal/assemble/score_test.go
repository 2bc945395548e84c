package assemble

import (
	"encoding/json"
	"testing"

	"github.com/openclaw-hq/claw-digest/internal/domain"
)

func TestScoreWeightsMetrics(t *testing.T) {
	tweet := domain.Item{Metadata: map[string]any{
		"like_count":    150,
		"retweet_count": 50,
	}}
	if got := Score(tweet); got != 250 {
		t.Fatalf("tweet score = %d, want 250", got)
	}

	hn := domain.Item{Metadata: map[string]any{
		"points":       50,
		"num_comments": 10,
	}}
	if got := Score(hn); got != 70 {
		t.Fatalf("hn score = %d, want 70", got)
	}

	quiet := domain.Item{Metadata: map[string]any{"likes": 5}}
	if got := Score(quiet); got != 5 {
		t.Fatalf("quiet score = %d, want 5", got)
	}

	// Quote tweets count once, unlike retweets and comment-style metrics.
	quoted := domain.Item{Metadata: map[string]any{"quote_count": 9}}
	if got := Score(quoted); got != 9 {
		t.Fatalf("quoted score = %d, want 9", got)
	}
}

func TestScoreNoMetadata(t *testing.T) {
	if got := Score(domain.Item{}); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
	unknown := domain.Item{Metadata: map[string]any{"version": "2.1.0"}}
	if got := Score(unknown); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestMetricValueCoercion(t *testing.T) {
	m := map[string]any{
		"a": 7,
		"b": int64(8),
		"c": float64(9.9),
		"d": json.Number("10"),
		"e": "11",
		"f": "not-a-number",
		"g": []string{"nope"},
	}
	cases := map[string]int{"a": 7, "b": 8, "c": 9, "d": 10, "e": 11, "f": 0, "g": 0, "missing": 0}
	for key, want := range cases {
		if got := metricValue(m, key); got != want {
			t.Errorf("metricValue(%q) = %d, want %d", key, got, want)
		}
	}
}

func TestTierBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{250, TierTrending},
		{100, TierTrending},
		{99, TierHot},
		{30, TierHot},
		{29, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := TierFor(tc.score, DefaultTrendingThreshold, DefaultHotThreshold); got != tc.want {
			t.Errorf("TierFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
