package assemble

import (
	"encoding/json"
	"strconv"

	"github.com/openclaw-hq/claw-digest/internal/domain"
)

// Tier labels applied to items crossing the engagement thresholds.
const (
	TierTrending = "TRENDING"
	TierHot      = "HOT"
)

const (
	DefaultTrendingThreshold = 100
	DefaultHotThreshold      = 30
)

// engagementWeights is the ordered probe list over metadata keys. Amplified
// signals (retweets, comment-style counts) weigh double.
var engagementWeights = []struct {
	key    string
	weight int
}{
	{"like_count", 1},
	{"likes", 1},
	{"retweet_count", 2},
	{"quote_count", 1},
	{"shares", 1},
	{"upvotes", 1},
	{"reply_count", 1},
	{"num_comments", 2},
	{"comments", 2},
	{"answer_count", 2},
	{"score", 1},
	{"points", 1},
}

// Score computes the unified engagement score for an item. Items without
// metadata, and metadata values that are not numeric, contribute zero.
func Score(item domain.Item) int {
	if len(item.Metadata) == 0 {
		return 0
	}
	total := 0
	for _, probe := range engagementWeights {
		total += metricValue(item.Metadata, probe.key) * probe.weight
	}
	return total
}

// metricValue coerces a metadata value to int. Metadata arrives typed from
// collectors but degrades to float64 or string after a JSON round trip.
func metricValue(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// TierFor maps a score to its label, or "" below both thresholds.
func TierFor(score, trendingThreshold, hotThreshold int) string {
	switch {
	case score >= trendingThreshold:
		return TierTrending
	case score >= hotThreshold:
		return TierHot
	default:
		return ""
	}
}
