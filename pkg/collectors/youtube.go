package collectors

import (
	"context"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// youtube fetches recent videos via the Data API v3.
type youtube struct{ base }

func newYouTube(b base) *youtube { return &youtube{base: b} }

func (c *youtube) Name() string    { return "youtube" }
func (c *youtube) Available() bool { return c.cfg.YouTubeAPIKey != "" }

func (c *youtube) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	query := map[string]string{
		"part":       "snippet",
		"q":          "openclaw",
		"type":       "video",
		"order":      "date",
		"maxResults": "10",
		"key":        c.cfg.YouTubeAPIKey,
	}

	var result struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				Description  string `json:"description"`
				ChannelTitle string `json:"channelTitle"`
				ChannelID    string `json:"channelId"`
				PublishedAt  string `json:"publishedAt"`
				Thumbnails   struct {
					High struct {
						URL string `json:"url"`
					} `json:"high"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, youtubeAPIURL+"/search", nil, query, &result); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, entry := range result.Items {
		videoID := entry.ID.VideoID
		if videoID == "" {
			continue
		}
		id := "yt:" + videoID
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       entry.Snippet.Title,
			URL:         "https://www.youtube.com/watch?v=" + videoID,
			Description: entry.Snippet.Description,
			Author:      entry.Snippet.ChannelTitle,
			PublishedAt: entry.Snippet.PublishedAt,
			ContentType: "youtube_video",
			Metadata: map[string]any{
				"channelTitle": entry.Snippet.ChannelTitle,
				"channelId":    entry.Snippet.ChannelID,
				"thumbnailUrl": entry.Snippet.Thumbnails.High.URL,
			},
		})
	}
	return items, nil
}
