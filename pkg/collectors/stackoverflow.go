package collectors

import (
	"context"
	"strconv"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// stackOverflow fetches recently active questions carrying the project tag.
type stackOverflow struct{ base }

func newStackOverflow(b base) *stackOverflow { return &stackOverflow{base: b} }

func (c *stackOverflow) Name() string    { return "stackoverflow" }
func (c *stackOverflow) Available() bool { return true }

func (c *stackOverflow) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	query := map[string]string{
		"order":  "desc",
		"sort":   "activity",
		"tagged": "openclaw",
		"site":   "stackoverflow",
	}

	var result struct {
		Items []struct {
			QuestionID   int64    `json:"question_id"`
			Title        string   `json:"title"`
			Link         string   `json:"link"`
			Score        int      `json:"score"`
			AnswerCount  int      `json:"answer_count"`
			IsAnswered   bool     `json:"is_answered"`
			CreationDate int64    `json:"creation_date"`
			Tags         []string `json:"tags"`
			Owner        struct {
				DisplayName string `json:"display_name"`
			} `json:"owner"`
		} `json:"items"`
	}
	if err := c.getJSON(ctx, stackOverflowAPIURL+"/search", nil, query, &result); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, q := range result.Items {
		id := "so:" + strconv.FormatInt(q.QuestionID, 10)
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       q.Title,
			URL:         q.Link,
			Author:      q.Owner.DisplayName,
			PublishedAt: strconv.FormatInt(q.CreationDate, 10),
			ContentType: "question",
			Metadata: map[string]any{
				"score":        q.Score,
				"answer_count": q.AnswerCount,
				"is_answered":  q.IsAnswered,
				"tags":         q.Tags,
			},
		})
	}
	return items, nil
}
