package collectors

import (
	"context"
	"strings"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// huggingFace fetches related models sorted by downloads.
type huggingFace struct{ base }

func newHuggingFace(b base) *huggingFace { return &huggingFace{base: b} }

func (c *huggingFace) Name() string    { return "huggingface" }
func (c *huggingFace) Available() bool { return true }

func (c *huggingFace) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	query := map[string]string{
		"search":    "openclaw",
		"sort":      "downloads",
		"direction": "-1",
		"limit":     "5",
	}

	var models []struct {
		ModelID      string   `json:"modelId"`
		PipelineTag  string   `json:"pipeline_tag"`
		LastModified string   `json:"lastModified"`
		Downloads    int      `json:"downloads"`
		Likes        int      `json:"likes"`
		Tags         []string `json:"tags"`
	}
	if err := c.getJSON(ctx, huggingFaceAPIURL+"/models", nil, query, &models); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, model := range models {
		if model.ModelID == "" {
			continue
		}
		id := "hf:" + model.ModelID
		if st.IsCovered(id) {
			continue
		}

		author := ""
		if owner, _, found := strings.Cut(model.ModelID, "/"); found {
			author = owner
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       model.ModelID,
			URL:         "https://huggingface.co/" + model.ModelID,
			Description: model.PipelineTag,
			Author:      author,
			PublishedAt: model.LastModified,
			ContentType: "model",
			Metadata: map[string]any{
				"downloads": model.Downloads,
				"likes":     model.Likes,
				"tags":      model.Tags,
			},
		})
	}
	return items, nil
}
