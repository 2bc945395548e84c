package collectors

import (
	"context"
	"encoding/json"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// events fetches upcoming meetups and conferences from Eventbrite.
type events struct{ base }

func newEvents(b base) *events { return &events{base: b} }

func (c *events) Name() string    { return "events" }
func (c *events) Available() bool { return c.cfg.EventbriteToken != "" }

// eventbriteText accepts both {"text": "..."} objects and plain strings.
type eventbriteText struct {
	Text string
}

func (t *eventbriteText) UnmarshalJSON(data []byte) error {
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		t.Text = obj.Text
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t.Text = s
	return nil
}

func (c *events) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	query := map[string]string{
		"q":     "openclaw AI",
		"token": c.cfg.EventbriteToken,
	}

	var result struct {
		Events []struct {
			ID          string         `json:"id"`
			Name        eventbriteText `json:"name"`
			Description eventbriteText `json:"description"`
			URL         string         `json:"url"`
			OnlineEvent bool           `json:"online_event"`
			Start       struct {
				Local string `json:"local"`
				UTC   string `json:"utc"`
			} `json:"start"`
			Venue struct {
				Name    string `json:"name"`
				Address struct {
					City string `json:"city"`
				} `json:"address"`
			} `json:"venue"`
		} `json:"events"`
	}
	if err := c.getJSON(ctx, eventbriteAPIURL+"/events/search/", nil, query, &result); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, event := range result.Events {
		id := "event:" + event.ID
		if st.IsCovered(id) {
			continue
		}
		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       event.Name.Text,
			URL:         event.URL,
			Description: clip(event.Description.Text, 500),
			PublishedAt: event.Start.UTC,
			ContentType: "event",
			Metadata: map[string]any{
				"venue_name":  event.Venue.Name,
				"venue_city":  event.Venue.Address.City,
				"start_local": event.Start.Local,
				"start_utc":   event.Start.UTC,
				"is_online":   event.OnlineEvent,
			},
		})
	}
	return items, nil
}
