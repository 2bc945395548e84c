package collectors

import (
	"context"
	"fmt"

	"github.com/openclaw-hq/claw-digest/internal/domain"
	"github.com/openclaw-hq/claw-digest/internal/logger"
	"github.com/openclaw-hq/claw-digest/internal/state"
)

// Discord channel types.
const (
	discordGuildText         = 0
	discordGuildAnnouncement = 5
)

// discordFeed reads announcements from a configured guild via the bot API.
type discordFeed struct{ base }

func newDiscordFeed(b base) *discordFeed { return &discordFeed{base: b} }

func (c *discordFeed) Name() string    { return "discord_feed" }
func (c *discordFeed) Available() bool { return c.cfg.DiscordBotToken != "" }

func (c *discordFeed) Collect(ctx context.Context, st state.Store) ([]domain.Item, error) {
	if c.cfg.DiscordGuildID == "" {
		logger.InfoObj("no discord guild configured", "collector_info", map[string]any{
			"collector": c.Name(),
		})
		return nil, nil
	}

	headers := map[string]string{"Authorization": "Bot " + c.cfg.DiscordBotToken}

	var channels []struct {
		ID   string `json:"id"`
		Type int    `json:"type"`
	}
	channelsURL := fmt.Sprintf("%s/guilds/%s/channels", discordAPIBase, c.cfg.DiscordGuildID)
	if err := c.getJSON(ctx, channelsURL, headers, nil, &channels); err != nil {
		return nil, err
	}

	// Prefer the announcement channel, falling back to the first text channel.
	channelID := ""
	for _, ch := range channels {
		if ch.Type == discordGuildAnnouncement {
			channelID = ch.ID
			break
		}
	}
	if channelID == "" {
		for _, ch := range channels {
			if ch.Type == discordGuildText {
				channelID = ch.ID
				break
			}
		}
	}
	if channelID == "" {
		logger.InfoObj("no suitable discord channel found", "collector_info", map[string]any{
			"collector": c.Name(),
		})
		return nil, nil
	}

	var messages []struct {
		ID          string `json:"id"`
		Content     string `json:"content"`
		Timestamp   string `json:"timestamp"`
		Attachments []any  `json:"attachments"`
		Author      struct {
			Username string `json:"username"`
		} `json:"author"`
	}
	messagesURL := fmt.Sprintf("%s/channels/%s/messages", discordAPIBase, channelID)
	if err := c.getJSON(ctx, messagesURL, headers, map[string]string{"limit": "20"}, &messages); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, msg := range messages {
		id := "discord:" + msg.ID
		if st.IsCovered(id) {
			continue
		}

		title := clip(msg.Content, 120)
		if title == "" {
			title = "(attachment)"
		}

		items = append(items, domain.Item{
			ID:          id,
			Source:      c.Name(),
			Title:       title,
			URL:         fmt.Sprintf("https://discord.com/channels/%s/%s/%s", c.cfg.DiscordGuildID, channelID, msg.ID),
			Description: msg.Content,
			Author:      msg.Author.Username,
			PublishedAt: msg.Timestamp,
			ContentType: "discord_message",
			Metadata: map[string]any{
				"channel_id":  channelID,
				"attachments": len(msg.Attachments),
			},
		})
	}
	return items, nil
}
