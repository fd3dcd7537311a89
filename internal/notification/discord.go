package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/varoOP/animetop/internal/domain"
)

const discordTimeout = 10 * time.Second

// DiscordService implements NotificationService for Discord webhooks
type DiscordService struct {
	log        zerolog.Logger
	webhookURL string
	client     *resty.Client
}

// NewDiscordService creates a new Discord notification service
func NewDiscordService(log zerolog.Logger, webhookURL string) *DiscordService {
	return &DiscordService{
		log:        log.With().Str("module", "notification").Str("type", "discord").Logger(),
		webhookURL: webhookURL,
		client: resty.New().
			SetTimeout(discordTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

// SendSuccess posts the run statistics as a green embed
func (s *DiscordService) SendSuccess(ctx context.Context, stats domain.Statistics) error {
	if s.webhookURL == "" {
		return nil
	}

	fields := []discordField{
		{Name: "Mode", Value: stats.Mode, Inline: true},
		{Name: "Pages", Value: fmt.Sprintf("%d", stats.Pages), Inline: true},
		{Name: "Records Fetched", Value: fmt.Sprintf("%d", stats.Fetched), Inline: true},
	}
	if stats.StopReason != "" {
		fields = append(fields, discordField{Name: "Stopped On", Value: stats.StopReason, Inline: true})
	}
	fields = append(fields,
		discordField{
			Name:   "Rows Kept",
			Value:  fmt.Sprintf("%d of %d (%.1f%%)", stats.RowsOut, stats.RowsIn, stats.KeptPercent),
			Inline: false,
		},
		discordField{Name: "Duplicates Removed", Value: fmt.Sprintf("%d", stats.DuplicatesDropped), Inline: true},
		discordField{Name: "Invalid Scores Removed", Value: fmt.Sprintf("%d", stats.InvalidScores), Inline: true},
	)

	return s.send(ctx, discordEmbed{
		Title:       "Top Anime Refresh Completed",
		Description: "Cleaned dataset written successfully",
		Color:       0x00ff00,
		Timestamp:   time.Now().Format(time.RFC3339),
		Fields:      fields,
	})
}

// SendError posts the failure as a red embed
func (s *DiscordService) SendError(ctx context.Context, err error) error {
	if s.webhookURL == "" {
		return nil
	}

	return s.send(ctx, discordEmbed{
		Title:       "Top Anime Refresh Failed",
		Description: fmt.Sprintf("Run failed with error:\n```%s```", err.Error()),
		Color:       0xff0000,
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}

func (s *DiscordService) send(ctx context.Context, embed discordEmbed) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(discordWebhook{Embeds: []discordEmbed{embed}}).
		Post(s.webhookURL)
	if err != nil {
		return errors.Wrap(err, "failed to send webhook request")
	}

	if resp.IsError() {
		return errors.Errorf("webhook request failed with status %d", resp.StatusCode())
	}

	s.log.Debug().Msg("Discord notification sent successfully")
	return nil
}

type discordWebhook struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Color       int            `json:"color"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Fields      []discordField `json:"fields,omitempty"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
