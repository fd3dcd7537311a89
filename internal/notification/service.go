package notification

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/varoOP/animetop/internal/domain"
)

// Service fans notifications out to every configured channel.
// With no channel configured every call is a no-op.
type Service struct {
	log     zerolog.Logger
	discord *DiscordService
}

// NewService creates a new notification service
func NewService(log zerolog.Logger, webhookURL string) domain.NotificationService {
	s := &Service{log: log.With().Str("module", "notification").Logger()}
	if webhookURL != "" {
		s.discord = NewDiscordService(log, webhookURL)
	}
	return s
}

// SendSuccess sends success notifications through all configured channels
func (s *Service) SendSuccess(ctx context.Context, stats domain.Statistics) error {
	if s.discord == nil {
		return nil
	}
	return s.discord.SendSuccess(ctx, stats)
}

// SendError sends error notifications through all configured channels
func (s *Service) SendError(ctx context.Context, err error) error {
	if s.discord == nil {
		return nil
	}
	return s.discord.SendError(ctx, err)
}
