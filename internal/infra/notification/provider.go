package notification

import (
	"context"
	"log/slog"

	"playden/config"
	"playden/internal/domain/service"

	"go.uber.org/fx"
)

// noopService is used when Firebase is not configured, e.g. in local
// development. Sends are logged and dropped.
type noopService struct {
	logger *slog.Logger
}

func (s *noopService) SendToUser(ctx context.Context, userID string, title, body string, data map[string]string) error {
	s.logger.Debug("[NoopNotification] push disabled, skipping",
		slog.String("user_id", userID),
		slog.String("title", title),
	)

	return nil
}

func (s *noopService) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	s.logger.Debug("[NoopNotification] push disabled, skipping",
		slog.String("topic", topic),
		slog.String("title", title),
	)

	return nil
}

// ServiceParams holds dependencies for NotificationService, injected by Fx
type ServiceParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewNotificationService creates a NotificationService based on configuration
func NewNotificationService(params ServiceParams) (service.NotificationService, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Info("Firebase not configured, using no-op notification service")

		return &noopService{logger: params.Logger}, nil
	}

	return NewFirebaseService(params.Ctx, cfg.CredentialsPath)
}

// Module provides the notification FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewNotificationService),
)
