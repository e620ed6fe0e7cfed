// Package notify provides the outbound notification adapter. The current
// implementation writes structured log records; a push or email channel can
// replace it behind the same port.
package notify

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// SlogNotificationPublisher implements ports.NotificationPublisher by
// emitting one structured log record per notification.
type SlogNotificationPublisher struct {
	logger *slog.Logger
}

// NewSlogNotificationPublisher creates a log-backed notification publisher.
// A nil logger falls back to slog.Default().
func NewSlogNotificationPublisher(logger *slog.Logger) *SlogNotificationPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotificationPublisher{
		logger: logger.With("component", "notifications"),
	}
}

// Publish emits the notification as a structured log record.
func (p *SlogNotificationPublisher) Publish(ctx context.Context, notification ports.Notification) error {
	if err := notification.UserID.Validate(); err != nil {
		return err
	}
	if notification.Message == "" {
		return errs.NewValueIsRequiredError("message")
	}

	attrs := []any{
		"user_id", notification.UserID.String(),
		"title", notification.Title,
		"message", notification.Message,
		"category", notification.Category,
	}
	for key, value := range notification.Metadata {
		attrs = append(attrs, "meta_"+key, value)
	}

	p.logger.InfoContext(ctx, "notification published", attrs...)
	return nil
}
