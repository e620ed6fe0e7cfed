package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// Notification is a structured notify request for a single user.
type Notification struct {
	UserID   kernel.UUID
	Title    string
	Message  string
	Category string
	Metadata map[string]string
}

// NotificationPublisher delivers notifications to users. It is
// fire-and-forget from the core's perspective: publish failures are logged
// at the call site and never fail a business operation.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification Notification) error
}
