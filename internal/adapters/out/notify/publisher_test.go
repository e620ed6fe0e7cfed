package notify_test

import (
	"bytes"
	"log/slog"
	"testing"

	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogNotificationPublisher_Publish(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	publisher := notify.NewSlogNotificationPublisher(logger)
	userID := kernel.NewUUID()

	err := publisher.Publish(t.Context(), ports.Notification{
		UserID:   userID,
		Title:    "Order update",
		Message:  "Order MKT-20260901-ABC123 is now completed.",
		Category: "status_changed",
		Metadata: map[string]string{"status": "completed"},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "notification published")
	assert.Contains(t, out, userID.String())
	assert.Contains(t, out, "status_changed")
	assert.Contains(t, out, "meta_status=completed")
}

func TestSlogNotificationPublisher_Publish_RequiresUser(t *testing.T) {
	publisher := notify.NewSlogNotificationPublisher(nil)

	err := publisher.Publish(t.Context(), ports.Notification{Message: "hello"})

	require.Error(t, err)
}

func TestSlogNotificationPublisher_Publish_RequiresMessage(t *testing.T) {
	publisher := notify.NewSlogNotificationPublisher(nil)

	err := publisher.Publish(t.Context(), ports.Notification{UserID: kernel.NewUUID()})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}
