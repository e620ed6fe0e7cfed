package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/audit"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// postCommitEffects collects side effects a handler wants to run after its
// transaction commits: audit events and notifications. Effects never run if
// the transaction rolls back, and a failing effect is logged and swallowed
// so it cannot undo the committed state change.
type postCommitEffects struct {
	logger  *slog.Logger
	effects []namedEffect
}

type namedEffect struct {
	name string
	run  func(ctx context.Context) error
}

func newPostCommitEffects(logger *slog.Logger) *postCommitEffects {
	if logger == nil {
		logger = slog.Default()
	}
	return &postCommitEffects{logger: logger}
}

// Add registers an effect under a name used in the failure log.
func (p *postCommitEffects) Add(name string, run func(ctx context.Context) error) {
	p.effects = append(p.effects, namedEffect{name: name, run: run})
}

// Drain runs all collected effects in order. Failures are logged and
// swallowed.
func (p *postCommitEffects) Drain(ctx context.Context) {
	for _, effect := range p.effects {
		if err := effect.run(ctx); err != nil {
			p.logger.Warn("post-commit effect failed",
				"effect", effect.name,
				"error", err)
		}
	}
}

// auditEffect builds an effect appending an audit event. The event is
// constructed at drain time so its timestamp reflects when it was recorded.
func auditEffect(
	log ports.AuditLog,
	eventType audit.EventType,
	actorID kernel.UUID,
	actorKind audit.ActorKind,
	orderID *kernel.UUID,
	metadata map[string]string,
) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		event, err := audit.NewEvent(kernel.NewUUID(), eventType, actorID, actorKind,
			orderID, metadata, time.Now())
		if err != nil {
			return err
		}
		return log.Append(ctx, event)
	}
}

// notifyEffect builds an effect publishing a notification.
func notifyEffect(publisher ports.NotificationPublisher, notification ports.Notification) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return publisher.Publish(ctx, notification)
	}
}
