package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LogNotifier implements ports.Notifier by emitting structured log events.
// The real delivery channel (email, push) consumes these from the log
// pipeline; the billing core only cares that a notice was requested.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// SendPaymentFailureNotice records a terminal payment failure notice.
func (n *LogNotifier) SendPaymentFailureNotice(_ context.Context, ownerID uuid.UUID, reason string) error {
	n.log.Info().
		Str("notice", "payment_failure").
		Str("owner_id", ownerID.String()).
		Str("reason", reason).
		Msg("payment failure notice requested")
	return nil
}

// SendGracePeriodWarning records a grace period warning notice.
func (n *LogNotifier) SendGracePeriodWarning(_ context.Context, ownerID uuid.UUID, deadline time.Time) error {
	n.log.Info().
		Str("notice", "grace_warning").
		Str("owner_id", ownerID.String()).
		Time("deadline", deadline).
		Msg("grace period warning requested")
	return nil
}
