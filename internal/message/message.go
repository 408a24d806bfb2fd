// internal/message/message.go
//
// Outbound messaging stub.
//
// Context
//   Sign-up and account events enqueue outbound messages (welcome email,
//   profile-suspended notice).  Until the real queue/worker pool is
//   finished, this stub logs the payload and returns nil so callers proceed
//   without blocking.
//
//   Replace the body of EnqueueEmail with code that publishes to your queue
//   of choice (e.g., Redis, NATS, SQS) when ready.
//
//------------------------------------------------------------------------------

package message

import (
	"context"

	"go.uber.org/zap"
)

// Email represents a basic outbound email job.
type Email struct {
	To      []string
	Subject string
	Text    string
	HTML    string // optional – not used by stub
}

// EnqueueEmail logs the email payload.  Swap with real queue publisher later.
func EnqueueEmail(ctx context.Context, msg Email) error {
	zap.S().Infow("queue email",
		"to", msg.To, "subject", msg.Subject, "len_text", len(msg.Text))
	return nil
}
