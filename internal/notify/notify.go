// Package notify delivers structured moderation messages. Delivery is
// best-effort everywhere it is used: callers log failures and move on.
package notify

import (
	"context"

	"github.com/google/uuid"
)

// Message is a structured notification for a user or the admin queue.
type Message struct {
	RecipientID *uuid.UUID     // nil for admin-audience messages
	Audience    string         // models.AudienceUser or models.AudienceAdmin
	Kind        string         // e.g. "report_filed", "moderation_action"
	Title       string
	Body        string
	Payload     map[string]interface{}
}

type Sink interface {
	Send(ctx context.Context, msg Message) error
}

// Noop drops every message. Used in tests and when notifications are
// disabled.
type Noop struct{}

func (Noop) Send(context.Context, Message) error { return nil }
