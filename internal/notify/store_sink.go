package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StoreSink persists messages as notification records for later delivery by
// the client-facing notification feed.
type StoreSink struct {
	notifications store.NotificationStore
}

func NewStoreSink(notifications store.NotificationStore) *StoreSink {
	return &StoreSink{notifications: notifications}
}

func (s *StoreSink) Send(ctx context.Context, msg Message) error {
	if msg.Audience != models.AudienceUser && msg.Audience != models.AudienceAdmin {
		return fmt.Errorf("invalid notification audience %q", msg.Audience)
	}
	if msg.Audience == models.AudienceUser && msg.RecipientID == nil {
		return fmt.Errorf("user notification requires a recipient")
	}

	notification := models.Notification{
		ID:          uuid.New(),
		RecipientID: msg.RecipientID,
		Audience:    msg.Audience,
		Kind:        msg.Kind,
		Title:       msg.Title,
		Body:        msg.Body,
	}

	if len(msg.Payload) > 0 {
		if b, err := json.Marshal(msg.Payload); err == nil {
			notification.Payload = datatypes.JSON(b)
		}
	}

	if err := s.notifications.Create(ctx, &notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}
