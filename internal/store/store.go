package store

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

// ReportFilter narrows a queue listing. Zero values disable a filter.
type ReportFilter struct {
	Status      models.ReportStatus
	Priority    models.Priority
	ContentType models.ContentType
	Limit       int
	Offset      int
}

type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	// HasOpen reports whether an open (pending/under_review) report already
	// exists for the (contentID, reporterID) pair.
	HasOpen(ctx context.Context, contentID string, reporterID uuid.UUID) (bool, error)
	List(ctx context.Context, filter ReportFilter) ([]models.Report, int64, error)
	// SaveReview persists the review fields and outcome of a report.
	SaveReview(ctx context.Context, report *models.Report) error
	CreatedSince(ctx context.Context, since time.Time) ([]models.Report, error)
}

type ContentStore interface {
	Get(ctx context.Context, contentType models.ContentType, id string) (*models.Content, error)
	// SetHidden flags content as under review; visible again only through
	// channels outside this subsystem.
	SetHidden(ctx context.Context, contentType models.ContentType, id string, hidden bool) error
	// MarkRemoved is idempotent: removing already-removed content is a no-op.
	MarkRemoved(ctx context.Context, contentType models.ContentType, id string, at time.Time, reason string) error
}

type UserStore interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	// Suspend is idempotent against an already-suspended user.
	Suspend(ctx context.Context, id uuid.UUID, until time.Time, reason string) error
}

type WarningStore interface {
	Create(ctx context.Context, warning *models.Warning) error
}

type NotificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Store bundles the record collections this subsystem touches. Atomic runs
// fn against a store whose writes all commit together or not at all.
type Store interface {
	Reports() ReportStore
	Contents() ContentStore
	Users() UserStore
	Warnings() WarningStore
	Notifications() NotificationStore
	Atomic(ctx context.Context, fn func(Store) error) error
}
