package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// New returns a Store backed by the given GORM connection.
func New(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Reports() ReportStore             { return (*gormReports)(s) }
func (s *gormStore) Contents() ContentStore           { return (*gormContents)(s) }
func (s *gormStore) Users() UserStore                 { return (*gormUsers)(s) }
func (s *gormStore) Warnings() WarningStore           { return (*gormWarnings)(s) }
func (s *gormStore) Notifications() NotificationStore { return (*gormNotifications)(s) }

func (s *gormStore) Atomic(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

type gormReports gormStore

func (r *gormReports) Create(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *gormReports) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *gormReports) HasOpen(ctx context.Context, contentID string, reporterID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("content_id = ? AND reporter_id = ?", contentID, reporterID).
		Where("status IN ?", []models.ReportStatus{models.StatusPending, models.StatusUnderReview}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormReports) List(ctx context.Context, filter ReportFilter) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.ContentType != "" {
		query = query.Where("content_type = ?", filter.ContentType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Limit(filter.Limit).Offset(filter.Offset).Find(&reports).Error; err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *gormReports) SaveReview(ctx context.Context, report *models.Report) error {
	if err := r.db.WithContext(ctx).Save(report).Error; err != nil {
		return fmt.Errorf("failed to save report review: %w", err)
	}
	return nil
}

func (r *gormReports) CreatedSince(ctx context.Context, since time.Time) ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.WithContext(ctx).Where("created_at >= ?", since).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

type gormContents gormStore

func (c *gormContents) Get(ctx context.Context, contentType models.ContentType, id string) (*models.Content, error) {
	var content models.Content
	if err := c.db.WithContext(ctx).First(&content, "id = ? AND type = ?", id, contentType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &content, nil
}

func (c *gormContents) SetHidden(ctx context.Context, contentType models.ContentType, id string, hidden bool) error {
	return c.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ? AND type = ?", id, contentType).
		Update("hidden", hidden).Error
}

func (c *gormContents) MarkRemoved(ctx context.Context, contentType models.ContentType, id string, at time.Time, reason string) error {
	// Re-removal overwrites the same terminal state, so retries are safe.
	return c.db.WithContext(ctx).Model(&models.Content{}).
		Where("id = ? AND type = ?", id, contentType).
		Updates(map[string]interface{}{
			"removed":        true,
			"hidden":         true,
			"removed_at":     at,
			"removal_reason": reason,
		}).Error
}

type gormUsers gormStore

func (u *gormUsers) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *gormUsers) Suspend(ctx context.Context, id uuid.UUID, until time.Time, reason string) error {
	return u.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"suspended":         true,
			"suspended_until":   until,
			"suspension_reason": reason,
		}).Error
}

type gormWarnings gormStore

func (w *gormWarnings) Create(ctx context.Context, warning *models.Warning) error {
	if err := w.db.WithContext(ctx).Create(warning).Error; err != nil {
		return fmt.Errorf("failed to create warning: %w", err)
	}
	return nil
}

type gormNotifications gormStore

func (n *gormNotifications) Create(ctx context.Context, notification *models.Notification) error {
	if err := n.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}
