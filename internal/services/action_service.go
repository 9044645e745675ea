package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
	"github.com/google/uuid"
)

const (
	defaultSuspensionDays = 7
	warningValidityDays   = 30
)

var validActions = map[models.ReviewAction]bool{
	models.ActionApprove:     true,
	models.ActionRemove:      true,
	models.ActionWarn:        true,
	models.ActionSuspendUser: true,
	models.ActionEscalate:    true,
}

// ActionService executes reviewer decisions against the content store and
// user records, then writes the outcome back onto the report.
type ActionService struct {
	store    store.Store
	notifier notify.Sink
}

func NewActionService(st store.Store, notifier notify.Sink) *ActionService {
	return &ActionService{store: st, notifier: notifier}
}

// Review applies a reviewer's decision to a report. Content/user mutations
// run in one transaction and are idempotent, so a retry after a partial
// failure is safe. On execution failure the report keeps its current status
// and only the failed outcome is recorded, leaving the report retryable.
func (s *ActionService) Review(ctx context.Context, reviewerID, reportID uuid.UUID, req *dto.ReviewReportRequest) (*dto.ReviewReportResponse, error) {
	action := models.ReviewAction(req.Action)
	if err := validateReview(req, action); err != nil {
		return nil, err
	}

	report, err := s.store.Reports().GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if !report.Status.Open() {
		return nil, ErrAlreadyReviewed
	}

	outcome := s.execute(ctx, report, action, req)

	now := outcome.ExecutedAt
	report.Outcome = outcome
	report.UpdatedAt = now
	if outcome.Success {
		if action == models.ActionEscalate {
			report.Status = models.StatusEscalated
		} else {
			report.Status = models.StatusReviewed
		}
		report.ReviewedBy = &reviewerID
		report.ReviewedAt = &now
		report.Action = &action
		report.ActionReason = req.Reason
		report.SuspensionDays = req.Duration
		report.PublicNote = req.PublicNote
	}

	if err := s.store.Reports().SaveReview(ctx, report); err != nil {
		return nil, err
	}

	if outcome.Success && action != models.ActionApprove {
		s.notifyAuthor(ctx, report, action, req)
	}

	return &dto.ReviewReportResponse{
		ReportID:     report.ID,
		Action:       action,
		ActionResult: outcome,
		ReviewedAt:   report.ReviewedAt,
	}, nil
}

func validateReview(req *dto.ReviewReportRequest, action models.ReviewAction) error {
	if !validActions[action] {
		return fmt.Errorf("%w: invalid action %q", ErrValidation, req.Action)
	}
	reason := strings.TrimSpace(req.Reason)
	if len(reason) < 5 || len(reason) > 200 {
		return fmt.Errorf("%w: reason must be 5-200 characters", ErrValidation)
	}
	if req.Duration != nil && *req.Duration < 1 {
		return fmt.Errorf("%w: duration must be at least 1 day", ErrValidation)
	}
	return nil
}

// execute performs the enforcement mutations for an action inside a single
// transaction. It never propagates a failure past this layer: the returned
// outcome carries success or the execution error.
func (s *ActionService) execute(ctx context.Context, report *models.Report, action models.ReviewAction, req *dto.ReviewReportRequest) *models.ActionOutcome {
	now := time.Now().UTC()
	outcome := &models.ActionOutcome{Action: action, ExecutedAt: now}

	var err error
	switch action {
	case models.ActionApprove, models.ActionEscalate:
		// No content or user mutation; escalate only changes report status.
	case models.ActionRemove:
		err = s.store.Atomic(ctx, func(tx store.Store) error {
			return tx.Contents().MarkRemoved(ctx, report.ContentType, report.ContentID, now, req.Reason)
		})
	case models.ActionWarn:
		if report.ContentAuthorID == nil {
			err = errors.New("content author unknown, cannot issue warning")
			break
		}
		err = s.store.Atomic(ctx, func(tx store.Store) error {
			return tx.Warnings().Create(ctx, &models.Warning{
				ID:        uuid.New(),
				UserID:    *report.ContentAuthorID,
				ReportID:  report.ID,
				Reason:    req.Reason,
				IssuedAt:  now,
				ExpiresAt: now.AddDate(0, 0, warningValidityDays),
			})
		})
	case models.ActionSuspendUser:
		if report.ContentAuthorID == nil {
			err = errors.New("content author unknown, cannot suspend")
			break
		}
		days := defaultSuspensionDays
		if req.Duration != nil {
			days = *req.Duration
		}
		until := now.AddDate(0, 0, days)
		err = s.store.Atomic(ctx, func(tx store.Store) error {
			return tx.Users().Suspend(ctx, *report.ContentAuthorID, until, req.Reason)
		})
	}

	if err != nil {
		slog.Error("moderation action execution failed",
			"report_id", report.ID, "action", action, "error", err)
		outcome.Success = false
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Success = true
	return outcome
}

// notifyAuthor tells the content author what happened. A failed delivery
// never fails the review.
func (s *ActionService) notifyAuthor(ctx context.Context, report *models.Report, action models.ReviewAction, req *dto.ReviewReportRequest) {
	if report.ContentAuthorID == nil {
		return
	}

	body := fmt.Sprintf("A moderation decision (%s) was taken on your %s: %s", action, report.ContentType, req.Reason)
	if req.PublicNote != "" {
		body += "\n" + req.PublicNote
	}

	msg := notify.Message{
		RecipientID: report.ContentAuthorID,
		Audience:    models.AudienceUser,
		Kind:        "moderation_action",
		Title:       "Moderation decision on your content",
		Body:        body,
		Payload: map[string]interface{}{
			"report_id":    report.ID.String(),
			"content_id":   report.ContentID,
			"content_type": string(report.ContentType),
			"action":       string(action),
		},
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		slog.Error("failed to notify content author", "report_id", report.ID, "error", err)
	}
}
