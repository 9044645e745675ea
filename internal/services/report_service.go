package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/classifier"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const maxEvidenceURLs = 5

var validContentTypes = map[models.ContentType]bool{
	models.ContentPost:    true,
	models.ContentComment: true,
	models.ContentMessage: true,
	models.ContentProfile: true,
	models.ContentProduct: true,
}

var validReasons = map[models.ReportReason]bool{
	models.ReasonSpam:           true,
	models.ReasonHarassment:     true,
	models.ReasonInappropriate:  true,
	models.ReasonMisinformation: true,
	models.ReasonHateSpeech:     true,
	models.ReasonViolence:       true,
	models.ReasonOther:          true,
}

// ReportService owns report intake and the review queue's read side.
type ReportService struct {
	store             store.Store
	classifier        classifier.Classifier
	notifier          notify.Sink
	classifierTimeout time.Duration
}

func NewReportService(st store.Store, cl classifier.Classifier, notifier notify.Sink, classifierTimeout time.Duration) *ReportService {
	if classifierTimeout <= 0 {
		classifierTimeout = 10 * time.Second
	}
	return &ReportService{
		store:             st,
		classifier:        cl,
		notifier:          notifier,
		classifierTimeout: classifierTimeout,
	}
}

// Submit validates and persists a new report. Content lookup and
// classification are tolerant: reporting stays possible when either is
// degraded. Only validation, duplicate, and persistence failures reach the
// caller.
func (s *ReportService) Submit(ctx context.Context, reporterID uuid.UUID, req *dto.SubmitReportRequest) (*dto.SubmitReportResponse, error) {
	contentType := models.ContentType(req.ContentType)
	reason := models.ReportReason(req.Reason)
	if err := validateSubmission(req, contentType, reason); err != nil {
		return nil, err
	}

	// Check-then-act: a race between two identical concurrent submissions
	// can slip through. Accepted as a best-effort guard; a partial unique
	// index on (content_id, reporter_id) over open statuses would close it.
	open, err := s.store.Reports().HasOpen(ctx, req.ContentID, reporterID)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if open {
		return nil, ErrDuplicateReport
	}

	content, err := s.store.Contents().Get(ctx, contentType, req.ContentID)
	if err != nil {
		// A degraded content store must not block reporting.
		slog.Warn("content lookup failed, proceeding without snapshot",
			"content_id", req.ContentID, "content_type", contentType, "error", err)
		content = nil
	}

	report := models.Report{
		ID:          uuid.New(),
		ContentID:   req.ContentID,
		ContentType: contentType,
		ReporterID:  reporterID,
		Reason:      reason,
		Description: strings.TrimSpace(req.Description),
		Status:      models.StatusPending,
	}

	if len(req.Evidence) > 0 {
		if b, err := json.Marshal(req.Evidence); err == nil {
			report.Evidence = datatypes.JSON(b)
		}
	}

	if content != nil {
		report.ContentAuthorID = resolveAuthorID(content)
		report.ContentSnapshot = snapshotContent(content)
		report.Analysis = s.analyze(ctx, content)
	}

	report.Priority = PriorityFor(reason, report.Analysis)

	if err := s.store.Reports().Create(ctx, &report); err != nil {
		return nil, err
	}

	s.applyIntakeSideEffects(ctx, &report)

	return &dto.SubmitReportResponse{
		ReportID:            report.ID,
		Status:              "submitted",
		EstimatedReviewTime: EstimatedReview(report.Priority),
	}, nil
}

func validateSubmission(req *dto.SubmitReportRequest, contentType models.ContentType, reason models.ReportReason) error {
	if strings.TrimSpace(req.ContentID) == "" {
		return fmt.Errorf("%w: content_id is required", ErrValidation)
	}
	if !validContentTypes[contentType] {
		return fmt.Errorf("%w: invalid content_type %q", ErrValidation, req.ContentType)
	}
	if !validReasons[reason] {
		return fmt.Errorf("%w: invalid reason %q", ErrValidation, req.Reason)
	}
	if desc := strings.TrimSpace(req.Description); desc != "" {
		if len(desc) < 10 || len(desc) > 500 {
			return fmt.Errorf("%w: description must be 10-500 characters", ErrValidation)
		}
	}
	if len(req.Evidence) > maxEvidenceURLs {
		return fmt.Errorf("%w: at most %d evidence URLs", ErrValidation, maxEvidenceURLs)
	}
	for _, raw := range req.Evidence {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: evidence must be http(s) URLs", ErrValidation)
		}
	}
	return nil
}

// resolveAuthorID prefers the content's author field; absent that, a content
// id that happens to be a user id is treated as self-describing.
func resolveAuthorID(content *models.Content) *uuid.UUID {
	if content.AuthorID != nil {
		return content.AuthorID
	}
	if id, err := uuid.Parse(content.ID); err == nil {
		return &id
	}
	return nil
}

// snapshotContent captures an immutable copy of the content at report time,
// independent of later edits or deletion of the original.
func snapshotContent(content *models.Content) datatypes.JSON {
	snapshot := map[string]interface{}{
		"id":          content.ID,
		"type":        content.Type,
		"captured_at": time.Now().UTC().Format(time.RFC3339),
	}
	if content.AuthorID != nil {
		snapshot["author_id"] = content.AuthorID.String()
	}
	switch content.Type {
	case models.ContentProfile:
		snapshot["name"] = content.Name
		snapshot["bio"] = content.Bio
	case models.ContentProduct:
		snapshot["title"] = content.Title
		snapshot["description"] = content.Description
	default:
		snapshot["body"] = content.Body
	}

	b, err := json.Marshal(snapshot)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// extractText maps content fields to classifier input by content type.
func extractText(content *models.Content) string {
	switch content.Type {
	case models.ContentProfile:
		return strings.TrimSpace(content.Name + "\n" + content.Bio)
	case models.ContentProduct:
		return strings.TrimSpace(content.Title + "\n" + content.Description)
	default:
		return content.Body
	}
}

// analyze runs the classifier with a bounded timeout. Failures are swallowed:
// the report simply carries no automated analysis.
func (s *ReportService) analyze(ctx context.Context, content *models.Content) *models.AutomatedAnalysis {
	text := extractText(content)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, s.classifierTimeout)
	defer cancel()

	verdict, err := s.classifier.Classify(cctx, text)
	if err != nil {
		slog.Warn("classifier unavailable, report proceeds without analysis",
			"content_id", content.ID, "error", err)
		return nil
	}
	if verdict == nil {
		return nil
	}

	return &models.AutomatedAnalysis{
		RiskLevel:     verdict.RiskLevel,
		ViolationType: verdict.ViolationType,
		Confidence:    verdict.Confidence,
		Explanation:   verdict.Explanation,
	}
}

// applyIntakeSideEffects hides risky content and alerts admins about critical
// reports. Best-effort: failures are logged, never surfaced to the reporter.
func (s *ReportService) applyIntakeSideEffects(ctx context.Context, report *models.Report) {
	highRisk := report.Analysis != nil && report.Analysis.RiskLevel == models.RiskHigh
	if report.Priority == models.PriorityHigh || report.Priority == models.PriorityCritical || highRisk {
		if err := s.store.Contents().SetHidden(ctx, report.ContentType, report.ContentID, true); err != nil {
			slog.Error("failed to hide reported content",
				"report_id", report.ID, "content_id", report.ContentID, "error", err)
		}
	}

	if report.Priority == models.PriorityCritical {
		msg := notify.Message{
			Audience: models.AudienceAdmin,
			Kind:     "critical_report",
			Title:    "Critical report filed",
			Body:     fmt.Sprintf("A %s report against %s %s needs immediate review", report.Reason, report.ContentType, report.ContentID),
			Payload: map[string]interface{}{
				"report_id":    report.ID.String(),
				"content_id":   report.ContentID,
				"content_type": string(report.ContentType),
				"priority":     string(report.Priority),
			},
		}
		if err := s.notifier.Send(ctx, msg); err != nil {
			slog.Error("failed to notify admins of critical report", "report_id", report.ID, "error", err)
		}
	}
}

// List returns the paginated review queue. Status defaults to pending;
// "all" disables the status filter. List items never include the snapshot.
func (s *ReportService) List(ctx context.Context, query dto.QueueQuery) (*dto.QueueResponse, error) {
	status := models.StatusPending
	switch query.Status {
	case "":
	case "all":
		status = ""
	default:
		status = models.ReportStatus(query.Status)
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := store.ReportFilter{
		Status:      status,
		Priority:    models.Priority(query.Priority),
		ContentType: models.ContentType(query.ContentType),
		Limit:       limit,
		Offset:      (page - 1) * limit,
	}

	reports, total, err := s.store.Reports().List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	items := make([]dto.ReportListItem, len(reports))
	for i, r := range reports {
		items[i] = toListItem(&r)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &dto.QueueResponse{
		Reports: items,
		Pagination: dto.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasMore:     page < totalPages,
		},
	}, nil
}

func toListItem(r *models.Report) dto.ReportListItem {
	return dto.ReportListItem{
		ID:              r.ID,
		ContentID:       r.ContentID,
		ContentType:     r.ContentType,
		ContentAuthorID: r.ContentAuthorID,
		ReporterID:      r.ReporterID,
		Reason:          r.Reason,
		Description:     r.Description,
		Analysis:        r.Analysis,
		Status:          r.Status,
		Priority:        r.Priority,
		Action:          r.Action,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// Get returns the full report with reporter/author identity summaries.
// Missing identities resolve to nil summaries rather than failing the view.
func (s *ReportService) Get(ctx context.Context, id uuid.UUID) (*dto.ReportDetailResponse, error) {
	report, err := s.store.Reports().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}

	detail := &dto.ReportDetailResponse{Report: *report}
	detail.ReporterInfo = s.userSummary(ctx, &report.ReporterID)
	detail.AuthorInfo = s.userSummary(ctx, report.ContentAuthorID)
	return detail, nil
}

func (s *ReportService) userSummary(ctx context.Context, id *uuid.UUID) *dto.UserSummary {
	if id == nil {
		return nil
	}
	user, err := s.store.Users().Get(ctx, *id)
	if err != nil {
		return nil
	}
	return &dto.UserSummary{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}
