package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
)

type SubmitReportRequest struct {
	ContentID   string   `json:"content_id"`
	ContentType string   `json:"content_type"`
	Reason      string   `json:"reason"`
	Description string   `json:"description,omitempty"`
	Evidence    []string `json:"evidence,omitempty"`
}

type SubmitReportResponse struct {
	ReportID            uuid.UUID `json:"report_id"`
	Status              string    `json:"status"`
	EstimatedReviewTime string    `json:"estimated_review_time"`
}

type QueueQuery struct {
	Status      string
	Priority    string
	ContentType string
	Page        int
	Limit       int
}

// ReportListItem is the queue projection of a report. It deliberately has no
// snapshot field: list views must not leak content bodies.
type ReportListItem struct {
	ID              uuid.UUID                 `json:"id"`
	ContentID       string                    `json:"content_id"`
	ContentType     models.ContentType        `json:"content_type"`
	ContentAuthorID *uuid.UUID                `json:"content_author_id"`
	ReporterID      uuid.UUID                 `json:"reporter_id"`
	Reason          models.ReportReason       `json:"reason"`
	Description     string                    `json:"description,omitempty"`
	Analysis        *models.AutomatedAnalysis `json:"automated_analysis,omitempty"`
	Status          models.ReportStatus       `json:"status"`
	Priority        models.Priority           `json:"priority"`
	Action          *models.ReviewAction      `json:"action,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasMore     bool  `json:"has_more"`
}

type QueueResponse struct {
	Reports    []ReportListItem `json:"reports"`
	Pagination Pagination       `json:"pagination"`
}

// UserSummary is the lightweight identity attached to report detail views.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
}

type ReportDetailResponse struct {
	models.Report
	ReporterInfo *UserSummary `json:"reporter_info"`
	AuthorInfo   *UserSummary `json:"author_info"`
}

type ReviewReportRequest struct {
	Action     string `json:"action"`
	Reason     string `json:"reason"`
	Duration   *int   `json:"duration,omitempty"`
	PublicNote string `json:"public_note,omitempty"`
}

type ReviewReportResponse struct {
	ReportID     uuid.UUID             `json:"report_id"`
	Action       models.ReviewAction   `json:"action"`
	ActionResult *models.ActionOutcome `json:"action_result"`
	ReviewedAt   *time.Time            `json:"reviewed_at,omitempty"`
}

type StatsResponse struct {
	Timeframe         string         `json:"timeframe"`
	TotalReports      int            `json:"total_reports"`
	ByStatus          map[string]int `json:"by_status"`
	ByReason          map[string]int `json:"by_reason"`
	ByContentType     map[string]int `json:"by_content_type"`
	ByPriority        map[string]int `json:"by_priority"`
	ByAction          map[string]int `json:"by_action"`
	AverageReviewTime float64        `json:"average_review_time_hours"`
}
