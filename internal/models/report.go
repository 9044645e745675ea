package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ContentType string

const (
	ContentPost    ContentType = "post"
	ContentComment ContentType = "comment"
	ContentMessage ContentType = "message"
	ContentProfile ContentType = "profile"
	ContentProduct ContentType = "product"
)

type ReportReason string

const (
	ReasonSpam           ReportReason = "spam"
	ReasonHarassment     ReportReason = "harassment"
	ReasonInappropriate  ReportReason = "inappropriate"
	ReasonMisinformation ReportReason = "misinformation"
	ReasonHateSpeech     ReportReason = "hate_speech"
	ReasonViolence       ReportReason = "violence"
	ReasonOther          ReportReason = "other"
)

type ReportStatus string

const (
	StatusPending     ReportStatus = "pending"
	StatusUnderReview ReportStatus = "under_review"
	StatusReviewed    ReportStatus = "reviewed"
	StatusEscalated   ReportStatus = "escalated"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type ReviewAction string

const (
	ActionApprove     ReviewAction = "approve"
	ActionRemove      ReviewAction = "remove"
	ActionWarn        ReviewAction = "warn"
	ActionSuspendUser ReviewAction = "suspend_user"
	ActionEscalate    ReviewAction = "escalate"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AutomatedAnalysis is the classifier verdict captured at report creation.
// Advisory input to priority calculation, never mutated afterwards.
type AutomatedAnalysis struct {
	RiskLevel     RiskLevel `gorm:"size:10" json:"risk_level"`
	ViolationType string    `gorm:"size:30" json:"violation_type"`
	Confidence    float64   `json:"confidence"`
	Explanation   string    `gorm:"size:500" json:"explanation"`
}

// ActionOutcome records the result of executing a reviewer's decision.
type ActionOutcome struct {
	Success    bool         `json:"success"`
	Action     ReviewAction `gorm:"size:20" json:"action"`
	ExecutedAt time.Time    `json:"executed_at"`
	Error      string       `gorm:"size:500" json:"error,omitempty"`
}

// Report is the central moderation entity. Priority is computed once at
// creation; status only moves forward (pending -> reviewed | escalated);
// the review fields are written together, exactly once.
type Report struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContentID       string         `gorm:"not null;size:255;index:idx_reports_content_reporter" json:"content_id"`
	ContentType     ContentType    `gorm:"not null;size:20;index" json:"content_type"`
	ContentAuthorID *uuid.UUID     `gorm:"type:uuid;index" json:"content_author_id"`
	ReporterID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_reports_content_reporter" json:"reporter_id"`
	Reason          ReportReason   `gorm:"not null;size:30;index" json:"reason"`
	Description     string         `gorm:"size:500" json:"description,omitempty"`
	Evidence        datatypes.JSON `json:"evidence,omitempty"`
	ContentSnapshot datatypes.JSON `json:"content_snapshot,omitempty"`

	Analysis *AutomatedAnalysis `gorm:"embedded;embeddedPrefix:analysis_" json:"automated_analysis,omitempty"`

	Status   ReportStatus `gorm:"not null;default:'pending';size:20;index" json:"status"`
	Priority Priority     `gorm:"not null;size:10;index" json:"priority"`

	ReviewedBy     *uuid.UUID    `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time    `json:"reviewed_at,omitempty"`
	Action         *ReviewAction `gorm:"size:20" json:"action,omitempty"`
	ActionReason   string        `gorm:"size:200" json:"action_reason,omitempty"`
	SuspensionDays *int          `json:"suspension_days,omitempty"`
	PublicNote     string        `gorm:"size:500" json:"public_note,omitempty"`

	Outcome *ActionOutcome `gorm:"embedded;embeddedPrefix:outcome_" json:"action_outcome,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Open reports the statuses a reviewer has not finished with yet. The
// duplicate-submission guard only considers open reports.
func (s ReportStatus) Open() bool {
	return s == StatusPending || s == StatusUnderReview
}
