package services

import "github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"

var criticalReasons = map[models.ReportReason]bool{
	models.ReasonHateSpeech: true,
	models.ReasonViolence:   true,
	models.ReasonHarassment: true,
}

var highReasons = map[models.ReportReason]bool{
	models.ReasonMisinformation: true,
	models.ReasonInappropriate:  true,
}

// PriorityFor maps a stated reason and the optional classifier verdict to a
// priority tier. First match wins: a reason that is critical by itself stays
// critical no matter what the analysis says; analysis can only escalate the
// rest.
func PriorityFor(reason models.ReportReason, analysis *models.AutomatedAnalysis) models.Priority {
	switch {
	case criticalReasons[reason]:
		return models.PriorityCritical
	case analysis != nil && analysis.RiskLevel == models.RiskHigh:
		return models.PriorityHigh
	case highReasons[reason]:
		return models.PriorityHigh
	case reason == models.ReasonSpam:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}

// EstimatedReview returns the human-facing review-time expectation for a
// priority tier.
func EstimatedReview(priority models.Priority) string {
	switch priority {
	case models.PriorityCritical:
		return "1-2 hours"
	case models.PriorityHigh:
		return "4-8 hours"
	case models.PriorityMedium:
		return "1-2 days"
	default:
		return "3-5 days"
	}
}
