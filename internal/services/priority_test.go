package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func analysisWithRisk(level models.RiskLevel) *models.AutomatedAnalysis {
	return &models.AutomatedAnalysis{RiskLevel: level, ViolationType: "spam", Confidence: 0.8}
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		name     string
		reason   models.ReportReason
		analysis *models.AutomatedAnalysis
		want     models.Priority
	}{
		{"hate speech is critical", models.ReasonHateSpeech, nil, models.PriorityCritical},
		{"violence is critical", models.ReasonViolence, nil, models.PriorityCritical},
		{"harassment is critical", models.ReasonHarassment, nil, models.PriorityCritical},
		{"harassment stays critical with low risk", models.ReasonHarassment, analysisWithRisk(models.RiskLow), models.PriorityCritical},
		{"hate speech stays critical with high risk", models.ReasonHateSpeech, analysisWithRisk(models.RiskHigh), models.PriorityCritical},
		{"high risk escalates spam", models.ReasonSpam, analysisWithRisk(models.RiskHigh), models.PriorityHigh},
		{"high risk escalates other", models.ReasonOther, analysisWithRisk(models.RiskHigh), models.PriorityHigh},
		{"misinformation is high", models.ReasonMisinformation, nil, models.PriorityHigh},
		{"inappropriate is high", models.ReasonInappropriate, nil, models.PriorityHigh},
		{"spam with low risk is medium", models.ReasonSpam, analysisWithRisk(models.RiskLow), models.PriorityMedium},
		{"spam without analysis is medium", models.ReasonSpam, nil, models.PriorityMedium},
		{"other without analysis is low", models.ReasonOther, nil, models.PriorityLow},
		{"other with medium risk is low", models.ReasonOther, analysisWithRisk(models.RiskMedium), models.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriorityFor(tt.reason, tt.analysis))
		})
	}
}

func TestEstimatedReview(t *testing.T) {
	assert.Equal(t, "1-2 hours", EstimatedReview(models.PriorityCritical))
	assert.Equal(t, "4-8 hours", EstimatedReview(models.PriorityHigh))
	assert.Equal(t, "1-2 days", EstimatedReview(models.PriorityMedium))
	assert.Equal(t, "3-5 days", EstimatedReview(models.PriorityLow))
}
