// Package classifier provides the text-risk classification capability used
// by report intake. Implementations must be safe to fail: intake treats any
// error or timeout as "no analysis".
package classifier

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
)

// Violation categories a verdict may carry.
const (
	ViolationNone           = "none"
	ViolationSpam           = "spam"
	ViolationHarassment     = "harassment"
	ViolationInappropriate  = "inappropriate"
	ViolationMisinformation = "misinformation"
	ViolationHateSpeech     = "hate_speech"
	ViolationViolence       = "violence"
)

// Verdict is the classifier's risk assessment of a piece of text.
type Verdict struct {
	RiskLevel     models.RiskLevel
	ViolationType string
	Confidence    float64
	Explanation   string
}

type Classifier interface {
	Classify(ctx context.Context, text string) (*Verdict, error)
}

var validRiskLevels = map[models.RiskLevel]bool{
	models.RiskLow:    true,
	models.RiskMedium: true,
	models.RiskHigh:   true,
}

var validViolations = map[string]bool{
	ViolationNone:           true,
	ViolationSpam:           true,
	ViolationHarassment:     true,
	ViolationInappropriate:  true,
	ViolationMisinformation: true,
	ViolationHateSpeech:     true,
	ViolationViolence:       true,
}
