package classifier

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalClassify(t *testing.T) {
	l := NewLexical()

	tests := []struct {
		name          string
		text          string
		wantRisk      models.RiskLevel
		wantViolation string
	}{
		{
			name:          "slur is high risk",
			text:          "you are a faggot",
			wantRisk:      models.RiskHigh,
			wantViolation: ViolationHateSpeech,
		},
		{
			name:          "threat is high risk",
			text:          "just kill yourself already",
			wantRisk:      models.RiskHigh,
			wantViolation: ViolationHateSpeech,
		},
		{
			name:          "spam phrase",
			text:          "free money for everyone, click here now",
			wantRisk:      models.RiskMedium,
			wantViolation: ViolationSpam,
		},
		{
			name:          "repeated characters read as spam",
			text:          "buy nowwwwww!!!!",
			wantRisk:      models.RiskMedium,
			wantViolation: ViolationSpam,
		},
		{
			name:          "profanity is medium risk",
			text:          "this product is complete bullshit",
			wantRisk:      models.RiskMedium,
			wantViolation: ViolationInappropriate,
		},
		{
			name:          "shouty promo link",
			text:          "AMAZING DEALS TODAY ONLY VISIT https://deals.example NOW BEFORE ITS GONE CHEAP WATCHES",
			wantRisk:      models.RiskMedium,
			wantViolation: ViolationSpam,
		},
		{
			name:          "clean text is low risk",
			text:          "I disagree with this article's conclusion",
			wantRisk:      models.RiskLow,
			wantViolation: ViolationNone,
		},
		{
			name:          "empty text is low risk",
			text:          "",
			wantRisk:      models.RiskLow,
			wantViolation: ViolationNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := l.Classify(context.Background(), tt.text)
			require.NoError(t, err)
			require.NotNil(t, verdict)
			assert.Equal(t, tt.wantRisk, verdict.RiskLevel)
			assert.Equal(t, tt.wantViolation, verdict.ViolationType)
			assert.NotEmpty(t, verdict.Explanation)
		})
	}
}

func TestLexicalSevereBeatsProfanity(t *testing.T) {
	l := NewLexical()

	verdict, err := l.Classify(context.Background(), "fucking kys loser")
	require.NoError(t, err)
	assert.Equal(t, models.RiskHigh, verdict.RiskLevel)
	assert.Equal(t, ViolationHateSpeech, verdict.ViolationType)
}
