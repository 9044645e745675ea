package classifier

import (
	"context"
	"regexp"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
)

// Slurs and threats score high; profanity scores medium.
var severeWords = []string{
	"nigger", "nigga", "chink", "spic", "kike", "faggot", "fag",
	"tranny", "kill yourself", "kys",
}

var profanityWords = []string{
	"fuck", "fucking", "fucker", "shit", "shitty", "bullshit",
	"ass", "asshole", "bastard", "bitch", "cunt", "retard", "retarded",
}

var spamWords = []string{
	"spam", "scam", "scammer", "phishing", "malware",
	"free money", "click here", "limited offer",
}

// Lexical is a local heuristic classifier used when no remote provider is
// configured. It only looks at surface patterns, so its confidence is
// deliberately modest outside the severe list.
type Lexical struct {
	severe    []*regexp.Regexp
	profanity []*regexp.Regexp
	spam      []*regexp.Regexp

	urlPattern          *regexp.Regexp
	repeatedCharPattern *regexp.Regexp
	allCapsPattern      *regexp.Regexp
}

func NewLexical() *Lexical {
	return &Lexical{
		severe:              compileWordPatterns(severeWords),
		profanity:           compileWordPatterns(profanityWords),
		spam:                compileWordPatterns(spamWords),
		urlPattern:          regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`),
		repeatedCharPattern: regexp.MustCompile(`(?i)(a{4,}|b{4,}|c{4,}|d{4,}|e{4,}|f{4,}|g{4,}|h{4,}|i{4,}|j{4,}|k{4,}|l{4,}|m{4,}|n{4,}|o{4,}|p{4,}|q{4,}|r{4,}|s{4,}|t{4,}|u{4,}|v{4,}|w{4,}|x{4,}|y{4,}|z{4,}|!{4,}|\?{4,}|\.{4,})`),
		allCapsPattern:      regexp.MustCompile(`[A-Z]{5,}`),
	}
}

func compileWordPatterns(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, word := range words {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
		if err == nil {
			patterns = append(patterns, re)
		}
	}
	return patterns
}

func (l *Lexical) Classify(_ context.Context, text string) (*Verdict, error) {
	if text == "" {
		return &Verdict{RiskLevel: models.RiskLow, ViolationType: ViolationNone, Confidence: 1, Explanation: "no text to assess"}, nil
	}

	if matchAny(l.severe, text) {
		return &Verdict{
			RiskLevel:     models.RiskHigh,
			ViolationType: ViolationHateSpeech,
			Confidence:    0.9,
			Explanation:   "contains slurs or threatening language",
		}, nil
	}

	if matchAny(l.spam, text) || l.repeatedCharPattern.MatchString(text) {
		return &Verdict{
			RiskLevel:     models.RiskMedium,
			ViolationType: ViolationSpam,
			Confidence:    0.6,
			Explanation:   "matches spam indicators",
		}, nil
	}

	if matchAny(l.profanity, text) {
		return &Verdict{
			RiskLevel:     models.RiskMedium,
			ViolationType: ViolationInappropriate,
			Confidence:    0.6,
			Explanation:   "contains profanity",
		}, nil
	}

	if l.urlPattern.MatchString(text) && len(l.allCapsPattern.FindAllString(text, -1)) > 2 {
		return &Verdict{
			RiskLevel:     models.RiskMedium,
			ViolationType: ViolationSpam,
			Confidence:    0.5,
			Explanation:   "promotional link with excessive capitalization",
		}, nil
	}

	return &Verdict{
		RiskLevel:     models.RiskLow,
		ViolationType: ViolationNone,
		Confidence:    0.5,
		Explanation:   "no surface-level violations detected",
	}, nil
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
