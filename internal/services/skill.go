package services

import (
	"strings"

	"github.com/yungbote/codemorph-backend/internal/types"
)

// SkillSignals carries the interaction signals skill inference runs on.
// A nil field means the signal was not supplied at all and its indicator is
// excluded from both numerator and denominator.
type SkillSignals struct {
	CodeQualityScore *float64 `json:"code_quality_score,omitempty"`
	Question         *string  `json:"question,omitempty"`
	CodePatterns     []string `json:"code_patterns,omitempty"`
}

var advancedQuestionKeywords = []string{
	"optimization",
	"algorithm",
	"complexity",
	"performance",
	"scalability",
}

var advancedCodePatterns = map[string]bool{
	"recursion":           true,
	"dynamic_programming": true,
	"graph_algorithms":    true,
}

// InferSkillLevel reclassifies a session's skill level from the supplied
// signals. The classification is stateless per call: a single weak
// interaction can downgrade a previously advanced profile. With no signals
// supplied, the current level is kept.
func InferSkillLevel(current string, signals SkillSignals) string {
	indicators := 0
	total := 0

	if signals.CodeQualityScore != nil {
		total++
		if *signals.CodeQualityScore >= 8 {
			indicators++
		}
	}

	if signals.Question != nil {
		total++
		question := strings.ToLower(*signals.Question)
		for _, keyword := range advancedQuestionKeywords {
			if strings.Contains(question, keyword) {
				indicators++
				break
			}
		}
	}

	if signals.CodePatterns != nil {
		total++
		for _, pattern := range signals.CodePatterns {
			if advancedCodePatterns[strings.ToLower(strings.TrimSpace(pattern))] {
				indicators++
				break
			}
		}
	}

	if total == 0 {
		if current == "" {
			return types.SkillBeginner
		}
		return current
	}

	ratio := float64(indicators) / float64(total)
	switch {
	case ratio >= 0.7:
		return types.SkillAdvanced
	case ratio >= 0.4:
		return types.SkillIntermediate
	default:
		return types.SkillBeginner
	}
}
