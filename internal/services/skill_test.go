package services

import (
	"testing"

	"github.com/yungbote/codemorph-backend/internal/types"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestInferSkillLevel_AllSignalsAdvanced(t *testing.T) {
	got := InferSkillLevel(types.SkillBeginner, SkillSignals{
		CodeQualityScore: floatPtr(9),
		Question:         strPtr("How do I improve the optimization here?"),
		CodePatterns:     []string{"recursion"},
	})
	if got != types.SkillAdvanced {
		t.Fatalf("expected advanced, got %q", got)
	}
}

func TestInferSkillLevel_LowScoreOnlyIsBeginner(t *testing.T) {
	got := InferSkillLevel(types.SkillAdvanced, SkillSignals{
		CodeQualityScore: floatPtr(3),
	})
	if got != types.SkillBeginner {
		t.Fatalf("expected beginner, got %q", got)
	}
}

func TestInferSkillLevel_HalfRatioIsIntermediate(t *testing.T) {
	got := InferSkillLevel(types.SkillBeginner, SkillSignals{
		CodeQualityScore: floatPtr(9),
		Question:         strPtr("What does this loop do?"),
	})
	if got != types.SkillIntermediate {
		t.Fatalf("expected intermediate, got %q", got)
	}
}

func TestInferSkillLevel_NoSignalsKeepsCurrentLevel(t *testing.T) {
	if got := InferSkillLevel(types.SkillIntermediate, SkillSignals{}); got != types.SkillIntermediate {
		t.Fatalf("expected intermediate kept, got %q", got)
	}
	if got := InferSkillLevel("", SkillSignals{}); got != types.SkillBeginner {
		t.Fatalf("expected beginner default, got %q", got)
	}
}

func TestInferSkillLevel_CanDowngradeAdvancedProfile(t *testing.T) {
	got := InferSkillLevel(types.SkillAdvanced, SkillSignals{
		CodeQualityScore: floatPtr(2),
		Question:         strPtr("What is a variable?"),
		CodePatterns:     []string{"loops"},
	})
	if got != types.SkillBeginner {
		t.Fatalf("expected beginner after weak interaction, got %q", got)
	}
}

func TestInferSkillLevel_QuestionKeywordMatchIsCaseInsensitive(t *testing.T) {
	got := InferSkillLevel(types.SkillBeginner, SkillSignals{
		Question: strPtr("Tell me about Time COMPLEXITY"),
	})
	if got != types.SkillAdvanced {
		t.Fatalf("expected advanced from single matching signal, got %q", got)
	}
}

func TestInferSkillLevel_PatternListCountsOnce(t *testing.T) {
	// Two advanced patterns are still a single indicator.
	got := InferSkillLevel(types.SkillBeginner, SkillSignals{
		CodeQualityScore: floatPtr(1),
		Question:         strPtr("hello"),
		CodePatterns:     []string{"recursion", "dynamic_programming"},
	})
	if got != types.SkillBeginner {
		t.Fatalf("expected beginner at ratio 1/3, got %q", got)
	}
}
