package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/yungbote/codemorph-backend/internal/platform/gemini"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/types"
)

// AnalysisService scores generated code for complexity and quality. Its
// output is advisory: every failure path yields a complete CodeAnalysis
// value, so this service never fails its caller. The "pending" and "failed"
// placeholder sets are distinct on purpose, so operators can tell a parse
// problem from an upstream outage by looking at stored results.
type AnalysisService interface {
	Analyze(ctx context.Context, pseudocode string, codeOutputs map[string]string) types.CodeAnalysis
}

type analysisService struct {
	log *logger.Logger
	ai  gemini.Client
}

func NewAnalysisService(baseLog *logger.Logger, ai gemini.Client) AnalysisService {
	return &analysisService{
		log: baseLog.With("service", "AnalysisService"),
		ai:  ai,
	}
}

func (s *analysisService) Analyze(ctx context.Context, pseudocode string, codeOutputs map[string]string) types.CodeAnalysis {
	code := codeOutputs[AnalysisLanguageKey]

	reply, err := s.ai.GenerateJSON(ctx, "", analysisPrompt(pseudocode, code))
	if err != nil {
		s.log.Warn("Analysis model call failed, substituting fallback", "error", err)
		return failedAnalysis()
	}

	var analysis types.CodeAnalysis
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &analysis); err != nil {
		s.log.Warn("Analysis reply not parseable as JSON, substituting fallback", "error", err)
		return pendingAnalysis()
	}
	return analysis
}

// pendingAnalysis is the placeholder for a reply that arrived but could not
// be parsed as structured data.
func pendingAnalysis() types.CodeAnalysis {
	return types.CodeAnalysis{
		TimeComplexity:   "Analysis pending",
		SpaceComplexity:  "Analysis pending",
		QualityScore:     7,
		Optimizations:    []string{"Use more efficient algorithms", "Optimize memory usage", "Add error handling"},
		Alternatives:     []string{"Iterative approach", "Dynamic programming approach"},
		LearningInsights: []string{"Understanding complexity is key", "Consider edge cases"},
	}
}

// failedAnalysis is the placeholder for an upstream call that failed.
func failedAnalysis() types.CodeAnalysis {
	return types.CodeAnalysis{
		TimeComplexity:   "Analysis failed",
		SpaceComplexity:  "Analysis failed",
		QualityScore:     5,
		Optimizations:    []string{"Analysis temporarily unavailable"},
		Alternatives:     []string{"Analysis temporarily unavailable"},
		LearningInsights: []string{"Analysis temporarily unavailable"},
	}
}

// stripCodeFences unwraps a ```json ... ``` block if the model added one
// despite the JSON response mime type.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	if j := strings.LastIndex(s, "```"); j >= 0 {
		s = s[:j]
	}
	return strings.TrimSpace(s)
}
