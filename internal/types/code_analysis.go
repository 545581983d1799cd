package types

// CodeAnalysis always carries all six fields: when the model call or the
// structured parse fails, callers substitute a fixed placeholder set instead
// of surfacing an error. The quality score is whatever the model said; it is
// intentionally not clamped to 1-10.
type CodeAnalysis struct {
	TimeComplexity   string   `json:"time_complexity"`
	SpaceComplexity  string   `json:"space_complexity"`
	QualityScore     float64  `json:"quality_score"`
	Optimizations    []string `json:"optimizations"`
	Alternatives     []string `json:"alternatives"`
	LearningInsights []string `json:"learning_insights"`
}
