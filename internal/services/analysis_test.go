package services

import (
	"context"
	"fmt"
	"testing"
)

func TestAnalyze_ParsesModelReply(t *testing.T) {
	ai := &fakeClient{respond: func(string) (string, error) {
		return `{"time_complexity":"O(n)","space_complexity":"O(1)","quality_score":8.5,"optimizations":["use a map"],"alternatives":["two pointers"],"learning_insights":["linear scans are cheap"]}`, nil
	}}
	svc := NewAnalysisService(testLogger(t), ai)

	got := svc.Analyze(context.Background(), "READ n", map[string]string{AnalysisLanguageKey: "print(1)"})
	if got.TimeComplexity != "O(n)" || got.QualityScore != 8.5 {
		t.Fatalf("unexpected analysis: %+v", got)
	}
	if len(got.Optimizations) != 1 || got.Optimizations[0] != "use a map" {
		t.Fatalf("unexpected optimizations: %v", got.Optimizations)
	}
}

func TestAnalyze_CallFailureYieldsFailedPlaceholder(t *testing.T) {
	ai := &fakeClient{respond: func(string) (string, error) {
		return "", fmt.Errorf("upstream down")
	}}
	svc := NewAnalysisService(testLogger(t), ai)

	got := svc.Analyze(context.Background(), "READ n", nil)
	if got.TimeComplexity != "Analysis failed" {
		t.Fatalf("expected failed placeholder, got %q", got.TimeComplexity)
	}
	if got.QualityScore != 5 {
		t.Fatalf("expected score 5, got %v", got.QualityScore)
	}
}

func TestAnalyze_UnparseableReplyYieldsPendingPlaceholder(t *testing.T) {
	ai := &fakeClient{respond: func(string) (string, error) {
		return "sure, here is your analysis!", nil
	}}
	svc := NewAnalysisService(testLogger(t), ai)

	got := svc.Analyze(context.Background(), "READ n", nil)
	if got.TimeComplexity != "Analysis pending" {
		t.Fatalf("expected pending placeholder, got %q", got.TimeComplexity)
	}
	if got.QualityScore != 7 {
		t.Fatalf("expected score 7, got %v", got.QualityScore)
	}
}

func TestAnalyze_StripsCodeFencesFromReply(t *testing.T) {
	ai := &fakeClient{respond: func(string) (string, error) {
		return "```json\n{\"time_complexity\":\"O(1)\",\"space_complexity\":\"O(1)\",\"quality_score\":6}\n```", nil
	}}
	svc := NewAnalysisService(testLogger(t), ai)

	got := svc.Analyze(context.Background(), "x", nil)
	if got.TimeComplexity != "O(1)" || got.QualityScore != 6 {
		t.Fatalf("fenced reply not parsed: %+v", got)
	}
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n[1,2]\n```", "[1,2]"},
		{"padded", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFences(tc.in); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
