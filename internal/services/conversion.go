package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/codemorph-backend/internal/platform/gemini"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
)

type ConversionInput struct {
	SessionID      string
	InputType      string
	Content        string
	Description    string
	TargetLanguage string
}

type ConversionOutput struct {
	Pseudocode  string
	Flowchart   string
	CodeOutputs map[string]string
}

// ConversionService runs the ordered sequence of model calls that turns one
// input into pseudocode, a flowchart, and per-language translations. It has
// no storage side effects; the caller persists the composed result.
type ConversionService interface {
	Convert(ctx context.Context, input ConversionInput) (*ConversionOutput, error)
	Languages() []Language
}

type conversionService struct {
	log         *logger.Logger
	ai          gemini.Client
	languages   []Language
	parallelism int
}

func NewConversionService(baseLog *logger.Logger, ai gemini.Client, languages []Language, parallelism int) ConversionService {
	if len(languages) == 0 {
		languages = DefaultLanguages()
	}
	if parallelism <= 0 {
		parallelism = 4
	}
	return &conversionService{
		log:         baseLog.With("service", "ConversionService"),
		ai:          ai,
		languages:   languages,
		parallelism: parallelism,
	}
}

func (s *conversionService) Languages() []Language {
	return s.languages
}

func (s *conversionService) Convert(ctx context.Context, input ConversionInput) (*ConversionOutput, error) {
	// Direct code-to-code translation skips pseudocode, flowchart, and the
	// multi-language fan-out entirely: one call, one output key.
	if input.InputType == "code" && strings.TrimSpace(input.TargetLanguage) != "" {
		name := languageName(s.languages, input.TargetLanguage)
		translated, err := s.ai.GenerateText(ctx, conversionSystemMessage, directTranslationPrompt(name, input.Content))
		if err != nil {
			s.log.Error("Direct translation failed", "session_id", input.SessionID, "target", input.TargetLanguage, "error", err)
			return nil, fmt.Errorf("AI processing failed: %w", err)
		}
		return &ConversionOutput{
			Pseudocode:  translated,
			Flowchart:   "",
			CodeOutputs: map[string]string{input.TargetLanguage: translated},
		}, nil
	}

	pseudocode, err := s.ai.GenerateText(ctx, conversionSystemMessage, pseudocodePrompt(input.InputType, input.Content, input.Description))
	if err != nil {
		s.log.Error("Pseudocode generation failed", "session_id", input.SessionID, "input_type", input.InputType, "error", err)
		return nil, fmt.Errorf("AI processing failed: %w", err)
	}

	flowchart, err := s.ai.GenerateText(ctx, conversionSystemMessage, flowchartPrompt(pseudocode))
	if err != nil {
		s.log.Error("Flowchart generation failed", "session_id", input.SessionID, "error", err)
		return nil, fmt.Errorf("AI processing failed: %w", err)
	}

	// The per-language calls all feed on the same pseudocode and have no
	// dependency on each other; the first failure cancels the group and the
	// whole conversion fails with no partial result.
	outputs := make([]string, len(s.languages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, lang := range s.languages {
		g.Go(func() error {
			text, err := s.ai.GenerateText(gctx, conversionSystemMessage, translationPrompt(lang.Name, pseudocode))
			if err != nil {
				return fmt.Errorf("translate to %s: %w", lang.Key, err)
			}
			outputs[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("Language translation failed", "session_id", input.SessionID, "error", err)
		return nil, fmt.Errorf("AI processing failed: %w", err)
	}

	codeOutputs := make(map[string]string, len(s.languages))
	for i, lang := range s.languages {
		codeOutputs[lang.Key] = outputs[i]
	}

	return &ConversionOutput{
		Pseudocode:  pseudocode,
		Flowchart:   flowchart,
		CodeOutputs: codeOutputs,
	}, nil
}
