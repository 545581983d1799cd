package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yungbote/codemorph-backend/internal/platform/gemini"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/types"
)

// ErrInvalidRequest marks a caller mistake: the request never reached the
// model and should map to a client error.
var ErrInvalidRequest = errors.New("session_id and message are required")

// ChatContext is the optional conversation context the caller attaches: the
// code under discussion and/or a previously produced analysis.
type ChatContext struct {
	Code     string              `json:"code,omitempty"`
	Analysis *types.CodeAnalysis `json:"analysis,omitempty"`
}

type ChatReply struct {
	SessionID  string `json:"session_id"`
	Message    string `json:"message"`
	Response   string `json:"response"`
	SkillLevel string `json:"skill_level"`
	Timestamp  string `json:"timestamp"`
}

// ChatService answers follow-up questions about code with responses adapted
// to the session's inferred skill level, and records each exchange in the
// profile's interaction history.
type ChatService interface {
	Chat(ctx context.Context, sessionID, message string, chatCtx ChatContext) (*ChatReply, error)
}

type chatService struct {
	log      *logger.Logger
	ai       gemini.Client
	profiles ProfileService
}

func NewChatService(baseLog *logger.Logger, ai gemini.Client, profiles ProfileService) ChatService {
	return &chatService{
		log:      baseLog.With("service", "ChatService"),
		ai:       ai,
		profiles: profiles,
	}
}

func (s *chatService) Chat(ctx context.Context, sessionID, message string, chatCtx ChatContext) (*ChatReply, error) {
	if sessionID == "" || message == "" {
		return nil, ErrInvalidRequest
	}

	profile, err := s.profiles.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	response, err := s.ai.GenerateText(ctx, "", chatPrompt(profile.SkillLevel, chatContextPrompt(chatCtx), message))
	if err != nil {
		s.log.Error("Chat model call failed", "session_id", sessionID, "error", err)
		return nil, fmt.Errorf("AI processing failed: %w", err)
	}

	now := time.Now().UTC()
	event := types.InteractionEvent{
		MessageLength:  len(message),
		ResponseLength: len(response),
		Timestamp:      now.Format(time.RFC3339),
		ContextType:    contextType(chatCtx),
	}
	if err := s.profiles.AppendInteraction(ctx, profile, event); err != nil {
		return nil, err
	}

	return &ChatReply{
		SessionID:  sessionID,
		Message:    message,
		Response:   response,
		SkillLevel: profile.SkillLevel,
		Timestamp:  now.Format(time.RFC3339),
	}, nil
}

func contextType(chatCtx ChatContext) string {
	switch {
	case chatCtx.Analysis != nil:
		return "analysis"
	case chatCtx.Code != "":
		return "code"
	default:
		return "general"
	}
}
