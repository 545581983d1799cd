package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/codemorph-backend/internal/platform/gemini"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/repos"
	"github.com/yungbote/codemorph-backend/internal/types"
)

// ProfileUpdate is the learning-profile flow's composed response.
type ProfileUpdate struct {
	SessionID         string   `json:"session_id"`
	SkillLevel        string   `json:"skill_level"`
	Suggestions       []string `json:"personalized_suggestions"`
	KnowledgeGaps     []string `json:"knowledge_gaps"`
	CompletedConcepts []string `json:"completed_concepts"`
}

type ProfileService interface {
	// GetOrCreate lazily creates a default profile on first reference to a
	// session id. Idempotent: a second call returns the same record.
	GetOrCreate(ctx context.Context, sessionID string) (*types.SessionProfile, error)

	// Save refreshes last_updated and replaces the full record by session id.
	Save(ctx context.Context, profile *types.SessionProfile) error

	// AppendInteraction appends one history event and saves the profile.
	AppendInteraction(ctx context.Context, profile *types.SessionProfile, event types.InteractionEvent) error

	// UpdateFromSignals runs skill inference over the supplied signals,
	// persists the reclassified profile, and composes personalized
	// suggestions for the topic.
	UpdateFromSignals(ctx context.Context, sessionID string, signals SkillSignals, topic string) (*ProfileUpdate, error)
}

type profileService struct {
	db       *gorm.DB
	log      *logger.Logger
	profiles repos.SessionProfileRepo
	ai       gemini.Client
}

func NewProfileService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.SessionProfileRepo, ai gemini.Client) ProfileService {
	return &profileService{
		db:       db,
		log:      baseLog.With("service", "ProfileService"),
		profiles: profileRepo,
		ai:       ai,
	}
}

func (s *profileService) GetOrCreate(ctx context.Context, sessionID string) (*types.SessionProfile, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session_id required")
	}

	existing, err := s.profiles.GetBySessionID(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	profile := &types.SessionProfile{
		ID:                  uuid.New(),
		SessionID:           sessionID,
		SkillLevel:          types.SkillBeginner,
		LearningPreferences: datatypes.JSON([]byte(`{}`)),
		InteractionHistory:  datatypes.JSON([]byte(`[]`)),
		KnowledgeGaps:       datatypes.JSON([]byte(`[]`)),
		CompletedConcepts:   datatypes.JSON([]byte(`[]`)),
	}
	if err := s.Save(ctx, profile); err != nil {
		return nil, err
	}
	s.log.Debug("Created session profile", "session_id", sessionID)
	return profile, nil
}

func (s *profileService) Save(ctx context.Context, profile *types.SessionProfile) error {
	if profile == nil {
		return fmt.Errorf("profile required")
	}
	profile.LastUpdated = time.Now().UTC()
	if err := s.profiles.Upsert(ctx, nil, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *profileService) AppendInteraction(ctx context.Context, profile *types.SessionProfile, event types.InteractionEvent) error {
	if profile == nil {
		return fmt.Errorf("profile required")
	}

	var history []types.InteractionEvent
	if len(profile.InteractionHistory) > 0 {
		if err := json.Unmarshal(profile.InteractionHistory, &history); err != nil {
			s.log.Warn("Resetting undecodable interaction history", "session_id", profile.SessionID, "error", err)
			history = nil
		}
	}
	history = append(history, event)

	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode interaction history: %w", err)
	}
	profile.InteractionHistory = datatypes.JSON(raw)
	return s.Save(ctx, profile)
}

func (s *profileService) UpdateFromSignals(ctx context.Context, sessionID string, signals SkillSignals, topic string) (*ProfileUpdate, error) {
	profile, err := s.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	profile.SkillLevel = InferSkillLevel(profile.SkillLevel, signals)
	if err := s.Save(ctx, profile); err != nil {
		return nil, err
	}

	if topic == "" {
		topic = "programming"
	}
	gaps := decodeStringList(profile.KnowledgeGaps)
	concepts := decodeStringList(profile.CompletedConcepts)

	return &ProfileUpdate{
		SessionID:         sessionID,
		SkillLevel:        profile.SkillLevel,
		Suggestions:       s.suggestions(ctx, profile, gaps, concepts, topic),
		KnowledgeGaps:     gaps,
		CompletedConcepts: concepts,
	}, nil
}

// suggestions is best-effort: a failed call or an unparseable reply falls
// back to fixed suggestion sets instead of failing the profile update.
func (s *profileService) suggestions(ctx context.Context, profile *types.SessionProfile, gaps, concepts []string, topic string) []string {
	reply, err := s.ai.GenerateJSON(ctx, "", suggestionsPrompt(profile, gaps, concepts, topic))
	if err != nil {
		s.log.Warn("Suggestions model call failed, substituting fallback", "session_id", profile.SessionID, "error", err)
		return []string{"Keep practicing!", "Try more examples", "Ask questions"}
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &suggestions); err != nil || len(suggestions) == 0 {
		return []string{
			fmt.Sprintf("Practice more %s problems", topic),
			fmt.Sprintf("Learn advanced %s techniques", topic),
			fmt.Sprintf("Apply %s to real projects", topic),
		}
	}
	return suggestions
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
