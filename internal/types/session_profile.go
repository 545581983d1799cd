package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// SessionProfile is the per-session adaptive learning record. The session id
// is the natural key: writes replace the full record keyed on it, so
// concurrent updates are last-writer-wins.
type SessionProfile struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID           string         `gorm:"column:session_id;not null;uniqueIndex" json:"session_id"`
	SkillLevel          string         `gorm:"column:skill_level;not null;default:beginner" json:"skill_level"`
	LearningPreferences datatypes.JSON `gorm:"column:learning_preferences" json:"learning_preferences"`
	InteractionHistory  datatypes.JSON `gorm:"column:interaction_history" json:"interaction_history"`
	KnowledgeGaps       datatypes.JSON `gorm:"column:knowledge_gaps" json:"knowledge_gaps"`
	CompletedConcepts   datatypes.JSON `gorm:"column:completed_concepts" json:"completed_concepts"`
	LastUpdated         time.Time      `gorm:"column:last_updated;not null" json:"last_updated"`
}

func (SessionProfile) TableName() string { return "session_profile" }

// InteractionEvent is one entry in a profile's interaction history.
type InteractionEvent struct {
	MessageLength  int    `json:"message_length"`
	ResponseLength int    `json:"response_length"`
	Timestamp      string `json:"timestamp"`
	ContextType    string `json:"context_type"`
}
