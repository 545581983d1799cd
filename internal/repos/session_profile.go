package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/types"
)

type SessionProfileRepo interface {
	// GetBySessionID returns (nil, nil) when no profile exists yet.
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*types.SessionProfile, error)

	// Upsert replaces the full record keyed on session_id. The per-key
	// atomicity of the upsert is the only write serialization this system
	// relies on: concurrent profile writes are last-writer-wins.
	Upsert(ctx context.Context, tx *gorm.DB, profile *types.SessionProfile) error
}

type sessionProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionProfileRepo(db *gorm.DB, baseLog *logger.Logger) SessionProfileRepo {
	repoLog := baseLog.With("repo", "SessionProfileRepo")
	return &sessionProfileRepo{db: db, log: repoLog}
}

func (r *sessionProfileRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string) (*types.SessionProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if sessionID == "" {
		return nil, nil
	}

	var profile types.SessionProfile
	err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *sessionProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.SessionProfile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if profile == nil {
		return nil
	}

	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"skill_level",
				"learning_preferences",
				"interaction_history",
				"knowledge_gaps",
				"completed_concepts",
				"last_updated",
			}),
		}).
		Create(profile).Error
}
