package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/types"
)

type ConversionResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, results []*types.ConversionResult) ([]*types.ConversionResult, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string, limit int) ([]*types.ConversionResult, error)
}

type conversionResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversionResultRepo(db *gorm.DB, baseLog *logger.Logger) ConversionResultRepo {
	repoLog := baseLog.With("repo", "ConversionResultRepo")
	return &conversionResultRepo{db: db, log: repoLog}
}

func (r *conversionResultRepo) Create(ctx context.Context, tx *gorm.DB, results []*types.ConversionResult) ([]*types.ConversionResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(results) == 0 {
		return []*types.ConversionResult{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *conversionResultRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID string, limit int) ([]*types.ConversionResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ConversionResult
	if sessionID == "" {
		return results, nil
	}
	if limit <= 0 {
		limit = 100
	}

	if err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
