package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	redisclient "github.com/yungbote/codemorph-backend/internal/clients/redis"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/repos"
	"github.com/yungbote/codemorph-backend/internal/types"
)

// HistoryLimit bounds a session history lookup.
const HistoryLimit = 100

// ResultService is the append-only session result log. Results are immutable
// once saved; reads are newest-first and bounded.
type ResultService interface {
	Save(ctx context.Context, result *types.ConversionResult) error
	History(ctx context.Context, sessionID string) ([]*types.ConversionResult, error)
}

type resultService struct {
	db      *gorm.DB
	log     *logger.Logger
	results repos.ConversionResultRepo
	cache   redisclient.HistoryCache
}

// NewResultService builds the result log. cache may be nil; lookups then
// always hit the store.
func NewResultService(db *gorm.DB, baseLog *logger.Logger, resultRepo repos.ConversionResultRepo, cache redisclient.HistoryCache) ResultService {
	return &resultService{
		db:      db,
		log:     baseLog.With("service", "ResultService"),
		results: resultRepo,
		cache:   cache,
	}
}

func (s *resultService) Save(ctx context.Context, result *types.ConversionResult) error {
	if result == nil {
		return fmt.Errorf("result required")
	}
	if _, err := s.results.Create(ctx, nil, []*types.ConversionResult{result}); err != nil {
		return fmt.Errorf("save conversion result: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, result.SessionID)
	}
	return nil
}

func (s *resultService) History(ctx context.Context, sessionID string) ([]*types.ConversionResult, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, sessionID); ok {
			return cached, nil
		}
	}

	results, err := s.results.GetBySessionID(ctx, nil, sessionID, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load session history: %w", err)
	}
	if results == nil {
		results = []*types.ConversionResult{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, sessionID, results)
	}
	return results, nil
}
