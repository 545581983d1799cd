package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codemorph-backend/internal/types"
)

type fakeResultRepo struct {
	stored []*types.ConversionResult
	reads  int
}

func (r *fakeResultRepo) Create(_ context.Context, _ *gorm.DB, results []*types.ConversionResult) ([]*types.ConversionResult, error) {
	r.stored = append(r.stored, results...)
	return results, nil
}

func (r *fakeResultRepo) GetBySessionID(_ context.Context, _ *gorm.DB, sessionID string, limit int) ([]*types.ConversionResult, error) {
	r.reads++
	var out []*types.ConversionResult
	for i := len(r.stored) - 1; i >= 0 && len(out) < limit; i-- {
		if r.stored[i].SessionID == sessionID {
			out = append(out, r.stored[i])
		}
	}
	return out, nil
}

type fakeHistoryCache struct {
	entries     map[string][]*types.ConversionResult
	invalidated []string
}

func newFakeHistoryCache() *fakeHistoryCache {
	return &fakeHistoryCache{entries: make(map[string][]*types.ConversionResult)}
}

func (c *fakeHistoryCache) Get(_ context.Context, sessionID string) ([]*types.ConversionResult, bool) {
	results, ok := c.entries[sessionID]
	return results, ok
}

func (c *fakeHistoryCache) Set(_ context.Context, sessionID string, results []*types.ConversionResult) {
	c.entries[sessionID] = results
}

func (c *fakeHistoryCache) Invalidate(_ context.Context, sessionID string) {
	c.invalidated = append(c.invalidated, sessionID)
	delete(c.entries, sessionID)
}

func (c *fakeHistoryCache) Close() error { return nil }

func newResult(sessionID string) *types.ConversionResult {
	return &types.ConversionResult{
		ID:        uuid.New(),
		SessionID: sessionID,
		InputType: "text",
	}
}

func TestResultService_SaveInvalidatesCachedHistory(t *testing.T) {
	repo := &fakeResultRepo{}
	cache := newFakeHistoryCache()
	svc := NewResultService(nil, testLogger(t), repo, cache)

	cache.Set(context.Background(), "sess-1", []*types.ConversionResult{newResult("sess-1")})

	if err := svc.Save(context.Background(), newResult("sess-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(repo.stored) != 1 {
		t.Fatalf("expected 1 stored result, got %d", len(repo.stored))
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "sess-1" {
		t.Fatalf("cache not invalidated: %v", cache.invalidated)
	}
}

func TestResultService_HistoryServesFromCacheWhenWarm(t *testing.T) {
	repo := &fakeResultRepo{}
	cache := newFakeHistoryCache()
	svc := NewResultService(nil, testLogger(t), repo, cache)

	if err := svc.Save(context.Background(), newResult("sess-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Cold read fills the cache.
	first, err := svc.History(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(first) != 1 || repo.reads != 1 {
		t.Fatalf("expected one store read, got %d reads and %d results", repo.reads, len(first))
	}

	// Warm read skips the store.
	second, err := svc.History(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(second) != 1 || repo.reads != 1 {
		t.Fatalf("expected cached read, store reads = %d", repo.reads)
	}
}

func TestResultService_HistoryWorksWithoutCache(t *testing.T) {
	repo := &fakeResultRepo{}
	svc := NewResultService(nil, testLogger(t), repo, nil)

	results, err := svc.History(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", results)
	}
}

func TestResultService_HistoryReturnsNewestFirstUpToLimit(t *testing.T) {
	repo := &fakeResultRepo{}
	svc := NewResultService(nil, testLogger(t), repo, nil)

	for i := 0; i < HistoryLimit+5; i++ {
		if err := svc.Save(context.Background(), newResult("sess-1")); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	results, err := svc.History(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(results) != HistoryLimit {
		t.Fatalf("expected %d results, got %d", HistoryLimit, len(results))
	}
	if results[0].ID != repo.stored[len(repo.stored)-1].ID {
		t.Fatalf("expected newest result first")
	}
}
