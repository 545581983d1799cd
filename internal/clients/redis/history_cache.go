package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/types"
)

// HistoryCache is a read-through cache for session history lookups. It is
// optional: callers treat a nil cache as a permanent miss.
type HistoryCache interface {
	Get(ctx context.Context, sessionID string) ([]*types.ConversionResult, bool)
	Set(ctx context.Context, sessionID string, results []*types.ConversionResult)
	Invalidate(ctx context.Context, sessionID string)
	Close() error
}

type historyCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewHistoryCache(log *logger.Logger) (HistoryCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 60 * time.Second
	if v := strings.TrimSpace(os.Getenv("REDIS_HISTORY_TTL_SECONDS")); v != "" {
		if parsed, err := time.ParseDuration(v + "s"); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &historyCache{
		log: log.With("service", "RedisHistoryCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func historyKey(sessionID string) string {
	return "history:" + sessionID
}

func (c *historyCache) Get(ctx context.Context, sessionID string) ([]*types.ConversionResult, bool) {
	if c == nil || c.rdb == nil || sessionID == "" {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, historyKey(sessionID)).Bytes()
	if err != nil {
		return nil, false
	}
	var results []*types.ConversionResult
	if err := json.Unmarshal(raw, &results); err != nil {
		c.log.Warn("Dropping undecodable history cache entry", "session_id", sessionID, "error", err)
		_ = c.rdb.Del(ctx, historyKey(sessionID)).Err()
		return nil, false
	}
	return results, true
}

func (c *historyCache) Set(ctx context.Context, sessionID string, results []*types.ConversionResult) {
	if c == nil || c.rdb == nil || sessionID == "" {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, historyKey(sessionID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("History cache write failed", "session_id", sessionID, "error", err)
	}
}

func (c *historyCache) Invalidate(ctx context.Context, sessionID string) {
	if c == nil || c.rdb == nil || sessionID == "" {
		return
	}
	if err := c.rdb.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		c.log.Warn("History cache invalidation failed", "session_id", sessionID, "error", err)
	}
}

func (c *historyCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
