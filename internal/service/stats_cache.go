package service

import (
	"context"
	"encoding/json"
	"fmt"
	"interview_prep_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const dashboardStatsKeyPrefix = "dashboard:stats:"

// StatsCache 仪表盘统计的 Redis 缓存；Client 为 nil 时所有操作直接跳过
type StatsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStatsCache(rdb *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &StatsCache{Client: rdb, TTL: ttl}
}

func (c *StatsCache) enabled() bool {
	return c != nil && c.Client != nil
}

func statsKey(userID uint) string {
	return fmt.Sprintf("%s%d", dashboardStatsKeyPrefix, userID)
}

// Get 命中时返回 true；未命中或 Redis 出错都视为未命中
func (c *StatsCache) Get(ctx context.Context, userID uint, dst interface{}) bool {
	if !c.enabled() {
		return false
	}
	val, err := c.Client.Get(ctx, statsKey(userID)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Log.Warn("Stats cache read failed", zap.Uint("userID", userID), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		return false
	}
	return true
}

func (c *StatsCache) Set(ctx context.Context, userID uint, v interface{}) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, statsKey(userID), data, c.TTL).Err(); err != nil {
		logger.Log.Warn("Stats cache write failed", zap.Uint("userID", userID), zap.Error(err))
	}
}

func (c *StatsCache) Invalidate(ctx context.Context, userID uint) {
	if !c.enabled() {
		return
	}
	if err := c.Client.Del(ctx, statsKey(userID)).Err(); err != nil {
		logger.Log.Warn("Stats cache invalidation failed", zap.Uint("userID", userID), zap.Error(err))
	}
}
