package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
)

const (
	genKey          = "gestao:dashboard:gen"
	statsKeyPrefix  = "gestao:dashboard:stats:"
	defaultStatsTTL = 30 * time.Second
)

// StatsCache keeps the dashboard counters in Redis, one entry per
// generation. Writers bump the generation counter; readers fill the entry of
// the generation they observed before querying the store, so a fill that
// races a write lands under a generation nobody reads again.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a StatsCache wrapping the given Redis client.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

func entryKey(gen int64) string {
	return statsKeyPrefix + strconv.FormatInt(gen, 10)
}

func (c *StatsCache) Get(ctx context.Context) (*domain.DashboardStats, int64, bool, error) {
	gen, err := c.client.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		gen, err = 0, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("stats cache generation: %w", err)
	}

	data, err := c.client.Get(ctx, entryKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, gen, false, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		// drop it so the next read refills
		c.client.Del(ctx, entryKey(gen))
		return nil, gen, false, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, gen, true, nil
}

func (c *StatsCache) Set(ctx context.Context, gen int64, stats *domain.DashboardStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	if err := c.client.Set(ctx, entryKey(gen), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("stats cache set: %w", err)
	}
	return nil
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, genKey).Err(); err != nil {
		return fmt.Errorf("stats cache invalidate: %w", err)
	}
	return nil
}
