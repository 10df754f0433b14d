package counter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/config"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "td:visits"
	// daily counters expire two days after their first increment
	dailyKeyTTL = 48 * time.Hour
)

// RedisVisitCounter keeps per page total and daily visit counters in redis.
type RedisVisitCounter struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisVisitCounter(cfg config.Redis) (*RedisVisitCounter, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisVisitCounterWithClient(rdb), nil
}

func NewRedisVisitCounterWithClient(rdb *redis.Client) *RedisVisitCounter {
	return &RedisVisitCounter{
		rdb: rdb,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func totalKey(pageID string) string {
	return keyPrefix + ":total:" + pageID
}

func dailyKey(pageID string, day time.Time) string {
	return keyPrefix + ":daily:" + pageID + ":" + day.UTC().Format("20060102")
}

func (c *RedisVisitCounter) Counts(ctx context.Context, pageIDs []string) (map[string]domain.PageCounts, error) {
	counts := make(map[string]domain.PageCounts, len(pageIDs))
	if len(pageIDs) == 0 {
		return counts, nil
	}

	now := c.now()
	keys := make([]string, 0, len(pageIDs)*2)
	for _, id := range pageIDs {
		keys = append(keys, totalKey(id), dailyKey(id, now))
	}

	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}
	for i, id := range pageIDs {
		total, err := parseCount(values[2*i])
		if err != nil {
			return nil, fmt.Errorf("bad total counter for %s: %w", id, err)
		}
		today, err := parseCount(values[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("bad daily counter for %s: %w", id, err)
		}
		counts[id] = domain.PageCounts{Today: today, Total: total}
	}
	return counts, nil
}

func (c *RedisVisitCounter) Increment(ctx context.Context, pageID string) error {
	daily := dailyKey(pageID, c.now())
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, totalKey(pageID))
		pipe.Incr(ctx, daily)
		pipe.Expire(ctx, daily, dailyKeyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis incr: %w", err)
	}
	return nil
}

func (c *RedisVisitCounter) Close() error {
	return c.rdb.Close()
}

// missing keys come back as nil and count as zero
func parseCount(v interface{}) (int64, error) {
	switch val := v.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.ParseInt(val, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected value type %T", v)
	}
}
