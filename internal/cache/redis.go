package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/komodohub/internal/domain"
)

const (
	taxonomyKeyPrefix = "taxonomy:"
	countersKeyPrefix = "quest:counters:"

	// counters outlive their day so a request straddling midnight still reads them.
	countersTTL = 48 * time.Hour
)

// NewRedisClient connects and pings.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

type RedisTaxonomyCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisTaxonomyCache(client redis.Cmdable, ttl time.Duration) *RedisTaxonomyCache {
	return &RedisTaxonomyCache{client: client, ttl: ttl}
}

func (c *RedisTaxonomyCache) Get(ctx context.Context, key string) (domain.Taxonomy, bool, error) {
	data, err := c.client.Get(ctx, taxonomyKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Taxonomy{}, false, nil
	}
	if err != nil {
		return domain.Taxonomy{}, false, fmt.Errorf("failed to get taxonomy from cache: %w", err)
	}

	var t domain.Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		zap.L().Warn("dropping corrupted taxonomy cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, taxonomyKeyPrefix+key)
		return domain.Taxonomy{}, false, nil
	}
	return t, true, nil
}

func (c *RedisTaxonomyCache) Set(ctx context.Context, key string, t domain.Taxonomy) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, taxonomyKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache taxonomy: %w", err)
	}
	return nil
}

// RedisCounters stores quest counters in one hash per user and day.
type RedisCounters struct {
	client redis.Cmdable
}

func NewRedisCounters(client redis.Cmdable) *RedisCounters {
	return &RedisCounters{client: client}
}

func countersKey(userID int, date string) string {
	return countersKeyPrefix + strconv.Itoa(userID) + ":" + date
}

func (r *RedisCounters) Incr(ctx context.Context, userID int, date string, kind domain.CounterKind) error {
	key := countersKey(userID, date)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, string(kind), 1)
		pipe.Expire(ctx, key, countersTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to bump %s counter: %w", kind, err)
	}
	return nil
}

func (r *RedisCounters) Get(ctx context.Context, userID int, date string) (domain.Counters, error) {
	fields, err := r.client.HGetAll(ctx, countersKey(userID, date)).Result()
	if err != nil {
		return domain.Counters{}, fmt.Errorf("failed to read counters: %w", err)
	}
	c := domain.Counters{Date: date}
	c.Views = atoi(fields[string(domain.CounterViews)])
	c.Shares = atoi(fields[string(domain.CounterShares)])
	c.Reports = atoi(fields[string(domain.CounterReports)])
	return c, nil
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
