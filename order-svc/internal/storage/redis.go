package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"qrmenu/events"
	"qrmenu/order-svc/internal/cart"
	"qrmenu/order-svc/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const sequenceTTL = 48 * time.Hour

// RedisSequence hands out order numbers like ORD-20261016-001 from a per-day
// counter. INCR keeps them unique across instances.
type RedisSequence struct {
	Client *redis.Client
	Loc    *time.Location
}

func NewRedisSequence(client *redis.Client, loc *time.Location) *RedisSequence {
	if loc == nil {
		loc = time.UTC
	}
	return &RedisSequence{Client: client, Loc: loc}
}

func (s *RedisSequence) Next(ctx context.Context, at time.Time) (string, error) {
	day := at.In(s.Loc).Format("20060102")
	key := "order_seq:" + day

	// The TTL is set with every INCR so a counter that lost it still expires.
	pipe := s.Client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, sequenceTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("next order number: %w", err)
	}
	n := incr.Val()
	return fmt.Sprintf("ORD-%s-%03d", day, n), nil
}

type RedisCartStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{Client: client, TTL: ttl}
}

func (s *RedisCartStore) key(sessionID string) string {
	return "cart:" + sessionID
}

// LoadCart returns an empty cart when none is stored.
func (s *RedisCartStore) LoadCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	raw, err := s.Client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: load cart: %w", domain.ErrPersistence, err)
	}

	c := cart.New()
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%w: decode cart: %w", domain.ErrPersistence, err)
	}
	if c.Lines == nil {
		c.Lines = []*cart.Line{}
	}
	return c, nil
}

// SaveCart refreshes the TTL on every write. An emptied cart is removed.
func (s *RedisCartStore) SaveCart(ctx context.Context, sessionID string, c *cart.Cart) error {
	if c.IsEmpty() {
		return s.DeleteCart(ctx, sessionID)
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("%w: encode cart: %w", domain.ErrPersistence, err)
	}
	if err := s.Client.Set(ctx, s.key(sessionID), payload, s.TTL).Err(); err != nil {
		return fmt.Errorf("%w: save cart: %w", domain.ErrPersistence, err)
	}
	return nil
}

func (s *RedisCartStore) DeleteCart(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: delete cart: %w", domain.ErrPersistence, err)
	}
	return nil
}

type RedisRevocationStore struct {
	Client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{Client: client}
}

func (s *RedisRevocationStore) key(sessionID string) string {
	return "session:revoked:" + sessionID
}

func (s *RedisRevocationStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.Client.Set(ctx, s.key(sessionID), "1", ttl).Err()
}

func (s *RedisRevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	res, err := s.Client.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

// RedisStatsCache reads the per-day read models kept by stats-svc.
type RedisStatsCache struct {
	Client *redis.Client
}

func NewRedisStatsCache(client *redis.Client) *RedisStatsCache {
	return &RedisStatsCache{Client: client}
}

func (c *RedisStatsCache) TopProducts(ctx context.Context, day time.Time, limit int) ([]domain.ProductScore, error) {
	res, err := c.Client.ZRevRangeWithScores(ctx, events.ProductsKey(day), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]domain.ProductScore, 0, len(res))
	for _, z := range res {
		name, ok := z.Member.(string)
		if !ok {
			continue
		}
		scores = append(scores, domain.ProductScore{ProductName: name, Quantity: z.Score})
	}
	return scores, nil
}

// DailyStats returns the day's counts and revenue, or nil when stats-svc has
// not counted anything for that day.
func (c *RedisStatsCache) DailyStats(ctx context.Context, day time.Time) (*domain.DailyStats, error) {
	fields, err := c.Client.HGetAll(ctx, events.DailyKey(day)).Result()
	if err != nil {
		return nil, err
	}
	if _, ok := fields["orders"]; !ok {
		return nil, nil
	}

	field := func(name string) (int64, error) {
		raw, ok := fields[name]
		if !ok {
			return 0, nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("daily stats field %s: %w", name, err)
		}
		return n, nil
	}

	var counts [4]int64
	for i, name := range []string{"orders", "orders:dine-in", "orders:takeaway", "revenue_cents"} {
		if counts[i], err = field(name); err != nil {
			return nil, err
		}
	}
	stats := domain.DailyStats{
		TodayTotal:    int(counts[0]),
		TodayDineIn:   int(counts[1]),
		TodayTakeaway: int(counts[2]),
		TodayRevenue:  decimal.New(counts[3], -2),
	}
	return &stats, nil
}
