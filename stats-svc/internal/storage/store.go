package storage

import (
	"context"
	"time"

	"qrmenu/events"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Read models are kept for a week; the admin screen only asks about recent days.
const retention = 7 * 24 * time.Hour

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// IncrementProducts adds each item's quantity to the day's popularity set,
// keyed by product name.
func (s *Store) IncrementProducts(ctx context.Context, day time.Time, items []events.Item) error {
	key := events.ProductsKey(day)
	pipe := s.rdb.TxPipeline()
	queued := 0
	for _, item := range items {
		if item.Quantity <= 0 || item.ProductName == "" {
			continue
		}
		pipe.ZIncrBy(ctx, key, float64(item.Quantity), item.ProductName)
		queued++
	}
	if queued == 0 {
		return nil
	}
	pipe.Expire(ctx, key, retention)
	_, err := pipe.Exec(ctx)
	return err
}

// IncrementDaily counts the order under its type and adds its total in minor
// units so the hash stays exact.
func (s *Store) IncrementDaily(ctx context.Context, day time.Time, orderType string, total decimal.Decimal) error {
	key := events.DailyKey(day)
	pipe := s.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, "orders", 1)
	if orderType != "" {
		pipe.HIncrBy(ctx, key, "orders:"+orderType, 1)
	}
	pipe.HIncrBy(ctx, key, "revenue_cents", total.Shift(2).Round(0).IntPart())
	pipe.Expire(ctx, key, retention)
	_, err := pipe.Exec(ctx)
	return err
}

// AdjustOrder moves an order's items and revenue out of (sign -1) or back into
// (sign +1) the day's read models. Order counts are left alone. A day that was
// never counted is skipped so a missed order.created cannot drive it negative.
func (s *Store) AdjustOrder(ctx context.Context, day time.Time, items []events.Item, total decimal.Decimal, sign int64) error {
	dailyKey := events.DailyKey(day)
	n, err := s.rdb.Exists(ctx, dailyKey).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	productsKey := events.ProductsKey(day)
	pipe := s.rdb.TxPipeline()
	for _, item := range items {
		if item.Quantity <= 0 || item.ProductName == "" {
			continue
		}
		pipe.ZIncrBy(ctx, productsKey, float64(sign*int64(item.Quantity)), item.ProductName)
	}
	pipe.ZRemRangeByScore(ctx, productsKey, "-inf", "0")
	pipe.HIncrBy(ctx, dailyKey, "revenue_cents", sign*total.Shift(2).Round(0).IntPart())
	pipe.Expire(ctx, productsKey, retention)
	pipe.Expire(ctx, dailyKey, retention)
	_, err = pipe.Exec(ctx)
	return err
}
