package service

import (
	"context"
	"time"

	"qrmenu/order-svc/internal/domain"

	"go.uber.org/zap"
)

const (
	recentOrdersLimit = 10
	topProductsLimit  = 5
)

type StatsService struct {
	repo   StatsRepository
	orders OrderRepository
	cache  StatsCache
	loc    *time.Location
	logger *zap.SugaredLogger
}

func NewStatsService(repo StatsRepository, orders OrderRepository, cache StatsCache, loc *time.Location, logger *zap.SugaredLogger) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{repo: repo, orders: orders, cache: cache, loc: loc, logger: logger}
}

// DayWindow returns [00:00, next 00:00) of the day containing t, in loc.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}

func (s *StatsService) Summary(ctx context.Context, day time.Time) (*domain.StatsResponse, error) {
	from, to := DayWindow(day, s.loc)

	stats, err := s.dailyStats(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if stats.TotalOrders, err = s.repo.CountOrders(ctx, nil); err != nil {
		return nil, err
	}
	pending := domain.OrderPending
	if stats.PendingOrders, err = s.repo.CountOrders(ctx, &pending); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, err
	}

	recent, err := s.orders.ListOrders(ctx, domain.OrderFilter{Limit: recentOrdersLimit})
	if err != nil {
		return nil, err
	}

	top, err := s.topProducts(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if recent == nil {
		recent = []domain.Order{}
	}
	if top == nil {
		top = []domain.ProductScore{}
	}
	return &domain.StatsResponse{Stats: stats, RecentOrders: recent, TopProducts: top}, nil
}

// dailyStats prefers the counts stats-svc keeps in Redis. Both sources count
// cancelled orders and leave them out of revenue.
func (s *StatsService) dailyStats(ctx context.Context, from, to time.Time) (domain.DailyStats, error) {
	if s.cache != nil {
		cached, err := s.cache.DailyStats(ctx, from)
		if err == nil && cached != nil {
			return *cached, nil
		}
		if err != nil {
			s.logger.Warnw("stats cache unavailable, falling back to database", "day", from.Format(time.DateOnly), "error", err)
		}
	}
	return s.repo.DailyOrderStats(ctx, from, to)
}

func (s *StatsService) topProducts(ctx context.Context, from, to time.Time) ([]domain.ProductScore, error) {
	if s.cache != nil {
		top, err := s.cache.TopProducts(ctx, from, topProductsLimit)
		if err == nil && len(top) > 0 {
			return top, nil
		}
		if err != nil {
			s.logger.Warnw("stats cache unavailable, falling back to database", "day", from.Format(time.DateOnly), "error", err)
		}
	}
	return s.repo.TopProducts(ctx, from, to, topProductsLimit)
}
