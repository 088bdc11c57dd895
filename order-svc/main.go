package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"qrmenu/config"
	"qrmenu/events"
	httpapi "qrmenu/order-svc/internal/api/http"
	"qrmenu/order-svc/internal/auth"
	"qrmenu/order-svc/internal/service"
	"qrmenu/order-svc/internal/storage"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.Env)
	defer logger.Sync()

	if err := cfg.ValidateSecrets(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg)
	defer db.Close()

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}
	seedAdmin(ctx, cfg, repo, logger)

	var (
		publisher events.Publisher
		writer    *kafka.Writer
	)
	if cfg.KafkaEnabled {
		writer = config.NewKafkaWriter(cfg)
		publisher = events.NewKafkaPublisher(writer)
	} else {
		logger.Infow("kafka disabled, events will not be published")
	}

	issuer, err := auth.NewJWTIssuer(cfg.JWTSecret)
	if err != nil {
		log.Fatal("Failed to configure tokens:", err)
	}

	loc := cfg.Location()
	orders := service.NewOrderService(repo, storage.NewRedisSequence(rdb, loc), publisher, logger)
	tables := service.NewTableService(repo, logger)
	svc := httpapi.Services{
		Orders:      orders,
		Tables:      tables,
		WaiterCalls: service.NewWaiterCallService(repo, repo, publisher, logger),
		Catalog:     service.NewCatalogService(repo),
		Cart:        service.NewCartService(storage.NewRedisCartStore(rdb, cfg.CartTTL), repo, orders, logger),
		Auth: service.NewAuthService(
			auth.NewBcryptVerifier(repo),
			repo,
			issuer,
			storage.NewRedisRevocationStore(rdb),
			tables,
			service.AuthConfig{
				AdminTTL:   cfg.AdminSessionTTL,
				GuestTTL:   cfg.GuestSessionTTL,
				BcryptCost: cfg.BcryptCost,
			},
			logger,
		),
		Stats: service.NewStatsService(repo, repo, storage.NewRedisStatsCache(rdb), loc, logger),
	}

	router := httpapi.NewRouter(httpapi.NewHandler(svc, loc, logger), cfg.CORSOrigins)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpapi.Serve(gctx, cfg.HTTPAddr, router, logger)
	})
	if writer != nil {
		// Flush pending events once the server has been asked to stop.
		g.Go(func() error {
			<-gctx.Done()
			return writer.Close()
		})
	}

	if err := g.Wait(); err != nil {
		logger.Fatalw("order service stopped", "error", err)
	}
}

// seedAdmin creates the first admin account when none exists yet.
func seedAdmin(ctx context.Context, cfg config.Config, repo *storage.PostgresRepository, logger *zap.SugaredLogger) {
	if cfg.AdminPassword == "" {
		logger.Warnw("ADMIN_PASSWORD not set, skipping admin seed")
		return
	}
	hash, err := auth.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}
	created, err := repo.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, hash)
	if err != nil {
		log.Fatal("Failed to seed admin:", err)
	}
	if created {
		logger.Infow("admin account created", "username", cfg.AdminUsername)
	}
}
