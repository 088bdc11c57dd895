package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"qrmenu/config"
	"qrmenu/events"
	"qrmenu/stats-svc/internal/service"
	"qrmenu/stats-svc/internal/storage"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"service":   "stats-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.KafkaEnabled {
		logger.Fatalw("stats-svc needs KAFKA_ENABLED=true")
	}

	rdb := config.MustInitRedis(cfg)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg)
	defer reader.Close()

	consumer := service.NewConsumer(
		events.NewKafkaSubscriber(reader, logger),
		storage.NewStore(rdb),
		cfg.Location(),
		logger,
	)

	r := mux.NewRouter()
	r.HandleFunc("/health", healthCheck).Methods("GET")
	srv := &http.Server{Addr: cfg.StatsHTTPAddr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		logger.Infow("stats service health endpoint", "addr", cfg.StatsHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalw("stats service stopped", "error", err)
	}
}
