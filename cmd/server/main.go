package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aohus/political-metrics/internal/assembly/handler"
	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/internal/document"
	"github.com/aohus/political-metrics/internal/platform/config"
	"github.com/aohus/political-metrics/internal/platform/httpserver"
	"github.com/aohus/political-metrics/internal/platform/logger"
	"github.com/aohus/political-metrics/internal/platform/metrics"
	"github.com/aohus/political-metrics/internal/platform/middleware"
	platformredis "github.com/aohus/political-metrics/internal/platform/redis"
	"github.com/aohus/political-metrics/internal/stats"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	logger.Init(slog.LevelInfo, os.Getenv("ASSEMBLY_LOG_FORMAT"))
	log := logger.New("server")

	ctx := context.Background()

	var (
		memberStore store.MemberStore
		billStore   store.BillStore
		docStore    document.Store
	)
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("opening postgres pool failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := store.EnsureSchema(ctx, pool); err != nil {
			log.Error("ensuring schema failed", "error", err)
			os.Exit(1)
		}
		pg := store.NewPostgres(pool)
		memberStore, billStore = pg, pg
		docStore = document.NewPostgresStore(pool)
	} else {
		log.Warn("no postgres DSN configured, serving from empty in-memory stores")
		mem := store.NewMemory()
		memberStore, billStore = mem, mem
		docStore = document.NewMemoryStore()
	}

	m := metrics.New()

	statsOpts := []stats.Option{stats.WithMetrics(m)}
	cache, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("connecting to redis failed", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
		statsOpts = append(statsOpts, stats.WithCache(cache, cfg.StatsCacheTTL))
	}
	statsService := stats.New(billStore, memberStore, logger.New("stats"), statsOpts...)

	api := handler.New(memberStore, billStore, docStore, statsService, logger.New("handler"))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	api.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting assembly API", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
