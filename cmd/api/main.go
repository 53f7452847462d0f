package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "insight_engine/internal/adapters/http_server"
	natsad "insight_engine/internal/adapters/nats"
	"insight_engine/internal/adapters/observability"
	"insight_engine/internal/adapters/reddit"
	redisad "insight_engine/internal/adapters/redis"
	"insight_engine/internal/app"
	"insight_engine/internal/domain"
	"insight_engine/internal/shared"
	mysqlrepo "insight_engine/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "insight-api", cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(redisad.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB, Prefix: cfg.RedisPrefix})
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, cache and lock calls will fail until it recovers")
	}

	rc, err := reddit.New(reddit.Config{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		UserAgent:    cfg.RedditUserAgent,
		BaseURL:      cfg.RedditBaseURL,
		TokenURL:     cfg.RedditTokenURL,
		RPS:          cfg.RedditRPS,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize reddit client")
	}

	var events domain.EventPublisher
	if cfg.NATSURL != "" {
		pub, err := natsad.Connect(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			log.Fatal().Err(err).Msg("nats connect failed")
		}
		defer pub.Close()
		events = pub
	}

	fetcher := app.NewFetcher(rc, cfg.ChannelDelay)
	r := app.NewRefreshService(fetcher, repo, cache, redisad.NewLocker(cache), events, app.RefreshConfig{
		Budget:   cfg.RefreshBudget,
		LockTTL:  cfg.LockTTL,
		CacheTTL: cfg.CacheTTL,
	})
	q := app.NewQueryService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.RefreshBudget + 15*time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{R: r, Q: q, Lookup: shared.Find})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Bool("live_fetch", fetcher.Live()).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.RefreshBudget+15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
