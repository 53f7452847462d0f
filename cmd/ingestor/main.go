package main

import (
	"context"
	"database/sql"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

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

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "insight-ingestor", cfg.LogLevel)

	products := shared.Products(cfg.Profile)
	log.Info().
		Str("profile", cfg.Profile).
		Int("workers", cfg.Workers).
		Int("products", len(products)).
		Bool("live_fetch", cfg.LiveFetch()).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(redisad.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass, DB: cfg.RedisDB, Prefix: cfg.RedisPrefix})
	defer cache.Close()

	client, err := reddit.New(reddit.Config{
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

	svc := app.NewRefreshService(app.NewFetcher(client, cfg.ChannelDelay), repo, cache, redisad.NewLocker(cache), events,
		app.RefreshConfig{Budget: cfg.RefreshBudget, LockTTL: cfg.LockTTL, CacheTTL: cfg.CacheTTL})

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, p := range products {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("interrupted, not scheduling remaining products")
			break
		}

		wg.Add(1)
		go func(p domain.Product) {
			defer wg.Done()
			defer sem.Release(1)

			res, err := svc.Refresh(ctx, p)
			if err != nil {
				failed.Add(1)
				log.Warn().Int64("id", p.ID).Str("err_type", observability.LabelErr(err)).Err(err).Msg("refresh failed")
				return
			}
			log.Info().Int64("id", p.ID).Str("outcome", string(res.Outcome)).
				Int("docs", res.TotalFound).Dur("elapsed", res.Elapsed).Msg("refresh ok")
		}(p)
	}

	wg.Wait()
	log.Info().Int("products", len(products)).Int32("failed", failed.Load()).Msg("ingestion completed")
}
