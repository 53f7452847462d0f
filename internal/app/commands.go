package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"insight_engine/internal/adapters/observability"
	"insight_engine/internal/analysis"
	"insight_engine/internal/domain"
)

type Outcome string

const (
	OutcomeUpdated     Outcome = "updated"
	OutcomeNoDocuments Outcome = "no_documents"
	OutcomeTimedOut    Outcome = "timed_out"
)

const persistTimeout = 10 * time.Second

// RefreshResult describes one pipeline run. Snapshot is nil when nothing was written.
type RefreshResult struct {
	RunID      string
	Outcome    Outcome
	Snapshot   *domain.AggregatedReview
	TotalFound int
	Analyzed   int
	Elapsed    time.Duration
	Shared     bool // joined an in-flight run for the same product
}

type RefreshConfig struct {
	Budget   time.Duration
	LockTTL  time.Duration
	CacheTTL time.Duration
}

// RefreshService runs fetch, analyze, aggregate and persist for one product.
type RefreshService struct {
	fetcher *Fetcher
	repo    domain.ReviewRepository
	cache   domain.Cache          // optional
	locker  domain.Locker         // optional
	events  domain.EventPublisher // optional
	cfg     RefreshConfig
	now     func() time.Time
	group   singleflight.Group
}

func NewRefreshService(f *Fetcher, r domain.ReviewRepository, c domain.Cache, l domain.Locker, ev domain.EventPublisher, cfg RefreshConfig) *RefreshService {
	if cfg.Budget <= 0 {
		cfg.Budget = 30 * time.Second
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = cfg.Budget + persistTimeout
	}
	return &RefreshService{fetcher: f, repo: r, cache: c, locker: l, events: ev, cfg: cfg, now: time.Now}
}

// Refresh recomputes the product's aggregate from scratch and replaces the stored one.
// Concurrent calls for the same product, profile and identity inside this process share
// a single run. Canceling ctx returns ctx.Err() to this caller without aborting that run.
func (s *RefreshService) Refresh(ctx context.Context, product domain.Product) (RefreshResult, error) {
	if err := product.Validate(); err != nil {
		return RefreshResult{}, err
	}
	name := product.Profile
	if name == "" {
		name = analysis.ProfileAppliance
	}
	profile, ok := analysis.LookupProfile(name)
	if !ok {
		return RefreshResult{}, fmt.Errorf("unknown profile %q: %w", product.Profile, domain.ErrInvalidProduct)
	}

	// The shared run outlives any single caller; a caller that gives up only stops waiting.
	key := fmt.Sprintf("%d|%s|%s|%s", product.ID, profile.Name, product.Name, product.Brand)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.run(context.WithoutCancel(ctx), profile, product)
	})
	select {
	case <-ctx.Done():
		return RefreshResult{}, ctx.Err()
	case r := <-ch:
		res, _ := r.Val.(RefreshResult)
		res.Shared = r.Shared
		return res, r.Err
	}
}

func (s *RefreshService) run(ctx context.Context, profile domain.Profile, product domain.Product) (RefreshResult, error) {
	start := time.Now()
	res := RefreshResult{RunID: uuid.NewString()}
	logger := log.With().Str("run_id", res.RunID).Int64("product_id", product.ID).Str("profile", profile.Name).Logger()

	fail := func(err error) (RefreshResult, error) {
		observability.ObserveRefresh(profile.Name, "error", time.Since(start))
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("refresh failed")
		return RefreshResult{}, err
	}

	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, lockKey(product.ID), s.cfg.LockTTL)
		switch {
		case errors.Is(err, domain.ErrLocked):
			return fail(err)
		case err != nil:
			// the store's row lock still serializes the write-back
			logger.Warn().Err(err).Msg("lock backend unavailable, continuing without it")
		default:
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					logger.Warn().Err(err).Msg("lock release failed")
				}
			}()
		}
	}

	fctx, cancel := context.WithTimeout(ctx, s.cfg.Budget)
	docs, err := s.fetcher.Fetch(fctx, profile, product)
	cancel()
	res.TotalFound = len(docs)

	timedOut := false
	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		timedOut = true
	default:
		return fail(err)
	}
	if time.Since(start) > s.cfg.Budget {
		timedOut = true
	}

	analyzer := analysis.NewAnalyzer(profile)
	partials := analyzer.AnalyzeAll(docs, product)
	res.Analyzed = len(partials)
	observability.ObserveDocuments("analyzed", len(partials))

	agg, err := analysis.NewAggregator(analyzer).Aggregate(product.ID, partials, s.now())
	if err != nil {
		return fail(err)
	}

	res.Outcome = OutcomeNoDocuments
	if agg != nil {
		// the budget may have expired; the write-back still gets its own window
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
		defer cancel()
		if err := s.repo.UpsertAggregate(pctx, *agg); err != nil {
			return fail(fmt.Errorf("persist aggregate %d: %w", product.ID, err))
		}
		s.refreshCache(pctx, *agg)
		res.Snapshot = agg
		res.Outcome = OutcomeUpdated
	}
	if timedOut {
		res.Outcome = OutcomeTimedOut
	}
	res.Elapsed = time.Since(start)

	if agg != nil && s.events != nil {
		ev := domain.RefreshEvent{
			RunID:          res.RunID,
			ProductID:      product.ID,
			Profile:        profile.Name,
			Outcome:        string(res.Outcome),
			TotalFound:     res.TotalFound,
			OverallRating:  agg.OverallRating,
			ElapsedSeconds: res.Elapsed.Seconds(),
			ComputedAt:     agg.LastComputedAt,
		}
		if err := s.events.PublishRefresh(context.WithoutCancel(ctx), ev); err != nil {
			logger.Warn().Err(err).Msg("publish refresh event failed")
		}
	}

	observability.ObserveRefresh(profile.Name, string(res.Outcome), res.Elapsed)
	logger.Info().
		Str("outcome", string(res.Outcome)).
		Int("docs", res.TotalFound).
		Int("partials", res.Analyzed).
		Dur("elapsed", res.Elapsed).
		Msg("refresh finished")
	return res, nil
}

// refreshCache evicts the stale snapshot and primes the new one; failures only cost a cache miss.
func (s *RefreshService) refreshCache(ctx context.Context, agg domain.AggregatedReview) {
	if s.cache == nil {
		return
	}
	key := aggregateKey(agg.ProductID)
	_ = s.cache.Del(ctx, key)
	if err := s.cache.Set(ctx, key, agg, int(s.cfg.CacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache prime failed")
	}
}

func lockKey(id int64) string { return fmt.Sprintf("lock:refresh:%d", id) }
