package app

import (
	"context"
	"fmt"
	"time"

	"insight_engine/internal/domain"
)

type QueryService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

// GetCached returns the last persisted aggregate without running the pipeline.
func (s *QueryService) GetCached(ctx context.Context, productID int64) (domain.AggregatedReview, error) {
	if productID <= 0 {
		return domain.AggregatedReview{}, domain.ErrInvalidProduct
	}
	key := aggregateKey(productID)
	var out domain.AggregatedReview
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	out, err := s.repo.FindAggregate(ctx, productID)
	if err != nil {
		return domain.AggregatedReview{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func aggregateKey(id int64) string { return fmt.Sprintf("aggregate:%d", id) }
