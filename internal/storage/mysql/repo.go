package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"insight_engine/internal/domain"
)

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func ptrF64(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	f := n.Float64
	return &f
}

// Repo is the keyed aggregate store: at most one row per product.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

const deadlockRetries = 3

// UpsertAggregate replaces the product's aggregate in one transaction:
// lock the key, then update in place or insert. Deadlocks are retried.
func (r *Repo) UpsertAggregate(ctx context.Context, a domain.AggregatedReview) error {
	if a.ProductID <= 0 {
		return domain.ErrInvalidProduct
	}
	vals, err := aggregateValues(a)
	if err != nil {
		return err
	}
	for i := 0; ; i++ {
		err = r.upsert(ctx, a.ProductID, vals)
		if err == nil || !IsDeadlock(err) || i == deadlockRetries-1 {
			return err
		}
	}
}

func (r *Repo) upsert(ctx context.Context, productID int64, vals []any) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var rev int
	switch err = tx.QueryRowContext(ctx, lockAggregateSQL, productID).Scan(&rev); {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, insertAggregateSQL, append([]any{productID}, vals...)...)
	case err == nil:
		_, err = tx.ExecContext(ctx, updateAggregateSQL, append(vals[:len(vals):len(vals)], productID)...)
	}
	if err != nil {
		return fmt.Errorf("upsert aggregate %d: %w", productID, err)
	}
	return tx.Commit()
}

func (r *Repo) FindAggregate(ctx context.Context, productID int64) (domain.AggregatedReview, error) {
	var a domain.AggregatedReview
	var overall, ease, feature, value sql.NullFloat64
	var ratings, recent, themes []byte
	err := r.db.QueryRowContext(ctx, getAggregateSQL, productID).Scan(
		&a.ProductID, &a.Profile,
		&overall, &ease, &feature, &value,
		&a.PositiveSentimentSummary, &a.NegativeSentimentSummary,
		&a.TotalReviewsConsidered, &a.PositiveCount, &a.NegativeCount, &a.NeutralCount,
		&a.AvgPolarity, &a.AvgSubjectivity,
		&ratings, &recent, &themes, &a.LastComputedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AggregatedReview{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.AggregatedReview{}, err
	}
	a.OverallRating = ptrF64(overall)
	a.EaseOfUseScore = ptrF64(ease)
	a.FeatureScore = ptrF64(feature)
	a.ValueForMoneyScore = ptrF64(value)
	a.LastComputedAt = a.LastComputedAt.UTC()
	if err := json.Unmarshal(ratings, &a.Ratings); err != nil {
		return domain.AggregatedReview{}, fmt.Errorf("decode ratings: %w", err)
	}
	if err := json.Unmarshal(recent, &a.RecentReviews); err != nil {
		return domain.AggregatedReview{}, fmt.Errorf("decode recent reviews: %w", err)
	}
	if err := json.Unmarshal(themes, &a.Themes); err != nil {
		return domain.AggregatedReview{}, fmt.Errorf("decode themes: %w", err)
	}
	return a, nil
}

// Revision counts how many times the product's aggregate has been written.
func (r *Repo) Revision(ctx context.Context, productID int64) (int, error) {
	var rev int
	err := r.db.QueryRowContext(ctx, revisionSQL, productID).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return rev, err
}

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

// aggregateValues are the bind values after product_id, in column order.
func aggregateValues(a domain.AggregatedReview) ([]any, error) {
	ratings, err := json.Marshal(a.Ratings)
	if err != nil {
		return nil, err
	}
	recent := a.RecentReviews
	if recent == nil {
		recent = []domain.ReviewDigest{}
	}
	recentJSON, err := json.Marshal(recent)
	if err != nil {
		return nil, err
	}
	themes, err := json.Marshal(a.Themes)
	if err != nil {
		return nil, err
	}
	return []any{
		a.Profile,
		valF64(a.OverallRating),
		valF64(a.EaseOfUseScore),
		valF64(a.FeatureScore),
		valF64(a.ValueForMoneyScore),
		a.PositiveSentimentSummary,
		a.NegativeSentimentSummary,
		a.TotalReviewsConsidered,
		a.PositiveCount,
		a.NegativeCount,
		a.NeutralCount,
		a.AvgPolarity,
		a.AvgSubjectivity,
		string(ratings),
		string(recentJSON),
		string(themes),
		a.LastComputedAt.UTC(),
	}, nil
}
