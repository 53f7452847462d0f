package domain

import (
	"context"
	"time"
)

// Post is a top-level search hit from a community source.
type Post struct {
	ID        string
	Channel   string
	Title     string
	Body      string
	Author    string
	Score     int
	CreatedAt time.Time
	URL       string
}

// Reply is a comment on a Post.
type Reply struct {
	ID        string
	Author    string
	Body      string
	Score     int
	CreatedAt time.Time
}

type SearchOptions struct {
	Sort       string
	TimeWindow string
	Limit      int
}

// SearchProvider is the fetch boundary. Configured must be answerable
// without any network access.
type SearchProvider interface {
	Configured() bool
	Search(ctx context.Context, channel, query string, opts SearchOptions) ([]Post, error)
	Replies(ctx context.Context, post Post, limit int) ([]Reply, error)
}

// ReviewRepository is the keyed upsert store for aggregates.
type ReviewRepository interface {
	FindAggregate(ctx context.Context, productID int64) (AggregatedReview, error)
	UpsertAggregate(ctx context.Context, a AggregatedReview) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Locker provides per-key mutual exclusion across processes.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// RefreshEvent is published after an aggregate has been replaced.
type RefreshEvent struct {
	RunID          string    `json:"run_id"`
	ProductID      int64     `json:"product_id"`
	Profile        string    `json:"profile"`
	Outcome        string    `json:"outcome"`
	TotalFound     int       `json:"total_found"`
	OverallRating  *float64  `json:"overall_rating"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	ComputedAt     time.Time `json:"computed_at"`
}

type EventPublisher interface {
	PublishRefresh(ctx context.Context, ev RefreshEvent) error
}
