package app_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"insight_engine/internal/domain"
)

// ---- fakes ----

type searchCall struct{ channel, query string }

type fakeProvider struct {
	mu         sync.Mutex
	configured bool
	search     func(ctx context.Context, n int, channel, query string) ([]domain.Post, error)
	replies    map[string][]domain.Reply
	calls      []searchCall
}

func (p *fakeProvider) Configured() bool { return p.configured }

func (p *fakeProvider) Search(ctx context.Context, channel, query string, opts domain.SearchOptions) ([]domain.Post, error) {
	p.mu.Lock()
	p.calls = append(p.calls, searchCall{channel, query})
	n := len(p.calls)
	p.mu.Unlock()
	if p.search == nil {
		return nil, nil
	}
	return p.search(ctx, n, channel, query)
}

func (p *fakeProvider) Replies(ctx context.Context, post domain.Post, limit int) ([]domain.Reply, error) {
	rs := p.replies[post.ID]
	if len(rs) > limit {
		rs = rs[:limit]
	}
	return rs, nil
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

type fakeRepo struct {
	mu      sync.Mutex
	store   map[int64]domain.AggregatedReview
	upserts int
	err     error
}

func (r *fakeRepo) FindAggregate(ctx context.Context, id int64) (domain.AggregatedReview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.store[id]
	if !ok {
		return domain.AggregatedReview{}, domain.ErrNotFound
	}
	return a, nil
}

func (r *fakeRepo) UpsertAggregate(ctx context.Context, a domain.AggregatedReview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.store == nil {
		r.store = map[int64]domain.AggregatedReview{}
	}
	r.store[a.ProductID] = a
	r.upserts++
	return nil
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if d, ok := dst.(*domain.AggregatedReview); ok {
		*d = v.(domain.AggregatedReview)
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	err      error // backend failure
	acquired int
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	if l.held[key] {
		return nil, domain.ErrLocked
	}
	if l.held == nil {
		l.held = map[string]bool{}
	}
	l.held[key] = true
	l.acquired++
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		l.released++
		return nil
	}, nil
}

type fakePublisher struct {
	events []domain.RefreshEvent
}

func (p *fakePublisher) PublishRefresh(ctx context.Context, ev domain.RefreshEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func post(id string, score int, text string) domain.Post {
	return domain.Post{
		ID:        id,
		Channel:   "KitchenDesign",
		Title:     "Thoughts on my range",
		Body:      text,
		Author:    "user_" + id,
		Score:     score,
		CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		URL:       fmt.Sprintf("https://reddit.com/r/KitchenDesign/comments/%s", id),
	}
}

func ptr[T any](v T) *T { return &v }
