package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"insight_engine/internal/adapters/observability"
	"insight_engine/internal/analysis"
	"insight_engine/internal/domain"
)

// Fetcher gathers raw documents for a product from a search provider, following a
// profile's search plan. Without a configured provider it serves the profile's demo corpus.
type Fetcher struct {
	provider domain.SearchProvider
	delay    time.Duration // courtesy pause between channel queries
}

func NewFetcher(p domain.SearchProvider, delay time.Duration) *Fetcher {
	return &Fetcher{provider: p, delay: delay}
}

// Live reports whether fetches will hit the network.
func (f *Fetcher) Live() bool {
	return f.provider != nil && f.provider.Configured()
}

// Fetch returns the documents gathered so far together with ctx.Err() when the
// context ends mid-fetch, so callers can decide whether a partial corpus is usable.
// A failing channel query is logged and skipped, never retried; ErrProviderUnavailable
// is returned when every completed query failed, even if the deadline fired too.
// Rejected credentials abort immediately. Only documents long enough to analyze
// are kept and counted toward the result cap.
func (f *Fetcher) Fetch(ctx context.Context, profile domain.Profile, product domain.Product) ([]domain.RawDocument, error) {
	if !f.Live() {
		log.Warn().Int64("product_id", product.ID).Str("mode", "demo").Msg("no provider credentials configured, serving demo corpus")
		if profile.DemoCorpus == nil {
			return nil, nil
		}
		docs := profile.DemoCorpus(product)
		observability.ObserveDocuments("fetched", len(docs))
		return docs, nil
	}

	plan := profile.Search
	opts := domain.SearchOptions{Sort: plan.Sort, TimeWindow: plan.TimeWindow, Limit: plan.PostsPerQuery}
	seen := map[string]bool{}
	var docs []domain.RawDocument
	var attempts, failures int

	capped := func() bool { return plan.ResultCap > 0 && len(docs) >= plan.ResultCap }

search:
	for _, q := range expandQueries(plan.QueryTemplates, product) {
		for _, ch := range plan.Channels {
			if attempts > 0 && !sleepCtx(ctx, f.delay) {
				break search
			}
			attempts++

			posts, err := f.provider.Search(ctx, ch, q, opts)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthorized) {
					return nil, err
				}
				if ctx.Err() != nil {
					attempts-- // cut short, neither success nor failure
					break search
				}
				failures++
				log.Warn().Err(err).Str("err_type", observability.LabelErr(err)).
					Int64("product_id", product.ID).Str("channel", ch).Str("query", q).
					Msg("channel query failed, skipping")
				continue
			}

			for _, p := range posts {
				if p.Score < plan.MinScore || (p.ID != "" && seen[p.ID]) {
					continue
				}
				seen[p.ID] = true
				if doc := postDocument(p); analysis.Analyzable(doc) {
					docs = append(docs, doc)
					if capped() {
						break search
					}
				}
				if plan.RepliesPerPost <= 0 {
					continue
				}
				replies, err := f.provider.Replies(ctx, p, plan.RepliesPerPost)
				if err != nil {
					if ctx.Err() != nil {
						break search
					}
					log.Debug().Err(err).Str("post", p.ID).Msg("replies unavailable")
					continue
				}
				for _, r := range replies {
					doc := replyDocument(p, r)
					if r.Score < plan.MinScore || !analysis.Analyzable(doc) {
						continue
					}
					docs = append(docs, doc)
					if capped() {
						break search
					}
				}
			}
		}
	}

	if plan.ResultCap > 0 && len(docs) > plan.ResultCap {
		docs = docs[:plan.ResultCap]
	}
	observability.ObserveDocuments("fetched", len(docs))
	log.Debug().Int64("product_id", product.ID).Str("mode", "live").Int("docs", len(docs)).
		Int("queries", attempts).Int("failed", failures).Msg("fetch finished")

	// an outage that outlasts the budget is still an outage, not a timeout
	allFailed := attempts > 0 && failures == attempts && len(docs) == 0
	if err := ctx.Err(); err != nil && !(allFailed && errors.Is(err, context.DeadlineExceeded)) {
		return docs, err
	}
	if allFailed {
		return nil, fmt.Errorf("fetch %d: all %d queries failed: %w", product.ID, attempts, domain.ErrProviderUnavailable)
	}
	return docs, nil
}

// expandQueries fills {name} and {brand}; templates needing a brand are skipped when none is set.
func expandQueries(templates []string, product domain.Product) []string {
	r := strings.NewReplacer("{name}", product.Name, "{brand}", product.Brand)
	brand := strings.TrimSpace(product.Brand) != ""
	seen := map[string]bool{}
	var out []string
	for _, t := range templates {
		if !brand && strings.Contains(t, "{brand}") {
			continue
		}
		q := strings.TrimSpace(r.Replace(t))
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		out = append(out, q)
	}
	return out
}

func postDocument(p domain.Post) domain.RawDocument {
	return domain.RawDocument{
		Title:           p.Title,
		Text:            p.Body,
		Author:          p.Author,
		Timestamp:       p.CreatedAt,
		EngagementScore: p.Score,
		SourceURL:       p.URL,
		SourceChannel:   p.Channel,
	}
}

func replyDocument(p domain.Post, r domain.Reply) domain.RawDocument {
	return domain.RawDocument{
		Text:            r.Body,
		Author:          r.Author,
		Timestamp:       r.CreatedAt,
		EngagementScore: r.Score,
		SourceURL:       p.URL,
		SourceChannel:   p.Channel,
	}
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
