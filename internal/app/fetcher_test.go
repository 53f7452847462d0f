package app_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"insight_engine/internal/analysis"
	"insight_engine/internal/app"
	"insight_engine/internal/domain"
)

var wolf = domain.Product{ID: 5, Name: "SO30CE/S/PH Steam Oven", Brand: "Wolf", Profile: analysis.ProfileAppliance}

func singleChannel(minScore, cap int) domain.Profile {
	p := analysis.ApplianceProfile()
	p.Search.Channels = []string{"KitchenDesign"}
	p.Search.QueryTemplates = []string{`"{name}" review`}
	p.Search.MinScore = minScore
	p.Search.ResultCap = cap
	return p
}

func TestFetch_DemoModeWithoutCredentials(t *testing.T) {
	for _, provider := range []domain.SearchProvider{nil, &fakeProvider{configured: false}} {
		f := app.NewFetcher(provider, 0)
		docs, err := f.Fetch(context.Background(), analysis.ApplianceProfile(), wolf)
		if err != nil {
			t.Fatalf("err: %v", err)
		}
		if len(docs) != 2 {
			t.Fatalf("demo docs = %d, want 2", len(docs))
		}
		for _, d := range docs {
			if d.Text == "" || d.Author == "" || d.SourceURL == "" || d.Timestamp.IsZero() {
				t.Fatalf("demo doc missing fields: %+v", d)
			}
		}
	}
	fp := &fakeProvider{}
	_, _ = app.NewFetcher(fp, 0).Fetch(context.Background(), analysis.ApplianceProfile(), wolf)
	if fp.callCount() != 0 {
		t.Fatalf("demo mode must not search, got %d calls", fp.callCount())
	}
}

func TestFetch_QualityFilterAppliesToPostsAndReplies(t *testing.T) {
	fp := &fakeProvider{
		configured: true,
		search: func(ctx context.Context, n int, ch, q string) ([]domain.Post, error) {
			return []domain.Post{post("low", 1, "meh"), post("high", 8, "Solid oven so far")}, nil
		},
		replies: map[string][]domain.Reply{
			"high": {{ID: "r1", Body: "agreed", Score: 2}, {ID: "r2", Author: "x", Body: "Mine has been great too", Score: 4}},
			"low":  {{ID: "r3", Body: "never fetched", Score: 50}},
		},
	}
	docs, err := app.NewFetcher(fp, 0).Fetch(context.Background(), singleChannel(3, 0), wolf)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("docs = %d, want post + one reply", len(docs))
	}
	if docs[0].EngagementScore != 8 || docs[0].Title == "" {
		t.Fatalf("post doc = %+v", docs[0])
	}
	if docs[1].Text != "Mine has been great too" || docs[1].Title != "" || docs[1].SourceURL != docs[0].SourceURL {
		t.Fatalf("reply doc = %+v", docs[1])
	}
}

func TestFetch_StopsAtResultCap(t *testing.T) {
	fp := &fakeProvider{
		configured: true,
		search: func(ctx context.Context, n int, ch, q string) ([]domain.Post, error) {
			var out []domain.Post
			for i := 0; i < 10; i++ {
				out = append(out, post(fmt.Sprintf("%d-%d", n, i), 10, "Lovely oven"))
			}
			return out, nil
		},
	}
	docs, err := app.NewFetcher(fp, 0).Fetch(context.Background(), analysis.ApplianceProfile(), wolf)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(docs) != 12 {
		t.Fatalf("docs = %d, want cap 12", len(docs))
	}
	if fp.callCount() != 2 {
		t.Fatalf("search calls = %d, want early stop after 2", fp.callCount())
	}
}

func TestFetch_FailedChannelIsSkipped(t *testing.T) {
	fp := &fakeProvider{
		configured: true,
		search: func(ctx context.Context, n int, ch, q string) ([]domain.Post, error) {
			if ch == "InteriorDesign" {
				return nil, errors.New("subreddit private")
			}
			if ch == "KitchenDesign" {
				return []domain.Post{post("k", 10, "Wolf oven is great")}, nil
			}
			return nil, nil
		},
	}
	docs, err := app.NewFetcher(fp, 0).Fetch(context.Background(), analysis.ApplianceProfile(), wolf)
	if err != nil {
		t.Fatalf("one failing channel must not abort the fetch: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want 1 (duplicates dropped)", len(docs))
	}
	if fp.callCount() != 45 {
		t.Fatalf("calls = %d, want every template x channel", fp.callCount())
	}
}

func TestFetch_AllQueriesFailed(t *testing.T) {
	fp := &fakeProvider{
		configured: true,
		search: func(ctx context.Context, n int, ch, q string) ([]domain.Post, error) {
			return nil, errors.New("503")
		},
	}
	_, err := app.NewFetcher(fp, 0).Fetch(context.Background(), singleChannel(0, 0), wolf)
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestFetch_UnauthorizedAborts(t *testing.T) {
	fp := &fakeProvider{
		configured: true,
		search: func(ctx context.Context, n int, ch, q string) ([]domain.Post, error) {
			return nil, fmt.Errorf("token: %w", domain.ErrUnauthorized)
		},
	}
	_, err := app.NewFetcher(fp, 0).Fetch(context.Background(), analysis.ApplianceProfile(), wolf)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if fp.callCount() != 1 {
		t.Fatalf("calls = %d, want abort after first", fp.callCount())
	}
}

func TestFetch_DeadlineReturnsGatheredDocuments(t *testing.T) {
	fp := &fakeProvider{
		configured: true,
		search: func(ctx context.Context, n int, ch, q string) ([]domain.Post, error) {
			if n == 1 {
				return []domain.Post{post("first", 10, "Early result before the deadline")}, nil
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	docs, err := app.NewFetcher(fp, 0).Fetch(ctx, analysis.ApplianceProfile(), wolf)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want the one gathered before the deadline", len(docs))
	}
}

func TestFetch_CourtesyDelayHonorsContext(t *testing.T) {
	fp := &fakeProvider{configured: true}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := app.NewFetcher(fp, time.Second).Fetch(ctx, analysis.ApplianceProfile(), wolf)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("delay was not interrupted by the deadline")
	}
	if fp.callCount() != 1 {
		t.Fatalf("calls = %d, want 1", fp.callCount())
	}
}

func TestFetch_BrandlessProductSkipsBrandTemplates(t *testing.T) {
	fp := &fakeProvider{configured: true}
	p := domain.Product{ID: 9, Name: "Pro Grand", Profile: analysis.ProfileAppliance}
	if _, err := app.NewFetcher(fp, 0).Fetch(context.Background(), analysis.ApplianceProfile(), p); err != nil {
		t.Fatalf("err: %v", err)
	}
	if fp.callCount() != 9 {
		t.Fatalf("calls = %d, want one template x 9 channels", fp.callCount())
	}
	for _, c := range fp.calls {
		if strings.Contains(c.query, "{") || c.query != `"Pro Grand" review` {
			t.Fatalf("unexpected query %q", c.query)
		}
	}
}

func TestFetch_ShortRepliesDoNotUseCapSlots(t *testing.T) {
	replies := map[string][]domain.Reply{}
	for i := 0; i < 30; i++ {
		replies[fmt.Sprintf("p%d", i)] = []domain.Reply{{ID: fmt.Sprintf("r%d", i), Body: "+1 same here", Score: 10}}
	}
	fp := &fakeProvider{
		configured: true,
		replies:    replies,
		search: func(ctx context.Context, n int, ch, q string) ([]domain.Post, error) {
			var out []domain.Post
			for i := (n - 1) * 10; i < n*10 && i < 30; i++ {
				out = append(out, post(fmt.Sprintf("p%d", i), 10, "Lovely oven"))
			}
			return out, nil
		},
	}
	docs, err := app.NewFetcher(fp, 0).Fetch(context.Background(), analysis.ApplianceProfile(), wolf)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(docs) != 12 {
		t.Fatalf("docs = %d, want cap 12", len(docs))
	}
	for _, d := range docs {
		if !analysis.Analyzable(d) {
			t.Fatalf("unanalyzable doc took a cap slot: %q", d.FullText())
		}
	}
	if fp.callCount() != 2 {
		t.Fatalf("search calls = %d, want 2", fp.callCount())
	}
}

func TestFetch_OutageOutlastingBudgetIsProviderError(t *testing.T) {
	fp := &fakeProvider{
		configured: true,
		search: func(ctx context.Context, n int, ch, q string) ([]domain.Post, error) {
			if n <= 2 {
				return nil, errors.New("remote 503")
			}
			// the deadline cuts the third query short
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	docs, err := app.NewFetcher(fp, 0).Fetch(ctx, analysis.ApplianceProfile(), wolf)
	if !errors.Is(err, domain.ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", err)
	}
	if errors.Is(err, context.DeadlineExceeded) || len(docs) != 0 {
		t.Fatalf("err = %v docs = %d", err, len(docs))
	}
}
