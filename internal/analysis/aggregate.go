package analysis

import (
	"fmt"
	"sort"
	"time"

	"insight_engine/internal/domain"
)

const (
	maxFeedbackItems = 5
	recentSample     = 3

	easeMultiplier    = 0.9
	featureMultiplier = 1.1
	valueMultiplier   = 0.8
)

// Aggregator reduces partial reviews into one aggregate per product.
type Aggregator struct {
	analyzer *Analyzer
}

func NewAggregator(a *Analyzer) *Aggregator {
	return &Aggregator{analyzer: a}
}

// Aggregate returns nil for empty input. The overall rating is the mean of explicit
// ratings when any partial carries one, otherwise it is derived from average polarity.
func (g *Aggregator) Aggregate(productID int64, partials []domain.PartialReview, now time.Time) (*domain.AggregatedReview, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("aggregate: %w", domain.ErrInvalidProduct)
	}
	if len(partials) == 0 {
		return nil, nil
	}

	out := &domain.AggregatedReview{
		ProductID:              productID,
		Profile:                g.analyzer.Profile().Name,
		TotalReviewsConsidered: len(partials),
		LastComputedAt:         now.UTC(),
	}

	var sumP, sumS float64
	var samples int
	var positive, negative []string
	var overallAvg, secA, secB, secC mean
	themes := newTally()
	for _, pr := range partials {
		if len(pr.Fragments) == 0 {
			if pr.PositiveSummary != nil {
				positive = append(positive, *pr.PositiveSummary)
			}
			if pr.NegativeSummary != nil {
				negative = append(negative, *pr.NegativeSummary)
			}
		}
		for _, f := range pr.Fragments {
			sumP += f.Sentiment.Polarity
			sumS += f.Sentiment.Subjectivity
			samples++
			switch f.Sentiment.Label {
			case domain.SentimentPositive:
				out.PositiveCount++
				positive = append(positive, f.Excerpt)
			case domain.SentimentNegative:
				out.NegativeCount++
				negative = append(negative, f.Excerpt)
			default:
				out.NeutralCount++
			}
		}
		overallAvg.add(pr.OverallRating)
		secA.add(pr.SecondaryA)
		secB.add(pr.SecondaryB)
		secC.add(pr.SecondaryC)
		themes.add(pr)
	}

	var avgP, avgS float64
	if samples > 0 {
		avgP = sumP / float64(samples)
		avgS = sumS / float64(samples)
	}
	out.AvgPolarity = round(avgP, 3)
	out.AvgSubjectivity = round(avgS, 3)

	out.Ratings = domain.RatingAverages{
		Overall:    overallAvg.value(),
		SecondaryA: secA.value(),
		SecondaryB: secB.value(),
		SecondaryC: secC.value(),
	}

	overall := (avgP + 1) * 2.5
	if out.Ratings.Overall != nil {
		overall = *out.Ratings.Overall
	}
	overall = clamp(overall, 0, 5)
	out.OverallRating = score(overall, 1)
	out.EaseOfUseScore = score(overall, easeMultiplier)
	out.FeatureScore = score(overall, featureMultiplier)
	out.ValueForMoneyScore = score(overall, valueMultiplier)

	out.PositiveSentimentSummary = SummarizeFeedback(head(positive, maxFeedbackItems))
	out.NegativeSentimentSummary = SummarizeFeedback(head(negative, maxFeedbackItems))
	out.RecentReviews = g.recent(partials)
	out.Themes = themes.ThemeTally
	return out, nil
}

func (g *Aggregator) recent(partials []domain.PartialReview) []domain.ReviewDigest {
	sorted := make([]domain.PartialReview, len(partials))
	copy(sorted, partials)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ObservedAt.After(sorted[j].ObservedAt)
	})
	sorted = head(sorted, recentSample)
	out := make([]domain.ReviewDigest, 0, len(sorted))
	for _, pr := range sorted {
		out = append(out, g.analyzer.Digest(pr))
	}
	return out
}

// score applies a multiplier to the overall rating and clamps to [0,5].
func score(overall, multiplier float64) *float64 {
	v := round(clamp(overall*multiplier, 0, 5), 1)
	return &v
}

// mean accumulates present values only.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64) {
	if v == nil {
		return
	}
	m.sum += *v
	m.n++
}

func (m mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	v := round(m.sum/float64(m.n), 1)
	return &v
}

type tally struct{ domain.ThemeTally }

func newTally() tally {
	return tally{domain.ThemeTally{
		Trends:       map[string]int{},
		Competitors:  map[string]int{},
		Price:        map[string]int{},
		Installation: map[string]int{},
	}}
}

func (t tally) add(pr domain.PartialReview) {
	for _, s := range pr.TrendTags {
		t.Trends[s]++
	}
	for _, s := range pr.CompetitorTags {
		t.Competitors[s]++
	}
	if pr.PriceSentiment != "" {
		t.Price[string(pr.PriceSentiment)]++
	}
	for _, s := range pr.InstallationTags {
		t.Installation[s]++
	}
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
