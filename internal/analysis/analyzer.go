package analysis

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"insight_engine/internal/domain"
)

const (
	minDocumentChars   = 20
	maxExcerptChars    = 1000
	maxFragmentChars   = 200
	maxSummaryKeywords = 3
	baseKeywordRating  = 3.0
	maxRating          = 5.0
	minRating          = 1.0
)

// Rating patterns are tried in this order; the first valid value wins.
var ratingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)/5`),
	regexp.MustCompile(`(\d+) out of 5`),
	regexp.MustCompile(`(\d+) stars`),
	regexp.MustCompile(`rating[:\s]*(\d+)`),
	regexp.MustCompile(`score[:\s]*(\d+)`),
}

// Analyzer turns one raw document into a partial review using a profile's vocabularies.
type Analyzer struct {
	profile domain.Profile
}

func NewAnalyzer(p domain.Profile) *Analyzer {
	return &Analyzer{profile: p}
}

func (a *Analyzer) Profile() domain.Profile { return a.profile }

// Analyzable reports whether a document is long enough to carry signal.
// Length is counted in characters, not bytes.
func Analyzable(doc domain.RawDocument) bool {
	return utf8.RuneCountInString(strings.TrimSpace(doc.FullText())) >= minDocumentChars
}

// Analyze returns false when the document is too short to carry signal.
func (a *Analyzer) Analyze(doc domain.RawDocument, product domain.Product) (domain.PartialReview, bool) {
	if !Analyzable(doc) {
		return domain.PartialReview{}, false
	}
	text := strings.TrimSpace(doc.FullText())
	lower := strings.ToLower(text)
	overall := Score(text)

	author := strings.TrimSpace(doc.Author)
	if author == "" || author == "[deleted]" {
		author = domain.AnonymousAuthor
	}

	pr := domain.PartialReview{
		Source:           domain.SourceReddit,
		ObservedAt:       doc.Timestamp,
		Author:           author,
		SourceURL:        doc.SourceURL,
		SourceChannel:    doc.SourceChannel,
		EngagementScore:  doc.EngagementScore,
		ReviewerType:     a.reviewerType(lower),
		ContextSummary:   domain.JoinTags(matchGroups(lower, a.profile.ContextGroups), a.profile.ContextSentinel),
		DomainInsights:   domain.JoinTags(matchGroups(lower, a.profile.InsightGroups), a.profile.InsightSentinel),
		OverallRating:    explicitRating(lower),
		SecondaryA:       keywordRating(lower, a.profile.SecondaryA),
		SecondaryB:       keywordRating(lower, a.profile.SecondaryB),
		SecondaryC:       keywordRating(lower, a.profile.SecondaryC),
		TrendTags:        matchGroup(lower, a.profile.Trends),
		CompetitorTags:   a.competitors(lower, product),
		PriceSentiment:   a.priceSentiment(lower),
		InstallationTags: matchGroup(lower, a.profile.Installation),
		RawExcerpt:       truncate(text, maxExcerptChars),
		Fragments:        fragments(doc),
	}
	if overall.Polarity > labelThreshold {
		s := summarizeKeywords(lower, a.profile.PositiveKeywords, "Positive feedback focuses on: ", "Generally positive sentiment")
		pr.PositiveSummary = &s
	}
	if overall.Polarity < -labelThreshold {
		s := summarizeKeywords(lower, a.profile.NegativeKeywords, "Concerns include: ", "Some negative feedback")
		pr.NegativeSummary = &s
	}
	return pr, true
}

// AnalyzeAll analyzes documents in order, dropping the ones filtered out.
func (a *Analyzer) AnalyzeAll(docs []domain.RawDocument, product domain.Product) []domain.PartialReview {
	out := make([]domain.PartialReview, 0, len(docs))
	for _, d := range docs {
		if pr, ok := a.Analyze(d, product); ok {
			out = append(out, pr)
		}
	}
	return out
}

// Digest renders a partial review with the profile's sentinels.
func (a *Analyzer) Digest(pr domain.PartialReview) domain.ReviewDigest {
	return domain.ReviewDigest{
		Source:          pr.Source,
		ReviewDate:      pr.ObservedAt,
		Author:          pr.Author,
		URL:             pr.SourceURL,
		ReviewerType:    pr.ReviewerType,
		Context:         pr.ContextSummary,
		Insights:        pr.DomainInsights,
		OverallRating:   pr.OverallRating,
		SecondaryA:      pr.SecondaryA,
		SecondaryB:      pr.SecondaryB,
		SecondaryC:      pr.SecondaryC,
		PositiveSummary: pr.PositiveSummary,
		NegativeSummary: pr.NegativeSummary,
		Trends:          domain.JoinTags(pr.TrendTags, a.profile.TrendsSentinel),
		Competitors:     domain.JoinTags(pr.CompetitorTags, a.profile.CompetitorSentinel),
		PriceSentiment:  pr.PriceSentiment,
		Installation:    domain.JoinTags(pr.InstallationTags, a.profile.InstallationSentinel),
		Excerpt:         pr.RawExcerpt,
	}
}

func (a *Analyzer) reviewerType(lower string) domain.ReviewerType {
	for _, g := range a.profile.ReviewerGroups {
		if containsAny(lower, g.Terms) {
			return g.Type
		}
	}
	return a.profile.DefaultReviewer
}

// competitors skips the product's own brand.
func (a *Analyzer) competitors(lower string, product domain.Product) []string {
	own := strings.ToLower(strings.TrimSpace(product.Brand))
	var out []string
	for _, c := range a.profile.Competitors {
		lc := strings.ToLower(c)
		if lc == own {
			continue
		}
		if strings.Contains(lower, lc) {
			out = append(out, c)
		}
	}
	return out
}

func (a *Analyzer) priceSentiment(lower string) domain.PriceSentiment {
	for _, r := range a.profile.PriceRules {
		if containsAny(lower, r.Terms) {
			return r.Sentiment
		}
	}
	return domain.PriceNeutral
}

// explicitRating checks only the first match of each pattern; an out-of-range
// first match falls through to the next pattern, never to later matches.
func explicitRating(lower string) *float64 {
	for _, re := range ratingPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if v := float64(n); v >= minRating && v <= maxRating {
			return &v
		}
	}
	return nil
}

// keywordRating is nil when no vocabulary term is present.
func keywordRating(lower string, v domain.RatingVocabulary) *float64 {
	hits := 0
	for _, t := range v.Terms {
		if strings.Contains(lower, t) {
			hits++
		}
	}
	if hits == 0 {
		return nil
	}
	r := clamp(baseKeywordRating+float64(hits)*v.Weight, minRating, maxRating)
	return &r
}

func matchGroups(lower string, groups []domain.TagGroup) []string {
	var out []string
	for _, g := range groups {
		out = append(out, matchGroup(lower, g)...)
	}
	return out
}

func matchGroup(lower string, g domain.TagGroup) []string {
	var out []string
	for _, r := range g.Rules {
		if !ruleMatches(lower, r) {
			continue
		}
		out = append(out, r.Tag)
		if g.Exclusive {
			break
		}
	}
	return out
}

func ruleMatches(lower string, r domain.TagRule) bool {
	if len(r.Any) > 0 && !containsAny(lower, r.Any) {
		return false
	}
	for _, t := range r.All {
		if !strings.Contains(lower, t) {
			return false
		}
	}
	return len(r.Any) > 0 || len(r.All) > 0
}

func summarizeKeywords(lower string, keywords []string, prefix, fallback string) string {
	var found []string
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			found = append(found, k)
			if len(found) == maxSummaryKeywords {
				break
			}
		}
	}
	if len(found) == 0 {
		return fallback
	}
	return prefix + strings.Join(found, ", ")
}

func fragments(doc domain.RawDocument) []domain.Fragment {
	var out []domain.Fragment
	if t := strings.TrimSpace(doc.Title); t != "" {
		out = append(out, domain.Fragment{Kind: "title", Excerpt: t, Sentiment: Score(t)})
	}
	if b := strings.TrimSpace(doc.Text); b != "" {
		out = append(out, domain.Fragment{
			Kind:      "content",
			Excerpt:   truncate(b, maxFragmentChars) + "...",
			Sentiment: Score(b),
		})
	}
	return out
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
