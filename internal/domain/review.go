package domain

import (
	"strings"
	"time"
)

// AnonymousAuthor replaces missing or deleted authors.
const AnonymousAuthor = "Anonymous"

// RawDocument is one fetched post or reply, consumed immediately by the analyzer.
type RawDocument struct {
	Title           string // empty for replies
	Text            string
	Author          string
	Timestamp       time.Time
	EngagementScore int
	SourceURL       string
	SourceChannel   string
}

// FullText is what the analyzer reads: title and body joined.
func (d RawDocument) FullText() string {
	if d.Title == "" {
		return d.Text
	}
	if d.Text == "" {
		return d.Title
	}
	return d.Title + " " + d.Text
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

type Sentiment struct {
	Polarity     float64        `json:"polarity"`
	Subjectivity float64        `json:"subjectivity"`
	Label        SentimentLabel `json:"sentiment"`
}

// Fragment is one independently scored piece of a document (title or body).
type Fragment struct {
	Kind      string    `json:"kind"` // title|content
	Excerpt   string    `json:"excerpt"`
	Sentiment Sentiment `json:"sentiment"`
}

type ReviewerType string

const (
	ReviewerHomeowner           ReviewerType = "Homeowner"
	ReviewerHomeownerRenovation ReviewerType = "Homeowner (Renovation)"
	ReviewerHomeownerNewBuild   ReviewerType = "Homeowner (New Build)"
	ReviewerDesigner            ReviewerType = "Designer/Architect"
	ReviewerContractor          ReviewerType = "Contractor"

	ReviewerGeneralUser    ReviewerType = "General User"
	ReviewerDeveloper      ReviewerType = "Developer"
	ReviewerResearcher     ReviewerType = "Researcher"
	ReviewerContentCreator ReviewerType = "Content Creator"
	ReviewerStudent        ReviewerType = "Student"
)

type PriceSentiment string

const (
	PriceNegative       PriceSentiment = "Negative price sentiment"
	PricePositive       PriceSentiment = "Positive price sentiment"
	PriceLuxuryAccepted PriceSentiment = "Luxury positioning accepted"
	PriceNeutral        PriceSentiment = "Neutral price sentiment"
)

// SourceReddit is the only external source in scope.
const SourceReddit = "Reddit"

// PartialReview is the heuristic analysis of a single document.
// Ratings are nil when not detected; when set they lie in [1,5].
type PartialReview struct {
	Source           string
	ObservedAt       time.Time
	Author           string
	SourceURL        string
	SourceChannel    string
	EngagementScore  int
	ReviewerType     ReviewerType
	ContextSummary   string
	DomainInsights   string
	OverallRating    *float64
	SecondaryA       *float64 // design / features
	SecondaryB       *float64 // functionality / ease of use
	SecondaryC       *float64 // value
	PositiveSummary  *string
	NegativeSummary  *string
	TrendTags        []string
	CompetitorTags   []string
	PriceSentiment   PriceSentiment
	InstallationTags []string
	RawExcerpt       string
	Fragments        []Fragment
}

// JoinTags renders a tag set the way it is stored and displayed.
func JoinTags(tags []string, sentinel string) string {
	if len(tags) == 0 {
		return sentinel
	}
	return strings.Join(tags, "; ")
}

// ReviewDigest is the display form of a partial review kept in the aggregate's recent sample.
type ReviewDigest struct {
	Source          string         `json:"source"`
	ReviewDate      time.Time      `json:"review_date"`
	Author          string         `json:"author"`
	URL             string         `json:"url,omitempty"`
	ReviewerType    ReviewerType   `json:"reviewer_type"`
	Context         string         `json:"context"`
	Insights        string         `json:"insights"`
	OverallRating   *float64       `json:"overall_rating"`
	SecondaryA      *float64       `json:"secondary_rating_a"`
	SecondaryB      *float64       `json:"secondary_rating_b"`
	SecondaryC      *float64       `json:"secondary_rating_c"`
	PositiveSummary *string        `json:"positive_sentiment_summary"`
	NegativeSummary *string        `json:"negative_sentiment_summary"`
	Trends          string         `json:"trends"`
	Competitors     string         `json:"competitor_comparison"`
	PriceSentiment  PriceSentiment `json:"price_sentiment"`
	Installation    string         `json:"installation_insights"`
	Excerpt         string         `json:"raw_review_text"`
}

// ThemeTally counts tag occurrences across the partials of one aggregation pass.
type ThemeTally struct {
	Trends       map[string]int `json:"trends"`
	Competitors  map[string]int `json:"competitors"`
	Price        map[string]int `json:"price"`
	Installation map[string]int `json:"installation"`
}

// RatingAverages holds per-field means over present values only.
type RatingAverages struct {
	Overall    *float64 `json:"overall"`
	SecondaryA *float64 `json:"secondary_a"`
	SecondaryB *float64 `json:"secondary_b"`
	SecondaryC *float64 `json:"secondary_c"`
}

// AggregatedReview is the single persisted summary per product.
type AggregatedReview struct {
	ProductID                int64          `json:"product_id"`
	Profile                  string         `json:"profile"`
	OverallRating            *float64       `json:"overall_rating"`
	EaseOfUseScore           *float64       `json:"ease_of_use_score"`
	FeatureScore             *float64       `json:"feature_score"`
	ValueForMoneyScore       *float64       `json:"value_for_money_score"`
	PositiveSentimentSummary string         `json:"positive_sentiment_summary"`
	NegativeSentimentSummary string         `json:"negative_sentiment_summary"`
	TotalReviewsConsidered   int            `json:"total_reviews"`
	PositiveCount            int            `json:"positive_count"`
	NegativeCount            int            `json:"negative_count"`
	NeutralCount             int            `json:"neutral_count"`
	AvgPolarity              float64        `json:"avg_polarity"`
	AvgSubjectivity          float64        `json:"avg_subjectivity"`
	Ratings                  RatingAverages `json:"ratings"`
	RecentReviews            []ReviewDigest `json:"recent_reviews"`
	Themes                   ThemeTally     `json:"themes"`
	LastComputedAt           time.Time      `json:"last_computed_at"`
}
