package domain

// SearchPlan describes how a corpus is gathered for one product domain.
type SearchPlan struct {
	Channels       []string
	QueryTemplates []string // {name} and {brand} are substituted
	PostsPerQuery  int
	RepliesPerPost int
	MinScore       int // posts and replies below this are discarded
	ResultCap      int // 0 means unbounded
	TimeWindow     string
	Sort           string
}

// TagRule matches when any of Any is present and all of All are present.
type TagRule struct {
	Tag string
	Any []string
	All []string
}

// TagGroup yields at most one tag when Exclusive (first matching rule wins),
// otherwise one tag per matching rule.
type TagGroup struct {
	Exclusive bool
	Rules     []TagRule
}

// ReviewerGroup maps identity terms to a reviewer type.
type ReviewerGroup struct {
	Type  ReviewerType
	Terms []string
}

// RatingVocabulary estimates a secondary rating from keyword hits.
type RatingVocabulary struct {
	Terms  []string
	Weight float64
}

type PriceRule struct {
	Sentiment PriceSentiment
	Terms     []string
}

// Profile parameterizes the pipeline for one product domain.
type Profile struct {
	Name   string
	Search SearchPlan

	ReviewerGroups  []ReviewerGroup
	DefaultReviewer ReviewerType

	ContextGroups   []TagGroup
	ContextSentinel string

	InsightGroups   []TagGroup
	InsightSentinel string

	Trends         TagGroup
	TrendsSentinel string

	Competitors        []string
	CompetitorSentinel string

	PriceRules []PriceRule

	Installation         TagGroup
	InstallationSentinel string

	SecondaryA RatingVocabulary
	SecondaryB RatingVocabulary
	SecondaryC RatingVocabulary

	PositiveKeywords []string
	NegativeKeywords []string

	// DemoCorpus is served instead of live results when no credentials are configured.
	DemoCorpus func(p Product) []RawDocument
}
