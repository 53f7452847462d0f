package analysis_test

import (
	"strings"
	"testing"
	"time"

	"insight_engine/internal/analysis"
	"insight_engine/internal/domain"
)

var rangeProduct = domain.Product{ID: 7, Name: "PRD486WDG 48\" Pro Grand Gas Range", Brand: "Thermador", Profile: analysis.ProfileAppliance}

func analyze(t *testing.T, text string) domain.PartialReview {
	t.Helper()
	a := analysis.NewAnalyzer(analysis.ApplianceProfile())
	pr, ok := a.Analyze(domain.RawDocument{
		Text:            text,
		Author:          "kitchen_fan",
		Timestamp:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		EngagementScore: 10,
		SourceURL:       "https://reddit.com/r/KitchenDesign/comments/abc",
		SourceChannel:   "KitchenDesign",
	}, rangeProduct)
	if !ok {
		t.Fatalf("document unexpectedly rejected: %q", text)
	}
	return pr
}

func TestAnalyze_LovedRangeScenario(t *testing.T) {
	pr := analyze(t, "Absolutely love this range, beautiful design and reliable performance, 5 stars!")

	if pr.OverallRating == nil || *pr.OverallRating != 5.0 {
		t.Fatalf("overall = %v, want 5.0", pr.OverallRating)
	}
	if pr.ReviewerType != domain.ReviewerHomeowner {
		t.Fatalf("reviewer = %s, want Homeowner", pr.ReviewerType)
	}
	if pr.PositiveSummary == nil {
		t.Fatalf("expected a positive summary")
	}
	if !strings.Contains(*pr.PositiveSummary, "love") || !strings.Contains(*pr.PositiveSummary, "beautiful") {
		t.Fatalf("positive summary %q should mention love and beautiful", *pr.PositiveSummary)
	}
	if pr.NegativeSummary != nil {
		t.Fatalf("unexpected negative summary %q", *pr.NegativeSummary)
	}
	if pr.SecondaryA == nil || *pr.SecondaryA != 4.0 {
		t.Fatalf("design rating = %v, want 4.0", pr.SecondaryA)
	}
	if pr.SecondaryB == nil || *pr.SecondaryB != 3.5 {
		t.Fatalf("functionality rating = %v, want 3.5", pr.SecondaryB)
	}
	if pr.SecondaryC != nil {
		t.Fatalf("value rating should be absent, got %v", *pr.SecondaryC)
	}
	if pr.ContextSummary != "Standard kitchen renovation" {
		t.Fatalf("context = %q", pr.ContextSummary)
	}
	if pr.Source != domain.SourceReddit || pr.EngagementScore != 10 {
		t.Fatalf("metadata not carried: %+v", pr)
	}
}

func TestAnalyze_RejectsShortText(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.ApplianceProfile())
	if _, ok := a.Analyze(domain.RawDocument{Text: "   nice oven!      "}, rangeProduct); ok {
		t.Fatalf("short text should be rejected")
	}
}

func TestAnalyze_AnonymousAuthor(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.ApplianceProfile())
	for _, author := range []string{"", "[deleted]"} {
		pr, ok := a.Analyze(domain.RawDocument{Text: "The oven heats evenly and cleans up without fuss.", Author: author}, rangeProduct)
		if !ok {
			t.Fatalf("rejected")
		}
		if pr.Author != domain.AnonymousAuthor {
			t.Fatalf("author = %q, want %q", pr.Author, domain.AnonymousAuthor)
		}
	}
}

func TestAnalyze_ReviewerPrecedence(t *testing.T) {
	cases := []struct {
		text string
		want domain.ReviewerType
	}{
		{"Our architect pushed for this range during the kitchen remodel.", domain.ReviewerDesigner},
		{"As a builder I install these weekly during every remodel.", domain.ReviewerContractor},
		{"We picked it for our kitchen remodel last spring.", domain.ReviewerHomeownerRenovation},
		{"Going into our new home next month, fingers crossed.", domain.ReviewerHomeownerNewBuild},
		{"It heats evenly and the knobs feel solid to me.", domain.ReviewerHomeowner},
	}
	for _, c := range cases {
		if got := analyze(t, c.text).ReviewerType; got != c.want {
			t.Fatalf("%q: reviewer = %s, want %s", c.text, got, c.want)
		}
	}
}

func TestAnalyze_ContextTags(t *testing.T) {
	pr := analyze(t, "Modern farmhouse look for our complete renovation, a premium build all round.")
	want := "Modern kitchen design; Full kitchen renovation; Luxury budget"
	if pr.ContextSummary != want {
		t.Fatalf("context = %q, want %q", pr.ContextSummary, want)
	}
}

func TestAnalyze_ExplicitRatingPatternOrder(t *testing.T) {
	cases := []struct {
		text string
		want *float64
	}{
		{"I'd say 7/5 as a joke but honestly 4 out of 5 overall.", ptr(4.0)},
		{"Rating: 3 after a year of daily cooking on it.", ptr(3.0)},
		{"Gave it 2 stars, then bumped it to 3/5 after service.", ptr(3.0)},
		{"Scored 9 on my personal list, no regrets here.", nil},
		{"Honestly 10/5 at first, then 4/5 once the novelty wore off.", nil},
		{"Started at 9/5, now 3/5, call it 4 stars overall.", ptr(4.0)},
	}
	for _, c := range cases {
		got := analyze(t, c.text).OverallRating
		switch {
		case c.want == nil && got != nil:
			t.Fatalf("%q: overall = %v, want absent", c.text, *got)
		case c.want != nil && (got == nil || *got != *c.want):
			t.Fatalf("%q: overall = %v, want %v", c.text, got, *c.want)
		}
	}
}

func TestAnalyze_RatingsWithinBounds(t *testing.T) {
	texts := []string{
		"Beautiful, stunning, gorgeous, elegant, sleek, modern design. Works great, excellent performance, reliable, efficient, powerful.",
		"Worth it, good value, expensive, overpriced but reasonable. 5/5",
		"Rating: 0 and score: 12 but really it is 1 star territory.",
		"Nothing of note to say about this oven today, truly.",
	}
	for _, text := range texts {
		pr := analyze(t, text)
		for _, r := range []*float64{pr.OverallRating, pr.SecondaryA, pr.SecondaryB, pr.SecondaryC} {
			if r != nil && (*r < 1 || *r > 5) {
				t.Fatalf("%q: rating %v out of [1,5]", text, *r)
			}
		}
	}
}

func TestAnalyze_ThemeExtraction(t *testing.T) {
	pr := analyze(t, "Compared it to Sub Zero and Thermador. Matte black with induction and wifi. "+
		"We had a professional install it because of the electrical work. Too expensive though.")

	if got := strings.Join(pr.CompetitorTags, "; "); got != "Sub Zero" {
		t.Fatalf("competitors = %q, want only Sub Zero (own brand excluded)", got)
	}
	wantTrends := []string{"Matte black finish trend", "Smart appliance integration", "Induction cooking trend"}
	if strings.Join(pr.TrendTags, "|") != strings.Join(wantTrends, "|") {
		t.Fatalf("trends = %v, want %v", pr.TrendTags, wantTrends)
	}
	wantInstall := []string{"Installation process mentioned", "Professional installation required", "Plumbing/electrical considerations"}
	if strings.Join(pr.InstallationTags, "|") != strings.Join(wantInstall, "|") {
		t.Fatalf("installation = %v, want %v", pr.InstallationTags, wantInstall)
	}
	if pr.PriceSentiment != domain.PriceNegative {
		t.Fatalf("price = %s", pr.PriceSentiment)
	}
}

func TestAnalyze_NegativeSummary(t *testing.T) {
	pr := analyze(t, "Terrible purchase. The door broke twice and support was awful, overpriced junk.")
	if pr.NegativeSummary == nil || *pr.NegativeSummary != "Concerns include: terrible, awful" {
		t.Fatalf("negative summary = %v", pr.NegativeSummary)
	}
	if pr.PositiveSummary != nil {
		t.Fatalf("unexpected positive summary")
	}
}

func TestAnalyze_FragmentsFromTitleAndBody(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.ApplianceProfile())
	body := strings.Repeat("The steam oven is great. ", 20)
	pr, ok := a.Analyze(domain.RawDocument{Title: "Love my new steam oven", Text: body}, rangeProduct)
	if !ok {
		t.Fatalf("rejected")
	}
	if len(pr.Fragments) != 2 {
		t.Fatalf("fragments = %d, want 2", len(pr.Fragments))
	}
	if pr.Fragments[0].Kind != "title" || pr.Fragments[0].Excerpt != "Love my new steam oven" {
		t.Fatalf("title fragment = %+v", pr.Fragments[0])
	}
	if n := len([]rune(pr.Fragments[1].Excerpt)); n != 203 {
		t.Fatalf("content excerpt length = %d, want 200 + ellipsis", n)
	}
}

func TestAnalyzeAll_DropsFiltered(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.ApplianceProfile())
	docs := []domain.RawDocument{
		{Text: "short"},
		{Text: "This dishwasher is quiet and cleans everything well."},
	}
	if got := a.AnalyzeAll(docs, rangeProduct); len(got) != 1 {
		t.Fatalf("partials = %d, want 1", len(got))
	}
}

func ptr(f float64) *float64 { return &f }

func TestAnalyze_ImageGenerationNeedsArtTerms(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.AIToolProfile())
	product := domain.Product{ID: 9, Name: "Claude Pro", Brand: "Anthropic", Profile: analysis.ProfileAITool}
	doc := func(text string) domain.RawDocument {
		return domain.RawDocument{Text: text, Author: "someone", Timestamp: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	}

	pr, ok := a.Analyze(doc("A smart start for my part of the article pipeline, pretty happy so far."), product)
	if !ok {
		t.Fatalf("document rejected")
	}
	if strings.Contains(pr.ContextSummary, "Image generation") {
		t.Fatalf("context = %q, words merely containing art must not tag image generation", pr.ContextSummary)
	}

	pr, ok = a.Analyze(doc("Mostly use it for ai art and concept artwork these days."), product)
	if !ok {
		t.Fatalf("document rejected")
	}
	if !strings.Contains(pr.ContextSummary, "Image generation") {
		t.Fatalf("context = %q, want Image generation", pr.ContextSummary)
	}
}
