package analysis

import (
	"strings"
	"time"

	"insight_engine/internal/domain"
)

const (
	ProfileAppliance = "appliance"
	ProfileAITool    = "ai_tool"
)

// LookupProfile resolves a built-in profile by name.
func LookupProfile(name string) (domain.Profile, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProfileAppliance, "luxury_appliance", "luxe":
		return ApplianceProfile(), true
	case ProfileAITool, "ai", "ai_tools":
		return AIToolProfile(), true
	}
	return domain.Profile{}, false
}

// ApplianceProfile covers luxury kitchen appliances discussed in renovation and design communities.
func ApplianceProfile() domain.Profile {
	return domain.Profile{
		Name: ProfileAppliance,
		Search: domain.SearchPlan{
			Channels: []string{
				"HomeImprovement", "InteriorDesign", "kitchenporn",
				"luxuryhomes", "architecture", "homeowners",
				"Appliances", "KitchenDesign", "Renovations",
			},
			QueryTemplates: []string{
				`"{brand}" "{name}"`,
				`"{brand}" review`,
				`"{name}" review`,
				`"{brand}" kitchen`,
				`"{brand}" appliance`,
			},
			PostsPerQuery:  8,
			RepliesPerPost: 5,
			MinScore:       3,
			ResultCap:      12,
			TimeWindow:     "year",
			Sort:           "relevance",
		},
		ReviewerGroups: []domain.ReviewerGroup{
			{Type: domain.ReviewerDesigner, Terms: []string{"architect", "designer", "interior designer"}},
			{Type: domain.ReviewerContractor, Terms: []string{"contractor", "builder", "construction"}},
			{Type: domain.ReviewerHomeownerRenovation, Terms: []string{"renovation", "remodel", "kitchen remodel"}},
			{Type: domain.ReviewerHomeownerNewBuild, Terms: []string{"new home", "new construction", "building"}},
		},
		DefaultReviewer: domain.ReviewerHomeowner,
		ContextGroups: []domain.TagGroup{
			{Exclusive: true, Rules: []domain.TagRule{
				{Tag: "Modern kitchen design", Any: []string{"modern"}},
				{Tag: "Traditional kitchen design", Any: []string{"traditional"}},
				{Tag: "Contemporary kitchen design", Any: []string{"contemporary"}},
				{Tag: "Farmhouse kitchen design", Any: []string{"farmhouse"}},
			}},
			{Exclusive: true, Rules: []domain.TagRule{
				{Tag: "Full kitchen renovation", Any: []string{"full kitchen", "complete renovation"}},
				{Tag: "Appliance upgrade only", Any: []string{"appliance upgrade", "replacing appliances"}},
			}},
			{Exclusive: true, Rules: []domain.TagRule{
				{Tag: "Luxury budget", Any: []string{"luxury", "high-end", "premium"}},
				{Tag: "Budget-conscious", Any: []string{"budget", "cost-effective", "affordable"}},
			}},
		},
		ContextSentinel: "Standard kitchen renovation",
		InsightGroups: []domain.TagGroup{
			{Exclusive: true, Rules: []domain.TagRule{
				{Tag: "Prefers stainless steel finish", Any: []string{"stainless steel"}},
				{Tag: "Interested in panel-ready/integrated design", Any: []string{"panel ready", "integrated"}},
				{Tag: "Interested in colored appliances", Any: []string{"color", "colored"}},
			}},
			{Rules: []domain.TagRule{
				{Tag: "Kitchen island configuration", Any: []string{"island"}},
				{Tag: "Open concept kitchen", Any: []string{"open concept"}},
			}},
			{Exclusive: true, Rules: []domain.TagRule{
				{Tag: "Minimalist design preference", Any: []string{"minimalist", "clean lines"}},
				{Tag: "Views appliance as statement piece", Any: []string{"statement piece", "showpiece"}},
			}},
		},
		InsightSentinel: "Standard design preferences",
		Trends: domain.TagGroup{Rules: []domain.TagRule{
			{Tag: "Matte black finish trend", Any: []string{"matte black"}},
			{Tag: "Panel-ready appliance trend", Any: []string{"panel ready"}},
			{Tag: "Smart appliance integration", Any: []string{"smart features", "wifi"}},
			{Tag: "Induction cooking trend", Any: []string{"induction"}},
			{Tag: "Steam cooking features", Any: []string{"steam"}},
		}},
		TrendsSentinel: "Standard design features",
		Competitors: []string{
			"Sub Zero", "Wolf", "Cove", "Thermador", "Viking", "Fisher and Paykel",
			"Monogram", "SKS", "JennAir", "Gaggenau", "Bosch", "Miele", "KitchenAid",
		},
		CompetitorSentinel: "No competitor mentions",
		PriceRules: []domain.PriceRule{
			{Sentiment: domain.PriceNegative, Terms: []string{"expensive", "overpriced", "too much"}},
			{Sentiment: domain.PricePositive, Terms: []string{"worth it", "good value", "reasonable"}},
			{Sentiment: domain.PriceLuxuryAccepted, Terms: []string{"luxury", "premium", "investment"}},
		},
		Installation: domain.TagGroup{Rules: []domain.TagRule{
			{Tag: "Installation process mentioned", Any: []string{"installation", "install"}},
			{Tag: "Professional installation required", All: []string{"professional", "install"}},
			{Tag: "DIY installation attempted", Any: []string{"diy", "do it yourself"}},
			{Tag: "Plumbing/electrical considerations", Any: []string{"plumbing", "electrical"}},
		}},
		InstallationSentinel: "Standard installation",
		SecondaryA: domain.RatingVocabulary{
			Terms:  []string{"beautiful", "stunning", "gorgeous", "elegant", "sleek", "modern", "design"},
			Weight: 0.5,
		},
		SecondaryB: domain.RatingVocabulary{
			Terms:  []string{"works great", "excellent performance", "reliable", "efficient", "powerful"},
			Weight: 0.5,
		},
		SecondaryC: domain.RatingVocabulary{
			Terms:  []string{"worth it", "good value", "expensive", "overpriced", "reasonable"},
			Weight: 0.3,
		},
		PositiveKeywords: []string{"love", "amazing", "excellent", "perfect", "beautiful", "stunning", "great", "fantastic"},
		NegativeKeywords: []string{"hate", "terrible", "awful", "disappointed", "problem", "issue", "broken", "expensive"},
		DemoCorpus:       applianceDemo,
	}
}

// AIToolProfile covers AI software discussed in technology communities.
func AIToolProfile() domain.Profile {
	return domain.Profile{
		Name: ProfileAITool,
		Search: domain.SearchPlan{
			Channels: []string{
				"artificial", "MachineLearning", "datascience",
				"programming", "technology", "startups",
				"ChatGPT", "OpenAI", "AI", "artificialintelligence",
			},
			QueryTemplates: []string{"{name}"},
			PostsPerQuery:  50,
			RepliesPerPost: 10,
			MinScore:       0,
			TimeWindow:     "year",
			Sort:           "relevance",
		},
		ReviewerGroups: []domain.ReviewerGroup{
			{Type: domain.ReviewerDeveloper, Terms: []string{"developer", "engineer", "programmer", "my code"}},
			{Type: domain.ReviewerResearcher, Terms: []string{"researcher", "phd", "data scientist", "academic"}},
			{Type: domain.ReviewerContentCreator, Terms: []string{"writer", "marketer", "content creator", "blogger", "copywriter"}},
			{Type: domain.ReviewerStudent, Terms: []string{"student", "homework", "university", "college"}},
		},
		DefaultReviewer: domain.ReviewerGeneralUser,
		ContextGroups: []domain.TagGroup{
			{Exclusive: true, Rules: []domain.TagRule{
				{Tag: "Coding assistance", Any: []string{"coding", "code", "programming"}},
				{Tag: "Writing and content", Any: []string{"writing", "essay", "blog post", "copy"}},
				{Tag: "Image generation", Any: []string{"image", "ai art", "artwork", "digital art", "illustration"}},
				{Tag: "Research and analysis", Any: []string{"research", "analysis", "summariz"}},
				{Tag: "Workflow automation", Any: []string{"automation", "automate", "workflow"}},
			}},
			{Exclusive: true, Rules: []domain.TagRule{
				{Tag: "Team/enterprise use", Any: []string{"enterprise", "team plan", "our company"}},
				{Tag: "Paid subscriber", Any: []string{"subscription", "paid plan", "subscribed"}},
				{Tag: "Free tier user", Any: []string{"free tier", "free plan", "free version"}},
			}},
		},
		ContextSentinel: "General use",
		InsightGroups: []domain.TagGroup{
			{Rules: []domain.TagRule{
				{Tag: "Comments on output accuracy", Any: []string{"accuracy", "accurate"}},
				{Tag: "Hallucination concerns", Any: []string{"hallucinat", "makes things up", "made up"}},
				{Tag: "Context length matters", Any: []string{"context window", "long context"}},
				{Tag: "Response speed noted", Any: []string{"speed", "fast", "slow", "latency"}},
			}},
		},
		InsightSentinel: "Standard usage insights",
		Trends: domain.TagGroup{Rules: []domain.TagRule{
			{Tag: "Agentic workflows", Any: []string{"agent"}},
			{Tag: "Multimodal input", Any: []string{"multimodal", "vision", "image input"}},
			{Tag: "Open source models", Any: []string{"open source", "open-source", "open weights"}},
			{Tag: "Local/self-hosted models", Any: []string{"local model", "run locally", "self-host"}},
			{Tag: "API-first usage", Any: []string{"api access", "the api", "via api", "api key"}},
		}},
		TrendsSentinel: "No notable trends",
		Competitors: []string{
			"ChatGPT", "Claude", "Gemini", "Copilot", "Midjourney", "Perplexity",
			"Notion AI", "Llama", "Mistral", "DALL-E", "Stable Diffusion", "Jasper",
		},
		CompetitorSentinel: "No competitor mentions",
		PriceRules: []domain.PriceRule{
			{Sentiment: domain.PriceNegative, Terms: []string{"expensive", "overpriced", "too much", "not worth"}},
			{Sentiment: domain.PricePositive, Terms: []string{"worth it", "good value", "reasonable", "free tier"}},
			{Sentiment: domain.PriceLuxuryAccepted, Terms: []string{"premium", "investment"}},
		},
		Installation: domain.TagGroup{Rules: []domain.TagRule{
			{Tag: "Integration mentioned", Any: []string{"integration", "integrate"}},
			{Tag: "Plugin/extension used", Any: []string{"plugin", "extension"}},
			{Tag: "IDE integration", Any: []string{"vs code", "vscode", "jetbrains"}},
			{Tag: "API integration", Any: []string{"api key", "the api", "via api"}},
		}},
		InstallationSentinel: "No integration notes",
		SecondaryA: domain.RatingVocabulary{
			Terms:  []string{"features", "capabilities", "powerful", "versatile", "accurate", "smart"},
			Weight: 0.5,
		},
		SecondaryB: domain.RatingVocabulary{
			Terms:  []string{"easy", "intuitive", "simple", "user-friendly", "straightforward"},
			Weight: 0.5,
		},
		SecondaryC: domain.RatingVocabulary{
			Terms:  []string{"worth it", "good value", "expensive", "overpriced", "reasonable", "free"},
			Weight: 0.3,
		},
		PositiveKeywords: []string{"love", "amazing", "excellent", "perfect", "great", "fantastic", "helpful", "useful"},
		NegativeKeywords: []string{"hate", "terrible", "awful", "disappointed", "problem", "issue", "buggy", "hallucinat"},
		DemoCorpus:       aiToolDemo,
	}
}

func productLabel(p domain.Product) string {
	return strings.TrimSpace(p.Brand + " " + p.Name)
}

func applianceDemo(p domain.Product) []domain.RawDocument {
	now := time.Now().UTC()
	label := productLabel(p)
	return []domain.RawDocument{
		{
			Title: "Finished our kitchen renovation",
			Text: "Just finished our kitchen renovation with " + label + ". The design is absolutely stunning " +
				"and it performs beautifully. Installation was smooth with our installer. Worth every penny for the luxury feel.",
			Author:          "reno_diaries",
			Timestamp:       now.Add(-4 * 24 * time.Hour),
			EngagementScore: 24,
			SourceURL:       "https://reddit.com/r/KitchenDesign/comments/demo1",
			SourceChannel:   "KitchenDesign",
		},
		{
			Text: "As a designer, I love the " + label + " for its clean lines and modern aesthetic. " +
				"Perfect for contemporary kitchens. The panel-ready option is excellent for seamless integration.",
			Author:          "studio_north",
			Timestamp:       now.Add(-11 * 24 * time.Hour),
			EngagementScore: 17,
			SourceURL:       "https://reddit.com/r/InteriorDesign/comments/demo2",
			SourceChannel:   "InteriorDesign",
		},
	}
}

func aiToolDemo(p domain.Product) []domain.RawDocument {
	now := time.Now().UTC()
	label := p.Name
	return []domain.RawDocument{
		{
			Title: "Three months with " + label,
			Text: "I've been using " + label + " daily for coding and writing. It's incredibly helpful, fast and the " +
				"features are powerful. Worth it for the subscription, 4/5.",
			Author:          "ml_tinkerer",
			Timestamp:       now.Add(-6 * 24 * time.Hour),
			EngagementScore: 31,
			SourceURL:       "https://reddit.com/r/artificial/comments/demo1",
			SourceChannel:   "artificial",
		},
		{
			Text: "As a developer I find " + label + " useful but it hallucinates sometimes and the pricing feels " +
				"expensive. Still a good tool overall.",
			Author:          "backend_dev",
			Timestamp:       now.Add(-13 * 24 * time.Hour),
			EngagementScore: 9,
			SourceURL:       "https://reddit.com/r/programming/comments/demo2",
			SourceChannel:   "programming",
		},
	}
}
