package shared

import "insight_engine/internal/domain"

// Catalog is the seeded product set the ingestor refreshes.
var Catalog = []domain.Product{
	{ID: 1, Name: "Notion AI", Brand: "Notion Labs", Profile: "ai_tool"},
	{ID: 2, Name: "ChatGPT Plus", Brand: "OpenAI", Profile: "ai_tool"},
	{ID: 3, Name: "Claude Pro", Brand: "Anthropic", Profile: "ai_tool"},
	{ID: 4, Name: "Midjourney", Brand: "Midjourney Inc", Profile: "ai_tool"},

	{ID: 101, Name: `DRF487500AP 48" Built-In French Door Refrigerator`, Brand: "Dacor", Profile: "appliance"},
	{ID: 102, Name: `SO30CE/S/PH 30" E Series Contemporary Convection Steam Oven`, Brand: "Wolf", Profile: "appliance"},
	{ID: 103, Name: "G7366SCVi AutoDos Fully Integrated Dishwasher", Brand: "Miele", Profile: "appliance"},
	{ID: 104, Name: `PRD486WDG 48" Pro Grand Gas Range`, Brand: "Thermador", Profile: "appliance"},
}

// Products filters the catalog by profile; an empty profile selects everything.
func Products(profile string) []domain.Product {
	if profile == "" {
		return Catalog
	}
	var out []domain.Product
	for _, p := range Catalog {
		if p.Profile == profile {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the seeded product with the given id.
func Find(id int64) (domain.Product, bool) {
	for _, p := range Catalog {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
