package response_models

// PackingResult maps category labels (Clothing, Toiletries, ...) to
// item lists, plus a short weather summary for the trip.
type PackingResult struct {
	PackingList    map[string][]string `json:"packing_list"`
	WeatherSummary string              `json:"weather_summary"`
}

// DefaultPackingResult is the degraded answer used when the model's
// packing output cannot be parsed. Packing lists are a secondary
// feature, so a generic list beats a visible failure.
func DefaultPackingResult() PackingResult {
	return PackingResult{
		PackingList: map[string][]string{
			"Clothing":      {"T-shirts", "Comfortable walking shoes", "Light jacket"},
			"Toiletries":    {"Toothbrush & toothpaste", "Sunscreen"},
			"Electronics":   {"Phone charger", "Power bank"},
			"Documents":     {"Passport", "Travel insurance details"},
			"Miscellaneous": {"Reusable water bottle"},
		},
		WeatherSummary: "Weather forecast unavailable. Pack for a range of conditions.",
	}
}
