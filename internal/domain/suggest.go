package domain

import "strings"

// PackingSuggestion is an item proposed by SuggestPackingItems.
type PackingSuggestion struct {
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Suggested bool     `json:"suggested"`
}

const (
	hotAbove  = 25
	coldBelow = 10
)

var (
	baselineItems = []PackingSuggestion{
		{Name: "Passport/ID", Category: CategoryDocuments},
		{Name: "Wallet & Money", Category: CategoryDocuments},
		{Name: "Phone & Charger", Category: CategoryElectronics},
	}
	hotItems = []PackingSuggestion{
		{Name: "Light clothing", Category: CategoryClothing},
		{Name: "Shorts", Category: CategoryClothing},
		{Name: "T-shirts", Category: CategoryClothing},
		{Name: "Sandals", Category: CategoryFootwear},
		{Name: "Sunscreen", Category: CategoryToiletries},
		{Name: "Hat", Category: CategoryAccessories},
	}
	coldItems = []PackingSuggestion{
		{Name: "Warm jacket", Category: CategoryClothing},
		{Name: "Sweaters", Category: CategoryClothing},
		{Name: "Long pants", Category: CategoryClothing},
		{Name: "Boots", Category: CategoryFootwear},
		{Name: "Gloves", Category: CategoryAccessories},
		{Name: "Scarf", Category: CategoryAccessories},
	}
	mildItems = []PackingSuggestion{
		{Name: "Light jacket", Category: CategoryClothing},
		{Name: "Long pants", Category: CategoryClothing},
		{Name: "Comfortable shoes", Category: CategoryFootwear},
	}
	rainItems = []PackingSuggestion{
		{Name: "Umbrella", Category: CategoryAccessories},
		{Name: "Rain jacket", Category: CategoryClothing},
	}
)

// SuggestPackingItems derives packing suggestions from w: the baseline
// essentials, then exactly one temperature band, then rain gear when the
// condition mentions rain.
func SuggestPackingItems(w WeatherRecord) []PackingSuggestion {
	out := make([]PackingSuggestion, 0, len(baselineItems)+len(hotItems)+len(rainItems))
	out = appendSuggested(out, baselineItems)

	switch {
	case w.Temperature > hotAbove:
		out = appendSuggested(out, hotItems)
	case w.Temperature < coldBelow:
		out = appendSuggested(out, coldItems)
	default:
		out = appendSuggested(out, mildItems)
	}

	if strings.Contains(strings.ToLower(w.Condition), "rain") {
		out = appendSuggested(out, rainItems)
	}
	return out
}

func appendSuggested(dst, items []PackingSuggestion) []PackingSuggestion {
	for _, it := range items {
		it.Suggested = true
		dst = append(dst, it)
	}
	return dst
}
