package domain

import "strings"

// ItemsFromSuggestions turns a suggestion batch into fresh, unpacked items.
func ItemsFromSuggestions(suggestions []PackingSuggestion, newID func() string) []PackingItem {
	items := make([]PackingItem, 0, len(suggestions))
	for _, s := range suggestions {
		items = append(items, itemFromSuggestion(s, newID()))
	}
	return items
}

// MergeSuggestions appends every suggestion whose name does not match an
// existing item case-insensitively. Existing items keep their order and
// state, and the existing slice is not modified.
func MergeSuggestions(existing []PackingItem, suggestions []PackingSuggestion, newID func() string) []PackingItem {
	seen := make(map[string]struct{}, len(existing))
	for _, it := range existing {
		seen[strings.ToLower(it.Name)] = struct{}{}
	}

	out := make([]PackingItem, len(existing), len(existing)+len(suggestions))
	copy(out, existing)
	for _, s := range suggestions {
		if _, ok := seen[strings.ToLower(s.Name)]; ok {
			continue
		}
		out = append(out, itemFromSuggestion(s, newID()))
	}
	return out
}

func itemFromSuggestion(s PackingSuggestion, id string) PackingItem {
	return PackingItem{
		ID:        id,
		Name:      s.Name,
		Category:  s.Category,
		Suggested: s.Suggested,
	}
}
