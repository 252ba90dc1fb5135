package domain_test

import (
	"fmt"
	"testing"

	"travelpack/internal/domain"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func TestItemsFromSuggestions(t *testing.T) {
	s := domain.SuggestPackingItems(domain.WeatherRecord{Temperature: 30, Condition: "Clear"})
	items := domain.ItemsFromSuggestions(s, sequentialIDs())
	if len(items) != len(s) {
		t.Fatalf("expected %d items, got %d", len(s), len(items))
	}
	for i, it := range items {
		if it.ID != fmt.Sprintf("new-%d", i+1) {
			t.Errorf("item %d: id %q", i, it.ID)
		}
		if it.Packed || !it.Suggested {
			t.Errorf("item %d: packed=%v suggested=%v", i, it.Packed, it.Suggested)
		}
		if it.Name != s[i].Name || it.Category != s[i].Category {
			t.Errorf("item %d: %+v does not match %+v", i, it, s[i])
		}
	}
}

func TestMergeSuggestions(t *testing.T) {
	existing := []domain.PackingItem{
		{ID: "a", Name: "passport/id", Category: domain.CategoryDocuments, Packed: true, Suggested: true},
		{ID: "b", Name: "My camera", Category: domain.CategoryElectronics},
		{ID: "c", Name: "SHORTS", Category: domain.CategoryGeneral, Packed: true},
	}
	before := append([]domain.PackingItem(nil), existing...)

	suggestions := domain.SuggestPackingItems(domain.WeatherRecord{Temperature: 30, Condition: "Rain"})
	got := domain.MergeSuggestions(existing, suggestions, sequentialIDs())

	for i, it := range before {
		if got[i] != it {
			t.Fatalf("existing item %d changed: %+v -> %+v", i, it, got[i])
		}
		if existing[i] != it {
			t.Fatalf("input slice mutated at %d", i)
		}
	}

	added := got[len(before):]
	want := []string{"Wallet & Money", "Phone & Charger", "Light clothing", "T-shirts", "Sandals", "Sunscreen", "Hat", "Umbrella", "Rain jacket"}
	if len(added) != len(want) {
		t.Fatalf("expected %d added items, got %d: %+v", len(want), len(added), added)
	}
	for i, it := range added {
		if it.Name != want[i] {
			t.Errorf("added[%d] = %q; want %q", i, it.Name, want[i])
		}
		if !it.Suggested || it.Packed {
			t.Errorf("added[%d]: suggested=%v packed=%v", i, it.Suggested, it.Packed)
		}
	}
}

func TestMergeSuggestions_AllPresent(t *testing.T) {
	suggestions := domain.SuggestPackingItems(domain.WeatherRecord{Temperature: 18})
	existing := domain.ItemsFromSuggestions(suggestions, sequentialIDs())
	got := domain.MergeSuggestions(existing, suggestions, func() string {
		t.Fatal("no ids should be generated")
		return ""
	})
	if len(got) != len(existing) {
		t.Fatalf("expected %d items, got %d", len(existing), len(got))
	}
}

func TestMergeSuggestions_Empty(t *testing.T) {
	got := domain.MergeSuggestions(nil, domain.SuggestPackingItems(domain.WeatherRecord{Temperature: 5}), sequentialIDs())
	if len(got) != 9 {
		t.Fatalf("expected 9 items, got %d", len(got))
	}
}
