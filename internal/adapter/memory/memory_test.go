package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"travelpack/internal/domain"
)

func TestUserRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "Ada", "ada@example.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := db.GetUserByEmail(ctx, "ADA@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Fatalf("expected user %d, got %+v", u.ID, got)
	}

	got, _ = db.GetUserByID(ctx, u.ID)
	if got == nil || got.Name != "Ada" {
		t.Fatalf("GetUserByID: unexpected %+v", got)
	}

	if _, err := db.CreateUser(ctx, "Other", "Ada@Example.com", "x"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	missing, err := db.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", missing, err)
	}
	missing, err = db.GetUserByID(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", missing, err)
	}
}

func newDestination(id string, userID int64, createdAt time.Time) *domain.Destination {
	return &domain.Destination{
		ID:           id,
		UserID:       userID,
		City:         "Lisbon",
		Country:      "PT",
		WeatherData:  &domain.WeatherRecord{Temperature: 14, Condition: "Clouds"},
		PackingItems: []domain.PackingItem{{ID: id + "-1", Name: "Hat", Category: domain.CategoryAccessories}},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestDestinationRepository(t *testing.T) {
	db := New()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := db.CreateDestination(ctx, newDestination(id, 1, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("CreateDestination: %v", err)
		}
	}
	if err := db.CreateDestination(ctx, newDestination("x", 2, base)); err != nil {
		t.Fatalf("CreateDestination: %v", err)
	}

	list, err := db.ListDestinations(ctx, 1)
	if err != nil {
		t.Fatalf("ListDestinations: %v", err)
	}
	if len(list) != 3 || list[0].ID != "c" || list[2].ID != "a" {
		t.Fatalf("expected newest first, got %+v", list)
	}

	// Other user sees nothing of user 1
	other, _ := db.ListDestinations(ctx, 2)
	if len(other) != 1 || other[0].ID != "x" {
		t.Errorf("expected only x for user 2, got %+v", other)
	}
	none, _ := db.ListDestinations(ctx, 3)
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", none)
	}

	d, _ := db.GetDestination(ctx, "b")
	d.PackingItems[0].Packed = true
	d.WeatherData.Temperature = 99
	if err := db.UpdateDestination(ctx, d); err != nil {
		t.Fatalf("UpdateDestination: %v", err)
	}
	d.PackingItems[0].Name = "mutated after save"

	stored, _ := db.GetDestination(ctx, "b")
	if !stored.PackingItems[0].Packed || stored.WeatherData.Temperature != 99 {
		t.Errorf("update not stored: %+v", stored)
	}
	if stored.PackingItems[0].Name != "Hat" {
		t.Error("stored document must not alias caller memory")
	}

	if err := db.DeleteDestination(ctx, "b"); err != nil {
		t.Fatalf("DeleteDestination: %v", err)
	}
	gone, err := db.GetDestination(ctx, "b")
	if err != nil || gone != nil {
		t.Errorf("expected (nil, nil) after delete, got (%v, %v)", gone, err)
	}
}

func TestConcurrentItemUpdates(t *testing.T) {
	db := New()
	ctx := context.Background()
	_ = db.CreateDestination(ctx, newDestination("d", 1, time.Now()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := db.GetDestination(ctx, "d")
			if err != nil || d == nil {
				t.Errorf("GetDestination: %v", err)
				return
			}
			d.PackingItems[0].Packed = !d.PackingItems[0].Packed
			_ = db.UpdateDestination(ctx, d)
		}()
	}
	wg.Wait()

	d, _ := db.GetDestination(ctx, "d")
	if len(d.PackingItems) != 1 {
		t.Fatalf("document corrupted: %+v", d.PackingItems)
	}
}
