package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelpack/internal/domain"
)

// PackingService encapsulates checklist use cases. Every operation rewrites
// the owning destination document and returns it.
type PackingService struct {
	repo  domain.DestinationRepository
	newID func() string
	now   func() time.Time
}

// NewPackingService creates a PackingService backed by the given repository.
func NewPackingService(repo domain.DestinationRepository) *PackingService {
	return &PackingService{repo: repo, newID: uuid.NewString, now: time.Now}
}

// AddItem appends a user-created item. Duplicate names are allowed.
func (s *PackingService) AddItem(ctx context.Context, userID int64, destID, name string, category domain.Category) (*domain.Destination, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("item name is required")
	}
	if category == "" {
		category = domain.CategoryGeneral
	}
	if !category.Valid() {
		return nil, invalid("unknown category %q", category)
	}

	d, err := loadOwned(ctx, s.repo, userID, destID)
	if err != nil {
		return nil, err
	}
	d.PackingItems = append(d.PackingItems, domain.PackingItem{
		ID:       s.newID(),
		Name:     name,
		Category: category,
	})
	return s.save(ctx, d)
}

// UpdateItem applies u to the item with the given id.
func (s *PackingService) UpdateItem(ctx context.Context, userID int64, destID, itemID string, u domain.ItemUpdate) (*domain.Destination, error) {
	if u.Name != nil {
		trimmed := strings.TrimSpace(*u.Name)
		if trimmed == "" {
			return nil, invalid("item name must not be empty")
		}
		u.Name = &trimmed
	}
	if u.Category != nil && !u.Category.Valid() {
		return nil, invalid("unknown category %q", *u.Category)
	}

	d, err := loadOwned(ctx, s.repo, userID, destID)
	if err != nil {
		return nil, err
	}
	i := d.ItemIndex(itemID)
	if i < 0 {
		return nil, ErrItemNotFound
	}
	d.PackingItems[i] = u.Apply(d.PackingItems[i])
	return s.save(ctx, d)
}

// DeleteItem removes an item. Removing an id that is already gone is not an
// error.
func (s *PackingService) DeleteItem(ctx context.Context, userID int64, destID, itemID string) (*domain.Destination, error) {
	d, err := loadOwned(ctx, s.repo, userID, destID)
	if err != nil {
		return nil, err
	}
	kept := make([]domain.PackingItem, 0, len(d.PackingItems))
	for _, it := range d.PackingItems {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	d.PackingItems = kept
	return s.save(ctx, d)
}

// ClearItems empties the checklist.
func (s *PackingService) ClearItems(ctx context.Context, userID int64, destID string) (*domain.Destination, error) {
	d, err := loadOwned(ctx, s.repo, userID, destID)
	if err != nil {
		return nil, err
	}
	d.PackingItems = []domain.PackingItem{}
	return s.save(ctx, d)
}

func (s *PackingService) save(ctx context.Context, d *domain.Destination) (*domain.Destination, error) {
	d.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateDestination(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
