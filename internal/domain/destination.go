package domain

import (
	"context"
	"time"
)

// Category groups packing items on the checklist.
type Category string

const (
	CategoryDocuments   Category = "documents"
	CategoryClothing    Category = "clothing"
	CategoryFootwear    Category = "footwear"
	CategoryElectronics Category = "electronics"
	CategoryToiletries  Category = "toiletries"
	CategoryAccessories Category = "accessories"
	CategoryGeneral     Category = "general"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryDocuments, CategoryClothing, CategoryFootwear, CategoryElectronics,
		CategoryToiletries, CategoryAccessories, CategoryGeneral:
		return true
	}
	return false
}

// PackingItem is a single checklist entry owned by a Destination.
type PackingItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Packed    bool     `json:"packed"`
	Suggested bool     `json:"suggested"`
}

// Destination is a trip stop with its weather and packing checklist.
type Destination struct {
	ID                string         `json:"id"`
	UserID            int64          `json:"user"`
	City              string         `json:"city"`
	Country           string         `json:"country"`
	StartDate         time.Time      `json:"startDate"`
	EndDate           time.Time      `json:"endDate"`
	WeatherPreference string         `json:"weatherPreference"`
	WeatherData       *WeatherRecord `json:"weatherData"`
	PackingItems      []PackingItem  `json:"packingItems"`
	CreatedAt         time.Time      `json:"date"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// Clone returns a deep copy of d so callers can mutate it freely.
func (d *Destination) Clone() *Destination {
	if d == nil {
		return nil
	}
	c := *d
	c.WeatherData = d.WeatherData.Clone()
	c.PackingItems = append([]PackingItem{}, d.PackingItems...)
	return &c
}

// ItemIndex returns the index of the item with the given id, or -1.
func (d *Destination) ItemIndex(id string) int {
	for i := range d.PackingItems {
		if d.PackingItems[i].ID == id {
			return i
		}
	}
	return -1
}

// DestinationRepository is the port for destination documents. Each
// destination is stored and replaced as a whole, packing items included.
// GetDestination returns (nil, nil) when the id is unknown.
type DestinationRepository interface {
	CreateDestination(ctx context.Context, d *Destination) error
	GetDestination(ctx context.Context, id string) (*Destination, error)
	ListDestinations(ctx context.Context, userID int64) ([]Destination, error)
	UpdateDestination(ctx context.Context, d *Destination) error
	DeleteDestination(ctx context.Context, id string) error
}
