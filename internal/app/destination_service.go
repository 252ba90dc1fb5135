package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelpack/internal/domain"
	"travelpack/internal/metrics"
)

// WeatherResolver produces weather for a location and never fails.
type WeatherResolver interface {
	Resolve(ctx context.Context, city, country string) domain.WeatherRecord
}

// DestinationInput is the user-editable part of a destination.
type DestinationInput struct {
	City              string
	Country           string
	StartDate         time.Time
	EndDate           time.Time
	WeatherPreference string
}

func (in DestinationInput) validate() error {
	if strings.TrimSpace(in.City) == "" || strings.TrimSpace(in.Country) == "" {
		return invalid("city and country are required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return invalid("startDate and endDate are required")
	}
	if in.StartDate.After(in.EndDate) {
		return invalid("startDate must not be after endDate")
	}
	return nil
}

// DestinationService encapsulates destination use cases.
type DestinationService struct {
	repo    domain.DestinationRepository
	weather WeatherResolver
	logger  *slog.Logger
	newID   func() string
	now     func() time.Time
}

// NewDestinationService creates a DestinationService.
func NewDestinationService(repo domain.DestinationRepository, weather WeatherResolver, logger *slog.Logger) *DestinationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DestinationService{
		repo:    repo,
		weather: weather,
		logger:  logger,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Create resolves weather for the new destination and seeds its checklist
// from the derived suggestions.
func (s *DestinationService) Create(ctx context.Context, userID int64, in DestinationInput) (*domain.Destination, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	w := s.weather.Resolve(ctx, in.City, in.Country)
	now := s.now().UTC()
	d := &domain.Destination{
		ID:                s.newID(),
		UserID:            userID,
		City:              in.City,
		Country:           in.Country,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
		WeatherPreference: in.WeatherPreference,
		WeatherData:       &w,
		PackingItems:      domain.ItemsFromSuggestions(domain.SuggestPackingItems(w), s.newID),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.CreateDestination(ctx, d); err != nil {
		return nil, err
	}
	metrics.DestinationsCreated.Inc()
	s.logger.Info("destination created", "id", d.ID, "user", userID, "city", d.City, "country", d.Country, "items", len(d.PackingItems))
	return d, nil
}

// List returns the user's destinations, newest first.
func (s *DestinationService) List(ctx context.Context, userID int64) ([]domain.Destination, error) {
	return s.repo.ListDestinations(ctx, userID)
}

// Get returns one of the user's destinations.
func (s *DestinationService) Get(ctx context.Context, userID int64, id string) (*domain.Destination, error) {
	return loadOwned(ctx, s.repo, userID, id)
}

// Update overwrites the editable fields. A location change re-resolves the
// weather and merges new suggestions into the checklist.
func (s *DestinationService) Update(ctx context.Context, userID int64, id string, in DestinationInput) (*domain.Destination, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	d, err := loadOwned(ctx, s.repo, userID, id)
	if err != nil {
		return nil, err
	}

	d.WeatherData, d.PackingItems = s.ApplyLocationEdit(ctx, *d, in.City, in.Country)
	d.City = in.City
	d.Country = in.Country
	d.StartDate = in.StartDate
	d.EndDate = in.EndDate
	d.WeatherPreference = in.WeatherPreference
	d.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateDestination(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ApplyLocationEdit returns the weather and items existing should carry
// after moving to newCity, newCountry. An unchanged location (exact,
// case-sensitive) returns the existing values as they are.
func (s *DestinationService) ApplyLocationEdit(ctx context.Context, existing domain.Destination, newCity, newCountry string) (*domain.WeatherRecord, []domain.PackingItem) {
	if newCity == existing.City && newCountry == existing.Country {
		return existing.WeatherData, existing.PackingItems
	}

	s.logger.Info("destination location changed", "id", existing.ID, "city", newCity, "country", newCountry)
	w := s.weather.Resolve(ctx, newCity, newCountry)
	items := domain.MergeSuggestions(existing.PackingItems, domain.SuggestPackingItems(w), s.newID)
	return &w, items
}

// Delete removes a destination along with its packing items.
func (s *DestinationService) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := loadOwned(ctx, s.repo, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteDestination(ctx, id)
}

func loadOwned(ctx context.Context, repo domain.DestinationRepository, userID int64, id string) (*domain.Destination, error) {
	d, err := repo.GetDestination(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDestinationNotFound
	}
	if d.UserID != userID {
		return nil, ErrForbidden
	}
	return d, nil
}
