package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"travelpack/internal/domain"
)

const destinationColumns = "id, user_id, city, country, start_date, end_date, weather_preference, weather_data, packing_items, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(row rowScanner) (*domain.Destination, error) {
	var (
		d                      domain.Destination
		weatherJSON, itemsJSON []byte
	)
	err := row.Scan(&d.ID, &d.UserID, &d.City, &d.Country, &d.StartDate, &d.EndDate,
		&d.WeatherPreference, &weatherJSON, &itemsJSON, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(weatherJSON) > 0 && string(weatherJSON) != "null" {
		d.WeatherData = &domain.WeatherRecord{}
		if err := json.Unmarshal(weatherJSON, d.WeatherData); err != nil {
			return nil, fmt.Errorf("decode weather_data for %s: %w", d.ID, err)
		}
	}
	d.PackingItems = []domain.PackingItem{}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &d.PackingItems); err != nil {
			return nil, fmt.Errorf("decode packing_items for %s: %w", d.ID, err)
		}
	}
	return &d, nil
}

func encodeDocument(d *domain.Destination) (weatherJSON, itemsJSON []byte, err error) {
	if d.WeatherData != nil {
		if weatherJSON, err = json.Marshal(d.WeatherData); err != nil {
			return nil, nil, err
		}
	}
	items := d.PackingItems
	if items == nil {
		items = []domain.PackingItem{}
	}
	itemsJSON, err = json.Marshal(items)
	return weatherJSON, itemsJSON, err
}

// CreateDestination inserts a destination document.
func (d *DB) CreateDestination(ctx context.Context, dest *domain.Destination) error {
	weatherJSON, itemsJSON, err := encodeDocument(dest)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		"INSERT INTO destinations ("+destinationColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		dest.ID, dest.UserID, dest.City, dest.Country, dest.StartDate.UTC(), dest.EndDate.UTC(),
		dest.WeatherPreference, nullableJSON(weatherJSON), string(itemsJSON), dest.CreatedAt.UTC(), dest.UpdatedAt.UTC(),
	)
	return err
}

// GetDestination retrieves a destination by ID.
func (d *DB) GetDestination(ctx context.Context, id string) (*domain.Destination, error) {
	dest, err := scanDestination(d.sql.QueryRowContext(ctx,
		"SELECT "+destinationColumns+" FROM destinations WHERE id = $1",
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return dest, err
}

// ListDestinations lists the user's destinations, newest first.
func (d *DB) ListDestinations(ctx context.Context, userID int64) ([]domain.Destination, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+destinationColumns+" FROM destinations WHERE user_id = $1 ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Destination{}
	for rows.Next() {
		dest, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *dest)
	}
	return out, rows.Err()
}

// UpdateDestination overwrites the stored document.
func (d *DB) UpdateDestination(ctx context.Context, dest *domain.Destination) error {
	weatherJSON, itemsJSON, err := encodeDocument(dest)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`UPDATE destinations SET city = $2, country = $3, start_date = $4, end_date = $5,
			weather_preference = $6, weather_data = $7, packing_items = $8, updated_at = $9
		WHERE id = $1`,
		dest.ID, dest.City, dest.Country, dest.StartDate.UTC(), dest.EndDate.UTC(),
		dest.WeatherPreference, nullableJSON(weatherJSON), string(itemsJSON), dest.UpdatedAt.UTC(),
	)
	return err
}

// DeleteDestination removes a destination by ID.
func (d *DB) DeleteDestination(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM destinations WHERE id = $1", id)
	return err
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
