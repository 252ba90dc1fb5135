package sqlite

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
		d                            domain.Destination
		start, end, created, updated string
		weatherJSON                  sql.NullString
		itemsJSON                    string
	)
	err := row.Scan(&d.ID, &d.UserID, &d.City, &d.Country, &start, &end,
		&d.WeatherPreference, &weatherJSON, &itemsJSON, &created, &updated)
	if err != nil {
		return nil, err
	}
	if d.StartDate, err = parseTime(start); err != nil {
		return nil, err
	}
	if d.EndDate, err = parseTime(end); err != nil {
		return nil, err
	}
	if d.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	if weatherJSON.Valid && weatherJSON.String != "" {
		d.WeatherData = &domain.WeatherRecord{}
		if err := json.Unmarshal([]byte(weatherJSON.String), d.WeatherData); err != nil {
			return nil, fmt.Errorf("decode weather_data for %s: %w", d.ID, err)
		}
	}
	d.PackingItems = []domain.PackingItem{}
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &d.PackingItems); err != nil {
			return nil, fmt.Errorf("decode packing_items for %s: %w", d.ID, err)
		}
	}
	return &d, nil
}

func encodeDocument(d *domain.Destination) (weatherJSON sql.NullString, itemsJSON string, err error) {
	if d.WeatherData != nil {
		b, err := json.Marshal(d.WeatherData)
		if err != nil {
			return weatherJSON, "", err
		}
		weatherJSON = sql.NullString{String: string(b), Valid: true}
	}
	items := d.PackingItems
	if items == nil {
		items = []domain.PackingItem{}
	}
	b, err := json.Marshal(items)
	return weatherJSON, string(b), err
}

// CreateDestination inserts a destination document.
func (d *DB) CreateDestination(ctx context.Context, dest *domain.Destination) error {
	weatherJSON, itemsJSON, err := encodeDocument(dest)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		"INSERT INTO destinations ("+destinationColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		dest.ID, dest.UserID, dest.City, dest.Country, formatTime(dest.StartDate), formatTime(dest.EndDate),
		dest.WeatherPreference, weatherJSON, itemsJSON, formatTime(dest.CreatedAt), formatTime(dest.UpdatedAt),
	)
	return err
}

// GetDestination retrieves a destination by ID.
func (d *DB) GetDestination(ctx context.Context, id string) (*domain.Destination, error) {
	dest, err := scanDestination(d.sql.QueryRowContext(ctx,
		"SELECT "+destinationColumns+" FROM destinations WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return dest, err
}

// ListDestinations lists the user's destinations, newest first.
func (d *DB) ListDestinations(ctx context.Context, userID int64) ([]domain.Destination, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+destinationColumns+" FROM destinations WHERE user_id = ? ORDER BY created_at DESC, id DESC",
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
		`UPDATE destinations SET city = ?, country = ?, start_date = ?, end_date = ?,
			weather_preference = ?, weather_data = ?, packing_items = ?, updated_at = ?
		WHERE id = ?`,
		dest.City, dest.Country, formatTime(dest.StartDate), formatTime(dest.EndDate),
		dest.WeatherPreference, weatherJSON, itemsJSON, formatTime(dest.UpdatedAt), dest.ID,
	)
	return err
}

// DeleteDestination removes a destination by ID.
func (d *DB) DeleteDestination(ctx context.Context, id string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM destinations WHERE id = ?", id)
	return err
}
