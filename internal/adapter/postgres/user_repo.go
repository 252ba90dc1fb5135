package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"travelpack/internal/domain"
)

const userColumns = "id, name, email, password_hash, created_at"

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1",
		email,
	))
}

// GetUserByID retrieves a user by ID.
func (d *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1",
		id,
	))
}

// CreateUser creates a new user.
func (d *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	u, err := scanUser(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password_hash, created_at) VALUES ($1, $2, $3, $4) RETURNING "+userColumns,
		name, email, passwordHash, time.Now().UTC(),
	))
	if isUniqueViolation(err) {
		return nil, domain.ErrEmailTaken
	}
	return u, err
}
