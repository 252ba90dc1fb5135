// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"travelpack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu           sync.Mutex
	users        []*domain.User
	destinations map[string]*domain.Destination

	userIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		destinations: make(map[string]*domain.Destination),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.DestinationRepository = (*DB)(nil)

// --- UserRepository ---

// GetUserByEmail retrieves a user by email, ignoring case.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if strings.EqualFold(u.Email, email) {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

// GetUserByID retrieves a user by ID.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			ret := *u
			return &ret, nil
		}
	}
	return nil, nil
}

// CreateUser creates a new user.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if strings.EqualFold(u.Email, email) {
			return nil, domain.ErrEmailTaken
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	ret := *u
	return &ret, nil
}

// --- DestinationRepository ---

// CreateDestination stores a copy of d.
func (db *DB) CreateDestination(ctx context.Context, d *domain.Destination) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.destinations[d.ID] = d.Clone()
	return nil
}

// GetDestination returns a copy of the destination, or nil if unknown.
func (db *DB) GetDestination(ctx context.Context, id string) (*domain.Destination, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.destinations[id].Clone(), nil
}

// ListDestinations lists the user's destinations, newest first.
func (db *DB) ListDestinations(ctx context.Context, userID int64) ([]domain.Destination, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := []domain.Destination{}
	for _, d := range db.destinations {
		if d.UserID == userID {
			result = append(result, *d.Clone())
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// UpdateDestination replaces the stored document. Unknown ids are ignored.
func (db *DB) UpdateDestination(ctx context.Context, d *domain.Destination) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.destinations[d.ID]; ok {
		db.destinations[d.ID] = d.Clone()
	}
	return nil
}

// DeleteDestination removes a destination by ID.
func (db *DB) DeleteDestination(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.destinations, id)
	return nil
}
