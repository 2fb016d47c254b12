package repository

import (
	"context"
	"errors"

	"github.com/user/cookie-table/internal/entity"
)

// ErrInvalidID is returned by Upsert when an ID is supplied but is not
// strictly positive. Nil is the only valid "create" sentinel; zero and
// negative IDs are rejected without writing anything.
var ErrInvalidID = errors.New("invalid cookie ID: must be nil or an integer greater than zero")

// CookieRepository defines the interface for persisting cookie catalog
// entries. All operations round-trip to storage; there is no caching layer.
type CookieRepository interface {
	// List returns all cookies joined with their category, ordered by
	// cookie name ascending. The slice is empty but never nil when no rows
	// exist.
	List(ctx context.Context) ([]entity.CookieListing, error)
	// GetByID retrieves a single cookie joined with its category. Returns
	// (nil, nil) when no row matches; absence is not an error.
	GetByID(ctx context.Context, id int64) (*entity.CookieListing, error)
	// Upsert inserts a new cookie when its ID is nil and returns the newly
	// assigned id, or updates the row with that ID in place and returns the
	// same id. A non-positive ID fails with ErrInvalidID.
	Upsert(ctx context.Context, cookie *entity.Cookie) (int64, error)
	// Delete removes at most one row by id, returning true if a row was
	// removed and false when no matching row existed.
	Delete(ctx context.Context, id int64) (bool, error)
}
