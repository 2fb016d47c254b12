package repository

import (
	"context"

	"github.com/user/cookie-table/internal/entity"
)

// CategoryRepository defines the interface for persisting cookie
// categories. Categories are seeded at install time and rarely change
// afterwards; no delete operation is exposed.
type CategoryRepository interface {
	// List returns all categories ordered by id. The slice is empty but
	// never nil when no rows exist.
	List(ctx context.Context) ([]entity.CookieCategory, error)
	// Upsert inserts a new category when its ID is zero and returns the
	// assigned id, or updates the row with that ID in place. An insert that
	// collides with an existing category name updates that row instead
	// (upsert-on-conflict semantics), which keeps seeding idempotent.
	Upsert(ctx context.Context, category *entity.CookieCategory) (int64, error)
}
