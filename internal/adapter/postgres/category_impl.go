package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/cookie-table/internal/entity"
)

// CategoryRepoImpl provides a concrete implementation for the CategoryRepository interface using PostgreSQL.
type CategoryRepoImpl struct {
	db *pgxpool.Pool
}

// NewCategoryRepo creates a new instance of CategoryRepoImpl.
func NewCategoryRepo(db *pgxpool.Pool) *CategoryRepoImpl {
	return &CategoryRepoImpl{db: db}
}

// List returns all cookie categories ordered by id, so the first seeded
// category is a stable default for the add form.
func (r *CategoryRepoImpl) List(ctx context.Context) ([]entity.CookieCategory, error) {
	query := `
		SELECT id, name, label, description, created, updated
		FROM cookie_table_categories
		ORDER BY id ASC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]entity.CookieCategory, 0)
	for rows.Next() {
		var c entity.CookieCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Label, &c.Description, &c.Created, &c.Updated); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Upsert inserts the category when its ID is zero, or writes the row with
// that ID in place. An insert whose name collides with an existing
// category's unique name updates that row instead, which is what makes
// repeated seeding idempotent.
func (r *CategoryRepoImpl) Upsert(ctx context.Context, category *entity.CookieCategory) (int64, error) {
	var (
		id  int64
		err error
	)
	if category.ID == 0 {
		query := `
			INSERT INTO cookie_table_categories (name, label, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO UPDATE SET
				label = EXCLUDED.label,
				description = EXCLUDED.description,
				updated = now()
			RETURNING id;
		`
		err = r.db.QueryRow(ctx, query, category.Name, category.Label, category.Description).Scan(&id)
	} else {
		query := `
			INSERT INTO cookie_table_categories (id, name, label, description)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				label = EXCLUDED.label,
				description = EXCLUDED.description,
				updated = now()
			RETURNING id;
		`
		err = r.db.QueryRow(ctx, query, category.ID, category.Name, category.Label, category.Description).Scan(&id)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
