package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/cookie-table/internal/entity"
	"github.com/user/cookie-table/internal/repository"
)

// CookieRepoImpl provides a concrete implementation for the CookieRepository interface using PostgreSQL.
type CookieRepoImpl struct {
	db *pgxpool.Pool
}

// NewCookieRepo creates a new instance of CookieRepoImpl.
func NewCookieRepo(db *pgxpool.Pool) *CookieRepoImpl {
	return &CookieRepoImpl{db: db}
}

const cookieColumns = `
	ct.id, ct.name, ct.provider, ct.duration, ct.category_id, ct.description, ct.metadata, ct.created, ct.updated,
	cc.name AS category_name, cc.label AS category_label`

// List returns every cookie joined with its category, ordered by cookie
// name ascending. Cookies without a resolvable category still appear, with
// nil category fields.
func (r *CookieRepoImpl) List(ctx context.Context) ([]entity.CookieListing, error) {
	query := `
		SELECT` + cookieColumns + `
		FROM cookie_table ct
		LEFT JOIN cookie_table_categories cc ON ct.category_id = cc.id
		ORDER BY ct.name ASC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cookies := make([]entity.CookieListing, 0)
	for rows.Next() {
		var c entity.CookieListing
		if err := scanCookie(rows, &c); err != nil {
			return nil, err
		}
		cookies = append(cookies, c)
	}
	return cookies, rows.Err()
}

// GetByID retrieves a single cookie joined with its category. Returns
// (nil, nil) when no row matches.
func (r *CookieRepoImpl) GetByID(ctx context.Context, id int64) (*entity.CookieListing, error) {
	query := `
		SELECT` + cookieColumns + `
		FROM cookie_table ct
		LEFT JOIN cookie_table_categories cc ON ct.category_id = cc.id
		WHERE ct.id = $1;
	`
	var c entity.CookieListing
	err := scanCookie(r.db.QueryRow(ctx, query, id), &c)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert inserts the cookie when its ID is nil, returning the newly
// assigned id, or writes the row with that ID in place. Supplying a zero or
// negative ID fails with repository.ErrInvalidID before touching storage.
func (r *CookieRepoImpl) Upsert(ctx context.Context, cookie *entity.Cookie) (int64, error) {
	if cookie.ID != nil && *cookie.ID <= 0 {
		return 0, repository.ErrInvalidID
	}

	var (
		id  int64
		err error
	)
	if cookie.ID == nil {
		query := `
			INSERT INTO cookie_table (name, provider, duration, category_id, description, metadata)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id;
		`
		err = r.db.QueryRow(ctx, query,
			cookie.Name,
			cookie.Provider,
			cookie.Duration,
			cookie.CategoryID,
			cookie.Description,
			cookie.Metadata,
		).Scan(&id)
	} else {
		query := `
			INSERT INTO cookie_table (id, name, provider, duration, category_id, description, metadata)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				provider = EXCLUDED.provider,
				duration = EXCLUDED.duration,
				category_id = EXCLUDED.category_id,
				description = EXCLUDED.description,
				metadata = EXCLUDED.metadata,
				updated = now()
			RETURNING id;
		`
		err = r.db.QueryRow(ctx, query,
			*cookie.ID,
			cookie.Name,
			cookie.Provider,
			cookie.Duration,
			cookie.CategoryID,
			cookie.Description,
			cookie.Metadata,
		).Scan(&id)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Delete removes at most one row by id, even if duplicate ids somehow
// exist. Returns true if a row was removed.
func (r *CookieRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	query := `
		DELETE FROM cookie_table
		WHERE ctid = (SELECT ctid FROM cookie_table WHERE id = $1 LIMIT 1);
	`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanCookie(row pgx.Row, c *entity.CookieListing) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Provider,
		&c.Duration,
		&c.CategoryID,
		&c.Description,
		&c.Metadata,
		&c.Created,
		&c.Updated,
		&c.CategoryName,
		&c.CategoryLabel,
	)
}
