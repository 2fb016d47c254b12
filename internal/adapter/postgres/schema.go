package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/cookie-table/internal/entity"
)

// Schema provisions the two catalog tables and their default rows. Creation
// runs once at install time and is safe to repeat; removal runs once at
// uninstall time.
type Schema struct {
	db *pgxpool.Pool
}

// NewSchema creates a new Schema bound to the given pool.
func NewSchema(db *pgxpool.Pool) *Schema {
	return &Schema{db: db}
}

// defaultCategories are seeded at install time. Order matters: the first
// entry is the default selection for new cookies.
var defaultCategories = []entity.CookieCategory{
	{Name: "necessary", Label: ptr("Necessary")},
	{Name: "functional", Label: ptr("Functional")},
	{Name: "preferences", Label: ptr("Preferences")},
	{Name: "statistics", Label: ptr("Statistics")},
	{Name: "marketing", Label: ptr("Marketing")},
}

// Install creates both tables if they do not exist, seeds the five default
// categories (idempotent thanks to the unique name key) and, on a fresh
// install only, the two first-party session cookies.
func (s *Schema) Install(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS cookie_table_categories (
			id serial PRIMARY KEY,
			name varchar(128) NOT NULL UNIQUE,
			label varchar(128),
			description text,
			created timestamptz NOT NULL DEFAULT now(),
			updated timestamptz NOT NULL DEFAULT now()
		);`,
		`CREATE TABLE IF NOT EXISTS cookie_table (
			id serial PRIMARY KEY,
			name text NOT NULL,
			provider varchar(256),
			duration varchar(256),
			category_id integer,
			description text,
			metadata text,
			created timestamptz NOT NULL DEFAULT now(),
			updated timestamptz NOT NULL DEFAULT now()
		);`,
	}
	for _, stmt := range ddl {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	categoryRepo := NewCategoryRepo(s.db)
	var necessaryID int64
	for i, category := range defaultCategories {
		id, err := categoryRepo.Upsert(ctx, &category)
		if err != nil {
			return fmt.Errorf("seed category %q: %w", category.Name, err)
		}
		if i == 0 {
			necessaryID = id
		}
	}
	slog.Info("Seeded cookie categories", "count", len(defaultCategories))

	var cookieCount int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM cookie_table;`).Scan(&cookieCount); err != nil {
		return fmt.Errorf("count cookies: %w", err)
	}
	if cookieCount > 0 {
		return nil
	}

	cookieRepo := NewCookieRepo(s.db)
	seedCookies := []entity.Cookie{
		{
			Name:        "wires",
			Duration:    ptr("First-party session cookie, expires when the browser is closed."),
			CategoryID:  &necessaryID,
			Description: ptr("Session identifier."),
		},
		{
			Name:        "wires_challenge",
			Duration:    ptr("First-party persistent cookie, expires after 30 days."),
			CategoryID:  &necessaryID,
			Description: ptr("Session cookie used to verify the validity of a session."),
		},
	}
	for _, cookie := range seedCookies {
		if _, err := cookieRepo.Upsert(ctx, &cookie); err != nil {
			return fmt.Errorf("seed cookie %q: %w", cookie.Name, err)
		}
	}
	slog.Info("Seeded default cookies", "count", len(seedCookies))

	return nil
}

// Uninstall drops both tables.
func (s *Schema) Uninstall(ctx context.Context) error {
	stmts := []string{
		`DROP TABLE IF EXISTS cookie_table;`,
		`DROP TABLE IF EXISTS cookie_table_categories;`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
