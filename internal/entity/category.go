package entity

import "time"

// CookieCategory mirrors the `cookie_table_categories` PostgreSQL table
// schema. Name is a machine-readable slug and is unique across all
// categories; Label is the optional human-readable display name.
type CookieCategory struct {
	// ID is zero for categories that have not been persisted yet.
	ID          int64
	Name        string
	Label       *string
	Description *string
	Created     time.Time
	Updated     time.Time
}

// DisplayLabel returns the label shown in select options and listing rows,
// falling back to the slug when no label is set.
func (c CookieCategory) DisplayLabel() string {
	if c.Label != nil {
		return *c.Label
	}
	return c.Name
}
