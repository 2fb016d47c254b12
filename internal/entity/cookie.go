package entity

import "time"

// Cookie mirrors the `cookie_table` PostgreSQL table schema. Optional
// columns are nullable and represented as pointers; an empty string is
// never stored for an absent value.
type Cookie struct {
	// ID is nil for cookies that have not been persisted yet. A persisted
	// cookie always has a strictly positive ID.
	ID          *int64
	Name        string
	Provider    *string
	Duration    *string
	CategoryID  *int64
	Description *string
	Metadata    *string
	Created     time.Time
	Updated     time.Time
}

// CookieListing is a cookie row joined with its category, as returned by
// the list and get-by-id queries. Category fields are nil when the cookie
// has no category or the category id does not resolve.
type CookieListing struct {
	Cookie
	CategoryName  *string
	CategoryLabel *string
}

// CategoryDisplay resolves the category column shown to users: the
// category label when present, the category name otherwise, and an empty
// string for uncategorized cookies.
func (l CookieListing) CategoryDisplay() string {
	if l.CategoryLabel != nil {
		return *l.CategoryLabel
	}
	if l.CategoryName != nil {
		return *l.CategoryName
	}
	return ""
}
