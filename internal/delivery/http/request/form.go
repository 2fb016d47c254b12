package request

import (
	"net/http"
	"strconv"
	"strings"
)

// TokenField is the form field carrying the anti-forgery token.
const TokenField = "csrf_token"

// SaveCookieForm captures the fields of an admin save/delete submission.
// Optional fields are nil when the input was absent or empty; form inputs
// submit empty strings for untouched fields and those must not overwrite
// stored values, so normalization happens here at the parsing boundary.
type SaveCookieForm struct {
	ID          *int64
	Delete      *int64
	Name        string
	Provider    *string
	Duration    *string
	CategoryID  *int64
	Description *string
	Token       string
}

// IsDelete reports whether the submission is a delete request: the delete
// field must be present and equal to the submitted id. A mismatched delete
// field falls through to the save path.
func (f *SaveCookieForm) IsDelete() bool {
	return f.Delete != nil && f.ID != nil && *f.Delete == *f.ID
}

// ParseSaveCookieForm extracts and normalizes the fields of a POST
// submission. Malformed integer fields are a parse error, not a zero value.
func ParseSaveCookieForm(r *http.Request) (*SaveCookieForm, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	form := &SaveCookieForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Provider:    optionalString(r.PostFormValue("provider")),
		Duration:    optionalString(r.PostFormValue("duration")),
		Description: optionalString(r.PostFormValue("description")),
		Token:       r.PostFormValue(TokenField),
	}

	var err error
	if form.ID, err = optionalInt(r.PostFormValue("id")); err != nil {
		return nil, err
	}
	if form.Delete, err = optionalInt(r.PostFormValue("delete")); err != nil {
		return nil, err
	}
	if form.CategoryID, err = optionalInt(r.PostFormValue("category_id")); err != nil {
		return nil, err
	}
	return form, nil
}

// ParseEditID extracts the optional ?id= query parameter of the listing
// page. Returns nil when the parameter is absent or empty.
func ParseEditID(r *http.Request) (*int64, error) {
	return optionalInt(r.URL.Query().Get("id"))
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func optionalInt(value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
