package usecase

import (
	"context"
	"errors"

	"github.com/user/cookie-table/internal/entity"
	"github.com/user/cookie-table/internal/repository"
)

var (
	// ErrMissingFields is returned when a save request lacks a cookie name
	// or a category; the repository is never called in that case.
	ErrMissingFields = errors.New("missing required parameters")
	// ErrNotFound is returned when an operation targets a cookie id that
	// does not resolve to a record.
	ErrNotFound = errors.New("cookie not found")
)

// SaveCookieInput carries the normalized fields of a save request. Optional
// fields are nil when absent; the request-parsing boundary is responsible
// for coercing empty form values to nil before they reach this layer.
type SaveCookieInput struct {
	ID          *int64
	Name        string
	Provider    *string
	Duration    *string
	CategoryID  *int64
	Description *string
}

// ListingView is the data needed to render the admin listing page.
type ListingView struct {
	Cookies    []entity.CookieListing
	Categories []entity.CookieCategory
}

// Catalog defines the administrative operations on the cookie catalog. The
// original module conflated create, update and delete into one save request
// shape; here they are explicit operations and the HTTP layer alone deals
// with field-presence dispatch.
type Catalog interface {
	Listing(ctx context.Context) (*ListingView, error)
	// EditCookie resolves a cookie for the edit form. Returns (nil, nil)
	// when the id does not match a record.
	EditCookie(ctx context.Context, id int64) (*entity.CookieListing, error)
	// SaveCookie creates or updates a cookie and returns the saved record
	// re-fetched from storage.
	SaveCookie(ctx context.Context, input SaveCookieInput) (*entity.CookieListing, error)
	// DeleteCookie removes a cookie by id and returns the record as it was
	// before deletion, for the confirmation message.
	DeleteCookie(ctx context.Context, id int64) (*entity.CookieListing, error)
}

type catalogUseCase struct {
	cookieRepo   repository.CookieRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalog creates a new Catalog use case.
func NewCatalog(cookieRepo repository.CookieRepository, categoryRepo repository.CategoryRepository) Catalog {
	return &catalogUseCase{
		cookieRepo:   cookieRepo,
		categoryRepo: categoryRepo,
	}
}

func (uc *catalogUseCase) Listing(ctx context.Context) (*ListingView, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	cookies, err := uc.cookieRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return &ListingView{Cookies: cookies, Categories: categories}, nil
}

func (uc *catalogUseCase) EditCookie(ctx context.Context, id int64) (*entity.CookieListing, error) {
	return uc.cookieRepo.GetByID(ctx, id)
}

func (uc *catalogUseCase) SaveCookie(ctx context.Context, input SaveCookieInput) (*entity.CookieListing, error) {
	if input.Name == "" || input.CategoryID == nil {
		return nil, ErrMissingFields
	}

	cookie := &entity.Cookie{
		ID:          input.ID,
		Name:        input.Name,
		Provider:    input.Provider,
		Duration:    input.Duration,
		CategoryID:  input.CategoryID,
		Description: input.Description,
	}
	id, err := uc.cookieRepo.Upsert(ctx, cookie)
	if err != nil {
		return nil, err
	}

	saved, err := uc.cookieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		// The upsert reported an id that does not resolve; treat the store
		// as inconsistent rather than guessing.
		return nil, ErrNotFound
	}
	return saved, nil
}

func (uc *catalogUseCase) DeleteCookie(ctx context.Context, id int64) (*entity.CookieListing, error) {
	existing, err := uc.cookieRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	deleted, err := uc.cookieRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrNotFound
	}
	return existing, nil
}
