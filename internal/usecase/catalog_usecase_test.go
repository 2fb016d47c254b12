package usecase

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cookie-table/internal/entity"
	"github.com/user/cookie-table/internal/repository"
)

type fakeCookieRepo struct {
	cookies     map[int64]entity.Cookie
	categories  *fakeCategoryRepo
	nextID      int64
	upsertCalls int
}

func newFakeCookieRepo(categories *fakeCategoryRepo) *fakeCookieRepo {
	return &fakeCookieRepo{cookies: make(map[int64]entity.Cookie), categories: categories}
}

func (r *fakeCookieRepo) listing(c entity.Cookie) entity.CookieListing {
	l := entity.CookieListing{Cookie: c}
	if c.CategoryID == nil || r.categories == nil {
		return l
	}
	for _, category := range r.categories.categories {
		if category.ID == *c.CategoryID {
			name := category.Name
			l.CategoryName = &name
			l.CategoryLabel = category.Label
		}
	}
	return l
}

func (r *fakeCookieRepo) List(ctx context.Context) ([]entity.CookieListing, error) {
	out := make([]entity.CookieListing, 0, len(r.cookies))
	for _, c := range r.cookies {
		out = append(out, r.listing(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeCookieRepo) GetByID(ctx context.Context, id int64) (*entity.CookieListing, error) {
	c, ok := r.cookies[id]
	if !ok {
		return nil, nil
	}
	l := r.listing(c)
	return &l, nil
}

func (r *fakeCookieRepo) Upsert(ctx context.Context, cookie *entity.Cookie) (int64, error) {
	if cookie.ID != nil && *cookie.ID <= 0 {
		return 0, repository.ErrInvalidID
	}
	r.upsertCalls++
	var id int64
	if cookie.ID == nil {
		r.nextID++
		id = r.nextID
	} else {
		id = *cookie.ID
	}
	stored := *cookie
	stored.ID = &id
	r.cookies[id] = stored
	return id, nil
}

func (r *fakeCookieRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.cookies[id]; !ok {
		return false, nil
	}
	delete(r.cookies, id)
	return true, nil
}

type fakeCategoryRepo struct {
	categories []entity.CookieCategory
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]entity.CookieCategory, error) {
	return append([]entity.CookieCategory{}, r.categories...), nil
}

func (r *fakeCategoryRepo) Upsert(ctx context.Context, category *entity.CookieCategory) (int64, error) {
	id := category.ID
	if id == 0 {
		id = int64(len(r.categories) + 1)
	}
	stored := *category
	stored.ID = id
	r.categories = append(r.categories, stored)
	return id, nil
}

func label(s string) *string { return &s }

func newTestCatalog() (Catalog, *fakeCookieRepo, *fakeCategoryRepo) {
	categories := &fakeCategoryRepo{categories: []entity.CookieCategory{
		{ID: 1, Name: "necessary", Label: label("Necessary")},
		{ID: 2, Name: "statistics"},
	}}
	cookies := newFakeCookieRepo(categories)
	return NewCatalog(cookies, categories), cookies, categories
}

func TestSaveCookieCreateAssignsNewID(t *testing.T) {
	catalog, _, _ := newTestCatalog()
	ctx := context.Background()

	categoryID := int64(1)
	first, err := catalog.SaveCookie(ctx, SaveCookieInput{Name: "wires", CategoryID: &categoryID})
	require.NoError(t, err)
	require.NotNil(t, first.ID)

	second, err := catalog.SaveCookie(ctx, SaveCookieInput{Name: "ga", CategoryID: &categoryID})
	require.NoError(t, err)
	require.NotNil(t, second.ID)
	assert.NotEqual(t, *first.ID, *second.ID)

	fetched, err := catalog.EditCookie(ctx, *first.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "wires", fetched.Name)
	assert.Equal(t, categoryID, *fetched.CategoryID)
}

func TestSaveCookieMissingFieldsSkipsRepository(t *testing.T) {
	catalog, cookies, _ := newTestCatalog()
	ctx := context.Background()
	categoryID := int64(1)

	_, err := catalog.SaveCookie(ctx, SaveCookieInput{Name: "", CategoryID: &categoryID})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = catalog.SaveCookie(ctx, SaveCookieInput{Name: "wires"})
	assert.ErrorIs(t, err, ErrMissingFields)

	assert.Zero(t, cookies.upsertCalls)
}

func TestSaveCookieRejectsNonPositiveID(t *testing.T) {
	catalog, cookies, _ := newTestCatalog()
	ctx := context.Background()
	categoryID := int64(1)

	for _, id := range []int64{0, -5} {
		id := id
		_, err := catalog.SaveCookie(ctx, SaveCookieInput{ID: &id, Name: "x", CategoryID: &categoryID})
		assert.ErrorIs(t, err, repository.ErrInvalidID)
	}
	assert.Empty(t, cookies.cookies)
}

func TestSaveCookieUpdateTouchesOnlyTarget(t *testing.T) {
	catalog, _, _ := newTestCatalog()
	ctx := context.Background()
	categoryID := int64(1)

	first, err := catalog.SaveCookie(ctx, SaveCookieInput{Name: "wires", CategoryID: &categoryID})
	require.NoError(t, err)
	second, err := catalog.SaveCookie(ctx, SaveCookieInput{Name: "wires_challenge", CategoryID: &categoryID})
	require.NoError(t, err)

	provider := "example.com"
	updated, err := catalog.SaveCookie(ctx, SaveCookieInput{
		ID:         first.ID,
		Name:       "wires",
		Provider:   &provider,
		CategoryID: &categoryID,
	})
	require.NoError(t, err)
	assert.Equal(t, *first.ID, *updated.ID)
	require.NotNil(t, updated.Provider)
	assert.Equal(t, "example.com", *updated.Provider)

	other, err := catalog.EditCookie(ctx, *second.ID)
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.Nil(t, other.Provider)
}

func TestDeleteCookie(t *testing.T) {
	catalog, cookies, _ := newTestCatalog()
	ctx := context.Background()
	categoryID := int64(1)

	saved, err := catalog.SaveCookie(ctx, SaveCookieInput{Name: "wires", CategoryID: &categoryID})
	require.NoError(t, err)

	_, err = catalog.DeleteCookie(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, cookies.cookies, 1)

	deleted, err := catalog.DeleteCookie(ctx, *saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "wires", deleted.Name)

	gone, err := catalog.EditCookie(ctx, *saved.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestListingSortedWithLabelFallback(t *testing.T) {
	catalog, _, _ := newTestCatalog()
	ctx := context.Background()

	labeled := int64(1)
	unlabeled := int64(2)
	for _, input := range []SaveCookieInput{
		{Name: "zz_tracker", CategoryID: &unlabeled},
		{Name: "aa_session", CategoryID: &labeled},
	} {
		_, err := catalog.SaveCookie(ctx, input)
		require.NoError(t, err)
	}
	// Uncategorized cookies still appear in the listing.
	orphan := int64(999)
	_, err := catalog.SaveCookie(ctx, SaveCookieInput{Name: "mm_orphan", CategoryID: &orphan})
	require.NoError(t, err)

	view, err := catalog.Listing(ctx)
	require.NoError(t, err)
	require.Len(t, view.Cookies, 3)

	assert.Equal(t, "aa_session", view.Cookies[0].Name)
	assert.Equal(t, "mm_orphan", view.Cookies[1].Name)
	assert.Equal(t, "zz_tracker", view.Cookies[2].Name)

	assert.Equal(t, "Necessary", view.Cookies[0].CategoryDisplay())
	assert.Equal(t, "", view.Cookies[1].CategoryDisplay())
	assert.Equal(t, "statistics", view.Cookies[2].CategoryDisplay())
}
