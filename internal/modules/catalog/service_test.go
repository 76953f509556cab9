package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxa/internal/types"
)

// fakeStore keeps one restaurant document in memory and mimics the
// array-element menu semantics of the real store.
type fakeStore struct {
	restaurant *Restaurant
	fields     map[string]any
	adminUser  string
	adminPass  string
	adminOwns  types.ID
}

func (s *fakeStore) GetRestaurant(_ context.Context, id types.ID) (*Restaurant, error) {
	if s.restaurant == nil || s.restaurant.ID != id {
		return nil, ErrNotFound
	}
	cp := *s.restaurant
	return &cp, nil
}

func (s *fakeStore) UpdateRestaurantFields(_ context.Context, id types.ID, fields map[string]any) error {
	if s.restaurant == nil || s.restaurant.ID != id {
		return ErrNotFound
	}
	s.fields = fields
	return nil
}

func (s *fakeStore) AddMenuProduct(_ context.Context, id types.ID, p Product) error {
	if s.restaurant == nil || s.restaurant.ID != id {
		return ErrNotFound
	}
	s.restaurant.Menu = append(s.restaurant.Menu, p)
	return nil
}

func (s *fakeStore) RemoveMenuProduct(_ context.Context, id types.ID, p Product) error {
	if s.restaurant == nil || s.restaurant.ID != id {
		return ErrNotFound
	}
	menu := s.restaurant.Menu[:0]
	for _, cur := range s.restaurant.Menu {
		if cur != p {
			menu = append(menu, cur)
		}
	}
	s.restaurant.Menu = menu
	return nil
}

func (s *fakeStore) ReplaceMenuProduct(ctx context.Context, id types.ID, old, updated Product) error {
	if err := s.RemoveMenuProduct(ctx, id, old); err != nil {
		return err
	}
	return s.AddMenuProduct(ctx, id, updated)
}

func (s *fakeStore) FindRestaurantByAdmin(_ context.Context, username, password string) (types.ID, error) {
	if username == s.adminUser && password == s.adminPass {
		return s.adminOwns, nil
	}
	return "", ErrBadCredentials
}

func newTestService() (*Service, *fakeStore) {
	store := &fakeStore{
		restaurant: &Restaurant{
			ID:   "r1",
			Name: "Oxa Grill",
			Menu: []Product{
				{ID: "p1", Title: "Pizza", Category: "Mains", Price: 300, IsThere: true},
				{ID: "p2", Title: "Cola", Category: "Drinks", Price: 50, IsThere: true},
				{ID: "p3", Title: "Burger", Category: "Mains", Price: 250, IsThere: false},
			},
		},
		adminUser: "admin",
		adminPass: "secret",
		adminOwns: "r1",
	}
	return NewService(store), store
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()

	id, err := svc.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, types.ID("r1"), id)

	_, err = svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	// Empty credentials never reach the store.
	_, err = svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestCategoriesDistinctSorted(t *testing.T) {
	svc, store := newTestService()
	store.restaurant.Menu = append(store.restaurant.Menu, Product{ID: "p4", Title: "Tea"})

	got, err := svc.Categories(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Drinks", "Mains"}, got, "duplicates and empty categories dropped")
}

func TestAddProduct(t *testing.T) {
	svc, store := newTestService()

	p, err := svc.AddProduct(context.Background(), "r1", ProductInput{
		Title: "Soup", Category: "Mains", Price: 120,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.True(t, p.IsThere, "new products start available")
	assert.Len(t, store.restaurant.Menu, 4)

	_, err = svc.AddProduct(context.Background(), "r1", ProductInput{Price: 10})
	assert.ErrorIs(t, err, ErrBadRequest, "title is required")
	_, err = svc.AddProduct(context.Background(), "r1", ProductInput{Title: "X", Price: -1})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestUpdateProductReplacesMenuElement(t *testing.T) {
	svc, store := newTestService()

	updated, err := svc.UpdateProduct(context.Background(), "r1", "p2", ProductInput{
		Title: "Cola Zero", Category: "Drinks", Price: 60, IsThere: false,
	})
	require.NoError(t, err)
	assert.Equal(t, "p2", updated.ID, "identity survives the edit")

	menu := NewMenuIndex(store.restaurant.Menu)
	assert.Equal(t, "Cola Zero", menu["p2"].Title)
	assert.EqualValues(t, 60, menu["p2"].Price)
	assert.Len(t, store.restaurant.Menu, 3)

	_, err = svc.UpdateProduct(context.Background(), "r1", "missing", ProductInput{Title: "X", Price: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveProduct(t *testing.T) {
	svc, store := newTestService()

	require.NoError(t, svc.RemoveProduct(context.Background(), "r1", "p3"))
	assert.Len(t, store.restaurant.Menu, 2)

	err := svc.RemoveProduct(context.Background(), "r1", "p3")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateSettingsPatchesOnlySetFields(t *testing.T) {
	svc, store := newTestService()

	name := "Oxa Grill 2"
	price := int64(150)
	err := svc.UpdateSettings(context.Background(), "r1", SettingsInput{
		Name:          &name,
		DeliveryPrice: &price,
		WorkTime:      &WorkTime{Opens: "09:00", Closes: "22:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":          "Oxa Grill 2",
		"deliveryPrice": int64(150),
		"workTime":      map[string]any{"opens": "09:00", "closes": "22:00"},
	}, store.fields)
}

func TestUpdateSettingsRejectsNegativeDeliveryPrice(t *testing.T) {
	svc, store := newTestService()
	price := int64(-5)
	err := svc.UpdateSettings(context.Background(), "r1", SettingsInput{DeliveryPrice: &price})
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Nil(t, store.fields, "nothing written on validation failure")
}

func TestUpdateSettingsNoopWithoutChanges(t *testing.T) {
	svc, store := newTestService()
	require.NoError(t, svc.UpdateSettings(context.Background(), "r1", SettingsInput{}))
	assert.Nil(t, store.fields)
}

func TestMenuIndexResolveFallback(t *testing.T) {
	idx := NewMenuIndex([]Product{{ID: "p1", Title: "Pizza", Price: 300}})

	assert.Equal(t, "Pizza", idx.Resolve("p1").Title)

	missing := idx.Resolve("gone")
	assert.Equal(t, PlaceholderTitle, missing.Title)
	assert.Equal(t, PlaceholderCategory, missing.Category)
	assert.Zero(t, missing.Price)
}
