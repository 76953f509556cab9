// README: Catalog service: product CRUD, settings edits, admin lookup.
package catalog

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"oxa/internal/types"
)

var (
	ErrNotFound        = errors.New("restaurant not found")
	ErrProductNotFound = errors.New("product not found in menu")
	ErrBadCredentials  = errors.New("unknown admin credentials")
	ErrBadRequest      = errors.New("bad request")
)

// Event is one push from the restaurant document watch.
type Event struct {
	Restaurant *Restaurant
	Err        error
}

// Store is the document-store surface the catalog needs. Menu mutations are
// array-element updates on the restaurant document; products never live in
// their own collection.
type Store interface {
	GetRestaurant(ctx context.Context, id types.ID) (*Restaurant, error)
	UpdateRestaurantFields(ctx context.Context, id types.ID, fields map[string]any) error
	AddMenuProduct(ctx context.Context, id types.ID, p Product) error
	RemoveMenuProduct(ctx context.Context, id types.ID, p Product) error
	ReplaceMenuProduct(ctx context.Context, id types.ID, old, updated Product) error
	FindRestaurantByAdmin(ctx context.Context, username, password string) (types.ID, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Login resolves admin credentials to the restaurant they own.
func (s *Service) Login(ctx context.Context, username, password string) (types.ID, error) {
	if username == "" || password == "" {
		return "", ErrBadCredentials
	}
	return s.store.FindRestaurantByAdmin(ctx, username, password)
}

func (s *Service) Restaurant(ctx context.Context, id types.ID) (*Restaurant, error) {
	return s.store.GetRestaurant(ctx, id)
}

func (s *Service) Menu(ctx context.Context, id types.ID) ([]Product, error) {
	r, err := s.store.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.Menu, nil
}

// Categories lists the distinct categories present in the menu, sorted.
func (s *Service) Categories(ctx context.Context, id types.ID) ([]string, error) {
	menu, err := s.Menu(ctx, id)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, p := range menu {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Title    string
	Category string
	Price    int64
	Img      string
	IsThere  bool
}

// AddProduct appends a new menu product with a generated id and returns it.
// New products start available.
func (s *Service) AddProduct(ctx context.Context, id types.ID, in ProductInput) (Product, error) {
	if in.Title == "" || in.Price < 0 {
		return Product{}, ErrBadRequest
	}
	p := Product{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Category: in.Category,
		Price:    in.Price,
		Img:      in.Img,
		IsThere:  true,
	}
	if err := s.store.AddMenuProduct(ctx, id, p); err != nil {
		return Product{}, err
	}
	return p, nil
}

// UpdateProduct swaps the stored menu element for the edited one. The store
// removes by whole-element equality, so the current element is fetched first.
func (s *Service) UpdateProduct(ctx context.Context, id types.ID, productID string, in ProductInput) (Product, error) {
	if in.Title == "" || in.Price < 0 {
		return Product{}, ErrBadRequest
	}
	old, err := s.menuProduct(ctx, id, productID)
	if err != nil {
		return Product{}, err
	}
	updated := Product{
		ID:       old.ID,
		Title:    in.Title,
		Category: in.Category,
		Price:    in.Price,
		Img:      in.Img,
		IsThere:  in.IsThere,
	}
	if err := s.store.ReplaceMenuProduct(ctx, id, old, updated); err != nil {
		return Product{}, err
	}
	return updated, nil
}

func (s *Service) RemoveProduct(ctx context.Context, id types.ID, productID string) error {
	p, err := s.menuProduct(ctx, id, productID)
	if err != nil {
		return err
	}
	return s.store.RemoveMenuProduct(ctx, id, p)
}

func (s *Service) menuProduct(ctx context.Context, id types.ID, productID string) (Product, error) {
	menu, err := s.Menu(ctx, id)
	if err != nil {
		return Product{}, err
	}
	for _, p := range menu {
		if p.ID == productID {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// SettingsInput carries the editable store settings. Nil fields are left
// untouched.
type SettingsInput struct {
	Name          *string
	Banner        *string
	Category      []string
	WorkTime      *WorkTime
	DeliveryPrice *int64
	City          *string
	Location      *types.Point
}

// UpdateSettings patches the changed settings fields on the restaurant
// document. The menu is never written through this path.
func (s *Service) UpdateSettings(ctx context.Context, id types.ID, in SettingsInput) error {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Banner != nil {
		fields["banner"] = *in.Banner
	}
	if in.Category != nil {
		fields["category"] = in.Category
	}
	if in.WorkTime != nil {
		fields["workTime"] = map[string]any{
			"opens":  in.WorkTime.Opens,
			"closes": in.WorkTime.Closes,
		}
	}
	if in.DeliveryPrice != nil {
		if *in.DeliveryPrice < 0 {
			return ErrBadRequest
		}
		fields["deliveryPrice"] = *in.DeliveryPrice
	}
	if in.City != nil {
		fields["city"] = *in.City
	}
	if in.Location != nil {
		fields["location"] = map[string]any{
			"lat":  in.Location.Lat,
			"long": in.Location.Long,
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return s.store.UpdateRestaurantFields(ctx, id, fields)
}
