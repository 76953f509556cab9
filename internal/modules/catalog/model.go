// README: Restaurant document and embedded menu products.
package catalog

import (
	"oxa/internal/types"
)

// Product is a menu entry. It has no identity outside its parent
// restaurant; the id is only unique within one menu.
type Product struct {
	ID       string `firestore:"id" json:"id"`
	Title    string `firestore:"title" json:"title"`
	Category string `firestore:"category" json:"category"`
	Price    int64  `firestore:"price" json:"price"`
	Img      string `firestore:"img" json:"img"`
	IsThere  bool   `firestore:"isThere" json:"isThere"`
}

type WorkTime struct {
	Opens  string `firestore:"opens" json:"opens"`
	Closes string `firestore:"closes" json:"closes"`
}

type Restaurant struct {
	ID            types.ID     `firestore:"-" json:"id"`
	Name          string       `firestore:"name" json:"name"`
	Banner        string       `firestore:"banner" json:"banner"`
	Menu          []Product    `firestore:"menu" json:"menu"`
	Category      []string     `firestore:"category" json:"category"`
	WorkTime      WorkTime     `firestore:"workTime" json:"workTime"`
	DeliveryPrice int64        `firestore:"deliveryPrice" json:"deliveryPrice"`
	City          string       `firestore:"city" json:"city"`
	Location      *types.Point `firestore:"location" json:"location,omitempty"`
}

// Placeholder values rendered when an ordered product id no longer resolves
// against the menu. A missing product is a display fallback, not an error.
const (
	PlaceholderTitle    = "Unknown Product"
	PlaceholderCategory = "Uncategorized"
)

// MenuIndex resolves ordered product ids against a menu.
type MenuIndex map[string]Product

func NewMenuIndex(menu []Product) MenuIndex {
	idx := make(MenuIndex, len(menu))
	for _, p := range menu {
		idx[p.ID] = p
	}
	return idx
}

// Resolve returns the menu product for id, or a placeholder product with
// zero price when the id is absent.
func (m MenuIndex) Resolve(id string) Product {
	if p, ok := m[id]; ok {
		return p
	}
	return Product{
		ID:       id,
		Title:    PlaceholderTitle,
		Category: PlaceholderCategory,
	}
}
