// README: Order aggregate and status definitions.
package order

import (
	"time"

	"oxa/internal/types"
)

type Status string

const (
	StatusWait          Status = "wait"
	StatusCooking       Status = "cooking"
	StatusSearchCourier Status = "search_courier"
	StatusCourier       Status = "courier"
	StatusDone          Status = "done"
	StatusDelivering    Status = "delivering"
	StatusDelivered     Status = "delivered"
)

// statusOrder fixes the display order of the live queue: earlier lifecycle
// stages sort first, regardless of how the store collates the raw strings.
var statusOrder = map[Status]int{
	StatusWait:          0,
	StatusCooking:       1,
	StatusSearchCourier: 2,
	StatusCourier:       3,
	StatusDone:          4,
	StatusDelivering:    5,
	StatusDelivered:     6,
}

// Ordinal returns the lifecycle position of s. Unknown statuses sort last.
func (s Status) Ordinal() int {
	if n, ok := statusOrder[s]; ok {
		return n
	}
	return len(statusOrder)
}

func (s Status) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusDelivered
}

// Item is one line of an order: a menu product id and how many were ordered.
type Item struct {
	ProductID string `firestore:"id" json:"id"`
	Count     int64  `firestore:"count" json:"count"`
}

type Order struct {
	ID           string    `firestore:"-" json:"id"`
	RestaurantID types.ID  `firestore:"restaurantId" json:"restaurantId"`
	PhoneNumber  string    `firestore:"phoneNumber" json:"phoneNumber"`
	SecretCode   string    `firestore:"secretCode" json:"secretCode"`
	Products     []Item    `firestore:"products" json:"products"`
	Price        int64     `firestore:"price" json:"price"`
	Status       Status    `firestore:"status" json:"status"`
	OrderedAt    time.Time `firestore:"orderedAt" json:"orderedAt"`
	Courier      string    `firestore:"courier" json:"courier,omitempty"`
	// Pickup marks self-collect orders; it is set at creation and only read
	// here, where it selects the post-cooking branch.
	Pickup bool `firestore:"soboy" json:"soboy"`
}
