// README: Common identifier and geo types shared across modules.
package types

// ID identifies a restaurant or order document in the store.
type ID string

// Point is a raw latitude/longitude pair as persisted on the restaurant
// document.
type Point struct {
	Lat  float64 `firestore:"lat" json:"lat"`
	Long float64 `firestore:"long" json:"long"`
}
