// README: Dashboard counters merged from four independent live queries.
package stats

import (
	"context"
	"log/slog"

	"oxa/internal/modules/catalog"
	"oxa/internal/modules/order"
	"oxa/internal/types"
)

// Slot names one of the four independently refreshed counters.
type Slot int

const (
	SlotCatalogSize Slot = iota
	SlotCompletedOrders
	SlotActiveOrders
	SlotRevenue
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotCatalogSize:
		return "catalog_size"
	case SlotCompletedOrders:
		return "completed_orders"
	case SlotActiveOrders:
		return "active_orders"
	case SlotRevenue:
		return "revenue"
	}
	return "unknown"
}

// SlotUpdate is one tagged per-slot refresh event.
type SlotUpdate struct {
	Slot  Slot
	Value int64
}

// Record is the combined display-ready state. Ready stays false until every
// slot has reported at least once; consumers render a loading state until
// then. The four slots refresh independently and are never atomic with each
// other.
type Record struct {
	CatalogSize     int64 `json:"catalogSize"`
	CompletedOrders int64 `json:"completedOrders"`
	ActiveOrders    int64 `json:"activeOrders"`
	Revenue         int64 `json:"revenue"`
	Ready           bool  `json:"ready"`
}

// Reducer folds slot updates into a Record. It makes the merge of the four
// uncoordinated subscriptions an explicit, test-visible step.
type Reducer struct {
	seen [slotCount]bool
	rec  Record
}

// Apply merges one update and returns the resulting record. Only the
// update's own slot changes.
func (r *Reducer) Apply(u SlotUpdate) Record {
	switch u.Slot {
	case SlotCatalogSize:
		r.rec.CatalogSize = u.Value
	case SlotCompletedOrders:
		r.rec.CompletedOrders = u.Value
	case SlotActiveOrders:
		r.rec.ActiveOrders = u.Value
	case SlotRevenue:
		r.rec.Revenue = u.Value
	default:
		return r.rec
	}
	r.seen[u.Slot] = true
	r.rec.Ready = r.allSeen()
	return r.rec
}

// Loading reports whether any slot has yet to deliver a first value.
func (r *Reducer) Loading() bool {
	return !r.allSeen()
}

func (r *Reducer) allSeen() bool {
	for _, s := range r.seen {
		if !s {
			return false
		}
	}
	return true
}

// Source is the read side of the document store the aggregators consume.
type Source interface {
	WatchRestaurant(ctx context.Context, id types.ID) <-chan catalog.Event
	WatchOrders(ctx context.Context, id types.ID, f order.StatusFilter) <-chan order.Event
	GetRestaurant(ctx context.Context, id types.ID) (*catalog.Restaurant, error)
	GetOrders(ctx context.Context, id types.ID, f order.StatusFilter) ([]order.Order, error)
}

// WatchMetrics runs four live queries (menu size, delivered count,
// undelivered count, delivered revenue) and emits the merged record on every
// slot change until ctx is cancelled. A slot whose stream errors keeps its
// last value; the other slots keep refreshing.
func WatchMetrics(ctx context.Context, src Source, id types.ID, log *slog.Logger) <-chan Record {
	if log == nil {
		log = slog.Default()
	}
	updates := make(chan SlotUpdate)
	out := make(chan Record, 1)

	go watchRestaurantSlot(ctx, src, id, updates, log)
	go watchOrdersSlot(ctx, src, id, order.FilterDelivered, SlotCompletedOrders, countOrders, updates, log)
	go watchOrdersSlot(ctx, src, id, order.FilterUndelivered, SlotActiveOrders, countOrders, updates, log)
	go watchOrdersSlot(ctx, src, id, order.FilterDelivered, SlotRevenue, sumRevenue, updates, log)

	go func() {
		defer close(out)
		var r Reducer
		for {
			select {
			case <-ctx.Done():
				return
			case u := <-updates:
				publishRecord(ctx, out, r.Apply(u))
			}
		}
	}()
	return out
}

func watchRestaurantSlot(ctx context.Context, src Source, id types.ID, updates chan<- SlotUpdate, log *slog.Logger) {
	for ev := range src.WatchRestaurant(ctx, id) {
		if ev.Err != nil {
			log.Warn("metrics slot stream error", "slot", SlotCatalogSize, "error", ev.Err)
			continue
		}
		sendUpdate(ctx, updates, SlotUpdate{Slot: SlotCatalogSize, Value: int64(len(ev.Restaurant.Menu))})
	}
}

func watchOrdersSlot(ctx context.Context, src Source, id types.ID, f order.StatusFilter, slot Slot,
	value func([]order.Order) int64, updates chan<- SlotUpdate, log *slog.Logger) {
	for ev := range src.WatchOrders(ctx, id, f) {
		if ev.Err != nil {
			log.Warn("metrics slot stream error", "slot", slot, "error", ev.Err)
			continue
		}
		sendUpdate(ctx, updates, SlotUpdate{Slot: slot, Value: value(ev.Orders)})
	}
}

func countOrders(orders []order.Order) int64 {
	return int64(len(orders))
}

func sumRevenue(orders []order.Order) int64 {
	var total int64
	for _, o := range orders {
		total += o.Price
	}
	return total
}

func sendUpdate(ctx context.Context, updates chan<- SlotUpdate, u SlotUpdate) {
	select {
	case updates <- u:
	case <-ctx.Done():
	}
}

// publishRecord conflates: a slow consumer reads only the newest record.
func publishRecord(ctx context.Context, out chan Record, r Record) {
	for {
		select {
		case out <- r:
			return
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-out:
		default:
		}
	}
}
