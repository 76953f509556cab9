// README: Live order feed; republishes the sorted undelivered queue on every store change.
package order

import (
	"context"
	"sort"

	"oxa/internal/types"
)

// StatusFilter narrows a store order query. A zero filter matches all
// statuses.
type StatusFilter struct {
	Op     string // "==", "!=" or "" for no status clause
	Status Status
}

var (
	FilterAll         = StatusFilter{}
	FilterDelivered   = StatusFilter{Op: "==", Status: StatusDelivered}
	FilterUndelivered = StatusFilter{Op: "!=", Status: StatusDelivered}
)

// Event is one push from the order store watch. Err is set when the stream
// failed; the channel closes once the stream is dead.
type Event struct {
	Orders []Order
	Err    error
}

// Watcher is the push side of the order store. The returned channel closes
// when ctx is cancelled or the stream ends.
type Watcher interface {
	WatchOrders(ctx context.Context, restaurantID types.ID, f StatusFilter) <-chan Event
}

// Snapshot is one published feed state. On a stream error Err is set and
// Orders holds the last good list, so the dashboard keeps rendering stale
// data instead of going blank.
type Snapshot struct {
	Orders []Order
	Err    error
}

// Feed maintains at most one live subscription over a restaurant's
// undelivered orders and republishes the sorted queue on every store change.
// Switching restaurants tears the previous subscription down before the new
// one is established.
type Feed struct {
	watcher  Watcher
	out      chan Snapshot
	switchCh chan types.ID
}

func NewFeed(w Watcher) *Feed {
	return &Feed{
		watcher:  w,
		out:      make(chan Snapshot, 1),
		switchCh: make(chan types.ID),
	}
}

// Snapshots delivers published feed states. Delivery is conflating: a slow
// consumer only ever sees the latest snapshot, never a backlog.
func (f *Feed) Snapshots() <-chan Snapshot {
	return f.out
}

// SetRestaurant points the feed at a restaurant, replacing any current
// subscription. Blocks until Run has picked the switch up.
func (f *Feed) SetRestaurant(id types.ID) {
	f.switchCh <- id
}

// Run owns the subscription lifecycle until ctx is cancelled. All feed state
// lives in this goroutine; there is no shared mutable state.
func (f *Feed) Run(ctx context.Context) {
	var (
		last      []Order
		events    <-chan Event
		cancelSub context.CancelFunc
	)
	defer func() {
		if cancelSub != nil {
			cancelSub()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case id := <-f.switchCh:
			// Old subscription must be released before the new one exists:
			// one restaurant, one live listener.
			if cancelSub != nil {
				cancelSub()
			}
			var subCtx context.Context
			subCtx, cancelSub = context.WithCancel(ctx)
			events = f.watcher.WatchOrders(subCtx, id, FilterAll)

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Err != nil {
				f.publish(ctx, Snapshot{Orders: last, Err: ev.Err})
				continue
			}
			last = ActiveQueue(ev.Orders)
			f.publish(ctx, Snapshot{Orders: last})
		}
	}
}

// publish replaces any pending snapshot so the consumer always reads the
// newest state.
func (f *Feed) publish(ctx context.Context, s Snapshot) {
	for {
		select {
		case f.out <- s:
			return
		case <-ctx.Done():
			return
		default:
		}
		select {
		case <-f.out:
		default:
		}
	}
}

// ActiveQueue drops delivered orders and sorts the rest by lifecycle stage,
// then by placement time within a stage.
func ActiveQueue(orders []Order) []Order {
	active := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status.Terminal() {
			continue
		}
		active = append(active, o)
	}
	sort.SliceStable(active, func(i, j int) bool {
		a, b := active[i], active[j]
		if a.Status.Ordinal() != b.Status.Ordinal() {
			return a.Status.Ordinal() < b.Status.Ordinal()
		}
		return a.OrderedAt.Before(b.OrderedAt)
	})
	return active
}

// FilterByStatus serves the dashboard's status filter control.
func FilterByStatus(orders []Order, s Status) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}
