// README: Monthly revenue buckets for the dashboard trend chart.
package stats

import (
	"context"
	"log/slog"

	"oxa/internal/modules/order"
	"oxa/internal/types"
)

// MonthlyRevenue buckets every order into 12 calendar-month totals, index 0
// being January. The buckets are all-time: the same month from different
// years lands in the same bucket, which is how the product has always
// charted it. Orders without a resolvable timestamp are skipped.
func MonthlyRevenue(orders []order.Order) [12]int64 {
	var months [12]int64
	for _, o := range orders {
		if o.OrderedAt.IsZero() {
			continue
		}
		months[int(o.OrderedAt.Month())-1] += o.Price
	}
	return months
}

// TrendSnapshot is one published chart state. On a stream error Err is set
// and Months holds the last good buckets.
type TrendSnapshot struct {
	Months [12]int64 `json:"months"`
	Err    error     `json:"-"`
}

// WatchMonthlyRevenue recomputes the month buckets from scratch on every
// store change, across all of the restaurant's orders regardless of status.
func WatchMonthlyRevenue(ctx context.Context, src Source, id types.ID, log *slog.Logger) <-chan TrendSnapshot {
	if log == nil {
		log = slog.Default()
	}
	out := make(chan TrendSnapshot, 1)

	go func() {
		defer close(out)
		var last [12]int64
		for ev := range src.WatchOrders(ctx, id, order.FilterAll) {
			if ev.Err != nil {
				log.Warn("revenue trend stream error", "error", ev.Err)
				publishTrend(ctx, out, TrendSnapshot{Months: last, Err: ev.Err})
				continue
			}
			last = MonthlyRevenue(ev.Orders)
			publishTrend(ctx, out, TrendSnapshot{Months: last})
		}
	}()
	return out
}

func publishTrend(ctx context.Context, out chan TrendSnapshot, t TrendSnapshot) {
	for {
		select {
		case out <- t:
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
