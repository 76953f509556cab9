package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxa/internal/modules/order"
)

func placed(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 10, 0, 0, 0, time.UTC)
}

func TestMonthlyRevenueBuckets(t *testing.T) {
	orders := []order.Order{
		{Price: 100, OrderedAt: placed(2025, time.January)},
		{Price: 200, OrderedAt: placed(2025, time.January)},
		{Price: 50, OrderedAt: placed(2025, time.April)},
		{Price: 10, OrderedAt: placed(2025, time.December)},
	}
	got := MonthlyRevenue(orders)
	want := [12]int64{300, 0, 0, 50, 0, 0, 0, 0, 0, 0, 0, 10}
	assert.Equal(t, want, got)
}

func TestMonthlyRevenueMergesYears(t *testing.T) {
	// Buckets are all-time: March 2024 and March 2025 share a bucket.
	orders := []order.Order{
		{Price: 70, OrderedAt: placed(2024, time.March)},
		{Price: 30, OrderedAt: placed(2025, time.March)},
	}
	got := MonthlyRevenue(orders)
	assert.EqualValues(t, 100, got[2])
}

func TestMonthlyRevenueSkipsMissingTimestamps(t *testing.T) {
	orders := []order.Order{
		{Price: 500},
		{Price: 40, OrderedAt: placed(2025, time.June)},
	}
	got := MonthlyRevenue(orders)
	var total int64
	for _, v := range got {
		total += v
	}
	assert.EqualValues(t, 40, total)
}

func TestWatchMonthlyRevenueKeepsLastGoodBuckets(t *testing.T) {
	src := &fakeSource{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := WatchMonthlyRevenue(ctx, src, "r1", nil)
	require.Eventually(t, func() bool { return src.subCount() == 1 },
		2*time.Second, 5*time.Millisecond)

	src.pushOrders(order.FilterAll, order.Event{Orders: []order.Order{
		{Price: 80, OrderedAt: placed(2025, time.February)},
	}})

	snap := <-out
	require.NoError(t, snap.Err)
	assert.EqualValues(t, 80, snap.Months[1])

	boom := errors.New("stream lost")
	src.pushOrders(order.FilterAll, order.Event{Err: boom})
	snap = <-out
	assert.ErrorIs(t, snap.Err, boom)
	assert.EqualValues(t, 80, snap.Months[1], "last good buckets survive a stream error")
}
