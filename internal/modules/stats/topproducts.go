// README: One-shot most-ordered-products ranking.
package stats

import (
	"context"
	"sort"

	"oxa/internal/modules/catalog"
	"oxa/internal/modules/order"
	"oxa/internal/types"
)

// DefaultTopProducts is how many ranked products the dashboard shows.
const DefaultTopProducts = 5

// ProductRank is one row of the ranking.
type ProductRank struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Count     int64  `json:"count"`
}

// TopProducts tallies ordered quantities per product id across the
// restaurant's full order history, joins titles from the current menu and
// returns the top limit rows by count. Ids no longer on the menu rank under
// the placeholder title rather than failing. Ties break by product id so the
// ranking is stable across runs.
func TopProducts(ctx context.Context, src Source, id types.ID, limit int) ([]ProductRank, error) {
	if limit <= 0 {
		limit = DefaultTopProducts
	}

	orders, err := src.GetOrders(ctx, id, order.FilterAll)
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, o := range orders {
		for _, item := range o.Products {
			counts[item.ProductID] += item.Count
		}
	}

	r, err := src.GetRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}
	menu := catalog.NewMenuIndex(r.Menu)

	ranks := make([]ProductRank, 0, len(counts))
	for pid, count := range counts {
		ranks = append(ranks, ProductRank{
			ProductID: pid,
			Title:     menu.Resolve(pid).Title,
			Count:     count,
		})
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Count != ranks[j].Count {
			return ranks[i].Count > ranks[j].Count
		}
		return ranks[i].ProductID < ranks[j].ProductID
	})

	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks, nil
}
